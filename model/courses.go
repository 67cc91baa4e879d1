package model

// TimeSlot is one manually selected (day, period) cell on the timetable.
type TimeSlot struct {
	Day  string `json:"day"`
	Time string `json:"time"`
}

// FreeSlotDay is one day's detected free times. The backend emits days in
// timetable order and that order is significant to the rendered text, so the
// gateway keeps a slice instead of a map.
type FreeSlotDay struct {
	Day   string
	Times []string
}

// ImageCourse is a recommendation derived from an uploaded timetable image.
// The backend keys these fields in Korean; the two recommendation shapes are
// intentionally kept separate because the endpoints really do differ.
type ImageCourse struct {
	Time      string `json:"시간"`
	Name      string `json:"강의명"`
	Professor string `json:"교수님"`
}

// ManualCourse is a recommendation derived from manually selected slots.
type ManualCourse struct {
	Day       string `json:"요일"`
	Period    string `json:"교시"`
	Name      string `json:"강의명"`
	Professor string `json:"교수님"`
}

// HistoryTurn is one stored (user, bot) exchange from the remote history.
type HistoryTurn struct {
	User string `json:"user"`
	Bot  string `json:"bot"`
}
