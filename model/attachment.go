package model

// Attachment is a staged timetable image. The bytes are captured when the
// file is staged because the same image feeds two sequential requests.
type Attachment struct {
	Name string
	Data []byte
}
