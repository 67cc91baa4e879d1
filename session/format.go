package session

import (
	"strings"

	"github.com/starrystar99/KWU-EE-Chatbot-RAG/model"
)

// FormatFreeSlots renders detected free times as one line per day, in the
// backend's day order. A day present with no times reads "none".
func FormatFreeSlots(days []model.FreeSlotDay) string {
	var b strings.Builder
	b.WriteString("detected free time:")
	if len(days) == 0 {
		b.WriteString("\nno empty slots detected")
		return b.String()
	}
	for _, d := range days {
		b.WriteString("\n")
		b.WriteString(d.Day)
		b.WriteString(": ")
		if len(d.Times) == 0 {
			b.WriteString("none")
		} else {
			b.WriteString(strings.Join(d.Times, ", "))
		}
	}
	return b.String()
}

// FormatImageCourses renders image-derived recommendations. The field set
// differs from the manual shape and the two formats stay distinct.
func FormatImageCourses(courses []model.ImageCourse) string {
	if len(courses) == 0 {
		return "no recommendations"
	}
	var b strings.Builder
	b.WriteString("recommended courses:")
	for _, c := range courses {
		b.WriteString("\n- [")
		b.WriteString(c.Time)
		b.WriteString("]: ")
		b.WriteString(c.Name)
		b.WriteString("(")
		b.WriteString(c.Professor)
		b.WriteString(")")
	}
	return b.String()
}

// FormatManualCourses renders recommendations for manually selected slots.
func FormatManualCourses(courses []model.ManualCourse) string {
	if len(courses) == 0 {
		return "no recommendations"
	}
	var b strings.Builder
	b.WriteString("recommended courses:")
	for _, c := range courses {
		b.WriteString("\n- ")
		b.WriteString(c.Day)
		b.WriteString(" ")
		b.WriteString(c.Period)
		b.WriteString(": ")
		b.WriteString(c.Name)
		b.WriteString(" (")
		b.WriteString(c.Professor)
		b.WriteString(")")
	}
	return b.String()
}

// FormatHandoffCourses renders a handed-off recommendation set. The trailing
// day/period layout is the legacy cross-view format, kept as-is.
func FormatHandoffCourses(courses []model.ManualCourse) string {
	if len(courses) == 0 {
		return "no recommendations"
	}
	var b strings.Builder
	b.WriteString("recommended courses:")
	for _, c := range courses {
		b.WriteString("\n- ")
		b.WriteString(c.Name)
		b.WriteString(" (")
		b.WriteString(c.Professor)
		b.WriteString(") - ")
		b.WriteString(c.Day)
		b.WriteString(" ")
		b.WriteString(c.Period)
	}
	return b.String()
}
