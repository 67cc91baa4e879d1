package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/starrystar99/KWU-EE-Chatbot-RAG/model"
)

var (
	gridDays  = []string{"Mon", "Tue", "Wed", "Thu", "Fri"}
	gridTimes = []string{
		"9-10AM", "10-11AM", "11-12AM", "12-1PM",
		"1-2PM", "2-3PM", "3-4PM", "4-5PM", "5-6PM",
	}
)

// timeGrid is the manual time-selection view: a day/time matrix the user
// toggles cells on before asking for recommendations.
type timeGrid struct {
	row      int // index into gridTimes
	col      int // index into gridDays
	selected [][]bool
}

func newTimeGrid() timeGrid {
	sel := make([][]bool, len(gridTimes))
	for i := range sel {
		sel[i] = make([]bool, len(gridDays))
	}
	return timeGrid{selected: sel}
}

func (g timeGrid) slots() []model.TimeSlot {
	var out []model.TimeSlot
	for r, times := range g.selected {
		for c, on := range times {
			if on {
				out = append(out, model.TimeSlot{Day: gridDays[c], Time: gridTimes[r]})
			}
		}
	}
	return out
}

func (m Model) updateTimeSelect(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.input.Focus()
		m.mode = modeChat
		return m, nil

	case "up", "k":
		if m.grid.row > 0 {
			m.grid.row--
		}
	case "down", "j":
		if m.grid.row < len(gridTimes)-1 {
			m.grid.row++
		}
	case "left", "h":
		if m.grid.col > 0 {
			m.grid.col--
		}
	case "right", "l":
		if m.grid.col < len(gridDays)-1 {
			m.grid.col++
		}

	case " ":
		m.grid.selected[m.grid.row][m.grid.col] = !m.grid.selected[m.grid.row][m.grid.col]

	case "enter":
		m.seq.Session().SetSlots(m.grid.slots())
		m.input.Focus()
		m.mode = modeChat
		m.follow = true
		return m, workflowCmd(m.seq.SubmitManualSlots)
	}
	return m, nil
}

func (m Model) viewTimeSelect() string {
	const cellWidth = 9

	var b strings.Builder
	b.WriteString(titleStyle.Render("Select free times"))
	b.WriteString("\n\n")

	// header row
	b.WriteString(pad("", cellWidth))
	for _, d := range gridDays {
		b.WriteString(headerStyle.Render(pad(d, cellWidth-2)) + "  ")
	}
	b.WriteString("\n")

	for r, t := range gridTimes {
		b.WriteString(dimStyle.Render(pad(t, cellWidth)))
		for c := range gridDays {
			cell := "[ ]"
			if m.grid.selected[r][c] {
				cell = "[x]"
			}
			rendered := pad(cell, cellWidth-2)
			if r == m.grid.row && c == m.grid.col {
				rendered = selectedStyle.Render(rendered)
			}
			b.WriteString(rendered + "  ")
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("  arrows: move  space: toggle  Enter: recommend  Esc: cancel"))
	return b.String()
}
