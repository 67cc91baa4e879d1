package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/starrystar99/KWU-EE-Chatbot-RAG/model"
)

var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".bmp":  true,
	".webp": true,
}

func (m Model) updateAttach(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.attachInput.Blur()
		m.input.Focus()
		m.mode = modeChat
		return m, nil

	case "enter":
		path := strings.TrimSpace(m.attachInput.Value())
		if path == "" {
			return m, nil
		}
		att, err := loadImage(path)
		if err != nil {
			m.status = err.Error()
			m.attachInput.Blur()
			m.input.Focus()
			m.mode = modeChat
			return m, nil
		}
		m.seq.Session().StageImage(att)
		m.status = "staged " + att.Name
		m.attachInput.Blur()
		m.input.Focus()
		m.mode = modeChat
		return m, nil
	}

	var cmd tea.Cmd
	m.attachInput, cmd = m.attachInput.Update(msg)
	return m, cmd
}

func (m Model) viewAttach() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Attach timetable image"))
	b.WriteString("\n\n")
	b.WriteString("  Path: " + m.attachInput.View())
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("  Enter: stage image  Esc: cancel"))
	return b.String()
}

// loadImage reads the file into memory up front; the upload workflow sends
// the same bytes to two endpoints.
func loadImage(path string) (model.Attachment, error) {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[2:])
		}
	}
	if !imageExtensions[strings.ToLower(filepath.Ext(path))] {
		return model.Attachment{}, fmt.Errorf("not an image file: %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Attachment{}, err
	}
	return model.Attachment{Name: filepath.Base(path), Data: data}, nil
}
