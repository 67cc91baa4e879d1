package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/starrystar99/KWU-EE-Chatbot-RAG/model"
	"github.com/starrystar99/KWU-EE-Chatbot-RAG/session"
)

type mode int

const (
	modeChat mode = iota
	modeAttach
	modeTimeSelect
)

// bootstrapDoneMsg is sent when session hydration completes.
type bootstrapDoneMsg struct{}

// workflowDoneMsg is sent when an async workflow settles, success or not.
type workflowDoneMsg struct {
	err error
}

// Model is a thin adapter over the workflow sequencer: key events become
// sequencer calls, and every frame re-renders from a transcript snapshot.
type Model struct {
	seq *session.Sequencer

	input       textinput.Model
	attachInput textinput.Model
	spin        spinner.Model
	grid        timeGrid

	mode     mode
	offset   int  // transcript scroll offset
	follow   bool // stick to the newest message
	status   string
	width    int
	height   int
	quitting bool
}

func NewModel(seq *session.Sequencer) Model {
	in := textinput.New()
	in.Placeholder = "ask about courses..."
	in.Prompt = "> "
	in.CharLimit = 500
	in.Focus()

	ai := textinput.New()
	ai.Placeholder = "~/pictures/timetable.png"
	ai.CharLimit = 300

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = spinnerStyle

	return Model{
		seq:         seq,
		input:       in,
		attachInput: ai,
		spin:        sp,
		grid:        newTimeGrid(),
		follow:      true,
		width:       100,
		height:      30,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.bootstrapCmd(), m.spin.Tick)
}

// bootstrapCmd hydrates the transcript from remote history and the
// cross-view handoff payload.
func (m Model) bootstrapCmd() tea.Cmd {
	seq := m.seq
	return func() tea.Msg {
		seq.Bootstrap(context.Background())
		return bootstrapDoneMsg{}
	}
}

// workflowCmd runs one sequencer workflow off the update loop. The spinner
// tick keeps frames coming, so optimistic entries show up while the call is
// still in flight.
func workflowCmd(run func(context.Context) error) tea.Cmd {
	return func() tea.Msg {
		return workflowDoneMsg{err: run(context.Background())}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		w := msg.Width - 4
		if w < 20 {
			w = 20
		}
		m.input.Width = w
		m.attachInput.Width = w
		return m, nil

	case bootstrapDoneMsg:
		m.follow = true
		return m, nil

	case workflowDoneMsg:
		m.follow = true
		if msg.err != nil {
			m.status = msg.err.Error()
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch m.mode {
		case modeChat:
			return m.updateChat(msg)
		case modeAttach:
			return m.updateAttach(msg)
		case modeTimeSelect:
			return m.updateTimeSelect(msg)
		}
	}
	return m, nil
}

func (m Model) updateChat(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	sess := m.seq.Session()

	switch msg.String() {
	case "ctrl+c", "esc":
		m.quitting = true
		return m, tea.Quit

	case "enter":
		if sess.Pending() {
			return m, nil
		}
		text := m.input.Value()
		if strings.TrimSpace(text) == "" {
			return m, nil
		}
		m.input.SetValue("")
		m.follow = true
		m.status = ""
		seq := m.seq
		return m, workflowCmd(func(ctx context.Context) error {
			return seq.SendText(ctx, text)
		})

	case "ctrl+o":
		if sess.Pending() {
			return m, nil
		}
		m.attachInput.SetValue("")
		m.attachInput.Focus()
		m.input.Blur()
		m.status = ""
		m.mode = modeAttach
		return m, nil

	case "ctrl+u":
		if sess.Pending() || !sess.HasStagedImage() {
			return m, nil
		}
		m.follow = true
		m.status = ""
		return m, workflowCmd(m.seq.UploadImage)

	case "ctrl+t":
		if sess.Pending() {
			return m, nil
		}
		m.grid = newTimeGrid()
		m.input.Blur()
		m.status = ""
		m.mode = modeTimeSelect
		return m, nil

	case "ctrl+r":
		if sess.Pending() {
			return m, nil
		}
		m.status = ""
		return m, workflowCmd(m.seq.Reset)

	case "up":
		m.scrollUp(1)
		return m, nil
	case "down":
		m.scrollDown(1)
		return m, nil
	case "pgup":
		m.scrollUp(m.visibleRows())
		return m, nil
	case "pgdown":
		m.scrollDown(m.visibleRows())
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	switch m.mode {
	case modeAttach:
		return m.viewAttach()
	case modeTimeSelect:
		return m.viewTimeSelect()
	default:
		return m.viewChat()
	}
}

func (m Model) viewChat() string {
	var b strings.Builder

	title := titleStyle.Render("KWU EE Chatbot")
	info := dimStyle.Render(fmt.Sprintf("  %d messages", m.seq.Session().Transcript.Len()))
	b.WriteString(title + info + "\n")

	lines := m.renderTranscript()
	visible := m.visibleRows()
	offset := m.effectiveOffset(len(lines), visible)

	end := offset + visible
	if end > len(lines) {
		end = len(lines)
	}
	for i := offset; i < end; i++ {
		b.WriteString(lines[i])
		b.WriteString("\n")
	}
	for i := end - offset; i < visible; i++ {
		b.WriteString("\n")
	}

	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(m.input.View())

	return b.String()
}

// renderTranscript renders the message snapshot into display lines: a role
// header per message, wrapped body lines, blank separator.
func (m Model) renderTranscript() []string {
	maxWidth := m.width - 2
	if maxWidth < 40 {
		maxWidth = 40
	}

	var lines []string
	for _, msg := range m.seq.Session().Transcript.Messages() {
		var header string
		switch msg.Sender {
		case model.SenderUser:
			header = userRoleStyle.Render(pad(" USER", maxWidth))
		case model.SenderAssistant:
			header = assistantRoleStyle.Render(pad(" ASSISTANT", maxWidth))
		}
		lines = append(lines, header)

		if msg.Text != "" {
			textStyle := lipgloss.NewStyle()
			if msg.Sender == model.SenderAssistant {
				textStyle = textStyle.Foreground(lipgloss.Color("250"))
			}
			for _, wl := range wrapText(msg.Text, maxWidth-2) {
				lines = append(lines, " "+textStyle.Render(wl))
			}
		}

		lines = append(lines, "")
	}
	return lines
}

func (m Model) statusLine() string {
	sess := m.seq.Session()
	if sess.Pending() {
		return statusBarStyle.Render(m.spin.View() + "waiting for the server...")
	}
	help := helpStyle.Render("  Enter: send  ^O: attach  ^U: upload  ^T: times  ^R: reset  Esc: quit")
	if sess.HasStagedImage() {
		help += stagedStyle.Render("  [image staged]")
	}
	if m.status != "" {
		help += dimStyle.Render("  " + m.status)
	}
	return help
}

// title bar + status bar + input line
func (m Model) visibleRows() int {
	rows := m.height - 3
	if rows < 1 {
		rows = 1
	}
	return rows
}

func (m Model) effectiveOffset(total, visible int) int {
	maxOffset := total - visible
	if maxOffset < 0 {
		maxOffset = 0
	}
	if m.follow || m.offset > maxOffset {
		return maxOffset
	}
	return m.offset
}

func (m *Model) scrollUp(n int) {
	lines := m.renderTranscript()
	m.offset = m.effectiveOffset(len(lines), m.visibleRows()) - n
	if m.offset < 0 {
		m.offset = 0
	}
	m.follow = false
}

func (m *Model) scrollDown(n int) {
	lines := m.renderTranscript()
	visible := m.visibleRows()
	maxOffset := len(lines) - visible
	if maxOffset < 0 {
		maxOffset = 0
	}
	m.offset = m.effectiveOffset(len(lines), visible) + n
	if m.offset >= maxOffset {
		m.offset = maxOffset
		m.follow = true
	}
}

func pad(s string, width int) string {
	runes := []rune(s)
	if len(runes) >= width {
		return string(runes[:width])
	}
	return s + strings.Repeat(" ", width-len(runes))
}

// wrapText splits text into lines that fit within maxWidth.
func wrapText(text string, maxWidth int) []string {
	var result []string
	for _, line := range strings.Split(text, "\n") {
		if line == "" {
			result = append(result, "")
			continue
		}
		runes := []rune(line)
		for len(runes) > maxWidth {
			result = append(result, string(runes[:maxWidth]))
			runes = runes[maxWidth:]
		}
		result = append(result, string(runes))
	}
	return result
}
