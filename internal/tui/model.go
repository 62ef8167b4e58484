package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-mapping-keeper/internal/adapter"
	"github.com/MKhiriev/go-mapping-keeper/models"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	usersPaneWidth = 22
	statusTimeout  = 5 * time.Second
	maxLogLines    = 1000
)

// copyToClipboard is swapped in tests.
var copyToClipboard = clipboard.WriteAll

type model struct {
	username string
	session  *sessionRef
	status   adapter.StatusAdapter

	log   viewport.Model
	input textinput.Model

	lines  []string
	users  []string
	notice string

	shown      models.Entry
	shownValue models.Mapping
	shownOK    bool

	ended  string
	width  int
	height int
}

func newModel(username string, session *sessionRef, status adapter.StatusAdapter) model {
	input := textinput.New()
	input.Placeholder = "message or /help"
	input.Prompt = "> "
	input.CharLimit = 1024
	input.Focus()

	return model{
		username: username,
		session:  session,
		status:   status,
		log:      viewport.New(60, 10),
		input:    input,
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.quit):
			return m, tea.Quit
		case key.Matches(msg, keys.send):
			line := m.input.Value()
			m.input.Reset()
			return m.submit(line)
		case key.Matches(msg, keys.pageUp), key.Matches(msg, keys.pageDown):
			var cmd tea.Cmd
			m.log, cmd = m.log.Update(msg)
			return m, cmd
		}

	case syncedMsg:
		m.appendLine(noticeStyle.Render(fmt.Sprintf("connected, %d mappings", msg.mappings)))
		return m, nil

	case entryChangedMsg:
		if m.shown != nil && m.shown == msg.entry {
			m.shownValue, m.shownOK = msg.current, !msg.current.IsEmpty()
		}
		return m, nil

	case chatMsg:
		m.appendLine(msg.text)
		return m, nil

	case usersMsg:
		m.users = msg.users
		return m, nil

	case disconnectedMsg:
		m.ended = humanizeReason(msg.reason)
		m.appendLine(errorStyle.Render("session ended: " + m.ended))
		return m, nil

	case statusMsg:
		if msg.err != nil {
			m.appendLine(errorStyle.Render("status: " + humanizeServerUnavailableError(msg.err)))
			return m, nil
		}
		m.appendLine(describeStatus(msg.status))
		return m, nil

	case copiedMsg:
		if msg.err != nil {
			m.notice = errorStyle.Render(msg.err.Error())
		} else {
			m.notice = noticeStyle.Render("copied " + fitText(msg.text, 40))
		}
		return m, cmdClearNotice()

	case clearNoticeMsg:
		m.notice = ""
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m model) submit(line string) (tea.Model, tea.Cmd) {
	if strings.TrimSpace(line) == "" {
		return m, nil
	}

	cmd, err := parseCommand(line)
	if err != nil {
		m.appendLine(errorStyle.Render(err.Error()))
		return m, nil
	}

	switch cmd.kind {
	case cmdQuit:
		return m, tea.Quit
	case cmdHelp:
		m.appendLine(helpStyle.Render(helpText))
		return m, nil
	case cmdStatus:
		return m, m.cmdFetchStatus()
	case cmdCopy:
		if !m.shownOK || !m.shownValue.HasName() {
			m.appendLine(errorStyle.Render(ErrNothingToCopy.Error()))
			return m, nil
		}
		return m, cmdCopyToClipboard(m.shownValue.TargetName)
	}

	if m.ended != "" {
		m.appendLine(errorStyle.Render("session ended: " + m.ended))
		return m, nil
	}
	session, err := m.session.get()
	if err != nil {
		m.appendLine(errorStyle.Render(err.Error()))
		return m, nil
	}

	switch cmd.kind {
	case cmdChat:
		err = session.SendMessage(cmd.text)
	case cmdShow:
		m.shown = cmd.entry
		m.shownValue, m.shownOK = session.Mapping(cmd.entry)
		m.appendLine(describeMapping(cmd.entry, m.shownValue, m.shownOK))
	default:
		err = session.SendChange(cmd.change)
		if err == nil && m.shown == cmd.entry {
			m.shownValue, m.shownOK = session.Mapping(cmd.entry)
		}
	}
	if err != nil {
		m.appendLine(errorStyle.Render(err.Error()))
	}
	return m, nil
}

func (m model) cmdFetchStatus() tea.Cmd {
	status := m.status
	return func() tea.Msg {
		if status == nil {
			return statusMsg{err: adapter.ErrStatusDisabled}
		}
		ctx, cancel := context.WithTimeout(context.Background(), statusTimeout)
		defer cancel()

		s, err := status.Status(ctx)
		return statusMsg{status: s, err: err}
	}
}

func cmdCopyToClipboard(text string) tea.Cmd {
	return func() tea.Msg {
		if err := copyToClipboard(text); err != nil {
			return copiedMsg{err: fmt.Errorf("copy to clipboard: %w", err)}
		}
		return copiedMsg{text: text}
	}
}

func cmdClearNotice() tea.Cmd {
	return tea.Tick(2*time.Second, func(time.Time) tea.Msg {
		return clearNoticeMsg{}
	})
}

func (m *model) appendLine(line string) {
	m.lines = append(m.lines, line)
	if len(m.lines) > maxLogLines {
		m.lines = m.lines[len(m.lines)-maxLogLines:]
	}
	m.log.SetContent(strings.Join(m.lines, "\n"))
	m.log.GotoBottom()
}

func (m *model) resize() {
	// title, input and help take three lines, borders two more
	m.log.Width = max(m.width-usersPaneWidth-4, 10)
	m.log.Height = max(m.height-5, 3)
	m.input.Width = max(m.width-4, 10)
	m.log.GotoBottom()
}

func (m model) View() string {
	title := titleStyle.Render("mapping keeper") + helpStyle.Render(" as "+m.username)
	if m.ended != "" {
		title += errorStyle.Render(" (" + m.ended + ")")
	}

	users := make([]string, 0, len(m.users))
	for _, u := range m.users {
		users = append(users, fitText(u, usersPaneWidth-4))
	}
	usersPane := usersStyle.
		Width(usersPaneWidth - 2).
		Height(m.log.Height).
		Render(strings.Join(users, "\n"))

	body := lipgloss.JoinHorizontal(lipgloss.Top, logStyle.Render(m.log.View()), usersPane)

	footer := helpStyle.Render("enter: send  pgup/pgdown: scroll  esc: quit")
	if m.notice != "" {
		footer = m.notice
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, body, m.input.View(), footer)
}
