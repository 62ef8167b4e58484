// Package tui is the terminal front end of the mapping client: a chat log,
// the list of connected users and a command line for editing mappings.
package tui

import (
	"errors"
	"fmt"
	"sync"

	"github.com/MKhiriev/go-mapping-keeper/internal/adapter"
	"github.com/MKhiriev/go-mapping-keeper/internal/logger"
	"github.com/MKhiriev/go-mapping-keeper/internal/mapping"
	"github.com/MKhiriev/go-mapping-keeper/models"
	tea "github.com/charmbracelet/bubbletea"
)

var ErrNoSession = errors.New("not connected")

// Session is the connection the UI drives.
type Session interface {
	SendChange(change models.EntryChange) error
	SendMessage(text string) error
	Mapping(entry models.Entry) (models.Mapping, bool)
}

// TUI runs the bubbletea program. Its On* methods receive the events of a
// client connection and may be called from any goroutine.
type TUI struct {
	program *tea.Program
	session *sessionRef
	logger  *logger.Logger
}

func New(username string, status adapter.StatusAdapter, logger *logger.Logger, opts ...tea.ProgramOption) *TUI {
	ref := &sessionRef{}
	model := newModel(username, ref, status)
	return &TUI{
		program: tea.NewProgram(model, append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)...),
		session: ref,
		logger:  logger,
	}
}

// Run shows the UI for session until the user quits.
func (t *TUI) Run(session Session) error {
	t.session.set(session)
	defer t.session.set(nil)

	if _, err := t.program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}

// Quit stops a running UI.
func (t *TUI) Quit() {
	t.program.Quit()
}

func (t *TUI) OnSyncMappings(tree *mapping.HashTree) {
	t.program.Send(syncedMsg{mappings: tree.Len()})
}

func (t *TUI) OnEntryChange(change models.EntryChange, current models.Mapping) {
	t.program.Send(entryChangedMsg{entry: change.Target, current: current})
}

func (t *TUI) OnMessage(text string) {
	t.program.Send(chatMsg{text: text})
}

func (t *TUI) OnUserList(users []string) {
	t.program.Send(usersMsg{users: users})
}

func (t *TUI) OnDisconnect(reason string) {
	t.logger.Info().Str("reason", reason).Msg("session ended")
	t.program.Send(disconnectedMsg{reason: reason})
}

type sessionRef struct {
	mu      sync.RWMutex
	session Session
}

func (r *sessionRef) set(s Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.session = s
}

func (r *sessionRef) get() (Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.session == nil {
		return nil, ErrNoSession
	}
	return r.session, nil
}
