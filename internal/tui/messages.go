package tui

import (
	"github.com/MKhiriev/go-mapping-keeper/internal/server"
	"github.com/MKhiriev/go-mapping-keeper/models"
)

type syncedMsg struct {
	mappings int
}

type entryChangedMsg struct {
	entry   models.Entry
	current models.Mapping
}

type chatMsg struct {
	text string
}

type usersMsg struct {
	users []string
}

type disconnectedMsg struct {
	reason string
}

type statusMsg struct {
	status server.Status
	err    error
}

type copiedMsg struct {
	text string
	err  error
}

type clearNoticeMsg struct{}
