package tui

import (
	"fmt"
	"strings"

	"github.com/MKhiriev/go-mapping-keeper/internal/server"
	"github.com/MKhiriev/go-mapping-keeper/models"
)

func describeMapping(entry models.Entry, m models.Mapping, ok bool) string {
	if !ok || m.IsEmpty() {
		return fmt.Sprintf("%s has no mapping", entry)
	}

	var b strings.Builder
	b.WriteString(entry.String())
	if m.HasName() {
		b.WriteString(" -> ")
		b.WriteString(m.TargetName)
	}
	if m.Access != models.AccessUnchanged {
		fmt.Fprintf(&b, " [%s]", m.Access)
	}
	if m.Doc != "" {
		b.WriteString("\n  ")
		b.WriteString(strings.ReplaceAll(m.Doc, "\n", "\n  "))
	}
	return b.String()
}

func describeStatus(s server.Status) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d online: %s | %d mappings", len(s.Users), strings.Join(s.Users, ", "), s.Mappings)
	if s.Dirty {
		b.WriteString(" | unsaved changes")
	}
	for _, lock := range s.Locks {
		fmt.Fprintf(&b, "\n  lock %d on %s, waiting for %s", lock.SyncID, lock.Entry, strings.Join(lock.Awaiting, ", "))
	}
	return b.String()
}

func fitText(v string, max int) string {
	if max <= 0 || len(v) <= max {
		return v
	}
	if max <= 3 {
		return v[:max]
	}
	return v[:max-3] + "..."
}
