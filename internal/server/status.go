package server

import (
	"context"
	"fmt"
	"sort"

	"github.com/MKhiriev/go-mapping-keeper/internal/mapping"
	"github.com/MKhiriev/go-mapping-keeper/internal/protocol"
)

// Status is a point-in-time view of the server state.
type Status struct {
	Users      []string     `json:"users"`
	Locks      []LockStatus `json:"locks"`
	Mappings   int          `json:"mappings"`
	Dirty      bool         `json:"dirty"`
	NextSyncID uint16       `json:"next_sync_id"`
}

// LockStatus describes one live lock.
type LockStatus struct {
	SyncID   uint16   `json:"sync_id"`
	Entry    string   `json:"entry"`
	Awaiting []string `json:"awaiting"`
}

// Status returns the current users, live locks and save state.
func (s *MappingServer) Status(ctx context.Context) (Status, error) {
	var status Status
	err := s.call(ctx, func() {
		status = Status{
			Users:      s.sortedUsernames(),
			Locks:      make([]LockStatus, 0, len(s.locksBySync)),
			Mappings:   s.tree.Len(),
			Dirty:      s.tree.IsDirty(),
			NextSyncID: s.nextSyncID,
		}

		for _, lock := range s.locksBySync {
			awaiting := make([]string, 0, len(lock.awaiting))
			for c := range lock.awaiting {
				awaiting = append(awaiting, c.username)
			}
			sort.Strings(awaiting)

			status.Locks = append(status.Locks, LockStatus{
				SyncID:   lock.syncID,
				Entry:    lock.entry.String(),
				Awaiting: awaiting,
			})
		}
		sort.Slice(status.Locks, func(i, j int) bool {
			return status.Locks[i].SyncID < status.Locks[j].SyncID
		})
	})

	return status, err
}

// KickUser disconnects the client logged in as username.
func (s *MappingServer) KickUser(ctx context.Context, username string) error {
	found := false
	err := s.call(ctx, func() {
		c := s.usernames[username]
		if c == nil {
			return
		}
		found = true
		s.kick(c, protocol.ReasonKickedByAdmin, true)
	})
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("%w: %s", ErrUnknownUser, username)
	}
	return nil
}

// Save persists the changes made since the previous save. The delta is taken
// on the mutator and written on the caller's goroutine, so edits keep flowing
// while the writer works. When the write fails the changed entries are
// tracked again and the next save retries them.
func (s *MappingServer) Save(ctx context.Context) error {
	if s.writer == nil {
		return nil
	}

	var (
		current *mapping.HashTree
		delta   mapping.Delta
		pending bool
	)
	err := s.call(ctx, func() {
		if !s.tree.IsDirty() {
			return
		}
		pending = true
		current = s.tree.Snapshot()
		delta = s.tree.TakeDelta()
	})
	if err != nil || !pending {
		return err
	}

	if err := s.writer.Save(ctx, current, delta); err != nil {
		entries := delta.Changed.Entries()
		_ = s.call(context.WithoutCancel(ctx), func() {
			for _, e := range entries {
				s.tree.TrackChange(e)
			}
		})
		return fmt.Errorf("save mappings: %w", err)
	}

	s.logger.Info().Int("changed", delta.Changed.Len()).Msg("mappings saved")
	return nil
}
