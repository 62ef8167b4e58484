package server

import "github.com/MKhiriev/go-mapping-keeper/models"

// lockRecord holds an accepted change of entry until every client in
// awaiting has confirmed it. While a client is awaiting, its own edits of
// entry are rejected.
type lockRecord struct {
	syncID   uint16
	entry    models.Entry
	awaiting map[*session]struct{}
}

// lockEntry allocates the next syncId for a change of entry by sender and
// locks entry for every other logged-in client. A previous lock of entry is
// dropped together with its remaining waiters. With nobody to wait for the
// record is returned but not stored.
func (s *MappingServer) lockEntry(sender *session, entry models.Entry) *lockRecord {
	lock := &lockRecord{
		syncID:   s.allocSyncID(),
		entry:    entry,
		awaiting: make(map[*session]struct{}),
	}

	if old := s.locksByEntry[entry]; old != nil {
		s.retire(old)
	}
	if stale := s.locksBySync[lock.syncID]; stale != nil {
		s.retire(stale)
	}

	for c := range s.sessions {
		if c != sender && c.loggedIn() {
			lock.awaiting[c] = struct{}{}
		}
	}

	if len(lock.awaiting) > 0 {
		s.locksByEntry[entry] = lock
		s.locksBySync[lock.syncID] = lock
	}
	return lock
}

// allocSyncID returns the next syncId, wrapping from 65535 back to 1 so that
// the dummy id is never handed out.
func (s *MappingServer) allocSyncID() uint16 {
	id := s.nextSyncID
	s.nextSyncID++
	if s.nextSyncID == 0 {
		s.nextSyncID = 1
	}
	return id
}

func (s *MappingServer) retire(lock *lockRecord) {
	if s.locksBySync[lock.syncID] == lock {
		delete(s.locksBySync, lock.syncID)
	}
	if s.locksByEntry[lock.entry] == lock {
		delete(s.locksByEntry, lock.entry)
	}
}
