package server

import (
	"regexp"
	"sort"

	"github.com/MKhiriev/go-mapping-keeper/internal/protocol"
	"github.com/MKhiriev/go-mapping-keeper/internal/utils"
	"github.com/MKhiriev/go-mapping-keeper/models"
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_.\-]{1,32}$`)

// dispatch hands p to the mutator. Password hashing is done here so that
// the mutator never spends CPU on it. It reports false once the server has
// stopped.
func (s *MappingServer) dispatch(c *session, p protocol.Packet) bool {
	switch p := p.(type) {
	case *protocol.Login:
		passwordOK := s.verifier.Verify(p.Password)
		return s.Submit(func() { s.handleLogin(c, p, passwordOK) })
	case *protocol.ConfirmChange:
		return s.Submit(func() { s.handleConfirmChange(c, p.SyncID) })
	case *protocol.ChatMessage:
		return s.Submit(func() { s.handleChat(c, p.Text) })
	case *protocol.ProposeChange:
		return s.Submit(func() { s.handleProposeChange(c, p.Change) })
	default:
		return s.Submit(func() { s.kick(c, protocol.ReasonProtocolError, true) })
	}
}

func (s *MappingServer) handleLogin(c *session, p *protocol.Login, passwordOK bool) {
	switch c.state {
	case stateDisconnected:
		return
	case stateUnapproved, stateApproved:
		s.kick(c, protocol.ReasonAlreadyLoggedIn, true)
		return
	}

	log := c.logger.With().Str("username", p.Username).Logger()
	switch {
	case !usernamePattern.MatchString(p.Username):
		log.Info().Msg("login with invalid username")
		s.kick(c, protocol.ReasonInvalidUsername, false)
		return
	case !passwordOK:
		log.Info().Msg("login with wrong password")
		s.kick(c, protocol.ReasonWrongPassword, false)
		return
	case s.usernames[p.Username] != nil:
		log.Info().Msg("login with a taken username")
		s.kick(c, protocol.ReasonUsernameTaken, false)
		return
	case utils.Checksum(p.Checksum) != s.checksum:
		log.Info().Str("checksum", utils.Checksum(p.Checksum).String()).Msg("login with a different jar")
		s.kick(c, protocol.ReasonWrongJar, false)
		return
	}

	c.state = stateUnapproved
	c.username = p.Username
	c.logger = c.logger.WithUsername(p.Username)
	s.usernames[p.Username] = c
	c.logger.Info().Msg("logged in")

	s.broadcastUserList()
	s.send(c, &protocol.SyncMappings{Tree: s.tree.Snapshot()})
	s.broadcastMessage(protocol.Connect(c.username))
}

func (s *MappingServer) handleConfirmChange(c *session, syncID uint16) {
	switch c.state {
	case stateDisconnected:
		return
	case stateConnecting:
		s.kick(c, protocol.ReasonNotLoggedIn, true)
		return
	case stateUnapproved:
		c.state = stateApproved
		c.logger.Debug().Msg("approved")
	}

	lock := s.locksBySync[syncID]
	if lock == nil {
		return
	}
	delete(lock.awaiting, c)
	if len(lock.awaiting) == 0 {
		s.retire(lock)
	}
}

func (s *MappingServer) handleChat(c *session, text string) {
	switch c.state {
	case stateDisconnected:
		return
	case stateConnecting:
		s.kick(c, protocol.ReasonNotLoggedIn, true)
		return
	}

	s.broadcastMessage(protocol.Chat(c.username, text))
}

func (s *MappingServer) handleProposeChange(c *session, change models.EntryChange) {
	switch c.state {
	case stateDisconnected:
		return
	case stateConnecting:
		s.kick(c, protocol.ReasonNotLoggedIn, true)
		return
	}

	change.Target = s.resolver.Resolve(change.Target)
	if !s.canModifyEntry(c, change.Target) {
		s.reject(c, change)
		return
	}
	c.rejected = 0

	old, _ := s.tree.Get(change.Target)
	s.tree.Insert(change.Target, change.Apply(old))

	lock := s.lockEntry(c, change.Target)
	for receiver := range lock.awaiting {
		s.send(receiver, &protocol.EntryChanged{SyncID: lock.syncID, Change: change})
	}

	c.logger.Debug().Stringer("change", change).Uint16("sync_id", lock.syncID).Msg("change accepted")
	for _, msg := range protocol.ChangeMessages(c.username, change) {
		s.broadcastMessage(msg)
	}
}

// canModifyEntry is false for unapproved clients and for clients that have
// not yet confirmed the latest change of entry.
func (s *MappingServer) canModifyEntry(c *session, entry models.Entry) bool {
	if c.state != stateApproved {
		return false
	}
	lock := s.locksByEntry[entry]
	if lock == nil {
		return true
	}
	_, waiting := lock.awaiting[c]
	return !waiting
}

// reject answers a refused edit with the current mapping of its entry, which
// the client already overwrote locally. The correction carries no lock.
func (s *MappingServer) reject(c *session, change models.EntryChange) {
	c.rejected++
	c.logger.Debug().Stringer("change", change).Int("rejected", c.rejected).Msg("change rejected")

	if s.maxRejected > 0 && c.rejected > s.maxRejected {
		s.kick(c, protocol.ReasonTooManyRejected, true)
		return
	}

	current, _ := s.tree.Get(change.Target)
	s.send(c, &protocol.EntryChanged{
		SyncID: protocol.DummySyncID,
		Change: correction(change.Target, current),
	})
}

// correction is the change that turns any mapping into current.
func correction(entry models.Entry, current models.Mapping) models.EntryChange {
	change := models.Modify(entry)

	if current.TargetName != "" {
		change = change.WithName(current.TargetName)
	} else {
		change = change.ClearName()
	}
	if current.Doc != "" {
		change = change.WithDoc(current.Doc)
	} else {
		change = change.ClearDoc()
	}
	if current.Access != models.AccessUnchanged {
		change = change.WithAccess(current.Access)
	} else {
		change = change.ClearAccess()
	}

	return change
}

// kick disconnects c. The Kick packet is queued before the connection is
// closed; if notifyOthers is set the remaining users see a departure message.
func (s *MappingServer) kick(c *session, reason string, notifyOthers bool) {
	if c.state == stateDisconnected {
		return
	}

	username := c.username
	c.state = stateDisconnected
	delete(s.sessions, c)

	c.enqueue(&protocol.Kick{Reason: reason})
	c.closeOutbound()

	for _, lock := range s.locksBySync {
		if _, ok := lock.awaiting[c]; !ok {
			continue
		}
		delete(lock.awaiting, c)
		if len(lock.awaiting) == 0 {
			s.retire(lock)
		}
	}

	c.logger.Info().Str("reason", reason).Msg("client kicked")

	if username == "" {
		return
	}
	delete(s.usernames, username)
	if notifyOthers {
		s.broadcastMessage(protocol.Disconnect(username))
	}
	s.broadcastUserList()
}

// send queues p for c. A client whose queue is full is kicked once the
// current task is done.
func (s *MappingServer) send(c *session, p protocol.Packet) {
	if c.state == stateDisconnected || c.slow {
		return
	}
	if !c.enqueue(p) {
		c.slow = true
		s.slow = append(s.slow, c)
	}
}

func (s *MappingServer) kickSlowConsumers() {
	for len(s.slow) > 0 {
		c := s.slow[0]
		s.slow = s.slow[1:]
		c.logger.Warn().Msg("outbound queue full")
		s.kick(c, protocol.ReasonSlowConsumer, true)
	}
	s.slow = nil
}

// broadcast sends p to every logged-in client.
func (s *MappingServer) broadcast(p protocol.Packet) {
	for c := range s.sessions {
		if c.loggedIn() {
			s.send(c, p)
		}
	}
}

func (s *MappingServer) broadcastMessage(msg protocol.ServerMessage) {
	s.logger.Info().Str("message", msg.Render()).Msg("broadcast")
	s.broadcast(msg.Packet())
}

func (s *MappingServer) broadcastUserList() {
	s.broadcast(&protocol.UserList{Users: s.sortedUsernames()})
}

func (s *MappingServer) sortedUsernames() []string {
	users := make([]string, 0, len(s.usernames))
	for name := range s.usernames {
		users = append(users, name)
	}
	sort.Strings(users)
	return users
}
