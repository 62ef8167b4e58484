package protocol

import (
	"fmt"
	"math"

	"github.com/MKhiriev/go-mapping-keeper/internal/codec"
	"github.com/MKhiriev/go-mapping-keeper/internal/mapping"
	"github.com/MKhiriev/go-mapping-keeper/models"
)

// Packet is one typed message of the protocol.
type Packet interface {
	// ID is the frame byte of the packet within its direction.
	ID() uint8
	Direction() Direction
	// Encode writes the body, without the id byte.
	Encode(w *codec.Writer)
	// Decode reads the body into the receiver.
	Decode(r *codec.Reader)
}

// Client to server packet ids.
const (
	IDLogin         uint8 = 0
	IDConfirmChange uint8 = 1
	IDChatMessage   uint8 = 6
	IDProposeChange uint8 = 7
)

// Server to client packet ids.
const (
	IDKick         uint8 = 0
	IDSyncMappings uint8 = 1
	IDMessage      uint8 = 6
	IDUserList     uint8 = 7
	IDEntryChanged uint8 = 8
)

// ── client to server ──────────────────────────────────────────────────────────

// Login is the first packet of every connection.
type Login struct {
	Version  uint16
	Username string
	Password string
	Checksum [ChecksumSize]byte
}

// NewLogin builds a Login for the current protocol version.
func NewLogin(username, password string, checksum [ChecksumSize]byte) *Login {
	return &Login{
		Version:  ProtocolVersion,
		Username: username,
		Password: password,
		Checksum: checksum,
	}
}

func (*Login) ID() uint8            { return IDLogin }
func (*Login) Direction() Direction { return ClientToServer }

func (p *Login) Encode(w *codec.Writer) {
	if len(p.Password) > MaxPasswordLength {
		w.Fail(fmt.Errorf("%w: %d bytes, max %d", ErrPasswordTooLong, len(p.Password), MaxPasswordLength))
		return
	}
	w.Uint16(p.Version)
	w.String(p.Username)
	w.Uint8(uint8(len(p.Password)))
	w.Bytes([]byte(p.Password))
	w.Bytes(p.Checksum[:])
}

// Decode fails with ErrProtocolMismatch before reading anything else when
// the version differs, since the rest of the body may have another shape.
func (p *Login) Decode(r *codec.Reader) {
	p.Version = r.Uint16()
	if r.Err() == nil && p.Version != ProtocolVersion {
		r.Fail(fmt.Errorf("%w: got %#04x, want %#04x", ErrProtocolMismatch, p.Version, ProtocolVersion))
		return
	}
	p.Username = r.String()
	p.Password = string(r.Bytes(int(r.Uint8())))
	copy(p.Checksum[:], r.Bytes(ChecksumSize))
}

// ConfirmChange acknowledges an EntryChanged (or, with DummySyncID, the
// initial SyncMappings).
type ConfirmChange struct {
	SyncID uint16
}

func (*ConfirmChange) ID() uint8            { return IDConfirmChange }
func (*ConfirmChange) Direction() Direction { return ClientToServer }

func (p *ConfirmChange) Encode(w *codec.Writer) { w.Uint16(p.SyncID) }
func (p *ConfirmChange) Decode(r *codec.Reader) { p.SyncID = r.Uint16() }

// ChatMessage is a line of chat typed by a user.
type ChatMessage struct {
	Text string
}

func (*ChatMessage) ID() uint8            { return IDChatMessage }
func (*ChatMessage) Direction() Direction { return ClientToServer }

func (p *ChatMessage) Encode(w *codec.Writer) { w.String(p.Text) }
func (p *ChatMessage) Decode(r *codec.Reader) { p.Text = r.String() }

// ProposeChange asks the server to apply a change the client has already
// applied locally.
type ProposeChange struct {
	SyncID uint16
	Change models.EntryChange
}

func (*ProposeChange) ID() uint8            { return IDProposeChange }
func (*ProposeChange) Direction() Direction { return ClientToServer }

func (p *ProposeChange) Encode(w *codec.Writer) {
	w.Uint16(p.SyncID)
	codec.WriteEntryChange(w, p.Change)
}

func (p *ProposeChange) Decode(r *codec.Reader) {
	p.SyncID = r.Uint16()
	p.Change = codec.ReadEntryChange(r)
}

// ── server to client ──────────────────────────────────────────────────────────

// Kick is the last packet the server sends before closing the connection.
type Kick struct {
	Reason string
}

func (*Kick) ID() uint8            { return IDKick }
func (*Kick) Direction() Direction { return ServerToClient }

func (p *Kick) Encode(w *codec.Writer) { w.String(p.Reason) }
func (p *Kick) Decode(r *codec.Reader) { p.Reason = r.String() }

// SyncMappings carries the full mapping tree to a newly logged-in client.
type SyncMappings struct {
	Tree mapping.Tree
}

func (*SyncMappings) ID() uint8            { return IDSyncMappings }
func (*SyncMappings) Direction() Direction { return ServerToClient }

func (p *SyncMappings) Encode(w *codec.Writer) {
	if p.Tree == nil {
		codec.WriteTree(w, mapping.NewHashTree())
		return
	}
	codec.WriteTree(w, p.Tree)
}

func (p *SyncMappings) Decode(r *codec.Reader) {
	if tree := codec.ReadTree(r); tree != nil {
		p.Tree = tree
	}
}

// Message is a chat line or event rendered by the server.
type Message struct {
	Text string
}

func (*Message) ID() uint8            { return IDMessage }
func (*Message) Direction() Direction { return ServerToClient }

func (p *Message) Encode(w *codec.Writer) { w.String(p.Text) }
func (p *Message) Decode(r *codec.Reader) { p.Text = r.String() }

// UserList holds the sorted names of every logged-in user.
type UserList struct {
	Users []string
}

func (*UserList) ID() uint8            { return IDUserList }
func (*UserList) Direction() Direction { return ServerToClient }

func (p *UserList) Encode(w *codec.Writer) {
	if len(p.Users) > math.MaxUint16 {
		w.Fail(fmt.Errorf("%w: %d", ErrTooManyUsers, len(p.Users)))
		return
	}
	w.Uint16(uint16(len(p.Users)))
	for _, u := range p.Users {
		w.String(u)
	}
}

func (p *UserList) Decode(r *codec.Reader) {
	n := int(r.Uint16())
	p.Users = make([]string, 0, n)
	for i := 0; i < n && r.Err() == nil; i++ {
		p.Users = append(p.Users, r.String())
	}
}

// EntryChanged tells a client to apply a change. A non-dummy SyncID must be
// confirmed once applied.
type EntryChanged struct {
	SyncID uint16
	Change models.EntryChange
}

func (*EntryChanged) ID() uint8            { return IDEntryChanged }
func (*EntryChanged) Direction() Direction { return ServerToClient }

func (p *EntryChanged) Encode(w *codec.Writer) {
	w.Uint16(p.SyncID)
	codec.WriteEntryChange(w, p.Change)
}

func (p *EntryChanged) Decode(r *codec.Reader) {
	p.SyncID = r.Uint16()
	p.Change = codec.ReadEntryChange(r)
}
