package protocol

import (
	"fmt"
	"unicode/utf8"

	"github.com/MKhiriev/go-mapping-keeper/internal/codec"
	"github.com/MKhiriev/go-mapping-keeper/models"
)

// MessageKind is the type of a ServerMessage.
type MessageKind uint8

const (
	MessageChat MessageKind = iota
	MessageConnect
	MessageDisconnect
	MessageRename
	MessageRemoveMapping
	MessageEditDocs
	MessageEditAccess
)

// ServerMessage is a chat line or an event of the session, rendered to text
// before it is broadcast.
type ServerMessage struct {
	Kind  MessageKind
	User  string
	Text  string
	Entry models.Entry
}

func Chat(user, text string) ServerMessage {
	return ServerMessage{Kind: MessageChat, User: user, Text: text}
}

func Connect(user string) ServerMessage {
	return ServerMessage{Kind: MessageConnect, User: user}
}

func Disconnect(user string) ServerMessage {
	return ServerMessage{Kind: MessageDisconnect, User: user}
}

// ChangeMessages describes an accepted change, one message per edited field.
func ChangeMessages(user string, c models.EntryChange) []ServerMessage {
	var out []ServerMessage
	switch {
	case c.Name.IsSet():
		out = append(out, ServerMessage{Kind: MessageRename, User: user, Entry: c.Target, Text: c.Name.Value})
	case c.Name.IsReset():
		out = append(out, ServerMessage{Kind: MessageRemoveMapping, User: user, Entry: c.Target})
	}
	if !c.Doc.IsUnchanged() {
		out = append(out, ServerMessage{Kind: MessageEditDocs, User: user, Entry: c.Target})
	}
	if !c.Access.IsUnchanged() {
		out = append(out, ServerMessage{Kind: MessageEditAccess, User: user, Entry: c.Target, Text: c.Access.Value.String()})
	}
	return out
}

// Render returns the text shown to users.
func (m ServerMessage) Render() string {
	switch m.Kind {
	case MessageChat:
		return fmt.Sprintf("<%s> %s", m.User, m.Text)
	case MessageConnect:
		return m.User + " joined the server"
	case MessageDisconnect:
		return m.User + " left the server"
	case MessageRename:
		return fmt.Sprintf("%s renamed %v to %s", m.User, m.Entry, m.Text)
	case MessageRemoveMapping:
		return fmt.Sprintf("%s removed the name of %v", m.User, m.Entry)
	case MessageEditDocs:
		return fmt.Sprintf("%s edited the docs of %v", m.User, m.Entry)
	case MessageEditAccess:
		return fmt.Sprintf("%s set the access of %v to %s", m.User, m.Entry, m.Text)
	default:
		return m.Text
	}
}

// Packet wraps the rendered message for broadcast, cut to the longest
// encodable string that does not split a rune.
func (m ServerMessage) Packet() *Message {
	text := m.Render()
	if len(text) > codec.MaxStringLength {
		n := codec.MaxStringLength
		for n > 0 && !utf8.RuneStart(text[n]) {
			n--
		}
		text = text[:n]
	}
	return &Message{Text: text}
}
