package protocol

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/MKhiriev/go-mapping-keeper/internal/codec"
)

// Registry maps packet ids to packet types, per direction. Build one with
// NewRegistry and share it between server and client.
type Registry struct {
	factories map[Direction]map[uint8]func() Packet
}

// NewRegistry returns a registry holding every packet of the protocol.
func NewRegistry() *Registry {
	r := &Registry{factories: make(map[Direction]map[uint8]func() Packet)}

	for _, factory := range []func() Packet{
		func() Packet { return new(Login) },
		func() Packet { return new(ConfirmChange) },
		func() Packet { return new(ChatMessage) },
		func() Packet { return new(ProposeChange) },

		func() Packet { return new(Kick) },
		func() Packet { return new(SyncMappings) },
		func() Packet { return new(Message) },
		func() Packet { return new(UserList) },
		func() Packet { return new(EntryChanged) },
	} {
		if err := r.Register(factory); err != nil {
			panic(err)
		}
	}

	return r
}

// Register adds the packet type built by factory under its own id and
// direction.
func (r *Registry) Register(factory func() Packet) error {
	sample := factory()
	dir, id := sample.Direction(), sample.ID()

	byID, ok := r.factories[dir]
	if !ok {
		byID = make(map[uint8]func() Packet)
		r.factories[dir] = byID
	}
	if _, exists := byID[id]; exists {
		return fmt.Errorf("%w: %s id %d", ErrDuplicatePacket, dir, id)
	}

	byID[id] = factory
	return nil
}

// Read decodes the next frame sent in direction dir. A stream closed exactly
// at a frame boundary returns io.EOF.
func (r *Registry) Read(src *codec.Reader, dir Direction) (Packet, error) {
	id := src.Uint8()
	if err := src.Err(); err != nil {
		return nil, err
	}

	factory, ok := r.factories[dir][id]
	if !ok {
		return nil, fmt.Errorf("%w: %s id %d", ErrUnknownPacket, dir, id)
	}

	p := factory()
	p.Decode(src)
	if err := src.Err(); err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return nil, fmt.Errorf("decode %T: %w", p, err)
	}

	return p, nil
}

// Write encodes p as one frame.
func (r *Registry) Write(dst *codec.Writer, p Packet) error {
	if _, ok := r.factories[p.Direction()][p.ID()]; !ok {
		return fmt.Errorf("%w: %T", ErrUnregisteredPacket, p)
	}

	dst.Uint8(p.ID())
	p.Encode(dst)
	if err := dst.Err(); err != nil {
		return fmt.Errorf("encode %T: %w", p, err)
	}
	return nil
}

// Marshal encodes p as one frame in memory, so a packet that fails to
// encode never leaves a partial frame on the stream.
func (r *Registry) Marshal(p Packet) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.Write(codec.NewWriter(&buf), p); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
