package codec

import (
	"bytes"
	"fmt"

	"github.com/MKhiriev/go-mapping-keeper/models"
)

// MarshalEntry encodes e with its full parent chain.
func MarshalEntry(e models.Entry) ([]byte, error) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	WriteEntry(w, e, true)
	if err := w.Err(); err != nil {
		return nil, fmt.Errorf("marshal entry %v: %w", e, err)
	}
	return buf.Bytes(), nil
}

// UnmarshalEntry decodes a blob produced by MarshalEntry. Trailing bytes are
// an error.
func UnmarshalEntry(p []byte) (models.Entry, error) {
	rd := bytes.NewReader(p)
	r := NewReader(rd)
	e := ReadEntry(r, nil, true)
	if err := r.Err(); err != nil {
		return nil, fmt.Errorf("unmarshal entry: %w", err)
	}
	if rd.Len() != 0 {
		return nil, fmt.Errorf("unmarshal entry: %d trailing bytes", rd.Len())
	}
	return e, nil
}
