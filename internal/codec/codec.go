// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package codec implements the big-endian binary primitives shared by the
// wire protocol and the mapping store.
//
// Writer and Reader keep the first error they hit and turn every later call
// into a no-op, so a packet can be encoded or decoded field by field with a
// single error check at the end.
package codec

import (
	"encoding/binary"
	"fmt"
	"io"
	"unicode/utf8"
)

// MaxStringLength is the longest string, in UTF-8 bytes, that fits the u16
// length prefix.
const MaxStringLength = 65535

// Writer encodes primitives to an io.Writer.
type Writer struct {
	w   io.Writer
	buf [4]byte
	err error
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Err returns the first error encountered.
func (w *Writer) Err() error {
	return w.err
}

func (w *Writer) Fail(err error) {
	if w.err == nil {
		w.err = err
	}
}

func (w *Writer) write(p []byte) {
	if w.err != nil {
		return
	}
	_, w.err = w.w.Write(p)
}

func (w *Writer) Uint8(v uint8) {
	w.buf[0] = v
	w.write(w.buf[:1])
}

func (w *Writer) Bool(v bool) {
	if v {
		w.Uint8(1)
	} else {
		w.Uint8(0)
	}
}

func (w *Writer) Uint16(v uint16) {
	binary.BigEndian.PutUint16(w.buf[:2], v)
	w.write(w.buf[:2])
}

func (w *Writer) Int32(v int32) {
	binary.BigEndian.PutUint32(w.buf[:4], uint32(v))
	w.write(w.buf[:4])
}

// Bytes writes p as is, without a length prefix.
func (w *Writer) Bytes(p []byte) {
	w.write(p)
}

// String writes a u16 byte length followed by the UTF-8 bytes of s.
func (w *Writer) String(s string) {
	if len(s) > MaxStringLength {
		w.Fail(fmt.Errorf("%w: %d bytes, max %d", ErrStringTooLong, len(s), MaxStringLength))
		return
	}
	w.Uint16(uint16(len(s)))
	w.write([]byte(s))
}

// Reader decodes primitives from an io.Reader.
type Reader struct {
	r   io.Reader
	buf [4]byte
	err error
}

func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

// Err returns the first error encountered. A stream that ends before a value
// is complete reports io.EOF or io.ErrUnexpectedEOF, like io.ReadFull.
func (r *Reader) Err() error {
	return r.err
}

func (r *Reader) Fail(err error) {
	if r.err == nil {
		r.err = err
	}
}

func (r *Reader) read(p []byte) bool {
	if r.err != nil {
		return false
	}
	if _, err := io.ReadFull(r.r, p); err != nil {
		r.err = err
		return false
	}
	return true
}

func (r *Reader) Uint8() uint8 {
	if !r.read(r.buf[:1]) {
		return 0
	}
	return r.buf[0]
}

func (r *Reader) Bool() bool {
	return r.Uint8() != 0
}

func (r *Reader) Uint16() uint16 {
	if !r.read(r.buf[:2]) {
		return 0
	}
	return binary.BigEndian.Uint16(r.buf[:2])
}

func (r *Reader) Int32() int32 {
	if !r.read(r.buf[:4]) {
		return 0
	}
	return int32(binary.BigEndian.Uint32(r.buf[:4]))
}

// Bytes reads exactly n bytes.
func (r *Reader) Bytes(n int) []byte {
	p := make([]byte, n)
	if !r.read(p) {
		return nil
	}
	return p
}

// String reads a u16-length-prefixed UTF-8 string. Invalid sequences are
// replaced with U+FFFD.
func (r *Reader) String() string {
	n := r.Uint16()
	if r.err != nil || n == 0 {
		return ""
	}
	p := r.Bytes(int(n))
	if p == nil {
		return ""
	}
	if !utf8.Valid(p) {
		return string([]rune(string(p)))
	}
	return string(p)
}
