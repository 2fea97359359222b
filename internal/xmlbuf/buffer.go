// Package xmlbuf implements the Unicode input buffer that feeds the item
// parser: an append-only byte store with a rewindable code-point cursor.
//
// Bytes are decoded with unicode/utf8 the same way esixml.go and the
// standard library's own bufio.ScanRunes do: utf8.FullRune tells whether the
// bytes seen so far could still be a valid but incomplete encoding, so a
// split multi-byte sequence at the end of a chunk reports "need more data"
// instead of "invalid".
package xmlbuf

import (
	"bytes"
	"unicode/utf8"

	"github.com/nussjustin/xmlstax/internal/xmlerr"
)

var bom = []byte{0xEF, 0xBB, 0xBF}

// Status describes the outcome of a Peek call.
type Status int

const (
	// StatusOK means the returned code point is valid and ready to be consumed.
	StatusOK Status = iota

	// StatusNeedMore means too few bytes are buffered to decode the next code point.
	StatusNeedMore

	// StatusInvalid means the buffered bytes at the cursor are not valid UTF-8.
	StatusInvalid
)

// Buffer is an append-only byte store exposing a rewindable code-point cursor.
//
// The zero value is usable. Buffer is not safe for concurrent use; it is owned exclusively by a
// single reader, matching the single-threaded, cooperative model the whole module is built around.
type Buffer struct {
	data   []byte
	cursor int

	capacity int // 0 means unbounded

	bomChecked bool
}

// New returns a new, empty, unbounded Buffer.
func New() *Buffer {
	return &Buffer{}
}

// NewBounded returns a new, empty Buffer that accepts at most capacity bytes at a time.
//
// Once the buffer holds capacity unconsumed bytes, Append accepts fewer bytes than given, or none
// at all, until EraseToCursor frees room.
func NewBounded(capacity int) *Buffer {
	return &Buffer{capacity: capacity}
}

// Append appends as many bytes from p as the buffer has room for and returns that count.
//
// Append never blocks and never returns an error; malformed UTF-8 is reported lazily, from Peek,
// once the cursor reaches the bad byte.
func (b *Buffer) Append(p []byte) int {
	if b.capacity <= 0 {
		b.data = append(b.data, p...)
		return len(p)
	}

	room := b.capacity - len(b.data)
	if room <= 0 {
		return 0
	}

	if len(p) > room {
		p = p[:room]
	}

	b.data = append(b.data, p...)
	return len(p)
}

// Peek returns the code point at the cursor without advancing it.
func (b *Buffer) Peek() (rune, Status) {
	if needMore := b.stripBOM(); needMore {
		return 0, StatusNeedMore
	}

	if b.cursor >= len(b.data) {
		return 0, StatusNeedMore
	}

	rest := b.data[b.cursor:]

	if !utf8.FullRune(rest) {
		return 0, StatusNeedMore
	}

	r, size := utf8.DecodeRune(rest)
	if r == utf8.RuneError && size == 1 {
		return 0, StatusInvalid
	}

	return r, StatusOK
}

// MustPeek is a convenience wrapper around Peek for callers that already know the cursor is
// positioned on a valid, fully buffered code point (e.g. right after a successful Peek in the same
// Execute call). It panics if that invariant does not hold.
func (b *Buffer) MustPeek() rune {
	r, status := b.Peek()
	if status != StatusOK {
		panic("xmlbuf: MustPeek called without a prior successful Peek")
	}
	return r
}

// Advance moves the cursor past the code point last returned by Peek.
//
// Calling Advance without an immediately preceding successful Peek is a programming error; like
// the rest of this package it does not defend against misuse from other files in this module.
func (b *Buffer) Advance() {
	_, size := utf8.DecodeRune(b.data[b.cursor:])
	b.cursor += size
}

// EraseToCursor discards every code point before the cursor and resets the cursor to zero.
//
// The underlying array is reused rather than reallocated, so repeated Append/EraseToCursor cycles
// only ever grow it to the size of the largest unconsumed span.
func (b *Buffer) EraseToCursor() {
	n := copy(b.data, b.data[b.cursor:])
	b.data = b.data[:n]
	b.cursor = 0
}

// RewindToErasePoint moves the cursor back to the most recent erase point (offset zero).
//
// Token parsers use this to back off a tentative read when a prefix it already consumed turns out
// to belong to a different item.
func (b *Buffer) RewindToErasePoint() {
	b.cursor = 0
}

// Offset returns the cursor's position, counted in bytes from the most recent erase point.
func (b *Buffer) Offset() int {
	return b.cursor
}

// Len returns the number of unconsumed-or-not-yet-erased bytes currently buffered.
func (b *Buffer) Len() int {
	return len(b.data)
}

// Err returns the encoding error at the cursor, if Peek would currently return StatusInvalid, or
// nil otherwise. It exists so callers can build an *xmlerr.EncodingError without duplicating the
// offset bookkeeping.
func (b *Buffer) Err() error {
	if _, status := b.Peek(); status == StatusInvalid {
		return &xmlerr.EncodingError{At: b.cursor}
	}
	return nil
}

// stripBOM consumes a leading UTF-8 byte order mark exactly once, the first time enough bytes are
// available to tell whether one is present. It reports whether more data is needed before that
// determination can be made.
func (b *Buffer) stripBOM() bool {
	if b.bomChecked || b.cursor != 0 {
		return false
	}

	if len(b.data) < len(bom) {
		if bytes.HasPrefix(bom, b.data) {
			return true
		}
		b.bomChecked = true
		return false
	}

	b.bomChecked = true

	if bytes.Equal(b.data[:len(bom)], bom) {
		b.data = b.data[len(bom):]
	}

	return false
}
