// Package sessionid generates identifiers for quiz sessions. IDs are
// UUIDv7 values rendered as 26 lowercase Crockford base32 characters, so
// they sort by creation time.
package sessionid

import (
	crand "crypto/rand"
	"fmt"
	"strings"
	"time"
)

// Crockford's base32 alphabet (no i, l, o, u).
const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// Length is the number of characters in an ID.
const Length = 26

// RandSource supplies randomness; *rand.Rand from math/rand/v2 satisfies it.
type RandSource interface {
	IntN(n int) int
}

// Generator creates session IDs.
type Generator struct {
	rand RandSource
	now  func() time.Time
}

// NewGenerator returns a generator. A nil source uses crypto/rand.
func NewGenerator(source RandSource) *Generator {
	return &Generator{rand: source, now: time.Now}
}

// New returns a fresh ID.
func (g *Generator) New() string {
	var id [16]byte

	ms := uint64(g.now().UnixMilli())
	for i := 0; i < 6; i++ {
		id[i] = byte(ms >> (40 - 8*i))
	}

	if g.rand != nil {
		for i := 6; i < len(id); i++ {
			id[i] = byte(g.rand.IntN(256))
		}
	} else if _, err := crand.Read(id[6:]); err != nil {
		panic("sessionid: failed to read random bytes: " + err.Error())
	}

	id[6] = (id[6] & 0x0f) | 0x70 // version 7
	id[8] = (id[8] & 0x3f) | 0x80 // RFC 4122 variant

	return encode(id)
}

// encode renders 128 bits as 26 base32 digits, most significant first. The
// leading digit carries only 3 bits.
func encode(id [16]byte) string {
	hi := uint64(0)
	lo := uint64(0)
	for i := 0; i < 8; i++ {
		hi = hi<<8 | uint64(id[i])
		lo = lo<<8 | uint64(id[i+8])
	}

	out := make([]byte, Length)
	for i := Length - 1; i >= 0; i-- {
		out[i] = alphabet[lo&0x1f]
		lo = lo>>5 | hi<<59
		hi >>= 5
	}
	return string(out)
}

// Validate checks that id is a well-formed session ID.
func Validate(id string) error {
	if len(id) != Length {
		return fmt.Errorf("session ID must be exactly %d characters, got %d", Length, len(id))
	}
	if id[0] > '7' {
		return fmt.Errorf("session ID first character must be 0-7, got %c", id[0])
	}
	for i, c := range id {
		if !strings.ContainsRune(alphabet, c) {
			return fmt.Errorf("invalid character %c at position %d", c, i)
		}
	}
	return nil
}
