// Package ids generates sortable identifiers for tables and hands: a
// UUIDv7 payload encoded as 26 characters of Crockford base32, optionally
// behind a short prefix such as "tbl_".
package ids

import (
	"crypto/rand"
	"fmt"
	"strings"

	"github.com/coder/quartz"
)

const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// Source is the random capability used for the payload. randutil.Source fits.
type Source interface {
	IntN(n int) int
}

// Generator creates identifiers from a clock and a random source
type Generator struct {
	clock quartz.Clock
	rng   Source
}

// NewGenerator creates a generator. A nil rng uses crypto/rand.
func NewGenerator(clock quartz.Clock, rng Source) *Generator {
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &Generator{clock: clock, rng: rng}
}

// New returns prefix followed by a fresh identifier
func (g *Generator) New(prefix string) string {
	return prefix + encode(g.uuid())
}

func (g *Generator) uuid() [16]byte {
	var u [16]byte
	ms := g.clock.Now().UnixMilli()
	for i := 0; i < 6; i++ {
		u[i] = byte(ms >> (40 - 8*i))
	}

	if g.rng != nil {
		for i := 6; i < 16; i++ {
			u[i] = byte(g.rng.IntN(256))
		}
	} else if _, err := rand.Read(u[6:]); err != nil {
		panic("ids: reading random bytes: " + err.Error())
	}

	u[6] = (u[6] & 0x0f) | 0x70 // version 7
	u[8] = (u[8] & 0x3f) | 0x80 // variant 10
	return u
}

// encode writes the 128-bit value as 26 base32 digits. The value is padded
// with two leading zero bits, so the first digit is always 0-7.
func encode(u [16]byte) string {
	var hi, lo uint64
	for i := 0; i < 8; i++ {
		hi = hi<<8 | uint64(u[i])
		lo = lo<<8 | uint64(u[i+8])
	}

	var b strings.Builder
	b.Grow(26)
	for i := 0; i < 26; i++ {
		shift := uint(125 - 5*i)
		b.WriteByte(alphabet[shr128(hi, lo, shift)&0x1f])
	}
	return b.String()
}

func shr128(hi, lo uint64, n uint) uint64 {
	switch {
	case n >= 64:
		return hi >> (n - 64)
	case n == 0:
		return lo
	}
	return lo>>n | hi<<(64-n)
}

// Validate checks that id (after removing prefix) is a well-formed identifier
func Validate(id, prefix string) error {
	if !strings.HasPrefix(id, prefix) {
		return fmt.Errorf("id %q must start with %q", id, prefix)
	}
	body := id[len(prefix):]
	if len(body) != 26 {
		return fmt.Errorf("id must have 26 characters after the prefix, got %d", len(body))
	}
	if body[0] > '7' {
		return fmt.Errorf("id first character must be 0-7, got %c", body[0])
	}
	for i, c := range body {
		if !strings.ContainsRune(alphabet, c) {
			return fmt.Errorf("invalid character %c at position %d", c, i)
		}
	}
	return nil
}
