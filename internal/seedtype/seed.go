// Package seedtype defines the 128-bit root entropy type backup phrases
// encode, and the creation-time epoch arithmetic used throughout the
// module (spec.md §3, "Seed" and "CreationTime").
package seedtype

import (
	"errors"
	"fmt"
	"io"
	"time"

	"wordvault/internal/secutil"
)

// Size is the length, in bytes, of a seed (128 bits).
const Size = 16

// Epoch is the mnemonikey reference date: creation offsets are counted in
// whole days from this instant.
var Epoch = time.Date(2022, time.January, 1, 0, 0, 0, 0, time.UTC)

// DayDuration is the unit creation offsets are expressed in.
const DayDuration = 24 * time.Hour

// OffsetBits is the width of the creation offset field on the wire.
const OffsetBits = 15

// MaxOffset is the largest representable creation offset (2^15 - 1), giving
// roughly 89 years of range from Epoch.
const MaxOffset = (1 << OffsetBits) - 1

// ErrCreationOutOfRange is returned when a creation time falls before Epoch
// or after the 15-bit offset field's range.
var ErrCreationOutOfRange = errors.New("seedtype: creation time out of representable range")

// Seed is 128 bits of root entropy. Callers must call Zero when finished
// with a Seed so the bytes do not linger in memory longer than necessary
// (spec.md §5, "Secret hygiene").
type Seed [Size]byte

// Generate draws a fresh seed from random, which must be a cryptographically
// secure source (spec.md §5, "Randomness"). Tests may substitute a
// deterministic reader so generation stays reproducible in that context,
// per spec.md §9's "Global state is forbidden... the CSPRNG is an injected
// capability."
func Generate(random io.Reader) (Seed, error) {
	var s Seed
	if _, err := io.ReadFull(random, s[:]); err != nil {
		return Seed{}, fmt.Errorf("seedtype: failed to read random seed: %w", err)
	}
	return s, nil
}

// FromBytes copies exactly Size bytes into a new Seed.
func FromBytes(b []byte) (Seed, error) {
	if len(b) != Size {
		return Seed{}, fmt.Errorf("seedtype: seed must be %d bytes, got %d", Size, len(b))
	}
	var s Seed
	copy(s[:], b)
	return s, nil
}

// Bytes returns a copy of the seed's bytes.
func (s Seed) Bytes() []byte {
	out := make([]byte, Size)
	copy(out, s[:])
	return out
}

// Zero overwrites the seed with zeros in place.
func (s *Seed) Zero() {
	secutil.Zero(s[:])
}

// OffsetFromTime converts a wall-clock creation time into the 15-bit
// creation offset stored on the wire: whole days elapsed since Epoch.
// Returns ErrCreationOutOfRange if t precedes Epoch or exceeds MaxOffset
// days after it.
func OffsetFromTime(t time.Time) (uint32, error) {
	delta := t.UTC().Sub(Epoch)
	if delta < 0 {
		return 0, ErrCreationOutOfRange
	}
	days := int64(delta / DayDuration)
	if days > MaxOffset {
		return 0, ErrCreationOutOfRange
	}
	return uint32(days), nil
}

// TimeFromOffset converts a 15-bit creation offset back into a wall-clock
// time by adding whole days to Epoch.
func TimeFromOffset(offset uint32) time.Time {
	return Epoch.Add(time.Duration(offset) * DayDuration)
}

// CheckOffsetFreshness rejects an offset that claims a creation time more
// than one day in the future relative to now, per spec.md §4.E's
// CreationOutOfRange decode check ("offset is in the future... beyond
// today + 1 day of skew").
func CheckOffsetFreshness(offset uint32, now time.Time) error {
	future, err := OffsetFromTime(now.Add(DayDuration))
	if err != nil {
		if now.Add(DayDuration).Before(Epoch) {
			// Every offset names a day on or after Epoch, which is more
			// than one day after now.
			return ErrCreationOutOfRange
		}
		// now is already beyond the representable range; any offset that
		// decoded successfully is therefore not "in the future" relative
		// to it, so nothing to reject.
		return nil
	}
	if offset > future {
		return ErrCreationOutOfRange
	}
	return nil
}
