package seedtype

import (
	"bytes"
	"crypto/rand"
	"testing"
	"time"
)

func TestGenerateProducesFullLengthSeed(t *testing.T) {
	s, err := Generate(rand.Reader)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(s.Bytes()) != Size {
		t.Fatalf("expected %d bytes, got %d", Size, len(s.Bytes()))
	}
}

func TestZeroClearsSeed(t *testing.T) {
	s, _ := Generate(rand.Reader)
	s.Zero()
	if !bytes.Equal(s.Bytes(), make([]byte, Size)) {
		t.Fatal("zeroed seed is not all-zero")
	}
}

func TestOffsetRoundTripBoundaries(t *testing.T) {
	if offset, err := OffsetFromTime(Epoch); err != nil || offset != 0 {
		t.Fatalf("epoch should round-trip to offset 0, got %d, %v", offset, err)
	}

	maxTime := Epoch.Add(MaxOffset * DayDuration)
	offset, err := OffsetFromTime(maxTime)
	if err != nil || offset != MaxOffset {
		t.Fatalf("expected max offset %d, got %d, %v", MaxOffset, offset, err)
	}

	if TimeFromOffset(0) != Epoch {
		t.Fatal("offset 0 should map back to Epoch")
	}
}

func TestOffsetRejectsOutOfRange(t *testing.T) {
	if _, err := OffsetFromTime(Epoch.Add(-time.Hour)); err != ErrCreationOutOfRange {
		t.Fatalf("expected ErrCreationOutOfRange before epoch, got %v", err)
	}
	tooFar := Epoch.Add((MaxOffset + 1) * DayDuration)
	if _, err := OffsetFromTime(tooFar); err != ErrCreationOutOfRange {
		t.Fatalf("expected ErrCreationOutOfRange beyond max offset, got %v", err)
	}
}
