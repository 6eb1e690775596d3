package bitbuffer

import (
	"errors"
	"math/big"
	"testing"
)

func TestPushReadRoundTrip(t *testing.T) {
	b := New()
	if err := b.Push(0, 3); err != nil {
		t.Fatalf("push version: %v", err)
	}
	if err := b.Push(12345, 15); err != nil {
		t.Fatalf("push offset: %v", err)
	}
	if err := b.Push(0xABCD, 16); err != nil {
		t.Fatalf("push entropy chunk: %v", err)
	}
	if b.BitLen() != 34 {
		t.Fatalf("expected 34 bits, got %d", b.BitLen())
	}

	r := FromBig(b.Int(), b.BitLen())
	version, err := r.Read(3)
	if err != nil || version != 0 {
		t.Fatalf("read version: %v %d", err, version)
	}
	offset, err := r.Read(15)
	if err != nil || offset != 12345 {
		t.Fatalf("read offset: %v %d", err, offset)
	}
	chunk, err := r.Read(16)
	if err != nil || chunk != 0xABCD {
		t.Fatalf("read chunk: %v %x", err, chunk)
	}
	if r.Remaining() != 0 {
		t.Fatalf("expected buffer drained, %d bits left", r.Remaining())
	}
}

func TestPushOverflow(t *testing.T) {
	b := New()
	if err := b.Push(1<<15, 15); !errors.Is(err, ErrBitOverflow) {
		t.Fatalf("expected ErrBitOverflow, got %v", err)
	}
}

func TestReadUnderflow(t *testing.T) {
	b := New()
	_ = b.Push(1, 1)
	if _, err := b.Read(2); !errors.Is(err, ErrBitUnderflow) {
		t.Fatalf("expected ErrBitUnderflow, got %v", err)
	}
}

func TestBytesPadding(t *testing.T) {
	b := New()
	_ = b.Push(0b101, 3)
	out := b.Bytes(0)
	if len(out) != 1 || out[0] != 0b10100000 {
		t.Fatalf("unexpected padded bytes: %08b", out)
	}
	b2 := New()
	_ = b2.Push(0b101, 3)
	out2 := b2.Bytes(1)
	if len(out2) != 1 || out2[0] != 0b10111111 {
		t.Fatalf("unexpected padded bytes: %08b", out2)
	}
}

func TestReadBigWideField(t *testing.T) {
	b := New()
	seed := new(big.Int).Lsh(big.NewInt(1), 127) // top bit of a 128-bit field
	if err := b.PushBig(seed, 128); err != nil {
		t.Fatalf("push: %v", err)
	}
	if err := b.Push(0xFF, 8); err != nil {
		t.Fatalf("push trailer: %v", err)
	}

	r := FromBig(b.Int(), b.BitLen())
	got, err := r.ReadBig(128)
	if err != nil {
		t.Fatalf("read 128-bit field: %v", err)
	}
	if got.Cmp(seed) != 0 {
		t.Fatalf("expected %x, got %x", seed, got)
	}
	trailer, err := r.Read(8)
	if err != nil || trailer != 0xFF {
		t.Fatalf("read trailer: %v %x", err, trailer)
	}
}

func TestPushBigWidthCheck(t *testing.T) {
	b := New()
	big128 := new(big.Int).Lsh(big.NewInt(1), 128)
	if err := b.PushBig(big128, 128); !errors.Is(err, ErrBitOverflow) {
		t.Fatalf("expected ErrBitOverflow for value exceeding width, got %v", err)
	}
}
