package kdf

import (
	"bytes"
	"testing"
)

func TestDeriveDeterministic(t *testing.T) {
	seed := make([]byte, 16) // all-zero seed
	a, err := Derive(seed, 0)
	if err != nil {
		t.Fatalf("derive: %v", err)
	}
	b, err := Derive(seed, 0)
	if err != nil {
		t.Fatalf("derive: %v", err)
	}
	if !bytes.Equal(a.SigningPrivate, b.SigningPrivate) {
		t.Fatal("signing keys differ across runs for identical input")
	}
	if !bytes.Equal(a.SigningPublic, b.SigningPublic) {
		t.Fatal("signing public keys differ across runs for identical input")
	}
	if a.EncryptionPrivate != b.EncryptionPrivate {
		t.Fatal("encryption private keys differ across runs for identical input")
	}
	if a.EncryptionPublic != b.EncryptionPublic {
		t.Fatal("encryption public keys differ across runs for identical input")
	}
}

func TestDeriveDiffersByOffset(t *testing.T) {
	seed := make([]byte, 16)
	a, err := Derive(seed, 0)
	if err != nil {
		t.Fatalf("derive: %v", err)
	}
	b, err := Derive(seed, 1)
	if err != nil {
		t.Fatalf("derive: %v", err)
	}
	if bytes.Equal(a.SigningPrivate, b.SigningPrivate) {
		t.Fatal("different creation offsets must not yield the same signing key")
	}
}

func TestClampX25519Bits(t *testing.T) {
	var material RoleMaterial
	for i := range material {
		material[i] = 0xFF
	}
	scalar := ClampX25519(material)
	if scalar[0]&0b111 != 0 {
		t.Fatalf("low 3 bits of byte 0 must be cleared: %08b", scalar[0])
	}
	if scalar[31]&0x80 != 0 {
		t.Fatalf("high bit of byte 31 must be cleared: %08b", scalar[31])
	}
	if scalar[31]&0x40 == 0 {
		t.Fatalf("bit 6 of byte 31 must be set: %08b", scalar[31])
	}
}
