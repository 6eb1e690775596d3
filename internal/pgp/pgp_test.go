package pgp

import (
	"bytes"
	"crypto/rand"
	"testing"

	"wordvault/internal/kdf"
)

func TestPacketHeaderRoundTrip(t *testing.T) {
	body := bytes.Repeat([]byte{0xAB}, 300)
	pkt := packet(tagSecretKey, body)

	tag, bodyLen, rest, err := readPacketHeader(pkt)
	if err != nil {
		t.Fatalf("readPacketHeader: %v", err)
	}
	if tag != tagSecretKey {
		t.Fatalf("expected tag %d, got %d", tagSecretKey, tag)
	}
	if bodyLen != len(body) {
		t.Fatalf("expected body length %d, got %d", len(body), bodyLen)
	}
	if !bytes.Equal(rest[:bodyLen], body) {
		t.Fatal("recovered body does not match original")
	}
}

func TestMPIRoundTrip(t *testing.T) {
	data := []byte{0x40, 0x01, 0x02, 0x03}
	encoded, err := encodeMPI(data)
	if err != nil {
		t.Fatalf("encodeMPI: %v", err)
	}
	value, rest, err := readMPI(encoded)
	if err != nil {
		t.Fatalf("readMPI: %v", err)
	}
	if !bytes.Equal(value, data) {
		t.Fatalf("expected %x, got %x", data, value)
	}
	if len(rest) != 0 {
		t.Fatalf("expected no remainder, got %d bytes", len(rest))
	}
}

func TestMPIStripsLeadingZeroBits(t *testing.T) {
	// A value whose top byte is zero must encode with a shorter bit
	// count, not carry the zero byte along.
	data := []byte{0x00, 0x01}
	encoded, err := encodeMPI(data)
	if err != nil {
		t.Fatalf("encodeMPI: %v", err)
	}
	if len(encoded) != 3 { // 2-byte bit count + 1 byte of value
		t.Fatalf("expected 3-byte encoding, got %d bytes: %x", len(encoded), encoded)
	}
}

func TestS2KKeyDerivationDeterministic(t *testing.T) {
	var salt [s2kSaltLen]byte
	for i := range salt {
		salt[i] = byte(i)
	}
	a := s2kDeriveKey([]byte("hunter2"), salt)
	b := s2kDeriveKey([]byte("hunter2"), salt)
	if !bytes.Equal(a, b) {
		t.Fatal("S2K derivation is not deterministic for identical inputs")
	}
	c := s2kDeriveKey([]byte("different"), salt)
	if bytes.Equal(a, c) {
		t.Fatal("different passwords produced the same S2K key")
	}
}

func testKeys(t *testing.T) *kdf.Keys {
	t.Helper()
	seed := make([]byte, 16)
	keys, err := kdf.Derive(seed, 0)
	if err != nil {
		t.Fatalf("kdf.Derive: %v", err)
	}
	return keys
}

func TestBuildProducesValidSelfSignature(t *testing.T) {
	keys := testKeys(t)
	bundle, err := Build(keys, "Test User <test@example.com>", 0, 0, nil, rand.Reader)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if bundle.Armored == "" {
		t.Fatal("expected non-empty armored output")
	}

	packets, err := Dearmor(bundle.Armored)
	if err != nil {
		t.Fatalf("Dearmor: %v", err)
	}

	tag, bodyLen, rest, err := readPacketHeader(packets)
	if err != nil || tag != tagSecretKey {
		t.Fatalf("expected leading Secret-Key packet, got tag %d err %v", tag, err)
	}
	secretKeyBody := rest[:bodyLen]
	rest = rest[bodyLen:]

	pubBody, err := publicPortionOf(secretKeyBody)
	if err != nil {
		t.Fatalf("publicPortionOf: %v", err)
	}
	fp := Fingerprint(pubBody)
	if fp != bundle.Fingerprint {
		t.Fatal("recomputed fingerprint does not match Build's reported fingerprint")
	}

	tag, bodyLen, rest, err = readPacketHeader(rest)
	if err != nil || tag != tagUserID {
		t.Fatalf("expected User-ID packet next, got tag %d err %v", tag, err)
	}
	if string(rest[:bodyLen]) != "Test User <test@example.com>" {
		t.Fatalf("unexpected user ID: %q", rest[:bodyLen])
	}
	rest = rest[bodyLen:]

	tag, _, _, err = readPacketHeader(rest)
	if err != nil || tag != tagSignature {
		t.Fatalf("expected Signature packet next, got tag %d err %v", tag, err)
	}
}

func TestFingerprintDeterministic(t *testing.T) {
	keys := testKeys(t)
	a, err := Build(keys, "a@example.com", 0, 0, nil, rand.Reader)
	if err != nil {
		t.Fatalf("build a: %v", err)
	}
	b, err := Build(keys, "a@example.com", 0, 0, nil, rand.Reader)
	if err != nil {
		t.Fatalf("build b: %v", err)
	}
	if a.Fingerprint != b.Fingerprint {
		t.Fatal("identical inputs produced different fingerprints")
	}
}

func TestSecretKeyEncryptionRoundTrip(t *testing.T) {
	keys := testKeys(t)
	password := []byte("correct horse battery staple")
	bundle, err := Build(keys, "a@example.com", 0, 0, password, rand.Reader)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	packets, err := Dearmor(bundle.Armored)
	if err != nil {
		t.Fatalf("Dearmor: %v", err)
	}
	_, bodyLen, rest, err := readPacketHeader(packets)
	if err != nil {
		t.Fatalf("readPacketHeader: %v", err)
	}
	secretKeyBody := rest[:bodyLen]
	pubBody, err := publicPortionOf(secretKeyBody)
	if err != nil {
		t.Fatalf("publicPortionOf: %v", err)
	}
	usage := secretKeyBody[len(pubBody)]
	if usage != secretUsageS2K {
		t.Fatalf("expected S2K usage octet 0x%02x, got 0x%02x", secretUsageS2K, usage)
	}
}

func TestBuildRejectsUnsupportedAlgo(t *testing.T) {
	if _, err := publicKeyBody(99, 0, make([]byte, 32)); err == nil {
		t.Fatal("expected an error for an unsupported algorithm ID")
	}
}
