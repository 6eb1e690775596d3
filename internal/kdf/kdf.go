// Package kdf implements the seed-to-key derivation pipeline (spec.md
// §4.F): an Argon2id stretch of the raw seed into a 32-byte root secret,
// followed by an HKDF-SHA256 expansion keyed on (role, creation offset) to
// produce the Ed25519 signing scalar and the Curve25519 encryption scalar.
//
// Every function here is a pure function of its inputs. No clock, RNG, or
// environment may influence the output (spec.md §4.F, last line) — that is
// what lets the same (seed, creation_time) reproduce byte-identical PGP
// key fingerprints on any machine, forever.
package kdf

import (
	"crypto/ed25519"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"io"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/curve25519"
	"golang.org/x/crypto/hkdf"

	"wordvault/internal/secutil"
)

const (
	stretchSalt     = "mnemonikey"
	stretchTime     = 8
	stretchMemoryKiB = 64 * 1024
	stretchThreads  = 4
	rootLen         = 32

	roleSign    = "sign"
	roleEncrypt = "encrypt"
)

// RoleMaterial holds the 32-byte HKDF output for a single derivation role,
// before any curve-specific clamping is applied.
type RoleMaterial [32]byte

// Keys is the full set of derived key material for one (seed, creation
// offset) pair: an Ed25519 signing keypair and a Curve25519 encryption
// keypair.
type Keys struct {
	SigningPrivate    ed25519.PrivateKey // 64 bytes, includes the public half
	SigningPublic     ed25519.PublicKey  // 32 bytes
	EncryptionPrivate [32]byte           // clamped X25519 scalar
	EncryptionPublic  [32]byte
}

// Zero overwrites every secret-bearing field of Keys with zeros.
func (k *Keys) Zero() {
	if k == nil {
		return
	}
	secutil.Zero(k.SigningPrivate)
	secutil.Zero(k.EncryptionPrivate[:])
}

// Stretch runs the Argon2id "root" stretch over the 16-byte seed (spec.md
// §4.F step 1). The salt is the fixed ASCII string "mnemonikey" — stretching
// is a domain-separated KDF step, not a password hash, so a fixed salt does
// not weaken it; per-role separation happens in the HKDF expansion step.
func Stretch(seed []byte) [rootLen]byte {
	raw := argon2.IDKey(seed, []byte(stretchSalt), stretchTime, stretchMemoryKiB, stretchThreads, rootLen)
	var out [rootLen]byte
	copy(out[:], raw)
	secutil.Zero(raw)
	return out
}

// Expand runs the per-role HKDF-SHA256 expansion (spec.md §4.F step 2)
// keyed on the stretched root, the role name, and the big-endian creation
// offset.
func Expand(root [rootLen]byte, role string, creationOffset uint32) (RoleMaterial, error) {
	info := make([]byte, 0, len("mnemonikey/")+len(role)+1+8)
	info = append(info, "mnemonikey/"...)
	info = append(info, role...)
	info = append(info, '/')
	var offsetBuf [8]byte
	binary.BigEndian.PutUint64(offsetBuf[:], uint64(creationOffset))
	info = append(info, offsetBuf[:]...)

	reader := hkdf.New(sha256.New, root[:], nil, info)
	var out RoleMaterial
	if _, err := io.ReadFull(reader, out[:]); err != nil {
		return RoleMaterial{}, fmt.Errorf("kdf: hkdf expansion failed: %w", err)
	}
	return out, nil
}

// ClampX25519 applies the RFC 7748 clamping operations to a 32-byte HKDF
// output so it is usable as an X25519 scalar (spec.md §4.F step 3).
func ClampX25519(material RoleMaterial) [32]byte {
	var scalar [32]byte
	copy(scalar[:], material[:])
	scalar[0] &= 248
	scalar[31] &= 127
	scalar[31] |= 64
	return scalar
}

// Derive runs the full pipeline for a given seed and creation offset,
// producing both the Ed25519 signing keypair and the Curve25519 encryption
// keypair.
func Derive(seed []byte, creationOffset uint32) (*Keys, error) {
	root := Stretch(seed)
	defer secutil.Zero(root[:])

	signMaterial, err := Expand(root, roleSign, creationOffset)
	if err != nil {
		return nil, err
	}
	defer secutil.Zero(signMaterial[:])

	encMaterial, err := Expand(root, roleEncrypt, creationOffset)
	if err != nil {
		return nil, err
	}
	defer secutil.Zero(encMaterial[:])

	// Ed25519: the 32-byte material IS the secret seed per RFC 8032.
	signingPriv := ed25519.NewKeyFromSeed(signMaterial[:])
	signingPub := append(ed25519.PublicKey(nil), signingPriv.Public().(ed25519.PublicKey)...)

	keys := &Keys{
		SigningPrivate: signingPriv,
		SigningPublic:  signingPub,
	}
	keys.EncryptionPrivate = ClampX25519(encMaterial)
	pub, err := curve25519.X25519(keys.EncryptionPrivate[:], curve25519.Basepoint)
	if err != nil {
		keys.Zero()
		return nil, fmt.Errorf("kdf: x25519 base point multiplication failed: %w", err)
	}
	copy(keys.EncryptionPublic[:], pub)

	return keys, nil
}
