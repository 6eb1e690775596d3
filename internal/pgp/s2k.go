package pgp

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha1"
	"crypto/sha256"
	"fmt"
	"io"

	"wordvault/internal/secutil"
)

const (
	s2kTypeIteratedSalted = 3
	s2kHashSHA256         = 8

	s2kSaltLen = 8
	aesIVLen   = 16 // AES block size

	// s2kCountCoded is the single-octet coded iteration count for exactly
	// 65,011,712 octets: (16 + (0xFF & 15)) << ((0xFF >> 4) + 6)
	// = 31 << 21 = 65011712, the floor spec.md §4.G mandates ("≥
	// 65011712 octets").
	s2kCountCoded = 0xFF
	s2kCount      = 65011712

	secretUsageUnencrypted = 0x00
	secretUsageS2K         = 0xFE

	symAlgoAES256 = 9
)

// s2kSpecifier serializes an iterated+salted S2K specifier (RFC 4880
// §3.7.1.3): type, hash algorithm, salt, coded iteration count.
func s2kSpecifier(salt [s2kSaltLen]byte) []byte {
	return []byte{
		s2kTypeIteratedSalted,
		s2kHashSHA256,
		salt[0], salt[1], salt[2], salt[3], salt[4], salt[5], salt[6], salt[7],
		s2kCountCoded,
	}
}

// s2kDeriveKey implements the iterated+salted S2K key derivation (RFC 4880
// §3.7.1.3): salt‖passphrase is repeated and hashed until count octets have
// been fed to SHA-256 (saturating, never wrapping partway through a final
// partial repetition's start).
func s2kDeriveKey(password []byte, salt [s2kSaltLen]byte) []byte {
	pattern := make([]byte, 0, s2kSaltLen+len(password))
	pattern = append(pattern, salt[:]...)
	pattern = append(pattern, password...)

	h := sha256.New()
	written := 0
	for written < s2kCount {
		remaining := s2kCount - written
		if remaining >= len(pattern) {
			h.Write(pattern)
			written += len(pattern)
		} else {
			h.Write(pattern[:remaining])
			written += remaining
		}
	}
	return h.Sum(nil)
}

// encryptSecretMaterial wraps a cleartext secret scalar MPI under a
// password using RFC 4880's usage-octet-0xFE scheme: the plaintext is
// followed by a SHA-1 digest of itself, then the whole thing is encrypted
// with AES-256 in CFB mode under an S2K-derived key and a fresh random
// IV. Returns the packet's secret portion: usage octet, symmetric algorithm
// octet (AES-256), S2K specifier, IV, ciphertext.
func encryptSecretMaterial(secretMPI []byte, password []byte, random io.Reader) ([]byte, error) {
	var salt [s2kSaltLen]byte
	if _, err := io.ReadFull(random, salt[:]); err != nil {
		return nil, fmt.Errorf("pgp: drawing S2K salt: %w", err)
	}
	var iv [aesIVLen]byte
	if _, err := io.ReadFull(random, iv[:]); err != nil {
		return nil, fmt.Errorf("pgp: drawing S2K IV: %w", err)
	}

	key := s2kDeriveKey(password, salt)
	defer secutil.Zero(key)

	digest := sha1.Sum(secretMPI)
	plain := make([]byte, 0, len(secretMPI)+len(digest))
	plain = append(plain, secretMPI...)
	plain = append(plain, digest[:]...)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("pgp: building S2K cipher: %w", err)
	}
	stream := cipher.NewCFBEncrypter(block, iv[:])
	ciphertext := make([]byte, len(plain))
	stream.XORKeyStream(ciphertext, plain)

	out := make([]byte, 0, 2+len(s2kSpecifier(salt))+aesIVLen+len(ciphertext))
	out = append(out, secretUsageS2K)
	out = append(out, symAlgoAES256)
	out = append(out, s2kSpecifier(salt)...)
	out = append(out, iv[:]...)
	out = append(out, ciphertext...)
	return out, nil
}

// unencryptedSecretMaterial wraps a cleartext secret scalar MPI using usage
// octet 0x00: no encryption, just a two-octet additive checksum over the
// MPI bytes (RFC 4880 §5.5.3).
func unencryptedSecretMaterial(secretMPI []byte) []byte {
	var sum uint16
	for _, b := range secretMPI {
		sum += uint16(b)
	}
	out := make([]byte, 0, len(secretMPI)+3)
	out = append(out, secretUsageUnencrypted)
	out = append(out, secretMPI...)
	out = append(out, byte(sum>>8), byte(sum))
	return out
}
