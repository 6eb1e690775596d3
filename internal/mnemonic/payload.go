// Package mnemonic encodes and decodes the 15- and 17-word backup phrases
// that carry a seed (spec.md §4.E). Two phrase shapes exist, distinguished
// by the version field in the first word: a plaintext phrase that carries
// the seed in the clear, and an encrypted phrase that carries it under a
// password-derived mask. Both share the same word table (internal/wordlist)
// and trailing CRC-32 checksum (internal/checksum).
package mnemonic

import (
	"crypto/aes"
	"fmt"
	"io"
	"math/big"

	"wordvault/internal/bitbuffer"
	"wordvault/internal/checksum"
	"wordvault/internal/pwhash"
	"wordvault/internal/secutil"
	"wordvault/internal/seedtype"
	"wordvault/internal/wordlist"
)

// Decoded is the parsed, checksum-verified contents of a phrase. Which
// fields are meaningful depends on Version: a VersionPlaintext phrase
// populates Seed directly, while a VersionEncrypted phrase leaves Seed
// zeroed and requires a DecryptSeed call with the correct password.
type Decoded struct {
	Version        Version
	CreationOffset uint32

	// Seed holds the recovered entropy for a plaintext phrase. Zero value
	// for an encrypted phrase until DecryptSeed succeeds.
	Seed seedtype.Seed

	// The following are populated only for VersionEncrypted phrases.
	cipherSeed [seedtype.Size]byte
	salt       []byte // big-endian, exactly the bytes pwhash.Derive's salt argument needs
	verify     byte
}

// EncodePlaintext packs seed and creationOffset into a VersionPlaintext
// phrase (spec.md §3/§4.E). The reserved field is always emitted as zero.
func EncodePlaintext(seed seedtype.Seed, creationOffset uint32) ([]string, error) {
	if creationOffset > seedtype.MaxOffset {
		return nil, fmt.Errorf("mnemonic: creation offset %d exceeds %d-bit field", creationOffset, OffsetBits)
	}

	buf := bitbuffer.New()
	if err := buf.Push(uint64(VersionPlaintext), VersionBits); err != nil {
		return nil, err
	}
	if err := buf.Push(uint64(creationOffset), OffsetBits); err != nil {
		return nil, err
	}
	buf.PushBytes(seed.Bytes())
	if err := buf.Push(0, ReservedBits); err != nil {
		return nil, err
	}

	return finishEncode(buf, PlaintextWordCount)
}

// EncodeEncrypted packs seed into a VersionEncrypted phrase, masking the
// entropy under a key derived from password and a freshly drawn salt
// (spec.md §4.E "encrypted phrase"; the random-salt, raw-AES-block design
// is the resolution recorded in SPEC_FULL.md §4). random must be a
// cryptographically secure source; it is an injected capability, never a
// package-global RNG.
func EncodeEncrypted(seed seedtype.Seed, creationOffset uint32, password []byte, random io.Reader) ([]string, error) {
	if creationOffset > seedtype.MaxOffset {
		return nil, fmt.Errorf("mnemonic: creation offset %d exceeds %d-bit field", creationOffset, OffsetBits)
	}

	saltBytes := make([]byte, (SaltBits+7)/8)
	if _, err := io.ReadFull(random, saltBytes); err != nil {
		return nil, fmt.Errorf("mnemonic: failed to draw salt: %w", err)
	}
	saltInt := new(big.Int).SetBytes(saltBytes)
	saltInt.And(saltInt, saltMask())
	saltInt.FillBytes(saltBytes) // re-pack to the fixed width Decode will reconstruct

	derived := pwhash.Derive(password, saltBytes)
	defer func() {
		for i := range derived.Mask {
			derived.Mask[i] = 0
		}
	}()

	block, err := aes.NewCipher(derived.Mask[:])
	if err != nil {
		return nil, fmt.Errorf("mnemonic: building AES cipher: %w", err)
	}
	var cipherSeed [seedtype.Size]byte
	block.Encrypt(cipherSeed[:], seed.Bytes())

	buf := bitbuffer.New()
	if err := buf.Push(uint64(VersionEncrypted), VersionBits); err != nil {
		return nil, err
	}
	buf.PushBytes(cipherSeed[:])
	if err := buf.PushBig(saltInt, SaltBits); err != nil {
		return nil, err
	}
	if err := buf.Push(uint64(derived.Verify), VerifyBits); err != nil {
		return nil, err
	}
	if err := buf.Push(uint64(creationOffset), OffsetBits); err != nil {
		return nil, err
	}

	return finishEncode(buf, EncryptedWordCount)
}

// finishEncode appends the CRC-32 checksum of buf's current (byte-padded)
// contents and splits the result into wordCount word-table entries.
func finishEncode(buf *bitbuffer.Buffer, wordCount int) ([]string, error) {
	cs := checksumOf(buf)
	if err := buf.Push(uint64(cs), ChecksumBits); err != nil {
		return nil, err
	}
	if int(buf.BitLen())/wordlist.BitsPerWord != wordCount {
		return nil, fmt.Errorf("mnemonic: internal error: payload is %d bits, expected %d words", buf.BitLen(), wordCount)
	}

	words := make([]string, wordCount)
	for i := 0; i < wordCount; i++ {
		idx, err := buf.Read(uint(wordlist.BitsPerWord))
		if err != nil {
			return nil, err
		}
		words[i] = wordlist.WordAt(uint16(idx))
	}
	return words, nil
}

// Decode resolves each word to a table index, determines the phrase's
// version from the first word, validates its length and checksum, and
// returns the parsed fields. It does not check creation-time freshness
// (that requires the current time, an external input the decoder itself
// stays free of) and does not decrypt an encrypted phrase's seed — call
// DecryptSeed for that.
func Decode(words []string) (*Decoded, error) {
	if len(words) == 0 {
		return nil, ErrWordCount
	}

	indices := make([]uint16, len(words))
	for i, w := range words {
		idx, err := wordlist.IndexOf(w)
		if err != nil {
			return nil, fmt.Errorf("%w: word %d (%q)", ErrUnknownWord, i+1, w)
		}
		indices[i] = idx
	}

	version := Version(indices[0] >> (wordlist.BitsPerWord - VersionBits))
	expectedCount, ok := WordCountForVersion(version)
	if !ok {
		return nil, fmt.Errorf("%w: version %d", ErrUnknownVersion, version)
	}
	if len(words) != expectedCount {
		return nil, fmt.Errorf("%w: version %d phrases are %d words, got %d", ErrWordCount, version, expectedCount, len(words))
	}

	buf := bitbuffer.New()
	for _, idx := range indices {
		if err := buf.Push(uint64(idx), uint(wordlist.BitsPerWord)); err != nil {
			return nil, err
		}
	}

	total := buf.BitLen()
	full := buf.Int()
	checksumField := new(big.Int).And(full, mask(ChecksumBits))
	leadingBits := total - ChecksumBits
	leading := new(big.Int).Rsh(full, ChecksumBits)

	leadingBuf := bitbuffer.FromBig(leading, leadingBits)
	gotChecksum := checksumOf(leadingBuf)
	if uint32(checksumField.Uint64()) != gotChecksum {
		return nil, ErrChecksumMismatch
	}

	fields := bitbuffer.FromBig(leading, leadingBits)
	v, err := fields.Read(VersionBits)
	if err != nil {
		return nil, err
	}
	if Version(v) != version {
		return nil, fmt.Errorf("%w: version %d", ErrUnknownVersion, v)
	}

	out := &Decoded{Version: version}

	switch version {
	case VersionPlaintext:
		offset, err := fields.Read(OffsetBits)
		if err != nil {
			return nil, err
		}
		entropy, err := fields.ReadBig(EntropyBits)
		if err != nil {
			return nil, err
		}
		reserved, err := fields.Read(ReservedBits)
		if err != nil {
			return nil, err
		}
		if reserved != 0 {
			return nil, ErrReservedNonZero
		}
		entropyBytes := make([]byte, seedtype.Size)
		entropy.FillBytes(entropyBytes)
		seed, err := seedtype.FromBytes(entropyBytes)
		if err != nil {
			return nil, err
		}
		out.CreationOffset = uint32(offset)
		out.Seed = seed

	case VersionEncrypted:
		cipherSeed, err := fields.ReadBig(EntropyBits)
		if err != nil {
			return nil, err
		}
		salt, err := fields.ReadBig(SaltBits)
		if err != nil {
			return nil, err
		}
		verify, err := fields.Read(VerifyBits)
		if err != nil {
			return nil, err
		}
		offset, err := fields.Read(OffsetBits)
		if err != nil {
			return nil, err
		}
		var cipherBytes [seedtype.Size]byte
		cipherSeed.FillBytes(cipherBytes[:])
		out.cipherSeed = cipherBytes
		saltBytes := make([]byte, (SaltBits+7)/8)
		salt.FillBytes(saltBytes)
		out.salt = saltBytes
		out.verify = byte(verify)
		out.CreationOffset = uint32(offset)
	}

	return out, nil
}

// DecryptSeed recovers the seed from an encrypted phrase's Decoded value
// using password. It returns ErrIncorrectPassword if password's
// verification field does not match the one embedded in the phrase; this
// check happens before the AES block is touched. The field is VerifyBits
// (5) bits wide, so about 1 in 32 wrong passwords pass it, and DecryptSeed
// then returns a seed that differs from the one that was encoded.
func (d *Decoded) DecryptSeed(password []byte) (seedtype.Seed, error) {
	if d.Version != VersionEncrypted {
		return seedtype.Seed{}, fmt.Errorf("mnemonic: DecryptSeed called on a version %d phrase", d.Version)
	}

	derived := pwhash.Derive(password, d.salt)
	defer func() {
		for i := range derived.Mask {
			derived.Mask[i] = 0
		}
	}()

	if !secutil.ConstantTimeEqual([]byte{derived.Verify}, []byte{d.verify}) {
		return seedtype.Seed{}, ErrIncorrectPassword
	}

	block, err := aes.NewCipher(derived.Mask[:])
	if err != nil {
		return seedtype.Seed{}, fmt.Errorf("mnemonic: building AES cipher: %w", err)
	}
	var plain [seedtype.Size]byte
	block.Decrypt(plain[:], d.cipherSeed[:])
	return seedtype.FromBytes(plain[:])
}

func mask(width uint) *big.Int {
	m := new(big.Int).Lsh(big.NewInt(1), width)
	m.Sub(m, big.NewInt(1))
	return m
}

func saltMask() *big.Int {
	return mask(SaltBits)
}

func checksumOf(buf *bitbuffer.Buffer) uint32 {
	return checksum.Compute(buf.Bytes(0))
}
