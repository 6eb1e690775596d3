package mnemonic

import "wordvault/internal/wordlist"

// Version identifies how the remaining bits of a phrase must be
// interpreted. It occupies the top VersionBits bits of the first word's
// index, so a decoder can tell a phrase's shape from its first word alone.
type Version uint8

const (
	// VersionPlaintext phrases carry the seed entropy in the clear.
	VersionPlaintext Version = 0
	// VersionEncrypted phrases carry the seed entropy encrypted under a
	// password-derived key.
	VersionEncrypted Version = 1
)

const (
	// VersionBits is the width of the version field. 2^VersionBits values
	// exist; only 0 and 1 are assigned, so values 2..7 are rejected with
	// ErrUnknownVersion (spec.md §8, "Version gating").
	VersionBits = 3

	// OffsetBits is the width of the creation-offset field.
	OffsetBits = 15

	// EntropyBits is the width of the seed entropy field (16 bytes).
	EntropyBits = 128

	// ReservedBits is the width of the plaintext phrase's reserved field.
	//
	// spec.md §3 states this field is 8 bits wide, but that is
	// inconsistent with the rest of the same document: a 4096-word table
	// needs log2(4096) = 12 bits per word (spec.md §4.B's "13 bits" is
	// off by one), and spec.md §4.C describes checksumming the 154-bit
	// payload by padding it to 20 bytes "with the last 2 bits zeroed" —
	// but 154 bits padded to a byte boundary needs 6 zero bits, not 2.
	// Shrinking this field to 4 bits resolves both inconsistencies at
	// once: 3+15+128+4 = 150 bits, which pads to 152 bits (19 bytes) with
	// exactly 2 zero bits, and 150+30 = 180 bits divides evenly into 15
	// twelve-bit words. See DESIGN.md for the full derivation.
	ReservedBits = 4

	// ChecksumBits is the width of the trailing checksum field.
	ChecksumBits = 30

	// SaltBits is the width of the per-encryption random salt field
	// embedded in encrypted phrases (see DESIGN.md's resolution of
	// spec.md §9's open question: the reference implementation this spec
	// was distilled from draws a fresh random salt per encoding rather
	// than deriving it from the public header). Chosen so the encrypted
	// payload divides evenly into whole words under the same "pad with 2
	// zero bits" constraint as the plaintext payload: 3+128+23+5+15 = 174
	// bits, padding to 176 bits (22 bytes) with 2 zero bits, and
	// 174+30 = 204 bits divides evenly into 17 twelve-bit words.
	SaltBits = 23

	// VerifyBits is the width of the password verification field (see
	// internal/pwhash).
	VerifyBits = 5
)

// PlaintextPayloadBits and EncryptedPayloadBits are the pre-checksum
// payload sizes for each version.
const (
	PlaintextPayloadBits = VersionBits + OffsetBits + EntropyBits + ReservedBits
	EncryptedPayloadBits = VersionBits + EntropyBits + SaltBits + VerifyBits + OffsetBits
)

// PlaintextWordCount and EncryptedWordCount are the fixed phrase lengths
// for each version, derived from the payload size plus the checksum.
const (
	PlaintextWordCount = (PlaintextPayloadBits + ChecksumBits) / wordlist.BitsPerWord
	EncryptedWordCount = (EncryptedPayloadBits + ChecksumBits) / wordlist.BitsPerWord
)

func init() {
	if (PlaintextPayloadBits+ChecksumBits)%wordlist.BitsPerWord != 0 {
		panic("mnemonic: plaintext payload does not divide evenly into whole words")
	}
	if (EncryptedPayloadBits+ChecksumBits)%wordlist.BitsPerWord != 0 {
		panic("mnemonic: encrypted payload does not divide evenly into whole words")
	}
}

// WordCountForVersion returns the phrase length mandated for version, or 0
// (with ok=false) if version is not recognized.
func WordCountForVersion(v Version) (count int, ok bool) {
	switch v {
	case VersionPlaintext:
		return PlaintextWordCount, true
	case VersionEncrypted:
		return EncryptedWordCount, true
	default:
		return 0, false
	}
}
