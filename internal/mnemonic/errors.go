package mnemonic

import "errors"

// Sentinel errors corresponding to the decode failure taxonomy in spec.md
// §7. Callers compare with errors.Is; the root package wraps these with
// additional context before returning them to its own callers.
var (
	// ErrUnknownWord is returned when a phrase word is neither an exact
	// table entry nor an unambiguous unique-prefix match.
	ErrUnknownWord = errors.New("mnemonic: word not recognized")

	// ErrWordCount is returned when a phrase's length does not match any
	// known version's fixed word count.
	ErrWordCount = errors.New("mnemonic: unexpected number of words")

	// ErrChecksumMismatch is returned when the trailing checksum field
	// does not match the CRC-32 of the decoded payload bits.
	ErrChecksumMismatch = errors.New("mnemonic: checksum does not match payload")

	// ErrUnknownVersion is returned when the version field decodes to a
	// value with no assigned meaning (2 through 7).
	ErrUnknownVersion = errors.New("mnemonic: unrecognized phrase version")

	// ErrReservedNonZero is returned when a plaintext phrase's reserved
	// field is not all-zero.
	ErrReservedNonZero = errors.New("mnemonic: reserved field must be zero")

	// ErrCreationOutOfRange names the creation-time range failure in this
	// taxonomy. Decode does not check freshness and nothing in this module
	// returns this value; the facade's future-offset check reports
	// seedtype.ErrCreationOutOfRange instead.
	ErrCreationOutOfRange = errors.New("mnemonic: creation time out of range")

	// ErrIncorrectPassword is returned by DecryptSeed when the supplied
	// password's verification field does not match the one embedded in
	// an encrypted phrase.
	ErrIncorrectPassword = errors.New("mnemonic: incorrect password")
)
