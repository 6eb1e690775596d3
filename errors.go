package wordvault

import "errors"

// Sentinel errors returned by the facade operations (spec.md §7). Callers
// should compare with errors.Is; wrapped internal-package sentinels
// (mnemonic.ErrChecksumMismatch and friends) are still reachable through
// the same chain for callers that want the finer-grained reason.
var (
	// ErrInputValidation covers malformed caller input that never reaches
	// the cryptographic core: empty phrases, a user ID containing a NUL
	// byte, a TTL that doesn't fit the field it's destined for.
	ErrInputValidation = errors.New("wordvault: invalid input")

	// ErrMnemonicFormat wraps a phrase that failed to decode: an
	// unrecognized word, the wrong word count, an unassigned version
	// value, a non-zero reserved field, or a checksum mismatch. Compare
	// against the wrapped internal/mnemonic sentinel with errors.Is for
	// the specific reason.
	ErrMnemonicFormat = errors.New("wordvault: malformed backup phrase")

	// ErrPasswordRequired is returned by Recover and Convert when the
	// decoded phrase is a VersionEncrypted phrase but no password was
	// supplied.
	ErrPasswordRequired = errors.New("wordvault: password required for an encrypted phrase")

	// ErrPasswordIncorrect wraps mnemonic.ErrIncorrectPassword at the
	// facade boundary.
	ErrPasswordIncorrect = errors.New("wordvault: incorrect password")

	// ErrDerivationFailure covers an unexpected failure in the seed-to-key
	// pipeline (internal/kdf) that isn't attributable to caller input.
	ErrDerivationFailure = errors.New("wordvault: key derivation failed")

	// ErrSerialization wraps a failure while assembling the OpenPGP
	// transferable secret key (internal/pgp).
	ErrSerialization = errors.New("wordvault: key serialization failed")

	// ErrEntropy is returned when the supplied or injected randomness
	// source failed to produce enough bytes.
	ErrEntropy = errors.New("wordvault: insufficient randomness")
)
