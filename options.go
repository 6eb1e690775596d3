package wordvault

import (
	"io"
	"log/slog"
	"time"

	"wordvault/internal/seedtype"
)

// GenerateOptions configures Generate (spec.md §4.H, "generate").
type GenerateOptions struct {
	// UserID is the OpenPGP User-ID string embedded in the self-certification
	// (spec.md §4.G). Required.
	UserID string

	// CreationTime is the wall-clock moment the identity is considered
	// created. Zero means "now". It is rounded down to a whole day and
	// reconstructed from that offset before use, so Recover can reproduce
	// byte-identical PGP output from the phrase alone, independent of any
	// sub-day precision in the original call.
	CreationTime time.Time

	// TTL, if non-zero, becomes the primary key's expiration subpacket,
	// expressed in whole seconds from CreationTime.
	TTL time.Duration

	// Password, if non-nil, produces a VersionEncrypted phrase and S2K
	// encrypts the resulting OpenPGP secret-key material under the same
	// password (see DESIGN.md for why one password serves both roles).
	Password []byte

	// Seed, if non-nil, is used instead of drawing fresh entropy from
	// Random. Exists so callers (and tests) can pin a known seed.
	Seed *seedtype.Seed

	// Random is the CSPRNG used to draw a fresh seed (when Seed is nil)
	// and any S2K/salt randomness. Required whenever Seed is nil or
	// Password is non-nil; crypto/rand.Reader is the expected production
	// value (spec.md §9: "the CSPRNG is an injected capability").
	Random io.Reader

	// Logger, if non-nil, receives diagnostic log lines with secret
	// material redacted (internal/platform/seclog).
	Logger *slog.Logger
}

// RecoverOptions configures Recover (spec.md §4.H, "recover").
type RecoverOptions struct {
	// Phrase is the space-separated backup phrase to decode.
	Phrase string

	// Password is required if Phrase decodes to a VersionEncrypted
	// phrase, and ignored otherwise.
	Password []byte

	// UserID is the OpenPGP User-ID to embed in the rebuilt identity. The
	// phrase carries no identity string of its own (spec.md §3), so the
	// caller must supply it again.
	UserID string

	// TTL mirrors GenerateOptions.TTL.
	TTL time.Duration

	// Now is compared against the decoded creation offset to reject a
	// phrase claiming a creation time unreasonably far in the future.
	// Zero means time.Now().
	Now time.Time

	// Logger mirrors GenerateOptions.Logger.
	Logger *slog.Logger
}

// ConvertOptions configures Convert (spec.md §4.H, "convert"): changing a
// phrase's password, or moving between plaintext and encrypted form,
// without altering the seed or creation offset it carries.
type ConvertOptions struct {
	// Phrase is the existing backup phrase to re-encode.
	Phrase string

	// OldPassword is required if Phrase is currently a VersionEncrypted
	// phrase, and ignored otherwise.
	OldPassword []byte

	// NewPassword, if non-nil, produces a VersionEncrypted phrase under
	// this password. If nil, the result is a plaintext phrase.
	NewPassword []byte

	// Random supplies fresh salt randomness when NewPassword is non-nil.
	Random io.Reader

	// Logger mirrors GenerateOptions.Logger.
	Logger *slog.Logger
}

// Result is the shared output shape of Generate and Recover: a backup
// phrase plus the OpenPGP identity it deterministically produces.
type Result struct {
	// Phrase is the space-separated backup words.
	Phrase string

	// ArmoredKey is the ASCII-armored OpenPGP transferable secret key.
	ArmoredKey string

	// Fingerprint is the primary key's 20-byte SHA-1 fingerprint.
	Fingerprint [20]byte

	// KeyID is the primary key's low 8 fingerprint bytes.
	KeyID [8]byte

	// CreationTime is the canonical (day-granular) creation time actually
	// embedded in both the phrase and the OpenPGP packets.
	CreationTime time.Time
}
