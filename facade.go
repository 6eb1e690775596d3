// Package wordvault turns a 128-bit seed into a deterministic OpenPGP
// identity, and back. A backup phrase is the seed (plus a creation
// timestamp, and optionally a password) rendered as words from a fixed
// 4096-word table; recovering a phrase always reproduces the same OpenPGP
// keys and fingerprint. Without a password the transferable secret key is
// identical byte for byte; with one, only the random S2K salt and IV of
// the encrypted secret material differ (spec.md §1, §5).
//
// The three operations below are the entire public surface: Generate
// creates a fresh identity and its phrase, Recover rebuilds the identity
// from an existing phrase, and Convert changes a phrase's password (or
// removes/adds encryption) without touching the seed it carries. No
// operation keeps package-level state. The clock is read only when a time
// option is left zero; Generate and Convert draw randomness only from the
// caller's Random, and Recover draws the S2K salt and IV from crypto/rand
// when it re-encrypts the secret key material under a password.
package wordvault

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"wordvault/internal/kdf"
	"wordvault/internal/metrics"
	"wordvault/internal/mnemonic"
	"wordvault/internal/pgp"
	"wordvault/internal/platform/seclog"
	"wordvault/internal/seedtype"
)

// normalizePhrase splits a phrase into its constituent words. Full
// Unicode NFC normalization (spec.md §6) is approximated with whitespace
// splitting and ASCII lowercasing: the word table itself is plain ASCII
// and no example in this codebase's lineage imports a Unicode
// normalization library, so case/whitespace folding is the practical
// subset that matters here.
func normalizePhrase(phrase string) []string {
	fields := strings.Fields(phrase)
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = strings.ToLower(f)
	}
	return out
}

// wrapLogger wraps a caller-supplied logger so any diagnostic output this
// package emits never carries secret material.
func wrapLogger(l *slog.Logger) *slog.Logger {
	if l == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	wrapped := seclog.WrapHandler(l.Handler())
	if wrapped == nil {
		return l
	}
	return slog.New(wrapped)
}

// canonicalCreationTime rounds t down to a whole day relative to
// seedtype.Epoch and reconstructs it from that offset, so a phrase and
// the OpenPGP packets built alongside it always agree on the exact
// creation timestamp (spec.md §3's offset field has day granularity).
func canonicalCreationTime(t time.Time) (time.Time, uint32, error) {
	if t.IsZero() {
		t = time.Now()
	}
	offset, err := seedtype.OffsetFromTime(t)
	if err != nil {
		return time.Time{}, 0, fmt.Errorf("%w: %v", ErrInputValidation, err)
	}
	return seedtype.TimeFromOffset(offset), offset, nil
}

// buildParams carries the bits of [Generate]/[Recover]'s options that
// buildResult needs, independent of which caller-facing Options type
// supplied them.
type buildParams struct {
	UserID   string
	TTL      time.Duration
	Password []byte
	Random   io.Reader
}

// buildResult derives keys for (seed, offset), assembles the OpenPGP
// bundle, and packages everything into a Result. words is the phrase this
// seed/offset pair encodes.
func buildResult(log *slog.Logger, seed seedtype.Seed, offset uint32, words []string, opts buildParams) (*Result, error) {
	const maxTTL = time.Duration(1<<32-1) * time.Second
	if strings.IndexByte(opts.UserID, 0) >= 0 {
		return nil, fmt.Errorf("%w: user ID contains a NUL byte", ErrInputValidation)
	}
	if opts.TTL > maxTTL {
		return nil, fmt.Errorf("%w: TTL does not fit the 32-bit key expiration field", ErrInputValidation)
	}

	start := timeNow()
	keys, err := kdf.Derive(seed.Bytes(), offset)
	metrics.DerivationSeconds.Observe(time.Since(start).Seconds())
	if err != nil {
		log.Error("key derivation failed")
		return nil, fmt.Errorf("%w: %v", ErrDerivationFailure, err)
	}
	defer keys.Zero()

	var ttlSeconds uint32
	if opts.TTL > 0 {
		ttlSeconds = uint32(opts.TTL / time.Second)
	}

	bundle, err := pgp.Build(keys, opts.UserID, uint32(seedtype.TimeFromOffset(offset).Unix()), ttlSeconds, opts.Password, opts.Random)
	if err != nil {
		log.Error("openpgp key assembly failed")
		return nil, fmt.Errorf("%w: %v", ErrSerialization, err)
	}

	return &Result{
		Phrase:       strings.Join(words, " "),
		ArmoredKey:   bundle.Armored,
		Fingerprint:  bundle.Fingerprint,
		KeyID:        bundle.KeyID,
		CreationTime: seedtype.TimeFromOffset(offset),
	}, nil
}

// timeNow is a seam so the derivation-timing histogram uses a single
// monotonic read; it is not a source of cryptographic randomness and
// carries no determinism requirement of its own.
var timeNow = time.Now

// Generate creates a fresh identity: a new seed (or the caller-supplied
// one), its backup phrase, and the OpenPGP transferable secret key it
// deterministically produces (spec.md §4.H, "generate").
func Generate(opts GenerateOptions) (result *Result, err error) {
	log := wrapLogger(opts.Logger)
	defer func() { metrics.ObserveCall(metrics.OpGenerate, err) }()

	if opts.UserID == "" {
		return nil, fmt.Errorf("%w: user ID is required", ErrInputValidation)
	}

	canonicalTime, offset, err := canonicalCreationTime(opts.CreationTime)
	if err != nil {
		return nil, err
	}

	var seed seedtype.Seed
	if opts.Seed != nil {
		seed = *opts.Seed
	} else {
		if opts.Random == nil {
			return nil, fmt.Errorf("%w: Random is required when Seed is nil", ErrInputValidation)
		}
		seed, err = seedtype.Generate(opts.Random)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrEntropy, err)
		}
	}
	defer seed.Zero()

	var words []string
	if opts.Password != nil {
		if opts.Random == nil {
			return nil, fmt.Errorf("%w: Random is required to encrypt a phrase", ErrInputValidation)
		}
		words, err = mnemonic.EncodeEncrypted(seed, offset, opts.Password, opts.Random)
	} else {
		words, err = mnemonic.EncodePlaintext(seed, offset)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSerialization, err)
	}

	random := opts.Random
	if random == nil {
		random = noRandom{}
	}
	res, err := buildResult(log, seed, offset, words, buildParams{opts.UserID, opts.TTL, opts.Password, random})
	if err != nil {
		return nil, err
	}
	res.CreationTime = canonicalTime
	log.Info("generated identity", "keyid", ShortKeyID(res.KeyID))
	return res, nil
}

// Recover rebuilds an identity from an existing backup phrase (spec.md
// §4.H, "recover"). The phrase carries no User-ID of its own, so the
// caller supplies one to embed in the rebuilt self-certification.
func Recover(opts RecoverOptions) (result *Result, err error) {
	log := wrapLogger(opts.Logger)
	defer func() { metrics.ObserveCall(metrics.OpRecover, err) }()

	if opts.UserID == "" {
		return nil, fmt.Errorf("%w: user ID is required", ErrInputValidation)
	}

	words := normalizePhrase(opts.Phrase)
	if len(words) == 0 {
		return nil, fmt.Errorf("%w: empty phrase", ErrInputValidation)
	}

	decoded, err := mnemonic.Decode(words)
	if err != nil {
		return nil, mapMnemonicError(err)
	}

	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	if err := seedtype.CheckOffsetFreshness(decoded.CreationOffset, now); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInputValidation, err)
	}

	var seed seedtype.Seed
	switch decoded.Version {
	case mnemonic.VersionPlaintext:
		seed = decoded.Seed
	case mnemonic.VersionEncrypted:
		if opts.Password == nil {
			return nil, ErrPasswordRequired
		}
		seed, err = decoded.DecryptSeed(opts.Password)
		if err != nil {
			if errors.Is(err, mnemonic.ErrIncorrectPassword) {
				return nil, ErrPasswordIncorrect
			}
			return nil, fmt.Errorf("%w: %v", ErrDerivationFailure, err)
		}
	}
	defer seed.Zero()

	// An encrypted phrase's password also S2K-encrypts the rebuilt secret
	// key material, which needs a fresh salt and IV. A plaintext phrase's
	// key is emitted unencrypted and opts.Password is ignored.
	var s2kPassword []byte
	var random io.Reader = noRandom{}
	if decoded.Version == mnemonic.VersionEncrypted {
		s2kPassword = opts.Password
		random = rand.Reader
	}
	res, err := buildResult(log, seed, decoded.CreationOffset, words, buildParams{opts.UserID, opts.TTL, s2kPassword, random})
	if err != nil {
		return nil, err
	}
	log.Info("recovered identity", "keyid", ShortKeyID(res.KeyID))
	return res, nil
}

// Convert decodes phrase, optionally decrypting it, and re-encodes it
// under NewPassword (or in plaintext, if NewPassword is nil), returning
// the new phrase string. The seed and creation offset are preserved
// exactly; only the phrase's password changes (spec.md §4.H, "convert").
func Convert(opts ConvertOptions) (newPhrase string, err error) {
	log := wrapLogger(opts.Logger)
	defer func() { metrics.ObserveCall(metrics.OpConvert, err) }()

	words := normalizePhrase(opts.Phrase)
	if len(words) == 0 {
		return "", fmt.Errorf("%w: empty phrase", ErrInputValidation)
	}

	decoded, err := mnemonic.Decode(words)
	if err != nil {
		return "", mapMnemonicError(err)
	}

	var seed seedtype.Seed
	switch decoded.Version {
	case mnemonic.VersionPlaintext:
		seed = decoded.Seed
	case mnemonic.VersionEncrypted:
		if opts.OldPassword == nil {
			return "", ErrPasswordRequired
		}
		seed, err = decoded.DecryptSeed(opts.OldPassword)
		if err != nil {
			if errors.Is(err, mnemonic.ErrIncorrectPassword) {
				return "", ErrPasswordIncorrect
			}
			return "", fmt.Errorf("%w: %v", ErrDerivationFailure, err)
		}
	}
	defer seed.Zero()

	var newWords []string
	if opts.NewPassword != nil {
		if opts.Random == nil {
			return "", fmt.Errorf("%w: Random is required to encrypt a phrase", ErrInputValidation)
		}
		newWords, err = mnemonic.EncodeEncrypted(seed, decoded.CreationOffset, opts.NewPassword, opts.Random)
	} else {
		newWords, err = mnemonic.EncodePlaintext(seed, decoded.CreationOffset)
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSerialization, err)
	}

	log.Info("converted phrase")
	return strings.Join(newWords, " "), nil
}

// mapMnemonicError wraps an internal/mnemonic decode error with
// ErrMnemonicFormat (spec.md §7's "MnemonicFormat" kind). The original
// internal/mnemonic sentinel (ErrChecksumMismatch, ErrUnknownWord, etc.)
// stays reachable through errors.Is for callers that want the specific
// reason.
func mapMnemonicError(err error) error {
	return fmt.Errorf("%w: %w", ErrMnemonicFormat, err)
}

// noRandom is supplied to pgp.Build when no password was given (so no
// S2K encryption, and therefore no S2K salt/IV, is ever needed) but the
// signature still requires an io.Reader parameter.
type noRandom struct{}

func (noRandom) Read([]byte) (int, error) {
	return 0, errors.New("wordvault: randomness requested without a source")
}
