package wordvault

import "github.com/mr-tron/base58/base58"

// ShortKeyID renders an OpenPGP key ID as a base58 string suitable for
// display in a terminal or a QR code alongside the fingerprint, in the
// same spirit as the identity-card short IDs elsewhere in this codebase's
// lineage: base58 avoids the visually ambiguous characters hex encoding is
// prone to (0/O, I/l).
func ShortKeyID(keyID [8]byte) string {
	return base58.Encode(keyID[:])
}
