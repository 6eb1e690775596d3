// Package secutil collects the small secret-hygiene helpers spec.md §5
// requires of every component that touches a seed, derived scalar, or
// password: zeroize buffers before release, compare secrets in constant
// time.
package secutil

import "crypto/subtle"

// Zero overwrites b with zeros in place. Safe to call on a nil or empty
// slice.
func Zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// ConstantTimeEqual reports whether a and b hold identical bytes, without
// branching on the comparison's outcome. Used to compare the encrypted
// phrase's password verification field (internal/mnemonic).
func ConstantTimeEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	return subtle.ConstantTimeCompare(a, b) == 1
}
