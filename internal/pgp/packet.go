// Package pgp builds the OpenPGP transferable-secret-key packet stream
// (spec.md §4.G): the primary Ed25519 signing key, a user ID, a
// self-certification signature, a Curve25519 encryption subkey, a
// subkey-binding signature, optional S2K secret-key encryption, and the
// ASCII-armored envelope around all of it.
//
// Only emission and a minimal fixed-shape decode are implemented (spec.md
// §1 Non-goals: "no incremental / streaming PGP parsing").
package pgp

import "encoding/binary"

// Packet tags used by this module (RFC 4880 §4.3).
const (
	tagSignature    = 2
	tagSecretKey    = 5
	tagUserID       = 13
	tagSecretSubkey = 7
)

// newPacketHeader frames body under the new-format packet header (RFC 4880
// §4.2.2): the first octet sets bits 7 and 6 and carries the tag in the low
// six bits, followed by a new-format length.
func newPacketHeader(tag byte, bodyLen int) []byte {
	out := []byte{0xC0 | tag}
	return append(out, newLengthOctets(bodyLen)...)
}

// newLengthOctets encodes a body length using the new packet-length format
// (RFC 4880 §4.2.2). Every length this module emits fits in the one- or
// two-octet forms, but the five-octet form is implemented for completeness.
func newLengthOctets(n int) []byte {
	switch {
	case n < 192:
		return []byte{byte(n)}
	case n < 8384:
		n -= 192
		return []byte{byte(n>>8) + 192, byte(n)}
	default:
		out := make([]byte, 5)
		out[0] = 0xFF
		binary.BigEndian.PutUint32(out[1:], uint32(n))
		return out
	}
}

// packet returns tag's new-format header followed by body.
func packet(tag byte, body []byte) []byte {
	out := make([]byte, 0, len(body)+6)
	out = append(out, newPacketHeader(tag, len(body))...)
	out = append(out, body...)
	return out
}

// subpacketHeader encodes a signature subpacket length (RFC 4880 §5.2.3.1).
// The subpacket length covers the subpacket type octet plus its body.
func subpacketHeader(n int) []byte {
	switch {
	case n < 192:
		return []byte{byte(n)}
	case n < 16320:
		n -= 192
		return []byte{byte(n>>8) + 192, byte(n)}
	default:
		out := make([]byte, 5)
		out[0] = 0xFF
		binary.BigEndian.PutUint32(out[1:], uint32(n))
		return out
	}
}

// subpacket frames a single signature subpacket: type plus body, preceded
// by a subpacket length covering both.
func subpacket(subType byte, body []byte) []byte {
	inner := append([]byte{subType}, body...)
	out := make([]byte, 0, len(inner)+5)
	out = append(out, subpacketHeader(len(inner))...)
	out = append(out, inner...)
	return out
}
