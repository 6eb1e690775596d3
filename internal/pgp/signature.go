package pgp

import (
	"crypto/ed25519"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
)

const (
	sigTypeCertification = 0x13
	sigTypeSubkeyBinding = 0x18

	subpacketSignatureCreationTime = 2
	subpacketKeyExpirationTime     = 9
	subpacketPreferredSymmetric    = 11
	subpacketIssuer                = 16
	subpacketPreferredHash         = 21
	subpacketPreferredCompression  = 22
	subpacketKeyFlags              = 27
	subpacketFeatures              = 30

	keyFlagCertify        = 0x01
	keyFlagSign           = 0x02
	keyFlagEncryptComms   = 0x04
	keyFlagEncryptStorage = 0x08

	featureModificationDetection = 0x01

	compressionUncompressed = 0
)

// SelfCertOptions configures the hashed subpackets of the primary key's
// self-certification signature.
type SelfCertOptions struct {
	CreatedUnix uint32
	// ExpiresAfterSeconds is 0 when the key never expires.
	ExpiresAfterSeconds uint32
}

// buildCertificationHashedSubpackets builds the hashed subpacket area for
// the primary key's self-certification (spec.md §4.G item 3).
func buildCertificationHashedSubpackets(opts SelfCertOptions) []byte {
	var out []byte
	out = append(out, subpacket(subpacketSignatureCreationTime, beUint32(opts.CreatedUnix))...)
	out = append(out, subpacket(subpacketKeyFlags, []byte{keyFlagCertify | keyFlagSign})...)
	out = append(out, subpacket(subpacketPreferredHash, []byte{hashAlgoSHA256})...)
	out = append(out, subpacket(subpacketPreferredSymmetric, []byte{symAlgoAES256})...)
	out = append(out, subpacket(subpacketPreferredCompression, []byte{compressionUncompressed})...)
	out = append(out, subpacket(subpacketFeatures, []byte{featureModificationDetection})...)
	if opts.ExpiresAfterSeconds != 0 {
		out = append(out, subpacket(subpacketKeyExpirationTime, beUint32(opts.ExpiresAfterSeconds))...)
	}
	return out
}

// buildBindingHashedSubpackets builds the hashed subpacket area for the
// encryption subkey's binding signature (spec.md §4.G item 5).
func buildBindingHashedSubpackets(createdUnix uint32) []byte {
	var out []byte
	out = append(out, subpacket(subpacketSignatureCreationTime, beUint32(createdUnix))...)
	out = append(out, subpacket(subpacketKeyFlags, []byte{keyFlagEncryptComms | keyFlagEncryptStorage})...)
	return out
}

func issuerUnhashedSubpackets(keyID [8]byte) []byte {
	return subpacket(subpacketIssuer, keyID[:])
}

// signatureHashPreimage builds the bytes hashed before signing, per RFC
// 4880 §5.2.4: the relevant key material in "0x99‖len‖body" form, any
// content-specific context (a user ID for certifications, the subkey body
// for bindings), the signature's own version-through-hashed-subpacket
// bytes, and a version-and-length trailer.
func signatureHashPreimage(primaryBody []byte, extra []byte, sigPrefix []byte) []byte {
	var out []byte
	out = append(out, 0x99)
	out = append(out, beUint16(uint16(len(primaryBody)))...)
	out = append(out, primaryBody...)
	out = append(out, extra...)
	out = append(out, sigPrefix...)
	out = append(out, 0x04, 0xFF)
	out = append(out, beUint32(uint32(len(sigPrefix)))...)
	return out
}

// userIDExtra builds the context bytes a certification signature hashes
// in addition to the primary key body: RFC 4880 §5.2.4's "0xB4 ‖
// len_be32 ‖ user ID UTF-8 bytes".
func userIDExtra(userID string) []byte {
	var out []byte
	out = append(out, 0xB4)
	out = append(out, beUint32(uint32(len(userID)))...)
	out = append(out, []byte(userID)...)
	return out
}

// subkeyExtra builds the context bytes a binding signature hashes in
// addition to the primary key body: the subkey's own public-key body in
// "0x99 ‖ len_be16 ‖ body" form.
func subkeyExtra(subkeyBody []byte) []byte {
	var out []byte
	out = append(out, 0x99)
	out = append(out, beUint16(uint16(len(subkeyBody)))...)
	out = append(out, subkeyBody...)
	return out
}

// buildSignaturePacket assembles a complete version-4 signature packet.
// Signing is deterministic EdDSA over the SHA-256 digest of the preimage
// (spec.md §4.G: "no nonce RNG is permitted in the signature path").
func buildSignaturePacket(sigType byte, signingKey ed25519.PrivateKey, primaryBody, extra, hashedSubpackets, unhashedSubpackets []byte) ([]byte, error) {
	prefix := []byte{keyVersion4, sigType, pubkeyAlgoEdDSA, hashAlgoSHA256}
	prefix = append(prefix, beUint16(uint16(len(hashedSubpackets)))...)
	prefix = append(prefix, hashedSubpackets...)

	preimage := signatureHashPreimage(primaryBody, extra, prefix)
	digest := sha256.Sum256(preimage)

	sig := ed25519.Sign(signingKey, digest[:])
	if len(sig) != ed25519.SignatureSize {
		return nil, fmt.Errorf("%w: unexpected EdDSA signature size %d", ErrSerialization, len(sig))
	}
	rMPI, err := encodeMPI(sig[:32])
	if err != nil {
		return nil, err
	}
	sMPI, err := encodeMPI(sig[32:])
	if err != nil {
		return nil, err
	}

	body := make([]byte, 0, len(prefix)+2+len(unhashedSubpackets)+2+32+len(rMPI)+len(sMPI))
	body = append(body, prefix...)
	body = append(body, beUint16(uint16(len(unhashedSubpackets)))...)
	body = append(body, unhashedSubpackets...)
	body = append(body, digest[0], digest[1])
	body = append(body, rMPI...)
	body = append(body, sMPI...)

	return packet(tagSignature, body), nil
}

func beUint16(v uint16) []byte {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], v)
	return b[:]
}

func beUint32(v uint32) []byte {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	return b[:]
}
