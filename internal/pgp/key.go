package pgp

import (
	"crypto/sha1"
	"encoding/binary"
	"fmt"
	"io"
)

const (
	pubkeyAlgoEdDSA = 22
	pubkeyAlgoECDH  = 18

	hashAlgoSHA256 = 8
	symAlgoAES128  = 7

	keyVersion4 = 4
)

// oidEd25519 and oidCurve25519 are the RFC 4880bis curve OIDs for the
// primary signing key and encryption subkey respectively (spec.md §4.G).
var (
	oidEd25519    = []byte{0x2B, 0x06, 0x01, 0x04, 0x01, 0xDA, 0x47, 0x0F, 0x01}
	oidCurve25519 = []byte{0x2B, 0x06, 0x01, 0x04, 0x01, 0x97, 0x55, 0x01, 0x05, 0x01}
)

// ecdhKDFParams is the fixed KDF-parameters field for the ECDH subkey:
// reserved=1, hash=SHA-256, symmetric=AES-128 (spec.md §4.G).
var ecdhKDFParams = []byte{0x03, 0x01, hashAlgoSHA256, symAlgoAES128}

// publicKeyBody builds the version-4 public-key packet body shared by both
// the Secret-Key and Secret-Subkey packets (it is also exactly what gets
// hashed for fingerprints and signature preimages): version, creation
// time, algorithm, curve OID, public point MPI, and (ECDH only) KDF
// parameters.
func publicKeyBody(algo byte, createdUnix uint32, point []byte) ([]byte, error) {
	var oid []byte
	switch algo {
	case pubkeyAlgoEdDSA:
		oid = oidEd25519
	case pubkeyAlgoECDH:
		oid = oidCurve25519
	default:
		return nil, fmt.Errorf("%w: unsupported public key algorithm %d", ErrSerialization, algo)
	}

	nativePoint := append([]byte{0x40}, point...)
	pointMPI, err := encodeMPI(nativePoint)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, 6+1+len(oid)+len(pointMPI)+len(ecdhKDFParams))
	out = append(out, keyVersion4)
	var created [4]byte
	binary.BigEndian.PutUint32(created[:], createdUnix)
	out = append(out, created[:]...)
	out = append(out, algo)
	out = append(out, byte(len(oid)))
	out = append(out, oid...)
	out = append(out, pointMPI...)
	if algo == pubkeyAlgoECDH {
		out = append(out, ecdhKDFParams...)
	}
	return out, nil
}

// Fingerprint computes the RFC 4880 §12.2 SHA-1 fingerprint of a public-key
// packet body: SHA-1 over 0x99 ‖ len_be16(body) ‖ body.
func Fingerprint(pubKeyBody []byte) [20]byte {
	preimage := make([]byte, 0, 3+len(pubKeyBody))
	preimage = append(preimage, 0x99)
	var lenBuf [2]byte
	binary.BigEndian.PutUint16(lenBuf[:], uint16(len(pubKeyBody)))
	preimage = append(preimage, lenBuf[:]...)
	preimage = append(preimage, pubKeyBody...)
	return sha1.Sum(preimage)
}

// KeyID returns the low 8 bytes of a fingerprint (RFC 4880 §12.2).
func KeyID(fingerprint [20]byte) [8]byte {
	var id [8]byte
	copy(id[:], fingerprint[12:])
	return id
}

// secretKeyPacket builds a Secret-Key (tag 5) or Secret-Subkey (tag 7)
// packet: the shared public-key body, followed by the secret scalar MPI,
// optionally S2K-encrypted under password.
func secretKeyPacket(tag byte, algo byte, createdUnix uint32, point, secretScalar, password []byte, random io.Reader) ([]byte, error) {
	pubBody, err := publicKeyBody(algo, createdUnix, point)
	if err != nil {
		return nil, err
	}
	secretMPI, err := encodeMPI(secretScalar)
	if err != nil {
		return nil, err
	}

	var secretPortion []byte
	if password == nil {
		secretPortion = unencryptedSecretMaterial(secretMPI)
	} else {
		secretPortion, err = encryptSecretMaterial(secretMPI, password, random)
		if err != nil {
			return nil, err
		}
	}

	body := make([]byte, 0, len(pubBody)+len(secretPortion))
	body = append(body, pubBody...)
	body = append(body, secretPortion...)
	return packet(tag, body), nil
}
