package pgp

import (
	"io"

	"wordvault/internal/kdf"
)

// Bundle is the result of building a transferable secret key: the
// ASCII-armored packet stream plus the primary key's fingerprint and key
// ID, which callers need for display and for the ShortKeyID helper without
// re-parsing the armor.
type Bundle struct {
	Armored     string
	Fingerprint [20]byte
	KeyID       [8]byte
}

// Build assembles the full transferable secret key described by spec.md
// §4.G: primary Secret-Key packet, User-ID packet, self-certification
// signature, Secret-Subkey packet, and subkey-binding signature, then
// ASCII-armors the result. If password is non-nil, both secret packets are
// S2K-encrypted under it; random supplies S2K salts/IVs only — it never
// influences key material or signatures (spec.md §9: "orthogonal to
// phrase-level encryption and must not affect fingerprints").
func Build(keys *kdf.Keys, userID string, createdUnix uint32, expiresAfterSeconds uint32, password []byte, random io.Reader) (*Bundle, error) {
	primaryBody, err := publicKeyBody(pubkeyAlgoEdDSA, createdUnix, keys.SigningPublic)
	if err != nil {
		return nil, err
	}
	fingerprint := Fingerprint(primaryBody)
	keyID := KeyID(fingerprint)

	secretKeyPkt, err := secretKeyPacket(tagSecretKey, pubkeyAlgoEdDSA, createdUnix, keys.SigningPublic, keys.SigningPrivate.Seed(), password, random)
	if err != nil {
		return nil, err
	}

	useridPkt := userIDPacket(userID)

	certHashed := buildCertificationHashedSubpackets(SelfCertOptions{
		CreatedUnix:         createdUnix,
		ExpiresAfterSeconds: expiresAfterSeconds,
	})
	unhashed := issuerUnhashedSubpackets(keyID)
	certSigPkt, err := buildSignaturePacket(sigTypeCertification, keys.SigningPrivate, primaryBody, userIDExtra(userID), certHashed, unhashed)
	if err != nil {
		return nil, err
	}

	subkeyBody, err := publicKeyBody(pubkeyAlgoECDH, createdUnix, keys.EncryptionPublic[:])
	if err != nil {
		return nil, err
	}
	secretSubkeyPkt, err := secretKeyPacket(tagSecretSubkey, pubkeyAlgoECDH, createdUnix, keys.EncryptionPublic[:], keys.EncryptionPrivate[:], password, random)
	if err != nil {
		return nil, err
	}

	bindingHashed := buildBindingHashedSubpackets(createdUnix)
	bindingSigPkt, err := buildSignaturePacket(sigTypeSubkeyBinding, keys.SigningPrivate, primaryBody, subkeyExtra(subkeyBody), bindingHashed, unhashed)
	if err != nil {
		return nil, err
	}

	var stream []byte
	stream = append(stream, secretKeyPkt...)
	stream = append(stream, useridPkt...)
	stream = append(stream, certSigPkt...)
	stream = append(stream, secretSubkeyPkt...)
	stream = append(stream, bindingSigPkt...)

	return &Bundle{
		Armored:     Armor(stream),
		Fingerprint: fingerprint,
		KeyID:       keyID,
	}, nil
}
