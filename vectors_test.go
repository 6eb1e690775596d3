package wordvault

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"wordvault/internal/mnemonic"
	"wordvault/internal/seedtype"
	"wordvault/internal/wordlist"

	"gopkg.in/yaml.v3"
)

type vectorFile struct {
	Vectors []vector `yaml:"vectors"`
}

type vector struct {
	Name               string `yaml:"name"`
	SeedHex            string `yaml:"seed_hex"`
	CreationOffsetDays uint32 `yaml:"creation_offset_days"`
	Password           string `yaml:"password"`
	WrongPassword      string `yaml:"wrong_password"`
	CorruptWordIndex   *int   `yaml:"corrupt_word_index"`
	Expect             string `yaml:"expect"`
}

func loadVectors(t *testing.T) []vector {
	t.Helper()
	data, err := os.ReadFile("testdata/vectors.yaml")
	if err != nil {
		t.Fatalf("reading testdata/vectors.yaml: %v", err)
	}
	var f vectorFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		t.Fatalf("parsing testdata/vectors.yaml: %v", err)
	}
	return f.Vectors
}

func seedFromHex(t *testing.T, h string) *seedtype.Seed {
	t.Helper()
	b, err := hex.DecodeString(h)
	if err != nil {
		t.Fatalf("decoding seed hex %q: %v", h, err)
	}
	s, err := seedtype.FromBytes(b)
	if err != nil {
		t.Fatalf("seedtype.FromBytes: %v", err)
	}
	return &s
}

func TestVectors(t *testing.T) {
	for _, v := range loadVectors(t) {
		v := v
		t.Run(v.Name, func(t *testing.T) {
			seed := seedFromHex(t, v.SeedHex)
			createdAt := seedtype.TimeFromOffset(v.CreationOffsetDays)

			var password []byte
			if v.Password != "" {
				password = []byte(v.Password)
			}

			genOpts := GenerateOptions{
				UserID:       "vector@example.com",
				CreationTime: createdAt,
				Seed:         seed,
				Password:     password,
			}
			if password != nil {
				genOpts.Random = rand.Reader
			}
			gen, err := Generate(genOpts)
			if err != nil {
				t.Fatalf("Generate: %v", err)
			}

			switch v.Expect {
			case "round_trips":
				rec, err := Recover(RecoverOptions{
					Phrase: gen.Phrase,
					UserID: "vector@example.com",
					Now:    createdAt.Add(48 * time.Hour),
				})
				if err != nil {
					t.Fatalf("Recover: %v", err)
				}
				if rec.Fingerprint != gen.Fingerprint {
					t.Fatal("recovered fingerprint does not match generated fingerprint")
				}

			case "wrong_password_rejected":
				_, err := Recover(RecoverOptions{
					Phrase:   gen.Phrase,
					UserID:   "vector@example.com",
					Password: []byte(v.WrongPassword),
					Now:      createdAt.Add(48 * time.Hour),
				})
				if !errors.Is(err, ErrPasswordIncorrect) {
					t.Fatalf("expected ErrPasswordIncorrect, got %v", err)
				}

			case "convert_plaintext_encrypted_plaintext_equal":
				plainAgain, err := Convert(ConvertOptions{
					Phrase:      gen.Phrase,
					OldPassword: password,
					NewPassword: nil,
				})
				if err != nil {
					t.Fatalf("Convert to plaintext: %v", err)
				}
				reEncrypted, err := Convert(ConvertOptions{
					Phrase:      plainAgain,
					NewPassword: password,
					Random:      rand.Reader,
				})
				if err != nil {
					t.Fatalf("Convert to encrypted: %v", err)
				}
				backToPlain, err := Convert(ConvertOptions{
					Phrase:      reEncrypted,
					OldPassword: password,
				})
				if err != nil {
					t.Fatalf("Convert back to plaintext: %v", err)
				}
				if backToPlain != plainAgain {
					t.Fatalf("convert round trip did not preserve the seed's phrase: got %q, want %q", backToPlain, plainAgain)
				}

			case "checksum_mismatch":
				words := strings.Fields(gen.Phrase)
				idx := *v.CorruptWordIndex
				replacement := wordlist.WordAt(0)
				if replacement == words[idx] {
					replacement = wordlist.WordAt(1)
				}
				words[idx] = replacement
				_, err := Recover(RecoverOptions{
					Phrase: strings.Join(words, " "),
					UserID: "vector@example.com",
					Now:    createdAt.Add(48 * time.Hour),
				})
				if !errors.Is(err, mnemonic.ErrChecksumMismatch) {
					t.Fatalf("expected ErrChecksumMismatch, got %v", err)
				}

			default:
				t.Fatalf("unknown expectation %q", v.Expect)
			}
		})
	}
}
