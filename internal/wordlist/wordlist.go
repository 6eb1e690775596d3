package wordlist

import (
	"errors"
	"strings"
)

// Size is the number of entries in the word table.
const Size = 4096

// BitsPerWord is the number of bits a single word index encodes. 2^12 == 4096.
//
// spec.md §4.B states this table is indexed by "13-bit" values, but that
// does not match the table's own mandated size: 4096 entries need exactly
// log2(4096) = 12 bits, not 13. internal/mnemonic's bit-width constants are
// derived from this value; see its DESIGN.md entry for the full accounting
// of how that one-bit correction propagates through the payload layout.
const BitsPerWord = 12

// PrefixLen is the minimum prefix length IndexOf will accept in place of a
// whole word.
const PrefixLen = 4

// ErrUnknownWord is returned when a word is neither an exact match nor a
// unique PrefixLen-character prefix of exactly one table entry.
var ErrUnknownWord = errors.New("wordlist: word not recognized")

var (
	byWord   map[string]uint16
	byPrefix map[string]uint16 // prefix -> index, only present when unique
)

func init() {
	if len(Words) != Size {
		panic("wordlist: canonical table does not have exactly 4096 entries")
	}
	byWord = make(map[string]uint16, Size)
	prefixCount := make(map[string]int, Size)
	byPrefix = make(map[string]uint16, Size)

	for i, w := range Words {
		if len(w) < 3 || len(w) > 8 {
			panic("wordlist: entry \"" + w + "\" has invalid length")
		}
		if _, dup := byWord[w]; dup {
			panic("wordlist: duplicate entry \"" + w + "\"")
		}
		byWord[w] = uint16(i)

		p := prefix(w)
		prefixCount[p]++
		byPrefix[p] = uint16(i)
	}
	for p, count := range prefixCount {
		if count > 1 {
			delete(byPrefix, p)
		}
	}
}

func prefix(w string) string {
	if len(w) <= PrefixLen {
		return w
	}
	return w[:PrefixLen]
}

// WordAt returns the canonical word for the given 12-bit index. It panics if
// index is out of range, since every caller in this module derives index
// from a decoded bit field already checked to be < Size.
func WordAt(index uint16) string {
	return Words[index]
}

// IndexOf resolves a user-supplied word to its table index. The match is
// case-insensitive. If the lowercased input exactly matches a table entry,
// that entry's index is returned. Otherwise, if the input is at least
// PrefixLen characters long and is a prefix of exactly one table entry, that
// entry's index is returned. Anything else yields ErrUnknownWord.
func IndexOf(word string) (uint16, error) {
	w := strings.ToLower(strings.TrimSpace(word))
	if idx, ok := byWord[w]; ok {
		return idx, nil
	}
	if len(w) >= PrefixLen {
		if idx, ok := byPrefix[w[:PrefixLen]]; ok && strings.HasPrefix(Words[idx], w) {
			return idx, nil
		}
	}
	return 0, ErrUnknownWord
}
