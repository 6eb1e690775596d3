// Package checksum computes the CRC-32 based checksum domain mnemonic
// payloads are validated against (spec.md §4.C).
package checksum

import "hash/crc32"

// Mask keeps only the low 30 bits of a CRC-32 checksum.
const Mask = 0x3FFF_FFFF

// Bits is the width, in bits, of the checksum field appended to a mnemonic
// payload.
const Bits = 30

// Compute returns the low 30 bits of the IEEE CRC-32 (polynomial 0xEDB88320,
// initial value and final XOR both 0xFFFFFFFF — crc32.ChecksumIEEE already
// implements exactly this) over payload, which must already be byte-aligned
// (MSB-first, zero-padded to a byte boundary by the caller).
func Compute(payload []byte) uint32 {
	return crc32.ChecksumIEEE(payload) & Mask
}
