package pgp

import "errors"

// ErrSerialization corresponds to spec.md §7's Serialization error kind:
// an oversized MPI or malformed packet, always a bug rather than bad input.
var ErrSerialization = errors.New("pgp: serialization failure")

// ErrDecode is returned by the minimal round-trip decoder when a packet
// stream does not have the fixed shape this module emits.
var ErrDecode = errors.New("pgp: unable to decode packet stream")
