package pgp

// userIDPacket builds a User-ID packet (tag 13): the UTF-8 identity string
// verbatim, with no internal structure (spec.md §4.G item 2).
func userIDPacket(userID string) []byte {
	return packet(tagUserID, []byte(userID))
}
