package utils

import "encoding/base64"

// WebAuthn credential identifiers and public keys cross every boundary of the
// application (database, JSON, ceremony options) as URL-safe base64 without
// padding. EncodeBytes and DecodeBytes are the single encode/decode pair for
// that contract; values must round-trip exactly.

// EncodeBytes encodes raw bytes as unpadded URL-safe base64.
func EncodeBytes(raw []byte) string {
	return base64.RawURLEncoding.EncodeToString(raw)
}

// DecodeBytes decodes an unpadded URL-safe base64 string produced by
// EncodeBytes back into raw bytes.
func DecodeBytes(encoded string) ([]byte, error) {
	return base64.RawURLEncoding.DecodeString(encoded)
}
