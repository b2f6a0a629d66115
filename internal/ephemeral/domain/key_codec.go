package domain

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// EncodeKey serializes raw key bytes as base64 followed by "." and the curve tag.
func EncodeKey(raw []byte) string {
	return base64.StdEncoding.EncodeToString(raw) + "." + Curve
}

// DecodeKey reverses EncodeKey.
//
// The text is split on its last "."; the trailing segment must equal Curve
// exactly. A string without any "." is treated as a bare tag and rejected.
//
// Returns:
//   - ErrUnsupportedCurve if the tag does not match
//   - ErrMalformedKey if the remainder is not valid base64
func DecodeKey(text string) ([]byte, error) {
	idx := strings.LastIndex(text, ".")
	if idx < 0 || text[idx+1:] != Curve {
		return nil, ErrUnsupportedCurve
	}

	raw, err := base64.StdEncoding.DecodeString(text[:idx])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedKey, err)
	}
	return raw, nil
}

// DecodePublicKey decodes a serialized key and checks it is exactly KeySize bytes.
func DecodePublicKey(text string) (*[KeySize]byte, error) {
	raw, err := DecodeKey(text)
	if err != nil {
		return nil, err
	}
	if len(raw) != KeySize {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", ErrMalformedKey, KeySize, len(raw))
	}

	var key [KeySize]byte
	copy(key[:], raw)
	return &key, nil
}
