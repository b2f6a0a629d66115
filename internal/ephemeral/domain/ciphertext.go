package domain

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// Ciphertext is a boxed message as produced by the box engine.
//
// Wire format: base64(nonce || sender public key || secretbox output) + ".box".
// The sender public key is the ephemeral half generated for this message only.
type Ciphertext struct {
	Nonce           [NonceSize]byte
	SenderPublicKey [KeySize]byte
	Box             []byte
}

// ParseCiphertext parses the wire form of a ciphertext.
//
// Returns:
//   - ErrInvalidCiphertextFormat if the text does not end in ".box"
//   - ErrMalformedCiphertext if the body is not base64 or shorter than MinCiphertextSize
func ParseCiphertext(text string) (*Ciphertext, error) {
	body, ok := strings.CutSuffix(text, CiphertextSuffix)
	if !ok {
		return nil, ErrInvalidCiphertextFormat
	}

	raw, err := base64.StdEncoding.DecodeString(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedCiphertext, err)
	}
	if len(raw) < MinCiphertextSize {
		return nil, fmt.Errorf("%w: expected at least %d bytes, got %d", ErrMalformedCiphertext, MinCiphertextSize, len(raw))
	}

	ct := &Ciphertext{Box: make([]byte, len(raw)-NonceSize-KeySize)}
	copy(ct.Nonce[:], raw[:NonceSize])
	copy(ct.SenderPublicKey[:], raw[NonceSize:NonceSize+KeySize])
	copy(ct.Box, raw[NonceSize+KeySize:])
	return ct, nil
}

// Bytes returns nonce, sender public key and box concatenated.
func (c *Ciphertext) Bytes() []byte {
	out := make([]byte, 0, NonceSize+KeySize+len(c.Box))
	out = append(out, c.Nonce[:]...)
	out = append(out, c.SenderPublicKey[:]...)
	return append(out, c.Box...)
}

// String returns the wire form of the ciphertext.
func (c *Ciphertext) String() string {
	return base64.StdEncoding.EncodeToString(c.Bytes()) + CiphertextSuffix
}
