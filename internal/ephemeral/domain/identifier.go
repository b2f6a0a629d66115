package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"unicode/utf8"

	"github.com/allisson/ephemeral/internal/errors"
)

// Identifier names a keypair in the keystore.
//
// It is either text, used as-is, or structured, canonicalized to deterministic
// JSON. A text identifier whose content equals the canonical JSON of a structured
// identifier names the same entry.
type Identifier struct {
	canonical  string
	structured bool
}

// TextIdentifier returns an identifier whose canonical form is s itself.
func TextIdentifier(s string) Identifier {
	return Identifier{canonical: s}
}

// StructuredIdentifier canonicalizes v to deterministic JSON.
func StructuredIdentifier(v any) (Identifier, error) {
	canonical, err := canonicalJSON(v)
	if err != nil {
		return Identifier{}, fmt.Errorf("%w: %v", ErrInvalidIdentifier, err)
	}
	return Identifier{canonical: canonical, structured: true}, nil
}

// ParseIdentifierJSON builds an identifier from a raw JSON value.
//
// A JSON string yields a text identifier; any other non-null value yields a
// structured identifier.
func ParseIdentifierJSON(raw json.RawMessage) (Identifier, error) {
	if isNullOrEmpty(raw) {
		return Identifier{}, fmt.Errorf("%w: identifier is required", ErrInvalidIdentifier)
	}

	value, err := decodeJSONValue(raw)
	if err != nil {
		return Identifier{}, fmt.Errorf("%w: %v", ErrInvalidIdentifier, err)
	}
	if text, ok := value.(string); ok {
		return TextIdentifier(text), nil
	}
	return StructuredIdentifier(value)
}

// String returns the canonical form used as the storage key.
func (i Identifier) String() string {
	return i.canonical
}

// IsStructured reports whether the identifier was built from a structured value.
func (i Identifier) IsStructured() bool {
	return i.structured
}

// Validate checks the canonical form is non-empty, valid UTF-8 and at most
// MaxIdentifierLength bytes.
func (i Identifier) Validate() error {
	if i.canonical == "" {
		return fmt.Errorf("%w: identifier is empty", ErrInvalidIdentifier)
	}
	if !utf8.ValidString(i.canonical) {
		return fmt.Errorf("%w: identifier is not valid UTF-8", ErrInvalidIdentifier)
	}
	if len(i.canonical) > MaxIdentifierLength {
		return errors.Wrapf(
			ErrInvalidIdentifier,
			"identifier is %d bytes, maximum is %d",
			len(i.canonical),
			MaxIdentifierLength,
		)
	}
	return nil
}

func isNullOrEmpty(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
