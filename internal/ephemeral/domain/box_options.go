package domain

import (
	"encoding/json"
	"fmt"
)

// BoxOptions carries the optional parameters of box and unbox.
type BoxOptions struct {
	// Context binds the ciphertext to a purpose. Empty means DefaultContext.
	Context string
}

// ContextBytes returns the context label that is fed into key derivation.
func (o BoxOptions) ContextBytes() []byte {
	if o.Context == "" {
		return []byte(DefaultContext)
	}
	return []byte(o.Context)
}

// StructuredContext canonicalizes a structured context value to deterministic JSON.
func StructuredContext(v any) (string, error) {
	canonical, err := canonicalJSON(v)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidContext, err)
	}
	return canonical, nil
}

// ParseContextJSON builds a context label from a raw JSON value.
//
// An absent or null value yields "" (the default context), a JSON string is used
// as text and anything else is canonicalized as structured.
func ParseContextJSON(raw json.RawMessage) (string, error) {
	if isNullOrEmpty(raw) {
		return "", nil
	}

	value, err := decodeJSONValue(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidContext, err)
	}
	if text, ok := value.(string); ok {
		return text, nil
	}
	return StructuredContext(value)
}
