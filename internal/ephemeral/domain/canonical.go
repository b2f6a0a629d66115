package domain

import (
	"bytes"
	"encoding/json"
	"errors"
)

// canonicalJSON re-encodes an arbitrary JSON-compatible value deterministically.
//
// The value round-trips through encoding/json so struct tags apply, then object
// keys come out sorted (encoding/json sorts map keys) and numbers keep their
// original text via UseNumber. HTML escaping is disabled so "<", ">" and "&"
// survive unchanged.
func canonicalJSON(v any) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return canonicalizeRaw(raw)
}

func canonicalizeRaw(raw []byte) (string, error) {
	generic, err := decodeJSONValue(raw)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(generic); err != nil {
		return "", err
	}
	return string(bytes.TrimSuffix(buf.Bytes(), []byte("\n"))), nil
}

// decodeJSONValue decodes exactly one JSON value, keeping numbers as json.Number.
func decodeJSONValue(raw []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var generic any
	if err := dec.Decode(&generic); err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, errors.New("unexpected data after JSON value")
	}
	return generic, nil
}
