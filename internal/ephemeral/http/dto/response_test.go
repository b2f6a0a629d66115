package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnboxResponse_PlaintextIsBase64(t *testing.T) {
	body, err := json.Marshal(UnboxResponse{Plaintext: []byte("hello")})

	require.NoError(t, err)
	assert.JSONEq(t, `{"plaintext":"aGVsbG8="}`, string(body))
}
