package dto

// KeypairResponse carries the codec-encoded public half of a new keypair.
type KeypairResponse struct {
	PublicKey string `json:"public_key"`
}

// BoxResponse carries a ".box" ciphertext.
type BoxResponse struct {
	Ciphertext string `json:"ciphertext"`
}

// UnboxResponse carries the recovered plaintext. encoding/json renders []byte
// as standard base64.
type UnboxResponse struct {
	Plaintext []byte `json:"plaintext"`
}
