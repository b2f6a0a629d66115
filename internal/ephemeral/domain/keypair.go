package domain

// Keypair is a curve25519 keypair held by the keystore.
//
// SecretKey must only be handed to the decryption routine. Call Zero once the
// keypair is no longer needed.
type Keypair struct {
	PublicKey [KeySize]byte
	SecretKey [KeySize]byte
}

// Zero overwrites the secret half of the keypair.
func (k *Keypair) Zero() {
	if k == nil {
		return
	}
	Zero(k.SecretKey[:])
}

// Zero securely overwrites a byte slice with zeros to clear sensitive data from memory.
func Zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// StoredKeypair is the persisted form of a keypair: both halves encoded with the
// key codec. When Sealed is true, SecretKey encodes the key sealer's ciphertext of
// the secret half instead of the raw key.
type StoredKeypair struct {
	PublicKey string `json:"publicKey"`
	SecretKey string `json:"secretKey"`
	Sealed    bool   `json:"sealed,omitempty"`
}
