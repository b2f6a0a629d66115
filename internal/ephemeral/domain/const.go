// Package domain defines the ephemeral key domain models: keypairs, the key codec,
// the ciphertext wire format, identifiers and context labels.
package domain

const (
	// Curve is the tag appended to every serialized key.
	Curve = "curve25519"

	// DefaultContext is the context label used when a caller does not supply one.
	DefaultContext = "SSB Ephemeral key"

	// CiphertextSuffix terminates every ciphertext produced by this service.
	CiphertextSuffix = ".box"

	// KeySize is the length of curve25519 public and secret keys.
	KeySize = 32

	// NonceSize is the secretbox nonce length.
	NonceSize = 24

	// MACSize is the Poly1305 tag length prepended to the secretbox payload.
	MACSize = 16

	// MinCiphertextSize is the smallest decoded ciphertext: nonce, sender key and MAC.
	MinCiphertextSize = NonceSize + KeySize + MACSize

	// MaxIdentifierLength bounds the canonical identifier in bytes. It matches the
	// db_key column width used by the SQL keystores.
	MaxIdentifierLength = 512
)
