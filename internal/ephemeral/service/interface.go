// Package service provides the cryptographic services behind ephemeral keys: the
// box/unbox engine, at-rest sealing of secret halves and KMS keeper access.
package service

import (
	"context"

	"github.com/allisson/ephemeral/internal/ephemeral/domain"
)

// BoxEngine performs keypair generation and authenticated public-key encryption
// bound to a context label.
type BoxEngine interface {
	// GenerateKeypair creates a fresh curve25519 keypair.
	GenerateKeypair() (*domain.Keypair, error)

	// Encrypt boxes message to recipientPublicKey under context. Every call uses a
	// fresh ephemeral sender keypair and nonce.
	Encrypt(message []byte, recipientPublicKey *[domain.KeySize]byte, context []byte) (*domain.Ciphertext, error)

	// Decrypt opens ciphertext with keypair under context. Every failure returns
	// domain.ErrDecryptionFailed.
	Decrypt(keypair *domain.Keypair, ciphertext *domain.Ciphertext, context []byte) ([]byte, error)
}

// KeySealer protects secret key material at rest.
type KeySealer interface {
	// Seal encrypts a raw secret key for storage.
	Seal(ctx context.Context, secretKey []byte) ([]byte, error)

	// Open reverses Seal.
	Open(ctx context.Context, sealed []byte) ([]byte, error)

	// Sealed reports whether Seal transforms its input.
	Sealed() bool

	// Close releases the underlying keeper, if any.
	Close() error
}

// KMSKeeper is the subset of *secrets.Keeper used for sealing.
type KMSKeeper interface {
	Encrypt(ctx context.Context, plaintext []byte) ([]byte, error)
	Decrypt(ctx context.Context, ciphertext []byte) ([]byte, error)
	Close() error
}

// KMSService opens KMS keepers from provider URIs and turns them into key
// sealers for the keystore.
type KMSService interface {
	// OpenKeeper opens a secrets.Keeper for the configured KMS provider.
	// Returns an error if the KMS provider URI is invalid or connection fails.
	OpenKeeper(ctx context.Context, keyURI string) (KMSKeeper, error)

	// OpenKeySealer returns a pass-through sealer for an empty keyURI and a
	// keeper-backed sealer otherwise.
	OpenKeySealer(ctx context.Context, keyURI string) (KeySealer, error)
}
