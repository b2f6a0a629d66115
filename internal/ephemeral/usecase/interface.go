package usecase

import (
	"context"

	"github.com/allisson/ephemeral/internal/ephemeral/domain"
)

// KeypairRepository persists stored keypairs keyed by the canonical identifier.
//
// Put is an upsert. Get and Delete return domain.ErrKeypairNotFound when no
// record exists.
type KeypairRepository interface {
	Put(ctx context.Context, dbKey string, keypair *domain.StoredKeypair) error
	Get(ctx context.Context, dbKey string) (*domain.StoredKeypair, error)
	Delete(ctx context.Context, dbKey string) error
}

// Keystore generates, loads and destroys keypairs.
type Keystore interface {
	// GenerateAndStore creates a keypair under id, overwriting any existing one,
	// and returns the serialized public key.
	GenerateAndStore(ctx context.Context, id domain.Identifier) (string, error)

	// Get loads the keypair stored under id.
	//
	// Security Note: the returned keypair holds the secret half. Callers MUST call
	// Zero on it once decryption is done.
	Get(ctx context.Context, id domain.Identifier) (*domain.Keypair, error)

	// Delete destroys the keypair stored under id.
	Delete(ctx context.Context, id domain.Identifier) error
}

// EphemeralUseCase defines the ephemeral key operations.
type EphemeralUseCase interface {
	GenerateAndStore(ctx context.Context, id domain.Identifier) (string, error)
	BoxMessage(ctx context.Context, message, recipientPublicKey string, opts domain.BoxOptions) (string, error)
	// UnboxMessage decrypts ciphertext with the keypair stored under id.
	//
	// Security Note: the returned plaintext is sensitive. Callers should zero it
	// with domain.Zero after use.
	UnboxMessage(ctx context.Context, id domain.Identifier, ciphertext string, opts domain.BoxOptions) ([]byte, error)
	DeleteKeyPair(ctx context.Context, id domain.Identifier) error
}
