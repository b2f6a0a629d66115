package usecase

import (
	"context"
	"fmt"

	"github.com/allisson/ephemeral/internal/ephemeral/domain"
	"github.com/allisson/ephemeral/internal/ephemeral/service"
	apperrors "github.com/allisson/ephemeral/internal/errors"
)

// keystore implements Keystore over a KeypairRepository.
//
// Secret halves are sealed by the KeySealer before they reach the repository.
// A keystore without a sealing keeper refuses sealed records rather than
// returning garbage keys.
type keystore struct {
	repo   KeypairRepository
	engine service.BoxEngine
	sealer service.KeySealer
}

// NewKeystore creates a Keystore. A nil sealer stores secret halves unsealed.
func NewKeystore(repo KeypairRepository, engine service.BoxEngine, sealer service.KeySealer) Keystore {
	if sealer == nil {
		sealer = service.NewNoopKeySealer()
	}
	return &keystore{
		repo:   repo,
		engine: engine,
		sealer: sealer,
	}
}

// GenerateAndStore creates a keypair under id. There is no existence check: a
// second call for the same id overwrites the first.
func (k *keystore) GenerateAndStore(ctx context.Context, id domain.Identifier) (string, error) {
	if err := id.Validate(); err != nil {
		return "", err
	}

	kp, err := k.engine.GenerateKeypair()
	if err != nil {
		return "", err
	}
	defer kp.Zero()

	secret, err := k.sealer.Seal(ctx, kp.SecretKey[:])
	if err != nil {
		return "", err
	}
	defer domain.Zero(secret)

	publicKey := domain.EncodeKey(kp.PublicKey[:])
	stored := &domain.StoredKeypair{
		PublicKey: publicKey,
		SecretKey: domain.EncodeKey(secret),
		Sealed:    k.sealer.Sealed(),
	}

	if err := k.repo.Put(ctx, id.String(), stored); err != nil {
		return "", apperrors.Wrap(err, "failed to store keypair")
	}
	return publicKey, nil
}

// Get loads and decodes the keypair stored under id.
func (k *keystore) Get(ctx context.Context, id domain.Identifier) (*domain.Keypair, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	stored, err := k.repo.Get(ctx, id.String())
	if err != nil {
		return nil, err
	}

	kp, err := k.decode(ctx, stored)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCorruptedKeypair, err)
	}
	return kp, nil
}

// Delete removes the keypair stored under id.
func (k *keystore) Delete(ctx context.Context, id domain.Identifier) error {
	if err := id.Validate(); err != nil {
		return err
	}
	return k.repo.Delete(ctx, id.String())
}

func (k *keystore) decode(ctx context.Context, stored *domain.StoredKeypair) (*domain.Keypair, error) {
	if stored.Sealed && !k.sealer.Sealed() {
		return nil, fmt.Errorf("record is sealed but no key sealer is configured")
	}

	publicKey, err := domain.DecodePublicKey(stored.PublicKey)
	if err != nil {
		return nil, fmt.Errorf("public key: %w", err)
	}

	secret, err := domain.DecodeKey(stored.SecretKey)
	if err != nil {
		return nil, fmt.Errorf("secret key: %w", err)
	}
	defer domain.Zero(secret)

	if stored.Sealed {
		opened, err := k.sealer.Open(ctx, secret)
		if err != nil {
			return nil, err
		}
		defer domain.Zero(opened)
		secret = opened
	}

	if len(secret) != domain.KeySize {
		return nil, fmt.Errorf("secret key: expected %d bytes, got %d", domain.KeySize, len(secret))
	}

	kp := &domain.Keypair{PublicKey: *publicKey}
	copy(kp.SecretKey[:], secret)
	return kp, nil
}
