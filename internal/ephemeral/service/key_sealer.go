package service

import (
	"context"
	"fmt"
)

type noopKeySealer struct{}

// NewNoopKeySealer returns a KeySealer that stores secret keys as-is.
func NewNoopKeySealer() KeySealer {
	return noopKeySealer{}
}

// Seal returns a copy of secretKey.
func (noopKeySealer) Seal(_ context.Context, secretKey []byte) ([]byte, error) {
	return append([]byte(nil), secretKey...), nil
}

// Open returns a copy of sealed.
func (noopKeySealer) Open(_ context.Context, sealed []byte) ([]byte, error) {
	return append([]byte(nil), sealed...), nil
}

// Sealed always returns false.
func (noopKeySealer) Sealed() bool { return false }

// Close is a no-op.
func (noopKeySealer) Close() error { return nil }

// keeperKeySealer seals secret keys with a KMS keeper.
type keeperKeySealer struct {
	keeper KMSKeeper
}

// NewKeeperKeySealer returns a KeySealer backed by keeper. The sealer owns the
// keeper and closes it on Close.
func NewKeeperKeySealer(keeper KMSKeeper) KeySealer {
	return &keeperKeySealer{keeper: keeper}
}

// Seal encrypts secretKey with the keeper.
func (s *keeperKeySealer) Seal(ctx context.Context, secretKey []byte) ([]byte, error) {
	sealed, err := s.keeper.Encrypt(ctx, secretKey)
	if err != nil {
		return nil, fmt.Errorf("failed to seal secret key: %w", err)
	}
	return sealed, nil
}

// Open decrypts a sealed secret key with the keeper.
func (s *keeperKeySealer) Open(ctx context.Context, sealed []byte) ([]byte, error) {
	secretKey, err := s.keeper.Decrypt(ctx, sealed)
	if err != nil {
		return nil, fmt.Errorf("failed to open secret key: %w", err)
	}
	return secretKey, nil
}

// Sealed always returns true.
func (s *keeperKeySealer) Sealed() bool { return true }

// Close closes the keeper.
func (s *keeperKeySealer) Close() error {
	return s.keeper.Close()
}
