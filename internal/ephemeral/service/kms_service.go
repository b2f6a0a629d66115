package service

import (
	"context"
	"fmt"

	"gocloud.dev/secrets"

	// KMS provider drivers accepted in KEYSTORE_KMS_KEY_URI
	_ "gocloud.dev/secrets/awskms"
	_ "gocloud.dev/secrets/azurekeyvault"
	_ "gocloud.dev/secrets/gcpkms"
	_ "gocloud.dev/secrets/hashivault"
	_ "gocloud.dev/secrets/localsecrets"
)

// kmsService resolves the keystore's KMS key URI into the keeper that seals
// secret halves before they are written.
type kmsService struct{}

// NewKMSService creates a new KMS service instance.
func NewKMSService() KMSService {
	return &kmsService{}
}

// OpenKeeper opens a secrets.Keeper for keyURI.
// Supports: gcpkms://, awskms://, azurekeyvault://, hashivault://, base64key://
func (k *kmsService) OpenKeeper(ctx context.Context, keyURI string) (KMSKeeper, error) {
	keeper, err := secrets.OpenKeeper(ctx, keyURI)
	if err != nil {
		return nil, fmt.Errorf("failed to open KMS keeper: %w", err)
	}
	return keeper, nil
}

// OpenKeySealer returns the sealer for keystore records. An empty keyURI keeps
// secret halves unsealed; otherwise the keeper for keyURI seals them and is
// closed by the sealer's Close.
func (k *kmsService) OpenKeySealer(ctx context.Context, keyURI string) (KeySealer, error) {
	if keyURI == "" {
		return NewNoopKeySealer(), nil
	}

	keeper, err := k.OpenKeeper(ctx, keyURI)
	if err != nil {
		return nil, err
	}
	return NewKeeperKeySealer(keeper), nil
}
