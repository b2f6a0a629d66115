// Package usecase implements the ephemeral key operations.
//
// A party generates a short-lived curve25519 keypair under an identifier,
// publishes the public half, lets others box messages to it under a context
// label, unboxes what it receives with the stored secret half and finally
// deletes the keypair. Once deleted, ciphertexts addressed to it can never be
// opened again.
//
// # Key Components
//
//   - Keystore: generates keypairs and persists them through a KeypairRepository,
//     optionally sealing the secret half with a KMS keeper
//   - EphemeralUseCase: the four operations exposed to the HTTP and CLI layers
//
// # Operation Order
//
// Unboxing validates in a fixed order so callers see the cheapest failure first:
//
//	parse ciphertext (suffix, then base64/length)
//	    ↓
//	load keypair (not found / corrupted)
//	    ↓
//	decrypt (uniform "decryption failed")
//
// # Concurrency
//
// There is no coordination between requests. Two concurrent generate calls for
// the same identifier race and the later write wins; the public key returned to
// the losing caller can never be unboxed against.
//
// # Usage Example
//
//	uc := usecase.NewEphemeralUseCase(keystore, service.NewBoxEngine())
//
//	id := domain.TextIdentifier("alice")
//	publicKey, err := uc.GenerateAndStore(ctx, id)
//
//	ct, err := uc.BoxMessage(ctx, "hello friend", publicKey, domain.BoxOptions{Context: "hello alice"})
//	msg, err := uc.UnboxMessage(ctx, id, ct, domain.BoxOptions{Context: "hello alice"})
//
//	err = uc.DeleteKeyPair(ctx, id)
package usecase

import (
	"context"
	"unicode/utf8"

	"github.com/allisson/ephemeral/internal/ephemeral/domain"
	"github.com/allisson/ephemeral/internal/ephemeral/service"
)

// ephemeralUseCase implements EphemeralUseCase.
type ephemeralUseCase struct {
	keystore Keystore
	engine   service.BoxEngine
}

// NewEphemeralUseCase creates an EphemeralUseCase.
func NewEphemeralUseCase(keystore Keystore, engine service.BoxEngine) EphemeralUseCase {
	return &ephemeralUseCase{
		keystore: keystore,
		engine:   engine,
	}
}

// GenerateAndStore creates and stores a keypair under id and returns its public key.
func (e *ephemeralUseCase) GenerateAndStore(ctx context.Context, id domain.Identifier) (string, error) {
	return e.keystore.GenerateAndStore(ctx, id)
}

// BoxMessage encrypts message to recipientPublicKey. Only public material is
// involved, so the keystore is never touched.
func (e *ephemeralUseCase) BoxMessage(
	ctx context.Context,
	message, recipientPublicKey string,
	opts domain.BoxOptions,
) (string, error) {
	if !utf8.ValidString(message) {
		return "", domain.ErrInvalidMessage
	}

	publicKey, err := domain.DecodePublicKey(recipientPublicKey)
	if err != nil {
		return "", err
	}

	ct, err := e.engine.Encrypt([]byte(message), publicKey, opts.ContextBytes())
	if err != nil {
		return "", err
	}
	return ct.String(), nil
}

// UnboxMessage decrypts ciphertext with the keypair stored under id.
func (e *ephemeralUseCase) UnboxMessage(
	ctx context.Context,
	id domain.Identifier,
	ciphertext string,
	opts domain.BoxOptions,
) ([]byte, error) {
	ct, err := domain.ParseCiphertext(ciphertext)
	if err != nil {
		return nil, err
	}

	kp, err := e.keystore.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	defer kp.Zero()

	return e.engine.Decrypt(kp, ct, opts.ContextBytes())
}

// DeleteKeyPair destroys the keypair stored under id.
func (e *ephemeralUseCase) DeleteKeyPair(ctx context.Context, id domain.Identifier) error {
	return e.keystore.Delete(ctx, id)
}
