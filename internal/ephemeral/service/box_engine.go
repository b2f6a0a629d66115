package service

import (
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/curve25519"
	"golang.org/x/crypto/hkdf"
	"golang.org/x/crypto/nacl/box"
	"golang.org/x/crypto/nacl/secretbox"

	"github.com/allisson/ephemeral/internal/ephemeral/domain"
)

// boxInfoPrefix domain-separates the derived box key from any other use of the
// same shared secret. The caller's context label is appended after it.
const boxInfoPrefix = "ephemeral-box-v1\x00"

type boxEngine struct {
	random io.Reader
}

// NewBoxEngine creates a BoxEngine reading randomness from crypto/rand.
func NewBoxEngine() BoxEngine {
	return &boxEngine{random: rand.Reader}
}

// GenerateKeypair creates a fresh curve25519 keypair.
func (e *boxEngine) GenerateKeypair() (*domain.Keypair, error) {
	pub, sec, err := box.GenerateKey(e.random)
	if err != nil {
		return nil, fmt.Errorf("failed to generate keypair: %w", err)
	}
	kp := &domain.Keypair{PublicKey: *pub, SecretKey: *sec}
	domain.Zero(sec[:])
	return kp, nil
}

// Encrypt boxes message to recipientPublicKey.
//
// The symmetric key is HKDF-SHA256 over the X25519 shared secret, salted with
// the sender and recipient public keys, with the context label in the info
// parameter. The ephemeral secret key never leaves this function.
func (e *boxEngine) Encrypt(
	message []byte,
	recipientPublicKey *[domain.KeySize]byte,
	context []byte,
) (*domain.Ciphertext, error) {
	ephemeral, err := e.GenerateKeypair()
	if err != nil {
		return nil, err
	}
	defer ephemeral.Zero()

	key, err := deriveBoxKey(&ephemeral.SecretKey, recipientPublicKey, &ephemeral.PublicKey, recipientPublicKey, context)
	if err != nil {
		return nil, err
	}
	defer domain.Zero(key[:])

	ct := &domain.Ciphertext{SenderPublicKey: ephemeral.PublicKey}
	if _, err := io.ReadFull(e.random, ct.Nonce[:]); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	ct.Box = secretbox.Seal(nil, message, &ct.Nonce, key)
	return ct, nil
}

// Decrypt opens ciphertext with keypair under context.
func (e *boxEngine) Decrypt(
	keypair *domain.Keypair,
	ciphertext *domain.Ciphertext,
	context []byte,
) ([]byte, error) {
	key, err := deriveBoxKey(
		&keypair.SecretKey,
		&ciphertext.SenderPublicKey,
		&ciphertext.SenderPublicKey,
		&keypair.PublicKey,
		context,
	)
	if err != nil {
		return nil, domain.ErrDecryptionFailed
	}
	defer domain.Zero(key[:])

	plaintext, ok := secretbox.Open(nil, ciphertext.Box, &ciphertext.Nonce, key)
	if !ok {
		return nil, domain.ErrDecryptionFailed
	}
	return plaintext, nil
}

// deriveBoxKey computes X25519(secretKey, peerPublicKey) and expands it into a
// secretbox key. senderPublicKey and recipientPublicKey are ordered the same way
// on both sides so the salt matches. A low-order peer key fails with
// domain.ErrInvalidPublicKey.
func deriveBoxKey(
	secretKey, peerPublicKey, senderPublicKey, recipientPublicKey *[domain.KeySize]byte,
	context []byte,
) (*[domain.KeySize]byte, error) {
	shared, err := curve25519.X25519(secretKey[:], peerPublicKey[:])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidPublicKey, err)
	}
	defer domain.Zero(shared)

	salt := make([]byte, 0, 2*domain.KeySize)
	salt = append(salt, senderPublicKey[:]...)
	salt = append(salt, recipientPublicKey[:]...)

	info := make([]byte, 0, len(boxInfoPrefix)+len(context))
	info = append(info, boxInfoPrefix...)
	info = append(info, context...)

	var key [domain.KeySize]byte
	if _, err := io.ReadFull(hkdf.New(sha256.New, shared, salt, info), key[:]); err != nil {
		return nil, fmt.Errorf("failed to derive key: %w", err)
	}
	return &key, nil
}
