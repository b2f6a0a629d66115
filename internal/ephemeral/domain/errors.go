package domain

import (
	"github.com/allisson/ephemeral/internal/errors"
)

// Ephemeral key error definitions.
//
// These wrap the standard errors from internal/errors so the HTTP layer can map
// them without knowing about this module.
var (
	// ErrInvalidIdentifier indicates a key identifier is empty, too long or not valid UTF-8.
	ErrInvalidIdentifier = errors.Wrap(errors.ErrInvalidInput, "invalid key identifier")

	// ErrInvalidContext indicates a structured context label could not be canonicalized.
	ErrInvalidContext = errors.Wrap(errors.ErrInvalidInput, "invalid context message")

	// ErrInvalidMessage indicates the message to box is not valid UTF-8 text.
	ErrInvalidMessage = errors.Wrap(errors.ErrInvalidInput, "message must be a string")

	// ErrUnsupportedCurve indicates a serialized key carries a tag other than Curve.
	ErrUnsupportedCurve = errors.Wrap(errors.ErrInvalidInput, "encountered key with unsupported curve")

	// ErrMalformedKey indicates a serialized key is not valid base64 or has the wrong length.
	ErrMalformedKey = errors.Wrap(errors.ErrInvalidInput, "malformed key encoding")

	// ErrInvalidPublicKey indicates a recipient key is a low-order curve point that
	// yields no usable shared secret.
	ErrInvalidPublicKey = errors.Wrap(errors.ErrInvalidInput, "invalid public key")

	// ErrInvalidCiphertextFormat indicates the ciphertext does not end in CiphertextSuffix.
	ErrInvalidCiphertextFormat = errors.Wrap(errors.ErrInvalidInput, "ciphertext must end in "+CiphertextSuffix)

	// ErrMalformedCiphertext indicates the ciphertext is not valid base64 or is too short.
	ErrMalformedCiphertext = errors.Wrap(errors.ErrInvalidInput, "invalid ciphertext")

	// ErrDecryptionFailed is returned for every unbox failure after parsing.
	//
	// Wrong key, wrong context and tampered ciphertext all produce this same error
	// so callers cannot learn which check failed.
	ErrDecryptionFailed = errors.Wrap(errors.ErrInvalidInput, "decryption failed")

	// ErrKeypairNotFound indicates no keypair is stored under the identifier.
	ErrKeypairNotFound = errors.Wrap(errors.ErrNotFound, "keypair not found")

	// ErrCorruptedKeypair indicates a stored keypair exists but cannot be decoded.
	ErrCorruptedKeypair = errors.Wrap(errors.ErrCorrupted, "stored keypair is corrupted")
)
