package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/allisson/ephemeral/internal/ephemeral/domain"
	ephemeralUseCase "github.com/allisson/ephemeral/internal/ephemeral/usecase"
)

// RunBoxMessage encrypts message to publicKey and prints the ".box" ciphertext.
func RunBoxMessage(
	ctx context.Context,
	useCase ephemeralUseCase.EphemeralUseCase,
	logger *slog.Logger,
	writer io.Writer,
	message, publicKey string,
	opts domain.BoxOptions,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	ciphertext, err := useCase.BoxMessage(ctx, message, publicKey, opts)
	if err != nil {
		return fmt.Errorf("failed to box message: %w", err)
	}

	logger.Debug("message boxed", slog.Int("ciphertext_length", len(ciphertext)))

	if format == "json" {
		return outputJSON(writer, map[string]string{"ciphertext": ciphertext})
	}
	_, _ = fmt.Fprintln(writer, ciphertext)
	return nil
}

// RunUnboxMessage opens ciphertext with the keypair stored for id. Text output
// writes the plaintext bytes as-is; JSON output encodes them as base64.
func RunUnboxMessage(
	ctx context.Context,
	useCase ephemeralUseCase.EphemeralUseCase,
	logger *slog.Logger,
	writer io.Writer,
	id domain.Identifier,
	ciphertext string,
	opts domain.BoxOptions,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	plaintext, err := useCase.UnboxMessage(ctx, id, ciphertext, opts)
	if err != nil {
		return fmt.Errorf("failed to unbox message: %w", err)
	}
	defer domain.Zero(plaintext)

	logger.Debug("message unboxed", slog.Int("plaintext_length", len(plaintext)))

	if format == "json" {
		return outputJSON(writer, map[string][]byte{"plaintext": plaintext})
	}
	_, _ = writer.Write(plaintext)
	_, _ = fmt.Fprintln(writer)
	return nil
}
