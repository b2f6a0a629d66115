package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/allisson/ephemeral/internal/ephemeral/domain"
	ephemeralUseCase "github.com/allisson/ephemeral/internal/ephemeral/usecase"
)

// RunGenerateKeypair generates and stores a keypair for id and prints its public key.
// Any keypair previously stored under id is replaced.
func RunGenerateKeypair(
	ctx context.Context,
	useCase ephemeralUseCase.EphemeralUseCase,
	logger *slog.Logger,
	writer io.Writer,
	id domain.Identifier,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	publicKey, err := useCase.GenerateAndStore(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to generate keypair: %w", err)
	}

	logger.Debug("keypair generated", slog.Bool("structured_id", id.IsStructured()))

	if format == "json" {
		return outputJSON(writer, map[string]string{"public_key": publicKey})
	}
	_, _ = fmt.Fprintln(writer, publicKey)
	return nil
}

// RunDeleteKeypair removes the keypair stored for id.
func RunDeleteKeypair(
	ctx context.Context,
	useCase ephemeralUseCase.EphemeralUseCase,
	logger *slog.Logger,
	writer io.Writer,
	id domain.Identifier,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	if err := useCase.DeleteKeyPair(ctx, id); err != nil {
		return fmt.Errorf("failed to delete keypair: %w", err)
	}

	logger.Debug("keypair deleted", slog.Bool("structured_id", id.IsStructured()))

	if format == "json" {
		return outputJSON(writer, map[string]bool{"deleted": true})
	}
	_, _ = fmt.Fprintln(writer, "Keypair deleted")
	return nil
}
