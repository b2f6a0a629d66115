// Package commands contains CLI command implementations for the application.
package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/golang-migrate/migrate/v4"

	"github.com/allisson/ephemeral/internal/app"
	"github.com/allisson/ephemeral/internal/ephemeral/domain"
)

// IOTuple holds reader and writer for commands, allowing for testing.
type IOTuple struct {
	Reader io.Reader
	Writer io.Writer
}

// DefaultIO returns an IOTuple with os.Stdin and os.Stdout.
func DefaultIO() IOTuple {
	return IOTuple{
		Reader: os.Stdin,
		Writer: os.Stdout,
	}
}

// closeContainer closes all resources in the container and logs any errors.
func closeContainer(container *app.Container, logger *slog.Logger) {
	if err := container.Shutdown(context.Background()); err != nil {
		logger.Error("failed to shutdown container", slog.Any("error", err))
	}
}

// closeMigrate closes the migration instance and logs any errors.
func closeMigrate(migrate *migrate.Migrate, logger *slog.Logger) {
	sourceError, databaseError := migrate.Close()
	if sourceError != nil || databaseError != nil {
		logger.Error(
			"failed to close the migrate",
			slog.Any("source_error", sourceError),
			slog.Any("database_error", databaseError),
		)
	}
}

// ParseIdentifierFlags builds an identifier from --id (text) or --id-json (any
// JSON value). Exactly one of them must be set.
func ParseIdentifierFlags(text, rawJSON string) (domain.Identifier, error) {
	switch {
	case text != "" && rawJSON != "":
		return domain.Identifier{}, fmt.Errorf("%w: use either --id or --id-json", domain.ErrInvalidIdentifier)
	case rawJSON != "":
		return domain.ParseIdentifierJSON(json.RawMessage(rawJSON))
	case text != "":
		return domain.TextIdentifier(text), nil
	default:
		return domain.Identifier{}, fmt.Errorf("%w: --id or --id-json is required", domain.ErrInvalidIdentifier)
	}
}

// ParseContextFlags builds box options from --context (text) or --context-json
// (any JSON value). Neither flag selects the default context.
func ParseContextFlags(text, rawJSON string) (domain.BoxOptions, error) {
	switch {
	case text != "" && rawJSON != "":
		return domain.BoxOptions{}, fmt.Errorf("%w: use either --context or --context-json", domain.ErrInvalidContext)
	case rawJSON != "":
		boxContext, err := domain.ParseContextJSON(json.RawMessage(rawJSON))
		if err != nil {
			return domain.BoxOptions{}, err
		}
		return domain.BoxOptions{Context: boxContext}, nil
	default:
		return domain.BoxOptions{Context: text}, nil
	}
}

// validateFormat rejects output formats other than text and json.
func validateFormat(format string) error {
	switch format {
	case "text", "json":
		return nil
	default:
		return fmt.Errorf("invalid format: %s (valid options: text, json)", format)
	}
}

// outputJSON writes result as indented JSON for machine consumption.
func outputJSON(writer io.Writer, result any) error {
	jsonBytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	_, _ = fmt.Fprintln(writer, string(jsonBytes))
	return nil
}
