package usecase

import (
	"context"
	"time"

	"github.com/allisson/ephemeral/internal/ephemeral/domain"
	"github.com/allisson/ephemeral/internal/metrics"
)

// ephemeralUseCaseWithMetrics decorates EphemeralUseCase with metrics instrumentation.
type ephemeralUseCaseWithMetrics struct {
	next    EphemeralUseCase
	metrics metrics.BusinessMetrics
}

// NewEphemeralUseCaseWithMetrics wraps an EphemeralUseCase with metrics recording.
func NewEphemeralUseCaseWithMetrics(useCase EphemeralUseCase, m metrics.BusinessMetrics) EphemeralUseCase {
	return &ephemeralUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// GenerateAndStore records metrics for keypair generation.
func (e *ephemeralUseCaseWithMetrics) GenerateAndStore(ctx context.Context, id domain.Identifier) (string, error) {
	start := time.Now()
	publicKey, err := e.next.GenerateAndStore(ctx, id)
	e.record(ctx, "keypair_generate", start, err)
	return publicKey, err
}

// BoxMessage records metrics for message boxing.
func (e *ephemeralUseCaseWithMetrics) BoxMessage(
	ctx context.Context,
	message, recipientPublicKey string,
	opts domain.BoxOptions,
) (string, error) {
	start := time.Now()
	ciphertext, err := e.next.BoxMessage(ctx, message, recipientPublicKey, opts)
	e.record(ctx, "message_box", start, err)
	return ciphertext, err
}

// UnboxMessage records metrics for message unboxing.
func (e *ephemeralUseCaseWithMetrics) UnboxMessage(
	ctx context.Context,
	id domain.Identifier,
	ciphertext string,
	opts domain.BoxOptions,
) ([]byte, error) {
	start := time.Now()
	plaintext, err := e.next.UnboxMessage(ctx, id, ciphertext, opts)
	e.record(ctx, "message_unbox", start, err)
	return plaintext, err
}

// DeleteKeyPair records metrics for keypair deletion.
func (e *ephemeralUseCaseWithMetrics) DeleteKeyPair(ctx context.Context, id domain.Identifier) error {
	start := time.Now()
	err := e.next.DeleteKeyPair(ctx, id)
	e.record(ctx, "keypair_delete", start, err)
	return err
}

func (e *ephemeralUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := metrics.StatusFor(err)
	e.metrics.RecordOperation(ctx, "ephemeral", operation, status)
	e.metrics.RecordDuration(ctx, "ephemeral", operation, time.Since(start), status)
}
