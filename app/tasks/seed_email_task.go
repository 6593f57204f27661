package tasks

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/inboxfolio/inboxfolio/app/email"
)

// SeedEmailTask ingests one sample email through the full pipeline, so
// seeded records get the same validation, normalization and slug resolution
// as live traffic.
type SeedEmailTask struct {
	Task
	payload  email.Payload
	ingestor *email.Ingestor
}

func NewSeedEmailTask(payload email.Payload, ingestor *email.Ingestor) *SeedEmailTask {
	return &SeedEmailTask{
		Task:     NewTask(TaskTypeSeedEmail, payload.Subject),
		payload:  payload,
		ingestor: ingestor,
	}
}

func (t *SeedEmailTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	stored, err := t.ingestor.Run(t.payload)
	if err != nil {
		// Bad seed data and lost slug races are not retryable.
		if email.IsValidationError(err) || errors.Is(err, email.ErrSlugConflict) {
			slog.Warn("Skipping seed email", "subject", t.payload.Subject, "error", err)
			return nil
		}
		return fmt.Errorf("failed to seed email: %w", err)
	}

	slog.Info("Task completed",
		"type", string(TaskTypeSeedEmail),
		"slug", stored.Slug,
		"duration", t.GetDuration())

	return nil
}
