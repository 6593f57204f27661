package tasks

import (
	"context"
	"errors"
	"testing"

	"github.com/inboxfolio/inboxfolio/app/database"
	"github.com/inboxfolio/inboxfolio/app/email"
)

type stubRepo struct {
	emails    []database.Email
	insertErr error
}

func (s *stubRepo) GetAllEmails() ([]database.Email, error) {
	return s.emails, nil
}

func (s *stubRepo) GetEmailBySlug(slug string) (*database.Email, error) {
	for _, e := range s.emails {
		if e.Slug == slug {
			found := e
			return &found, nil
		}
	}
	return nil, nil
}

func (s *stubRepo) InsertEmail(newEmail database.NewEmail) (*database.Email, error) {
	if s.insertErr != nil {
		return nil, s.insertErr
	}
	stored := database.Email{
		ID:         int64(len(s.emails) + 1),
		Subject:    newEmail.Subject,
		FromEmail:  newEmail.FromEmail,
		ToEmail:    newEmail.ToEmail,
		ReceivedAt: newEmail.ReceivedAt,
		Slug:       newEmail.Slug,
	}
	s.emails = append(s.emails, stored)
	return &stored, nil
}

func (s *stubRepo) GetEmailCount() (int, error) {
	return len(s.emails), nil
}

func seedPayload() email.Payload {
	return email.Payload{
		Subject:    "Welcome",
		FromEmail:  "a@b.com",
		ToEmail:    "c@d.com",
		ReceivedAt: "2024-01-01",
	}
}

func TestSeedEmailTaskExecute(t *testing.T) {
	repo := &stubRepo{}
	task := NewSeedEmailTask(seedPayload(), email.NewIngestor(repo))
	task.Start()

	if err := task.Execute(context.Background()); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if len(repo.emails) != 1 {
		t.Fatalf("Expected 1 stored email, got %d", len(repo.emails))
	}
	if repo.emails[0].Slug != "welcome" {
		t.Errorf("Expected slug 'welcome', got '%s'", repo.emails[0].Slug)
	}
}

func TestSeedEmailTaskInvalidPayloadNotRetried(t *testing.T) {
	payload := seedPayload()
	payload.FromEmail = "broken"
	task := NewSeedEmailTask(payload, email.NewIngestor(&stubRepo{}))

	// Invalid seed data is skipped, not surfaced as a retryable failure
	if err := task.Execute(context.Background()); err != nil {
		t.Errorf("Expected invalid payload to be skipped, got %v", err)
	}
}

func TestSeedEmailTaskStorageErrorRetryable(t *testing.T) {
	repo := &stubRepo{insertErr: errors.New("disk full")}
	task := NewSeedEmailTask(seedPayload(), email.NewIngestor(repo))

	if err := task.Execute(context.Background()); err == nil {
		t.Error("Expected storage error to surface")
	}
}

func TestSeedEmailTaskCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	task := NewSeedEmailTask(seedPayload(), email.NewIngestor(&stubRepo{}))
	if err := task.Execute(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestTaskRetryAccounting(t *testing.T) {
	task := NewTask(TaskTypeSeedEmail, "Welcome")

	if !task.CanRetry() {
		t.Error("Expected fresh task to be retryable")
	}
	for i := 0; i < DefaultMaxRetries; i++ {
		task.IncrementRetryCount()
	}
	if task.CanRetry() {
		t.Error("Expected task to be exhausted after max retries")
	}
	if task.GetRetryCount() != DefaultMaxRetries {
		t.Errorf("Expected retry count %d, got %d", DefaultMaxRetries, task.GetRetryCount())
	}
}
