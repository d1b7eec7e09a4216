package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/rasulmamishov/portfolio-api/internal/core/domain"
	"github.com/rasulmamishov/portfolio-api/internal/core/ports"
)

func TestContactService_Submit(t *testing.T) {
	repo := &stubContactRepo{}
	svc := NewContactService(repo, zerolog.Nop())

	id, err := svc.Submit(context.Background(), ports.SubmitContactInput{
		Name: "Sam", Email: "sam@example.com", Message: "Hello",
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if id == "" {
		t.Fatalf("expected id")
	}

	got := repo.items[0]
	if got.Subject != domain.DefaultSubject {
		t.Fatalf("expected default subject, got %q", got.Subject)
	}
	if got.Status != domain.MessageUnread {
		t.Fatalf("expected unread, got %s", got.Status)
	}
}

func TestContactService_Submit_Validation(t *testing.T) {
	repo := &stubContactRepo{}
	svc := NewContactService(repo, zerolog.Nop())

	if _, err := svc.Submit(context.Background(), ports.SubmitContactInput{Name: "Sam", Email: "sam@example.com", Message: "   "}); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(repo.items) != 0 {
		t.Fatalf("nothing should be stored")
	}
}

func TestContactService_UpdateStatus(t *testing.T) {
	repo := &stubContactRepo{}
	svc := NewContactService(repo, zerolog.Nop())
	id, _ := svc.Submit(context.Background(), ports.SubmitContactInput{Name: "Sam", Email: "s@x.io", Subject: "Hi", Message: "m"})

	if err := svc.UpdateStatus(context.Background(), id, "read"); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if repo.items[0].Status != domain.MessageRead {
		t.Fatalf("expected read, got %s", repo.items[0].Status)
	}

	if err := svc.UpdateStatus(context.Background(), id, "archived"); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if repo.updateCalls != 1 {
		t.Fatalf("invalid status must not reach the repository, got %d calls", repo.updateCalls)
	}

	if err := svc.UpdateStatus(context.Background(), "77", "read"); !errors.Is(err, domain.ErrMessageNotFound) {
		t.Fatalf("expected ErrMessageNotFound, got %v", err)
	}
}

func TestContactService_List_NewestFirst(t *testing.T) {
	svc := NewContactService(&stubContactRepo{}, zerolog.Nop())
	_, _ = svc.Submit(context.Background(), ports.SubmitContactInput{Name: "A", Email: "a@x.io", Message: "first"})
	second, _ := svc.Submit(context.Background(), ports.SubmitContactInput{Name: "B", Email: "b@x.io", Message: "second"})

	msgs, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(msgs) != 2 || msgs[0].ID != second {
		t.Fatalf("unexpected order: %+v", msgs)
	}
}
