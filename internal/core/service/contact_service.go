package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/rasulmamishov/portfolio-api/internal/core/domain"
	"github.com/rasulmamishov/portfolio-api/internal/core/ports"
)

type ContactService struct {
	repo ports.ContactRepository
	log  zerolog.Logger
}

func NewContactService(repo ports.ContactRepository, log zerolog.Logger) *ContactService {
	return &ContactService{repo: repo, log: log}
}

func (s *ContactService) Submit(ctx context.Context, in ports.SubmitContactInput) (string, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.TrimSpace(in.Email)
	message := strings.TrimSpace(in.Message)
	if name == "" || email == "" || message == "" {
		return "", domain.NewValidationError("name, email, and message are required")
	}

	subject := strings.TrimSpace(in.Subject)
	if subject == "" {
		subject = domain.DefaultSubject
	}

	id, err := s.repo.Create(ctx, &domain.ContactMessage{
		Name:      name,
		Email:     email,
		Subject:   subject,
		Message:   message,
		Status:    domain.MessageUnread,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return "", fmt.Errorf("submit contact message: %w", err)
	}

	s.log.Info().Str("message_id", id).Str("name", name).Msg("contact message received")
	return id, nil
}

func (s *ContactService) List(ctx context.Context) ([]*domain.ContactMessage, error) {
	return s.repo.List(ctx)
}

func (s *ContactService) UpdateStatus(ctx context.Context, id, status string) error {
	next := domain.MessageStatus(status)
	if !next.Valid() {
		return domain.NewValidationError("invalid status")
	}
	return s.repo.UpdateStatus(ctx, id, next)
}
