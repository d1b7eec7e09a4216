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

type TestimonialService struct {
	repo ports.TestimonialRepository
	log  zerolog.Logger
}

func NewTestimonialService(repo ports.TestimonialRepository, log zerolog.Logger) *TestimonialService {
	return &TestimonialService{repo: repo, log: log}
}

// Submit stores a new testimonial. It always starts pending, whatever the caller sends.
func (s *TestimonialService) Submit(ctx context.Context, in ports.SubmitTestimonialInput) (string, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.TrimSpace(in.Email)
	message := strings.TrimSpace(in.Message)
	if name == "" || email == "" || message == "" {
		return "", domain.NewValidationError("name, email, and message are required")
	}

	rating := domain.DefaultRating
	if in.Rating != nil {
		rating = *in.Rating
	}
	if rating < domain.MinRating || rating > domain.MaxRating {
		return "", domain.NewValidationError(fmt.Sprintf("rating must be between %d and %d", domain.MinRating, domain.MaxRating))
	}

	id, err := s.repo.Create(ctx, &domain.Testimonial{
		Name:      name,
		Email:     email,
		Company:   strings.TrimSpace(in.Company),
		Position:  strings.TrimSpace(in.Position),
		Message:   message,
		Rating:    rating,
		Status:    domain.TestimonialPending,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return "", fmt.Errorf("submit testimonial: %w", err)
	}

	s.log.Info().Str("testimonial_id", id).Str("name", name).Msg("testimonial submitted")
	return id, nil
}

// ListPublic returns approved testimonials only.
func (s *TestimonialService) ListPublic(ctx context.Context) ([]*domain.Testimonial, error) {
	return s.repo.List(ctx, ports.TestimonialFilter{Status: domain.TestimonialApproved})
}

// ListAll returns testimonials in every moderation state.
func (s *TestimonialService) ListAll(ctx context.Context) ([]*domain.Testimonial, error) {
	return s.repo.List(ctx, ports.TestimonialFilter{})
}

// UpdateStatus validates the status before the repository is touched.
func (s *TestimonialService) UpdateStatus(ctx context.Context, id, status string) error {
	next := domain.TestimonialStatus(status)
	if !next.Valid() {
		return domain.NewValidationError("invalid status")
	}
	if err := s.repo.UpdateStatus(ctx, id, next); err != nil {
		return err
	}
	s.log.Info().Str("testimonial_id", id).Str("status", status).Msg("testimonial moderated")
	return nil
}

func (s *TestimonialService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("testimonial_id", id).Msg("testimonial deleted")
	return nil
}
