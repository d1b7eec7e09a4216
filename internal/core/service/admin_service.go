package service

import (
	"context"
	"fmt"

	"github.com/rasulmamishov/portfolio-api/internal/core/domain"
	"github.com/rasulmamishov/portfolio-api/internal/core/ports"
)

// AdminService builds the dashboard views. Callers must already have passed
// the admin gate.
type AdminService struct {
	users        ports.UserRepository
	testimonials ports.TestimonialRepository
	messages     ports.ContactRepository
}

func NewAdminService(users ports.UserRepository, testimonials ports.TestimonialRepository, messages ports.ContactRepository) *AdminService {
	return &AdminService{users: users, testimonials: testimonials, messages: messages}
}

func (s *AdminService) Stats(ctx context.Context) (*domain.Stats, error) {
	var (
		st  domain.Stats
		err error
	)

	if st.TotalUsers, err = s.users.Count(ctx); err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	if st.TotalTestimonials, err = s.testimonials.Count(ctx, ""); err != nil {
		return nil, fmt.Errorf("count testimonials: %w", err)
	}
	if st.PendingTestimonials, err = s.testimonials.Count(ctx, domain.TestimonialPending); err != nil {
		return nil, fmt.Errorf("count pending testimonials: %w", err)
	}
	if st.TotalMessages, err = s.messages.Count(ctx, ""); err != nil {
		return nil, fmt.Errorf("count messages: %w", err)
	}
	if st.UnreadMessages, err = s.messages.Count(ctx, domain.MessageUnread); err != nil {
		return nil, fmt.Errorf("count unread messages: %w", err)
	}
	return &st, nil
}

// Users lists every account without credential material.
func (s *AdminService) Users(ctx context.Context) ([]domain.PublicUser, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	out := make([]domain.PublicUser, 0, len(users))
	for _, u := range users {
		out = append(out, u.Public())
	}
	return out, nil
}
