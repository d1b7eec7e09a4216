package ports

import (
	"context"

	"github.com/rasulmamishov/portfolio-api/internal/core/domain"
)

// TestimonialFilter narrows a testimonial listing. An empty Status lists all.
type TestimonialFilter struct {
	Status domain.TestimonialStatus
}

// TestimonialRepository persists testimonials. Listings are newest first.
type TestimonialRepository interface {
	Create(ctx context.Context, t *domain.Testimonial) (string, error)
	List(ctx context.Context, filter TestimonialFilter) ([]*domain.Testimonial, error)
	// UpdateStatus returns domain.ErrTestimonialNotFound when no row matched.
	UpdateStatus(ctx context.Context, id string, status domain.TestimonialStatus) error
	// Delete returns domain.ErrTestimonialNotFound when no row matched.
	Delete(ctx context.Context, id string) error
	// Count counts rows with the given status, or all rows when status is empty.
	Count(ctx context.Context, status domain.TestimonialStatus) (int64, error)
}

// ContactRepository persists contact-form messages. Listings are newest first.
type ContactRepository interface {
	Create(ctx context.Context, m *domain.ContactMessage) (string, error)
	List(ctx context.Context) ([]*domain.ContactMessage, error)
	// UpdateStatus returns domain.ErrMessageNotFound when no row matched.
	UpdateStatus(ctx context.Context, id string, status domain.MessageStatus) error
	Count(ctx context.Context, status domain.MessageStatus) (int64, error)
}
