package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/rasulmamishov/portfolio-api/internal/core/domain"
	"github.com/rasulmamishov/portfolio-api/internal/core/ports"
)

func intPtr(v int) *int { return &v }

func TestTestimonialService_Submit_DefaultsToPending(t *testing.T) {
	repo := &stubTestimonialRepo{}
	svc := NewTestimonialService(repo, zerolog.Nop())

	id, err := svc.Submit(context.Background(), ports.SubmitTestimonialInput{
		Name: "Jane", Email: "jane@example.com", Message: "Great work",
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if id == "" {
		t.Fatalf("expected id")
	}

	got := repo.items[0]
	if got.Status != domain.TestimonialPending {
		t.Fatalf("expected pending, got %s", got.Status)
	}
	if got.Rating != domain.DefaultRating {
		t.Fatalf("expected default rating, got %d", got.Rating)
	}
}

func TestTestimonialService_Submit_Validation(t *testing.T) {
	svc := NewTestimonialService(&stubTestimonialRepo{}, zerolog.Nop())

	cases := map[string]ports.SubmitTestimonialInput{
		"missing name":    {Email: "a@b.c", Message: "hi"},
		"missing email":   {Name: "A", Message: "hi"},
		"missing message": {Name: "A", Email: "a@b.c"},
		"rating too low":  {Name: "A", Email: "a@b.c", Message: "hi", Rating: intPtr(0)},
		"rating too high": {Name: "A", Email: "a@b.c", Message: "hi", Rating: intPtr(6)},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := svc.Submit(context.Background(), in); !domain.IsValidation(err) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestTestimonialService_ListPublic_ApprovedOnly(t *testing.T) {
	repo := &stubTestimonialRepo{}
	svc := NewTestimonialService(repo, zerolog.Nop())

	a, _ := svc.Submit(context.Background(), ports.SubmitTestimonialInput{Name: "A", Email: "a@x.io", Message: "one", Rating: intPtr(4)})
	_, _ = svc.Submit(context.Background(), ports.SubmitTestimonialInput{Name: "B", Email: "b@x.io", Message: "two"})
	c, _ := svc.Submit(context.Background(), ports.SubmitTestimonialInput{Name: "C", Email: "c@x.io", Message: "three"})

	if err := svc.UpdateStatus(context.Background(), a, "approved"); err != nil {
		t.Fatalf("approve: %v", err)
	}
	if err := svc.UpdateStatus(context.Background(), c, "rejected"); err != nil {
		t.Fatalf("reject: %v", err)
	}

	public, _ := svc.ListPublic(context.Background())
	if len(public) != 1 || public[0].ID != a {
		t.Fatalf("expected only approved testimonial, got %+v", public)
	}

	all, _ := svc.ListAll(context.Background())
	if len(all) != 3 {
		t.Fatalf("expected 3 testimonials, got %d", len(all))
	}
	if all[0].ID != c {
		t.Fatalf("expected newest first, got %s", all[0].ID)
	}
}

func TestTestimonialService_UpdateStatus_InvalidSkipsRepository(t *testing.T) {
	repo := &stubTestimonialRepo{}
	svc := NewTestimonialService(repo, zerolog.Nop())
	id, _ := svc.Submit(context.Background(), ports.SubmitTestimonialInput{Name: "A", Email: "a@x.io", Message: "m"})

	if err := svc.UpdateStatus(context.Background(), id, "published"); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if repo.updateCalls != 0 {
		t.Fatalf("repository must not be touched, got %d calls", repo.updateCalls)
	}
	if repo.items[0].Status != domain.TestimonialPending {
		t.Fatalf("status changed to %s", repo.items[0].Status)
	}
}

func TestTestimonialService_UpdateStatus_NotFound(t *testing.T) {
	svc := NewTestimonialService(&stubTestimonialRepo{}, zerolog.Nop())

	if err := svc.UpdateStatus(context.Background(), "99", "approved"); !errors.Is(err, domain.ErrTestimonialNotFound) {
		t.Fatalf("expected ErrTestimonialNotFound, got %v", err)
	}
}

func TestTestimonialService_Delete(t *testing.T) {
	repo := &stubTestimonialRepo{}
	svc := NewTestimonialService(repo, zerolog.Nop())
	id, _ := svc.Submit(context.Background(), ports.SubmitTestimonialInput{Name: "A", Email: "a@x.io", Message: "m"})

	if err := svc.Delete(context.Background(), id); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := svc.Delete(context.Background(), id); !errors.Is(err, domain.ErrTestimonialNotFound) {
		t.Fatalf("expected ErrTestimonialNotFound on second delete, got %v", err)
	}
}
