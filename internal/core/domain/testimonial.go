package domain

import "time"

// TestimonialStatus is the moderation state of a testimonial.
type TestimonialStatus string

const (
	TestimonialPending  TestimonialStatus = "pending"
	TestimonialApproved TestimonialStatus = "approved"
	TestimonialRejected TestimonialStatus = "rejected"
)

const (
	MinRating     = 1
	MaxRating     = 5
	DefaultRating = 5
)

// Valid reports whether s is one of the known moderation states.
func (s TestimonialStatus) Valid() bool {
	switch s {
	case TestimonialPending, TestimonialApproved, TestimonialRejected:
		return true
	}
	return false
}

// Testimonial is a visitor-submitted review awaiting or past moderation.
type Testimonial struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Email     string            `json:"email"`
	Company   string            `json:"company"`
	Position  string            `json:"position"`
	Message   string            `json:"message"`
	Rating    int               `json:"rating"`
	Status    TestimonialStatus `json:"status"`
	CreatedAt time.Time         `json:"created_at"`
}
