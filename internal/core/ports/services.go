package ports

import (
	"context"

	"github.com/rasulmamishov/portfolio-api/internal/core/domain"
)

// AuthResult is returned by a successful login or registration.
type AuthResult struct {
	Token string
	User  domain.PublicUser
}

// LoginInput carries the credentials and the caller address used for throttling.
type LoginInput struct {
	Identifier string
	Password   string
	ClientIP   string
}

type AuthService interface {
	Login(ctx context.Context, in LoginInput) (*AuthResult, error)
	Register(ctx context.Context, username, email, password string) (*AuthResult, error)
	CurrentUser(ctx context.Context, id string) (*domain.PublicUser, error)
}

// TokenService issues and verifies signed session tokens.
type TokenService interface {
	Issue(user *domain.User) (string, error)
	Verify(raw string) (*domain.Principal, error)
}

// AccessGate turns an Authorization header into a principal.
type AccessGate interface {
	// Authenticate verifies the bearer token only.
	Authenticate(ctx context.Context, authorization string) (*domain.Principal, error)
	// AuthorizeAdmin verifies the token and then requires the stored role to be admin.
	AuthorizeAdmin(ctx context.Context, authorization string) (*domain.Principal, error)
}

// SubmitTestimonialInput is the public testimonial form.
type SubmitTestimonialInput struct {
	Name     string
	Email    string
	Company  string
	Position string
	Message  string
	Rating   *int
}

type TestimonialService interface {
	Submit(ctx context.Context, in SubmitTestimonialInput) (string, error)
	ListPublic(ctx context.Context) ([]*domain.Testimonial, error)
	ListAll(ctx context.Context) ([]*domain.Testimonial, error)
	UpdateStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
}

// SubmitContactInput is the public contact form.
type SubmitContactInput struct {
	Name    string
	Email   string
	Subject string
	Message string
}

type ContactService interface {
	Submit(ctx context.Context, in SubmitContactInput) (string, error)
	List(ctx context.Context) ([]*domain.ContactMessage, error)
	UpdateStatus(ctx context.Context, id, status string) error
}

type AdminService interface {
	Stats(ctx context.Context) (*domain.Stats, error)
	Users(ctx context.Context) ([]domain.PublicUser, error)
}

// LoginThrottle limits repeated failed logins. Implementations must fail open
// on backend errors.
type LoginThrottle interface {
	Allow(ctx context.Context, identifier, ip string) error
	RecordFailure(ctx context.Context, identifier, ip string)
	Reset(ctx context.Context, identifier string)
}
