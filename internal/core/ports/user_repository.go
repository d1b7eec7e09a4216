package ports

import (
	"context"

	"github.com/rasulmamishov/portfolio-api/internal/core/domain"
)

// UserRepository is the credential store.
type UserRepository interface {
	// FindByIdentifier matches the identifier against username or email.
	// When both a username and a different account's email match, the
	// username match wins.
	FindByIdentifier(ctx context.Context, identifier string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// Create inserts the user and returns the stored row. Returns
	// domain.ErrUserExists when the username or email is taken.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// GetRole reads the role as currently stored, bypassing any token claim.
	GetRole(ctx context.Context, id string) (domain.Role, error)
	List(ctx context.Context) ([]*domain.User, error)
	Count(ctx context.Context) (int64, error)
	UpdatePasswordHash(ctx context.Context, id, hash string) error
}

// RoleResolver is the narrow view of the credential store the access gate needs.
type RoleResolver interface {
	GetRole(ctx context.Context, id string) (domain.Role, error)
}
