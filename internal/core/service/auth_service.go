package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/rasulmamishov/portfolio-api/internal/core/domain"
	"github.com/rasulmamishov/portfolio-api/internal/core/ports"
)

const (
	minPasswordLength = 6
	// bcrypt rejects inputs longer than this many bytes.
	maxPasswordBytes = 72
)

// AuthService implements registration, login and current-user lookup.
type AuthService struct {
	repo       ports.UserRepository
	tokens     ports.TokenService
	throttle   ports.LoginThrottle
	bcryptCost int
	log        zerolog.Logger
}

// AuthOption customizes an AuthService.
type AuthOption func(*AuthService)

// WithLoginThrottle enables brute-force protection on Login.
func WithLoginThrottle(t ports.LoginThrottle) AuthOption {
	return func(s *AuthService) { s.throttle = t }
}

// WithBcryptCost overrides bcrypt.DefaultCost.
func WithBcryptCost(cost int) AuthOption {
	return func(s *AuthService) {
		if cost >= bcrypt.MinCost && cost <= bcrypt.MaxCost {
			s.bcryptCost = cost
		}
	}
}

func NewAuthService(repo ports.UserRepository, tokens ports.TokenService, log zerolog.Logger, opts ...AuthOption) *AuthService {
	s := &AuthService{
		repo:       repo,
		tokens:     tokens,
		bcryptCost: bcrypt.DefaultCost,
		log:        log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *AuthService) Register(ctx context.Context, username, email, password string) (*ports.AuthResult, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))
	if username == "" || email == "" || password == "" {
		return nil, domain.NewValidationError("username, email and password are required")
	}
	if utf8.RuneCountInString(password) < minPasswordLength {
		return nil, domain.NewValidationError(fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}
	if len(password) > maxPasswordBytes {
		return nil, domain.NewValidationError(fmt.Sprintf("password must be at most %d bytes", maxPasswordBytes))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	created, err := s.repo.Create(ctx, &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(created)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	s.log.Info().Str("user_id", created.ID).Str("username", created.Username).Msg("user registered")
	return &ports.AuthResult{Token: token, User: created.Public()}, nil
}

// Login verifies the password against the stored bcrypt hash only. Unknown
// identifiers and wrong passwords produce the same error.
func (s *AuthService) Login(ctx context.Context, in ports.LoginInput) (*ports.AuthResult, error) {
	identifier := strings.TrimSpace(in.Identifier)
	if identifier == "" || in.Password == "" {
		return nil, domain.NewValidationError("identifier and password are required")
	}

	if s.throttle != nil {
		if err := s.throttle.Allow(ctx, identifier, in.ClientIP); err != nil {
			s.log.Warn().Str("identifier", identifier).Str("ip", in.ClientIP).Msg("login throttled")
			return nil, err
		}
	}

	user, err := s.repo.FindByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.loginFailed(ctx, identifier, in.ClientIP, "unknown identifier")
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)) != nil {
		s.loginFailed(ctx, identifier, in.ClientIP, "password mismatch")
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	if s.throttle != nil {
		s.throttle.Reset(ctx, identifier)
	}
	s.log.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("login succeeded")
	return &ports.AuthResult{Token: token, User: user.Public()}, nil
}

func (s *AuthService) CurrentUser(ctx context.Context, id string) (*domain.PublicUser, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	pub := user.Public()
	return &pub, nil
}

func (s *AuthService) loginFailed(ctx context.Context, identifier, ip, reason string) {
	s.log.Info().Str("identifier", identifier).Str("reason", reason).Msg("login failed")
	if s.throttle != nil {
		s.throttle.RecordFailure(ctx, identifier, ip)
	}
}
