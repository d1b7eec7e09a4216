package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/rasulmamishov/portfolio-api/internal/core/domain"
	"github.com/rasulmamishov/portfolio-api/internal/core/ports"
)

// AccessGate guards privileged operations.
//
// Policy: the credential store is the authority for roles and the token
// claim is only a cache for display. AuthorizeAdmin therefore re-reads the
// role on every call, so a demotion takes effect on the next request without
// reissuing tokens. Do not replace the lookup with the token's role claim.
type AccessGate struct {
	tokens ports.TokenService
	roles  ports.RoleResolver
	log    zerolog.Logger
}

func NewAccessGate(tokens ports.TokenService, roles ports.RoleResolver, log zerolog.Logger) *AccessGate {
	return &AccessGate{tokens: tokens, roles: roles, log: log}
}

// Authenticate verifies the bearer token in an Authorization header value.
func (g *AccessGate) Authenticate(_ context.Context, authorization string) (*domain.Principal, error) {
	raw, err := bearerToken(authorization)
	if err != nil {
		return nil, err
	}
	return g.tokens.Verify(raw)
}

// AuthorizeAdmin authenticates the caller and then requires the role stored
// for the token's subject to be admin. The returned principal carries the
// stored role.
func (g *AccessGate) AuthorizeAdmin(ctx context.Context, authorization string) (*domain.Principal, error) {
	p, err := g.Authenticate(ctx, authorization)
	if err != nil {
		return nil, err
	}

	role, err := g.roles.GetRole(ctx, p.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			g.log.Warn().Str("user_id", p.UserID).Msg("admin access denied: subject no longer exists")
			return nil, domain.ErrForbidden
		}
		return nil, err
	}
	if role != domain.RoleAdmin {
		g.log.Warn().Str("user_id", p.UserID).Str("role", string(role)).Msg("admin access denied")
		return nil, domain.ErrForbidden
	}

	p.Role = role
	return p, nil
}

// bearerToken extracts the token from "Bearer <token>". An empty header is a
// missing token; anything else that does not fit the scheme is invalid.
func bearerToken(header string) (string, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", domain.ErrTokenMissing
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", domain.ErrTokenInvalid
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", domain.ErrTokenMissing
	}
	return token, nil
}
