package handler

import "github.com/rasulmamishov/portfolio-api/internal/core/domain"

// Auth

// loginRequest accepts the identifier under any of three names; identifier
// wins over email, which wins over username.
type loginRequest struct {
	Identifier string `json:"identifier" validate:"omitempty,max=255"`
	Email      string `json:"email"      validate:"omitempty,max=255"`
	Username   string `json:"username"   validate:"omitempty,max=255"`
	Password   string `json:"password"   validate:"max=72"`
}

func (r loginRequest) identifier() string {
	switch {
	case r.Identifier != "":
		return r.Identifier
	case r.Email != "":
		return r.Email
	default:
		return r.Username
	}
}

// registerRequest has no role field: self-service accounts are always users.
type registerRequest struct {
	Username string `json:"username" validate:"max=64"`
	Email    string `json:"email"    validate:"omitempty,email,max=255"`
	Password string `json:"password" validate:"max=72"`
}

type authResponse struct {
	Message string            `json:"message"`
	Token   string            `json:"token"`
	User    domain.PublicUser `json:"user"`
}

type meResponse struct {
	User *domain.PublicUser `json:"user"`
}

// Content

type submitTestimonialRequest struct {
	Name     string `json:"name"     validate:"max=255"`
	Email    string `json:"email"    validate:"omitempty,email,max=255"`
	Company  string `json:"company"  validate:"max=255"`
	Position string `json:"position" validate:"max=255"`
	Message  string `json:"message"  validate:"max=5000"`
	Rating   *int   `json:"rating"`
}

type submitContactRequest struct {
	Name    string `json:"name"    validate:"max=255"`
	Email   string `json:"email"   validate:"omitempty,email,max=255"`
	Subject string `json:"subject" validate:"max=255"`
	Message string `json:"message" validate:"max=10000"`
}

type statusRequest struct {
	Status string `json:"status"`
}

type createdResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Error string `json:"error"`
}
