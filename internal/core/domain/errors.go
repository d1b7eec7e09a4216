package domain

import "errors"

var (
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrUserExists          = errors.New("username or email already exists")
	ErrUserNotFound        = errors.New("user not found")
	ErrTokenMissing        = errors.New("authorization token is required")
	ErrTokenInvalid        = errors.New("invalid token")
	ErrTokenExpired        = errors.New("token has expired")
	ErrForbidden           = errors.New("admin access required")
	ErrTestimonialNotFound = errors.New("testimonial not found")
	ErrMessageNotFound     = errors.New("message not found")
	ErrTooManyAttempts     = errors.New("too many login attempts, try again later")
)

// ValidationError reports input that was missing or malformed. The message
// is safe to show to the client.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError builds a ValidationError with the given message.
func NewValidationError(msg string) error {
	return &ValidationError{Message: msg}
}

// IsValidation reports whether err is, or wraps, a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
