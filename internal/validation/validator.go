package validation

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/blog-community-api/internal/models"
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	slugRegex  = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
)

// MinPasswordLength is the minimum accepted password length
const MinPasswordLength = 8

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

// ValidationErrors is the error returned for invalid request input
type ValidationErrors []ValidationError

// Error implements the error interface
func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(v))
	for _, e := range v {
		parts = append(parts, fmt.Sprintf("%s: %s", e.Field, e.Message))
	}
	return strings.Join(parts, "; ")
}

// OrNil returns the slice as an error, or nil when empty
func (v ValidationErrors) OrNil() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

// ValidateRegistration validates a password registration request
func ValidateRegistration(email, password, displayName string) error {
	var errs ValidationErrors

	if email == "" {
		errs = append(errs, ValidationError{Field: "email", Message: "email is required"})
	} else if !emailRegex.MatchString(email) {
		errs = append(errs, ValidationError{Field: "email", Message: "invalid email format", Value: email})
	}

	if password == "" {
		errs = append(errs, ValidationError{Field: "password", Message: "password is required"})
	} else if len(password) < MinPasswordLength {
		errs = append(errs, ValidationError{
			Field:   "password",
			Message: fmt.Sprintf("password must be at least %d characters", MinPasswordLength),
		})
	}

	if strings.TrimSpace(displayName) == "" {
		errs = append(errs, ValidationError{Field: "displayName", Message: "display name is required"})
	}

	return errs.OrNil()
}

// ValidateLogin validates a password login request
func ValidateLogin(email, password string) error {
	var errs ValidationErrors

	if email == "" {
		errs = append(errs, ValidationError{Field: "email", Message: "email is required"})
	} else if !emailRegex.MatchString(email) {
		errs = append(errs, ValidationError{Field: "email", Message: "invalid email format", Value: email})
	}

	if password == "" {
		errs = append(errs, ValidationError{Field: "password", Message: "password is required"})
	}

	return errs.OrNil()
}

// ValidateComment validates a comment submission. Runs before any mention
// processing: an over-long body must never reach the encoder.
func ValidateComment(postID int64, content string) error {
	var errs ValidationErrors

	if postID <= 0 {
		errs = append(errs, ValidationError{Field: "postId", Message: "postId must be a positive integer", Value: postID})
	}

	if content == "" {
		errs = append(errs, ValidationError{Field: "content", Message: "comment cannot be empty"})
	} else if utf8.RuneCountInString(content) > models.MaxCommentLength {
		errs = append(errs, ValidationError{
			Field:   "content",
			Message: fmt.Sprintf("comment must be at most %d characters", models.MaxCommentLength),
		})
	}

	return errs.OrNil()
}

// ValidatePost validates post create/update input
func ValidatePost(title, slug, content string) error {
	var errs ValidationErrors

	if strings.TrimSpace(title) == "" {
		errs = append(errs, ValidationError{Field: "title", Message: "title is required"})
	}

	if slug == "" {
		errs = append(errs, ValidationError{Field: "slug", Message: "slug is required"})
	} else if !slugRegex.MatchString(slug) {
		errs = append(errs, ValidationError{
			Field:   "slug",
			Message: "slug must be kebab-case (lowercase letters, numbers, hyphens)",
			Value:   slug,
		})
	}

	if strings.TrimSpace(content) == "" {
		errs = append(errs, ValidationError{Field: "content", Message: "content is required"})
	}

	return errs.OrNil()
}

// ValidateEvent validates event creation input
func ValidateEvent(title, description string, eventDate time.Time, now time.Time) error {
	var errs ValidationErrors

	if strings.TrimSpace(title) == "" {
		errs = append(errs, ValidationError{Field: "title", Message: "title is required"})
	}

	if strings.TrimSpace(description) == "" {
		errs = append(errs, ValidationError{Field: "description", Message: "description is required"})
	}

	if eventDate.IsZero() {
		errs = append(errs, ValidationError{Field: "eventDate", Message: "eventDate is required"})
	} else if !eventDate.After(now) {
		errs = append(errs, ValidationError{Field: "eventDate", Message: "event date must be in the future"})
	}

	return errs.OrNil()
}
