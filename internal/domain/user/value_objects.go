package user

import (
	"errors"
	"regexp"
	"strings"
)

var (
	ErrInvalidEmail    = errors.New("invalid email format")
	ErrInvalidRole     = errors.New("invalid role")
	ErrInvalidLanguage = errors.New("invalid language tag")
	ErrPasswordTooWeak = errors.New("password must be at least 6 characters long")
	ErrFullNameEmpty   = errors.New("full name is required")
)

const DefaultLanguage = "en"

var (
	emailRegex    = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	languageRegex = regexp.MustCompile(`^[a-z]{2}(-[A-Z]{2})?$`)
)

type Email struct {
	value string
}

func NewEmail(s string) (Email, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if !emailRegex.MatchString(s) {
		return Email{}, ErrInvalidEmail
	}
	return Email{value: s}, nil
}

func (e Email) Value() string {
	return e.value
}

type Password struct {
	value string
}

func NewPassword(s string) (Password, error) {
	if len(s) < 6 {
		return Password{}, ErrPasswordTooWeak
	}
	return Password{value: s}, nil
}

func (p Password) Value() string {
	return p.value
}

// NewLanguage accepts "en" or "en-US" style tags.
func NewLanguage(s string) (string, error) {
	s = strings.TrimSpace(s)
	if !languageRegex.MatchString(s) {
		return "", ErrInvalidLanguage
	}
	return s, nil
}
