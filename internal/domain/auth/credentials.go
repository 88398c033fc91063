package auth

import (
	"errors"

	"restaurant-pos/internal/domain/user"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

// Credentials is a sign-in attempt that passed local validation: the email is normalized and
// the password meets the length rule. Nothing here has been checked against the identity store.
type Credentials struct {
	Email    string
	Password string
}

func ParseCredentials(email, password string) (Credentials, error) {
	e, err := user.NewEmail(email)
	if err != nil {
		return Credentials{}, err
	}
	p, err := user.NewPassword(password)
	if err != nil {
		return Credentials{}, err
	}
	return Credentials{Email: e.Value(), Password: p.Value()}, nil
}
