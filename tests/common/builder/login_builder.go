//go:build unit || e2e

package builder

import (
	reqdto "restaurant-pos/internal/handler/dto/request"
)

// LoginBuilder signs in as a seeded UserBuilder unless a field is overridden.
type LoginBuilder struct {
	email    string
	password string
}

func NewLoginBuilder(u *UserBuilder) *LoginBuilder {
	return &LoginBuilder{email: u.Email, password: u.Password}
}

func (l *LoginBuilder) WithPassword(pw string) *LoginBuilder {
	l.password = pw
	return l
}

func (l *LoginBuilder) BuildDTO() reqdto.LoginRequest {
	return reqdto.LoginRequest{Email: l.email, Password: l.password}
}
