// internal/app/system/authutil/authutil.go
// Package authutil provides centralized credential field handling
// for the register and login forms.
package authutil

import (
	"errors"

	"github.com/dalemusser/studyhours/internal/app/system/normalize"
)

// Common validation errors
var (
	ErrLoginIDRequired     = errors.New("Username is required.")
	ErrPasswordRequired    = errors.New("Password is required.")
	ErrDisplayNameRequired = errors.New("Registered name is required.")
)

// Credentials holds the raw form values for a login attempt.
type Credentials struct {
	LoginID  string
	Password string
}

// Registration holds the raw form values for a new identity.
type Registration struct {
	Credentials
	DisplayName string
}

// Validate checks that both fields are present. Both are taken exactly as
// typed: login IDs are case-sensitive and whitespace is significant.
func (c *Credentials) Validate() error {
	if c.LoginID == "" {
		return ErrLoginIDRequired
	}
	if c.Password == "" {
		return ErrPasswordRequired
	}
	if len(c.Password) > MaxPasswordLength {
		return ErrPasswordTooLong
	}
	return nil
}

// Validate checks the credentials and the display name.
func (r *Registration) Validate() error {
	if err := r.Credentials.Validate(); err != nil {
		return err
	}
	r.DisplayName = normalize.Name(r.DisplayName)
	if r.DisplayName == "" {
		return ErrDisplayNameRequired
	}
	return nil
}
