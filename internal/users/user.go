package users

import (
	"fmt"
	"strings"

	"github.com/2beens/ironlog/pkg"
)

const minPasswordLength = 6

type User struct {
	ID           int           `json:"user_id"`
	Username     string        `json:"username"`
	Email        string        `json:"email"`
	PasswordHash string        `json:"-"`
	CreatedAt    pkg.Timestamp `json:"created_at"`
}

type SignupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *SignupRequest) Validate() error {
	r.Username = strings.TrimSpace(r.Username)
	r.Email = strings.TrimSpace(r.Email)
	switch {
	case r.Username == "":
		return fmt.Errorf("%w: username is required", pkg.ErrValidation)
	case r.Email == "":
		return fmt.Errorf("%w: email is required", pkg.ErrValidation)
	case r.Password == "":
		return fmt.Errorf("%w: password is required", pkg.ErrValidation)
	case len(r.Password) < minPasswordLength:
		return fmt.Errorf("%w: password must be at least %d characters", pkg.ErrValidation, minPasswordLength)
	}
	return nil
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	r.Username = strings.TrimSpace(r.Username)
	if r.Username == "" {
		return fmt.Errorf("%w: username is required", pkg.ErrValidation)
	}
	if r.Password == "" {
		return fmt.Errorf("%w: password is required", pkg.ErrValidation)
	}
	return nil
}

type LoginResponse struct {
	Token    string `json:"token"`
	UserID   int    `json:"user_id"`
	Username string `json:"username"`
}

type LogoutResponse struct {
	LoggedOut bool `json:"logged_out"`
}
