package domain

import (
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Session is the persisted record of a signed-in user. The mocked login
// derives the display fields from the email alone.
type Session struct {
	Name      string
	Email     string
	Avatar    string
	CreatedAt time.Time
}

// Claims are the fields embedded into the session token.
type Claims struct {
	Name  string
	Email string
}

var titleCaser = cases.Title(language.Und)

// NewSession builds a session for the given email. The display name is the
// title-cased local part of the address and the avatar is a placeholder
// image seeded with the first letter.
func NewSession(email string) Session {
	local, _, _ := strings.Cut(email, "@")
	initial := ""
	if local != "" {
		initial = strings.ToUpper(local[:1])
	}
	return Session{
		Name:      titleCaser.String(local),
		Email:     email,
		Avatar:    "/placeholder.svg?height=40&width=40&text=" + initial,
		CreatedAt: time.Now().UTC(),
	}
}

// ResetCode is the ephemeral verification record of a password-recovery
// attempt. The window is fixed at issue time; once it elapses the code is
// useless and the user must request a new one.
type ResetCode struct {
	Code      string
	Email     string
	ExpiresAt time.Time
}

// Expired reports whether the verification window has elapsed at t.
func (c ResetCode) Expired(t time.Time) bool {
	return !t.Before(c.ExpiresAt)
}

// HashPassword hashes a recovered password with bcrypt before it is stored.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}
