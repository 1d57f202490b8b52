package domain

import (
	"strings"
	"time"
)

type User struct {
	ID           string
	Email        string // domain portion stored lower-cased
	Name         string
	PasswordHash string // argon2 encoded, never serialized
	IsActive     bool
	IsStaff      bool
	IsSuperuser  bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NormalizeEmail lower-cases the domain portion of an email address. The
// local part is preserved as entered, so "Test@EXAMPLE.com" becomes
// "Test@example.com". Addresses without an "@" are returned unchanged;
// validation is a separate concern.
func NormalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}
	return email[:at+1] + strings.ToLower(email[at+1:])
}
