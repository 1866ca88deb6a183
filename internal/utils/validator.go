package utils

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var (
	emailRegex    = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	usernameRegex = regexp.MustCompile(`^[a-z0-9_.]{3,30}$`)
)

// ValidateEmail validates an email address
func ValidateEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// ValidateUsername accepts 3-30 lowercase letters, digits, dots and underscores
func ValidateUsername(username string) bool {
	return usernameRegex.MatchString(username)
}

// ValidatePassword requires at least 8 characters and no more than bcrypt can hash
func ValidatePassword(password string) bool {
	return len(password) >= 8 && len(password) <= MaxPasswordBytes
}

// ValidateID reports whether id is a well-formed identifier
func ValidateID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// Normalize lowercases and trims an identity field such as email or username
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Blank reports whether any of the values is empty after trimming
func Blank(values ...string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			return true
		}
	}
	return false
}
