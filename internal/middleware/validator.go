package middleware

import (
	"fmt"
	"regexp"
	"strings"
)

// Input validation and sanitization utilities

var (
	clientIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,64}$`)
	recordIDPattern = regexp.MustCompile(`^[a-f0-9]{8}-[a-f0-9]{4}-[a-f0-9]{4}-[a-f0-9]{4}-[a-f0-9]{12}$`)
)

// SanitizeString removes dangerous characters from strings
func SanitizeString(input string) string {
	input = strings.ReplaceAll(input, "\x00", "")

	// Remove control characters
	var result strings.Builder
	for _, r := range input {
		if r >= 32 || r == '\t' || r == '\n' {
			result.WriteRune(r)
		}
	}
	return strings.TrimSpace(result.String())
}

// ValidateClientID validates API client names from config
func ValidateClientID(client string) error {
	if client == "" {
		return fmt.Errorf("client ID cannot be empty")
	}
	if !clientIDPattern.MatchString(client) {
		return fmt.Errorf("invalid client ID format (alphanumeric, dash, underscore only, max 64 chars)")
	}
	return nil
}

// ValidateRecordID validates history record ids (UUID)
func ValidateRecordID(id string) error {
	if id == "" {
		return fmt.Errorf("record ID cannot be empty")
	}
	if !recordIDPattern.MatchString(strings.ToLower(id)) {
		return fmt.Errorf("invalid record ID format")
	}
	return nil
}

// ValidateLimit validates the history limit
func ValidateLimit(limit int) int {
	if limit <= 0 {
		return 10 // default
	}
	if limit > 100 {
		return 100 // max limit
	}
	return limit
}
