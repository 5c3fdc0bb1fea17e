package services

import (
	"strings"

	"github.com/google/uuid"
)

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// isValidID reports whether s is a well-formed record identifier. Malformed
// identifiers are treated the same as absent records.
func isValidID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
