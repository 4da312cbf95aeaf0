package validators

import (
	"strings"
	"time"
)

func IsDate(s string) bool {
	if len(s) != len("2006-01-02") {
		return false
	}
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

// IsTimeOfDay accepts zero-padded 24h "HH:MM".
func IsTimeOfDay(s string) bool {
	if len(s) != len("15:04") {
		return false
	}
	_, err := time.Parse("15:04", s)
	return err == nil
}

// IsMonth accepts "YYYY-MM".
func IsMonth(s string) bool {
	if len(s) != len("2006-01") {
		return false
	}
	_, err := time.Parse("2006-01", s)
	return err == nil
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
