package utils

import (
	"regexp"
	"strings"
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	hhmmRegex  = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)
)

func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// IsValidTimeOfDay reports whether value is a well-formed 24h HH:MM string.
func IsValidTimeOfDay(value string) bool {
	return hhmmRegex.MatchString(value)
}

// WithinOperatingHours checks a HH:MM value against branch operating hours.
// HH:MM strings compare correctly as strings once the format is validated.
func WithinOperatingHours(value string) bool {
	if !IsValidTimeOfDay(value) {
		return false
	}
	return value >= OperatingHoursMin && value <= OperatingHoursMax
}

func SanitizeString(input string) string {
	htmlRegex := regexp.MustCompile(`<[^>]*>`)
	cleaned := htmlRegex.ReplaceAllString(input, "")
	return strings.TrimSpace(cleaned)
}
