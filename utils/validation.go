// utils/validation.go
package utils

import (
	"regexp"
	"strings"
)

var phoneRegex = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)

// ValidatePhone checks if a phone number is in a valid international format
func ValidatePhone(phone string) bool {
	return phoneRegex.MatchString(cleanPhone(phone))
}

// NormalizePhone strips messaging-channel prefixes ("whatsapp:", "sms:") and
// separators so an inbound sender address matches the stored phone format.
func NormalizePhone(address string) string {
	p := strings.ToLower(strings.TrimSpace(address))
	for _, prefix := range []string{"whatsapp:", "sms:", "tel:"} {
		p = strings.TrimPrefix(p, prefix)
	}
	return cleanPhone(p)
}

func cleanPhone(phone string) string {
	cleaned := strings.ReplaceAll(phone, " ", "")
	cleaned = strings.ReplaceAll(cleaned, "-", "")
	cleaned = strings.ReplaceAll(cleaned, "(", "")
	cleaned = strings.ReplaceAll(cleaned, ")", "")
	return cleaned
}
