package utils

import "strings"

// NormalizePhoneNumber strips spaces, dashes and a leading +91/91/0 prefix so
// Indian mobile numbers are stored as their bare 10 digits.
func NormalizePhoneNumber(phone string) string {
	cleaned := strings.NewReplacer(" ", "", "-", "", "(", "", ")", "").Replace(phone)

	if strings.HasPrefix(cleaned, "+91") {
		cleaned = cleaned[3:]
	} else if strings.HasPrefix(cleaned, "91") && len(cleaned) == 12 {
		cleaned = cleaned[2:]
	} else if strings.HasPrefix(cleaned, "0") && len(cleaned) == 11 {
		cleaned = cleaned[1:]
	}

	return cleaned
}

// ValidatePhoneNumber accepts 10-digit Indian mobile numbers starting with
// 6, 7, 8 or 9, with or without a +91/91/0 prefix.
func ValidatePhoneNumber(phone string) bool {
	cleaned := NormalizePhoneNumber(phone)

	if len(cleaned) != 10 {
		return false
	}

	for _, r := range cleaned {
		if r < '0' || r > '9' {
			return false
		}
	}

	first := cleaned[0]
	return first >= '6' && first <= '9'
}
