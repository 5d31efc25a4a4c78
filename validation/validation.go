// Package validation holds the field-format checks shared by the user,
// book and review flows.
package validation

import (
	"fmt"
	"regexp"

	"github.com/google/uuid"
)

var (
	phoneRX = regexp.MustCompile(`^[0-9]{10}$`)
	emailRX = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,3})+$`)
	// YYYY-MM-DD or YYYY/MM/DD, separators - or /.
	dateRX = regexp.MustCompile(`^(\d{4})[-/](\d{2})[-/](\d{2})$`)
)

// UserTitles are the accepted honorifics for a user record.
var UserTitles = []string{"Mr", "Mrs", "Miss"}

// ValidID reports whether s parses as a UUID.
func ValidID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

func ValidPhone(s string) bool {
	return phoneRX.MatchString(s)
}

func ValidEmail(s string) bool {
	return emailRX.MatchString(s)
}

func ValidDate(s string) bool {
	return dateRX.MatchString(s)
}

// NormalizeDate rewrites a date accepted by ValidDate to its YYYY-MM-DD
// form. The input must already have passed ValidDate.
func NormalizeDate(s string) string {
	m := dateRX.FindStringSubmatch(s)
	if m == nil {
		return s
	}
	return fmt.Sprintf("%s-%s-%s", m[1], m[2], m[3])
}

// ValidRating reports whether r is an allowed review rating.
func ValidRating(r int) bool {
	return r >= 1 && r <= 5
}

// In reports whether value is present in list.
func In(value string, list ...string) bool {
	for _, item := range list {
		if value == item {
			return true
		}
	}
	return false
}
