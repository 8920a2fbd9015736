package validation

import (
	"net/mail"
	"regexp"
	"strings"
	"unicode/utf8"
)

type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

// Basic validators. Each records a message code against the field name;
// callers translate codes via i18n.

func Required(field, value string, v Violations) {
	if strings.TrimSpace(value) == "" {
		v[field] = "required"
	}
}

// MinRunes checks the rune length so multibyte names are counted correctly.
func MinRunes(field, value string, minLen int, v Violations) {
	if utf8.RuneCountInString(value) < minLen {
		v[field] = "too_short"
	}
}

var phonePattern = regexp.MustCompile(`^[0-9-]+$`)

// Phone requires at least minLen characters, digits and hyphens only.
func Phone(field, value string, minLen int, v Violations) {
	if len(value) < minLen || !phonePattern.MatchString(value) {
		v[field] = "invalid_phone"
	}
}

// Email accepts the empty string; anything else must parse as an address.
func Email(field, value string, v Violations) {
	if value == "" {
		return
	}
	if _, err := mail.ParseAddress(value); err != nil {
		v[field] = "invalid_email"
	}
}

// OneOf requires value to be one of the allowed members.
func OneOf(field, value string, allowed []string, code string, v Violations) {
	for _, a := range allowed {
		if value == a {
			return
		}
	}
	v[field] = code
}

func PositiveFloat(field string, val float64, v Violations) {
	if val <= 0 {
		v[field] = "must_be_positive"
	}
}

func RangeInt(field string, val, minVal, maxVal int, v Violations) {
	if val < minVal || val > maxVal {
		v[field] = "out_of_range"
	}
}
