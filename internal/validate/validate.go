package validate

import (
	"regexp"
	"strconv"
	"strings"

	"nepmartadmin/internal/domain"
)

var reID = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// ID validates a remote-store record identifier (hex object ids included).
func ID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reID.MatchString(s)
}

// Price parses a non-negative product price from form input.
func Price(s string) (float64, bool) {
	p, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || p < 0 {
		return 0, false
	}
	return p, true
}

// Stock parses a non-negative stock count from form input.
func Stock(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// Category validates a data-product category against the fixed option set.
func Category(s string) (string, bool) {
	s = strings.TrimSpace(s)
	for _, opt := range domain.CategoryOptions {
		if s == opt {
			return s, true
		}
	}
	return "", false
}

// Msg validates an update-message body: non-empty, bounded length.
func Msg(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 500 {
		return "", false
	}
	return s, true
}

// ConfirmPhrase reports whether the operator typed the exact phrase that
// arms an irreversible delete. Case-insensitive.
func ConfirmPhrase(input, phrase string) bool {
	return strings.EqualFold(strings.TrimSpace(input), phrase)
}
