// Package dates parses calendar dates from archive records
package dates

import (
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/johnquangdev/meeting-archive/internal/domain/entities"
)

// Parse reads a calendar date. ISO "YYYY-MM-DD" (optionally followed by a time part) is
// tried first, then the permissive parser for forms such as "Jan 15, 2025" or "2025/01/15".
// Numeric-only input is refused so epoch-like values are not mistaken for dates.
func Parse(raw string) (entities.Date, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return entities.Date{}, fmt.Errorf("%w: empty value", entities.ErrInvalidDate)
	}

	if len(s) >= len(entities.DateLayout) {
		if t, err := time.Parse(entities.DateLayout, s[:len(entities.DateLayout)]); err == nil {
			if len(s) == len(entities.DateLayout) || s[len(entities.DateLayout)] == 'T' || s[len(entities.DateLayout)] == ' ' {
				return entities.DateOf(t), nil
			}
		}
	}

	if isDigits(s) {
		return entities.Date{}, fmt.Errorf("%w: %q", entities.ErrInvalidDate, raw)
	}

	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return entities.Date{}, fmt.Errorf("%w: %q", entities.ErrInvalidDate, raw)
	}
	return entities.DateOf(t), nil
}

// ParseOptional parses raw when possible. The bool is false for empty or unparseable input.
func ParseOptional(raw string) (*entities.Date, bool) {
	if strings.TrimSpace(raw) == "" {
		return nil, false
	}
	d, err := Parse(raw)
	if err != nil {
		return nil, false
	}
	return &d, true
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
