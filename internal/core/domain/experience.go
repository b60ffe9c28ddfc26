package domain

import (
	"strconv"
	"strings"
)

// Experience is the numeric reading of a listing's free-text experience
// field. Valid is false when the field was missing or did not parse; the
// listing itself is always kept either way.
type Experience struct {
	Years float64 `json:"years"`
	Valid bool    `json:"valid"`
}

// ParseExperience derives an Experience from free text such as "3-5" or
// "5". A hyphenated range contributes its lower bound. Anything that does
// not parse as a number yields the zero (invalid) Experience.
func ParseExperience(raw string) Experience {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Experience{}
	}
	if i := strings.IndexByte(s, '-'); i >= 0 {
		s = strings.TrimSpace(s[:i])
	}
	years, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Experience{}
	}
	return Experience{Years: years, Valid: true}
}
