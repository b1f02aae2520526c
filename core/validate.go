package core

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const MinPasswordLen = 6

var (
	digitsRe   = regexp.MustCompile(`^\d+$`)
	emailRe    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	hexColorRe = regexp.MustCompile(`^#?([0-9A-Fa-f]{6}|[0-9A-Fa-f]{3})$`)
)

// ParseID accepts only positive all-digit identifiers.
func ParseID(s string) (int64, error) {
	if s == "" {
		return 0, fmt.Errorf("%w: id is required", ErrInvalidID)
	}
	if !digitsRe.MatchString(s) {
		return 0, fmt.Errorf("%w: id must be a number", ErrInvalidID)
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: id must be greater than zero", ErrInvalidID)
	}
	return id, nil
}

func ValidEmail(email string) bool {
	return emailRe.MatchString(email)
}

func ValidHexColor(color string) bool {
	return hexColorRe.MatchString(color)
}

func ValidPassword(password string) bool {
	return len(password) >= MinPasswordLen
}

func emptyTrimmed(s string) bool {
	return strings.TrimSpace(s) == ""
}
