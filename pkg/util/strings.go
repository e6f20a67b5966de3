package util

import (
	"strconv"
	"strings"
)

// ParseIntDefault parses string to int or returns default if empty/invalid.
func ParseIntDefault(s string, def int) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}

// ParsePositiveIntDefault is ParseIntDefault that also rejects values <= 0.
func ParsePositiveIntDefault(s string, def int) int {
	if v := ParseIntDefault(s, def); v > 0 {
		return v
	}
	return def
}

// ParseBool reports whether s is a truthy query flag ("true", "1", "yes").
func ParseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes":
		return true
	default:
		return false
	}
}

// UpperCode normalizes a currency code, falling back to def when blank.
func UpperCode(s, def string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return def
	}
	return s
}
