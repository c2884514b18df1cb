package model

import (
	"strings"
	"time"
)

// DateLayout is the calendar date format accepted at every boundary.
const DateLayout = "2006-01-02"

// Difficulty grades how demanding a project is.
type Difficulty int

// Known difficulty levels. The zero value is not a valid difficulty.
const (
	DifficultyUnknown Difficulty = iota
	DifficultyEasy
	DifficultyMedium
	DifficultyHard
)

// ParseDifficulty maps a case-insensitive name onto a Difficulty.
// Unknown names are rejected rather than defaulted.
func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return DifficultyEasy, nil
	case "medium":
		return DifficultyMedium, nil
	case "hard":
		return DifficultyHard, nil
	}
	return DifficultyUnknown, invalid("difficulty", "unknown difficulty %q", s)
}

func (d Difficulty) String() string {
	switch d {
	case DifficultyEasy:
		return "Easy"
	case DifficultyMedium:
		return "Medium"
	case DifficultyHard:
		return "Hard"
	default:
		return "Unknown"
	}
}

// Valid reports whether d is one of Easy, Medium or Hard.
func (d Difficulty) Valid() bool { return d >= DifficultyEasy && d <= DifficultyHard }

// ParseDate parses a YYYY-MM-DD value, reporting failures against field.
func ParseDate(field, value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, invalid(field, "missing date")
	}
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, invalid(field, "%q is not a YYYY-MM-DD date", value)
	}
	return t, nil
}

// FormatDate renders t as YYYY-MM-DD, or "" for the zero time.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}
