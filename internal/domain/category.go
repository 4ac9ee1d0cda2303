package domain

import (
	"strings"

	"practice-log/internal/errors"
)

// Category is one of the fixed practice categories.
type Category string

const (
	Batting  Category = "Batting"
	Bowling  Category = "Bowling"
	Fielding Category = "Fielding"
	Fitness  Category = "Fitness"
)

// Categories lists every category in display order.
var Categories = []Category{Batting, Bowling, Fielding, Fitness}

var drills = map[Category][]string{
	Batting:  {"Shadow practice", "Batting in nets", "Batting drills"},
	Bowling:  {"Bowling in nets", "Bowling drills"},
	Fielding: {"Fielding drills", "Catching practice"},
}

// ParseCategory resolves a category name case-insensitively.
func ParseCategory(s string) (Category, error) {
	name := strings.TrimSpace(s)
	for _, c := range Categories {
		if strings.EqualFold(name, string(c)) {
			return c, nil
		}
	}
	return "", errors.NewInvalidInputError("category", s, "must be one of Batting, Bowling, Fielding, Fitness")
}

// String returns the category name for display purposes.
func (c Category) String() string {
	return string(c)
}

// IsValid reports whether c is a known category.
func (c Category) IsValid() bool {
	switch c {
	case Batting, Bowling, Fielding, Fitness:
		return true
	}
	return false
}

// RequiresDrill is true for categories logged per drill with a location.
func (c Category) RequiresDrill() bool {
	return len(drills[c]) > 0
}

// Drills returns a copy of the fixed drill list for c. Fitness has none.
func Drills(c Category) []string {
	return append([]string(nil), drills[c]...)
}

// HasDrill reports whether name is one of c's drills.
func HasDrill(c Category, name string) bool {
	for _, d := range drills[c] {
		if d == name {
			return true
		}
	}
	return false
}
