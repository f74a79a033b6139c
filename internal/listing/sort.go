package listing

import (
	"fmt"
	"strings"
)

// sortColumns maps accepted client sort keys to store columns. Anything
// else is rejected, so client input never reaches ORDER BY.
var sortColumns = map[string]string{
	"id":       "id",
	"name":     "name",
	"price":    "price",
	"cat_id":   "cat_id",
	"category": "cat_id",
}

// Sort is a resolved ORDER BY specification.
type Sort struct {
	Column    string
	Direction Direction
}

// DefaultSort orders by id ascending.
func DefaultSort() Sort {
	return Sort{Column: "id", Direction: Asc}
}

// Clause renders "ORDER BY <col> <DIR>", adding id as a tiebreaker so
// that pages never overlap.
func (s Sort) Clause() string {
	if s.Column == "" {
		s = DefaultSort()
	}
	if s.Direction == "" {
		s.Direction = Asc
	}

	clause := "ORDER BY " + s.Column + " " + strings.ToUpper(string(s.Direction))
	if s.Column != "id" {
		clause += ", id ASC"
	}
	return clause
}

// ParseSort parses "<field>,<asc|desc>". An empty value yields DefaultSort
// and a missing direction means ascending.
func ParseSort(raw string) (Sort, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultSort(), nil
	}

	parts := strings.Split(raw, ",")
	if len(parts) > 2 {
		return Sort{}, fmt.Errorf("must be formatted as <field>,<asc|desc>")
	}

	field := strings.ToLower(strings.TrimSpace(parts[0]))
	column, ok := sortColumns[field]
	if !ok {
		return Sort{}, fmt.Errorf("cannot sort by %q (must be one of: id, name, price, cat_id)", field)
	}

	direction := Asc
	if len(parts) == 2 {
		switch Direction(strings.ToLower(strings.TrimSpace(parts[1]))) {
		case Asc:
		case Desc:
			direction = Desc
		default:
			return Sort{}, fmt.Errorf("direction must be one of: asc, desc")
		}
	}

	return Sort{Column: column, Direction: direction}, nil
}
