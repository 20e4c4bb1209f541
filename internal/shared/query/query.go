// Package query turns list filters coming from handlers into gorm scopes.
package query

import (
	"fmt"
	"regexp"
	"strings"

	"gorm.io/gorm"
)

// InValues matches a column against a set of values.
type InValues []any

func In(values ...any) InValues {
	return InValues(values)
}

// Spec is the list contract shared by repositories: exact-match or
// membership filters, a sort field with an optional "-" prefix for
// descending order, and an optional row limit.
type Spec struct {
	Filter map[string]any
	Sort   string
	Limit  int
}

var columnPattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// Validate rejects columns that are not plain snake_case identifiers or that
// are not in allowed. An empty allowed list accepts any identifier.
func (s Spec) Validate(allowed ...string) error {
	ok := func(col string) bool {
		if !columnPattern.MatchString(col) {
			return false
		}
		if len(allowed) == 0 {
			return true
		}
		for _, a := range allowed {
			if a == col {
				return true
			}
		}
		return false
	}

	for col := range s.Filter {
		if !ok(col) {
			return fmt.Errorf("unsupported filter field %q", col)
		}
	}
	if col, _ := ParseSort(s.Sort); col != "" && !ok(col) {
		return fmt.Errorf("unsupported sort field %q", col)
	}
	if s.Limit < 0 {
		return fmt.Errorf("limit must not be negative")
	}
	return nil
}

// ParseSort splits "-created_at" into ("created_at", true).
func ParseSort(sort string) (string, bool) {
	sort = strings.TrimSpace(sort)
	if strings.HasPrefix(sort, "-") {
		return strings.TrimPrefix(sort, "-"), true
	}
	return sort, false
}

// OrderClause renders the sort as an ORDER BY fragment, or "" when unset.
func (s Spec) OrderClause() string {
	col, desc := ParseSort(s.Sort)
	if col == "" {
		return ""
	}
	if desc {
		return col + " DESC"
	}
	return col + " ASC"
}

// Scope applies filter, sort and limit. fallbackOrder is used when Sort is empty.
// Call Validate first; Scope trusts the column names.
func (s Spec) Scope(fallbackOrder string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		for col, v := range s.Filter {
			switch vals := v.(type) {
			case InValues:
				db = db.Where(col+" IN ?", []any(vals))
			default:
				db = db.Where(col+" = ?", v)
			}
		}
		order := s.OrderClause()
		if order == "" {
			order = fallbackOrder
		}
		if order != "" {
			db = db.Order(order)
		}
		if s.Limit > 0 {
			db = db.Limit(s.Limit)
		}
		return db
	}
}
