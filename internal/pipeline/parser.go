package pipeline

import (
	"fmt"
	"strings"
)

// ParseSort parses a sort string like "date:asc" into SortOptions.
func ParseSort(s string) (*SortOptions, error) {
	if s == "" {
		return nil, fmt.Errorf("sort string cannot be empty")
	}

	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid sort format, expected field:direction")
	}

	field := SortField(parts[0])
	direction := SortDirection(parts[1])

	// Validate field
	if field != SortByDate && field != SortByAmount && field != SortByCategory {
		return nil, fmt.Errorf("invalid sort field: %s (must be date, amount or category)", field)
	}

	// Validate direction
	if direction != SortAsc && direction != SortDesc {
		return nil, fmt.Errorf("invalid sort direction: %s (must be asc or desc)", direction)
	}

	return &SortOptions{
		Field:     field,
		Direction: direction,
	}, nil
}
