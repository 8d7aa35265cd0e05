// Package pipeline turns the full record set for a scope into the slice the
// caller displays: filter, then sort, then window onto one page.
package pipeline

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/wanderlog/expenseclient/internal/storage"
)

// Filter holds filter criteria for the expense list.
// All optional fields are pointers to distinguish "not set" from zero values.
type Filter struct {
	Category      *string  // Exact match
	PaymentMethod *string  // Exact match
	AmountMin     *float64 // Minimum amount (inclusive)
	AmountMax     *float64 // Maximum amount (inclusive)
	Search        string   // Case-insensitive substring on note, category or payment method
}

// SortField represents a field that can be sorted on.
type SortField string

const (
	SortByDate     SortField = "date"
	SortByAmount   SortField = "amount"
	SortByCategory SortField = "category"
)

// SortDirection represents sort order.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// SortOptions holds sorting preferences.
type SortOptions struct {
	Field     SortField
	Direction SortDirection
}

// DefaultSortOptions returns the default sort (date ascending, oldest first).
func DefaultSortOptions() *SortOptions {
	return &SortOptions{
		Field:     SortByDate,
		Direction: SortAsc,
	}
}

// String returns the sort options as a string (e.g., "date:asc").
func (s *SortOptions) String() string {
	return string(s.Field) + ":" + string(s.Direction)
}

// Page is a 1-based window onto the filtered list.
type Page struct {
	Number int
	Size   int
}

// Result carries the pipeline output: the whole filtered and sorted list,
// the slice for the clamped current page, and the derived totals.
type Result struct {
	All        []storage.Expense
	PageItems  []storage.Expense
	Total      int
	TotalPages int
	Page       int
}

// Run is pure with respect to its inputs: neither the record slice nor the
// filter and sort options are mutated, and the same inputs always give the
// same output.
func Run(records []storage.Expense, f *Filter, s *SortOptions, p Page) Result {
	filtered := apply(records, f)
	sortExpenses(filtered, s)

	size := p.Size
	if size < 1 {
		size = 1
	}

	total := len(filtered)
	totalPages := int(math.Ceil(float64(total) / float64(size)))
	if totalPages < 1 {
		totalPages = 1
	}

	// Out-of-range pages clamp instead of failing.
	page := p.Number
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * size
	end := start + size
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return Result{
		All:        filtered,
		PageItems:  filtered[start:end],
		Total:      total,
		TotalPages: totalPages,
		Page:       page,
	}
}

// apply keeps the records that satisfy every supplied predicate. Absent
// fields impose no constraint. The returned slice is freshly allocated so
// sorting never reorders the caller's input.
func apply(records []storage.Expense, f *Filter) []storage.Expense {
	out := make([]storage.Expense, 0, len(records))
	for _, e := range records {
		if f != nil && !matches(e, f) {
			continue
		}
		out = append(out, e)
	}
	return out
}

func matches(e storage.Expense, f *Filter) bool {
	if f.Category != nil && e.Category() != *f.Category {
		return false
	}

	if f.PaymentMethod != nil && e.PaymentMethod() != *f.PaymentMethod {
		return false
	}

	if f.AmountMin != nil && e.Amount() < *f.AmountMin {
		return false
	}

	if f.AmountMax != nil && e.Amount() > *f.AmountMax {
		return false
	}

	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(e.Note()), needle) &&
			!strings.Contains(strings.ToLower(e.Category()), needle) &&
			!strings.Contains(strings.ToLower(e.PaymentMethod()), needle) {
			return false
		}
	}

	return true
}

// sortExpenses applies a single total order. Tied elements land in an
// unspecified order.
func sortExpenses(records []storage.Expense, s *SortOptions) {
	if s == nil {
		s = DefaultSortOptions()
	}

	less := lessFunc(s.Field)
	if s.Direction == SortDesc {
		asc := less
		less = func(a, b storage.Expense) bool { return asc(b, a) }
	}

	sort.Slice(records, func(i, j int) bool {
		return less(records[i], records[j])
	})
}

func lessFunc(field SortField) func(a, b storage.Expense) bool {
	switch field {
	case SortByAmount:
		return func(a, b storage.Expense) bool { return a.Amount() < b.Amount() }
	case SortByCategory:
		return func(a, b storage.Expense) bool { return a.Category() < b.Category() }
	case SortByDate:
		fallthrough
	default:
		return func(a, b storage.Expense) bool { return dateValue(a).Before(dateValue(b)) }
	}
}

// dateValue interprets the storage string as a calendar instant. Unparsable
// dates sort to the zero instant rather than failing the pipeline.
func dateValue(e storage.Expense) time.Time {
	t, err := time.ParseInLocation(storage.DateLayout, e.Date(), time.Local)
	if err != nil {
		return time.Time{}
	}
	return t
}
