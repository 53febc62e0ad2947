package catalog

import (
	"strings"

	"github.com/careerpath/frontend/core"
)

// Status selects one predicate from a fixed set; it is not free-form.
type Status string

const (
	StatusAll      Status = ""
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	StatusFeatured Status = "featured"
	StatusFree     Status = "free"
	StatusPaid     Status = "paid"
)

var statusPredicates = map[Status]func(*Meta) bool{
	StatusAll:      func(*Meta) bool { return true },
	StatusActive:   func(m *Meta) bool { return m.IsActive },
	StatusInactive: func(m *Meta) bool { return !m.IsActive },
	StatusFeatured: func(m *Meta) bool { return m.IsFeatured },
	StatusFree:     func(m *Meta) bool { return m.IsFree || m.Price == 0 },
	StatusPaid:     func(m *Meta) bool { return !m.IsFree && m.Price > 0 },
}

// QueryFilter recomputes a filtered view from an already-fetched collection.
// All predicates combine with AND; applying it never mutates the source.
type QueryFilter struct {
	Search   string
	Category string
	Status   Status
}

func (qf *QueryFilter) IsEmpty() bool {
	return qf.Search == "" && qf.Category == "" && qf.Status == StatusAll
}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
	qf.Category = core.CleanString(qf.Category)
}

// Match reports whether a row passes every active predicate.
// Search is a case-insensitive substring match on title, description and
// author name; category is exact-match equality.
func (qf QueryFilter) Match(m *Meta) bool {
	if qf.Search != "" {
		needle := strings.ToLower(qf.Search)
		haystack := strings.ToLower(m.Title + " " + m.Description + " " + m.Author.Name)
		if !strings.Contains(haystack, needle) {
			return false
		}
	}
	if qf.Category != "" && m.Category != qf.Category {
		return false
	}
	if pred, ok := statusPredicates[qf.Status]; ok {
		return pred(m)
	}
	return false // unknown status matches nothing
}

// ApplyFilter returns the rows matching qf, in their original order.
func ApplyFilter[T any, PT RowPtr[T]](items []T, qf QueryFilter) []T {
	kept := make([]T, 0, len(items))
	for i := range items {
		if qf.Match(PT(&items[i]).RowMeta()) {
			kept = append(kept, items[i])
		}
	}
	return kept
}
