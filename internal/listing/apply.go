package listing

import (
	"sort"
	"strings"

	"github.com/Ping-Win-Info/insavente/internal/domain/entity"
)

// Page is one deterministic page of listing results plus the total count of
// items matching the same filter. Under concurrent mutation the count and the
// slice observe separate snapshots and may rarely disagree; that is accepted
// behavior, not corrected here.
type Page struct {
	Items      []entity.Item `json:"items"`
	TotalItems int           `json:"total_items"`
	TotalPages int           `json:"total_pages"`
	Page       int           `json:"page"`
	PageSize   int           `json:"page_size"`
}

// Match reports whether the item satisfies every active filter of the spec.
// Inactive items never match: deactivation is a base predicate applied before
// any user-supplied filter. The free-text query is a literal, case-insensitive
// substring match over title and description.
func (s Spec) Match(it entity.Item) bool {
	if !it.IsActive {
		return false
	}
	if s.Category != "" && it.Category != s.Category {
		return false
	}
	if s.PriceMin != nil && it.Price < *s.PriceMin {
		return false
	}
	if s.PriceMax != nil && it.Price > *s.PriceMax {
		return false
	}
	if s.Query != "" {
		q := strings.ToLower(s.Query)
		if !strings.Contains(strings.ToLower(it.Title), q) &&
			!strings.Contains(strings.ToLower(it.Description), q) {
			return false
		}
	}
	return true
}

// Less orders two items under the spec's sort key and direction. Ties on the
// primary key break on item id ascending, which keeps page boundaries stable
// and reproducible across requests against the same snapshot.
func (s Spec) Less(a, b entity.Item) bool {
	switch s.Sort {
	case SortPrice:
		if a.Price != b.Price {
			if s.Dir == DirAsc {
				return a.Price < b.Price
			}
			return a.Price > b.Price
		}
	default: // SortDate
		if !a.CreatedAt.Equal(b.CreatedAt) {
			if s.Dir == DirAsc {
				return a.CreatedAt.Before(b.CreatedAt)
			}
			return a.CreatedAt.After(b.CreatedAt)
		}
	}
	return a.ID < b.ID
}

// Apply executes the full engine against an in-memory snapshot: filter, sort
// with tie-break, then slice out the requested page. A page past the end of
// the result set yields an empty page, not an error.
func Apply(items []entity.Item, s Spec) Page {
	matched := make([]entity.Item, 0, len(items))
	for _, it := range items {
		if s.Match(it) {
			matched = append(matched, it)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return s.Less(matched[i], matched[j]) })

	total := len(matched)
	lo := s.Offset()
	if lo > total {
		lo = total
	}
	hi := lo + s.PageSize
	if hi > total {
		hi = total
	}
	return Page{
		Items:      matched[lo:hi],
		TotalItems: total,
		TotalPages: TotalPages(total, s.PageSize),
		Page:       s.Page,
		PageSize:   s.PageSize,
	}
}

// TotalPages rounds up total/pageSize.
func TotalPages(total, pageSize int) int {
	if pageSize <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}
