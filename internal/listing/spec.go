// Package listing implements the item listing query engine: a validated,
// immutable filter/sort/pagination specification and its deterministic
// execution semantics.
package listing

import "fmt"

// Sort keys and directions recognized by the engine.
const (
	SortPrice = "price"
	SortDate  = "date"

	DirAsc  = "asc"
	DirDesc = "desc"
)

// Defaults applied when a parameter is absent.
const (
	DefaultPageSize = 20
	DefaultSort     = SortDate
	DefaultDir      = DirDesc
)

// Validation failure codes. The engine fails fast: the first violation
// encountered is returned and nothing executes.
const (
	CodeInvalidRange      = "invalid_range"
	CodeInvalidPagination = "invalid_pagination"
	CodeInvalidSort       = "invalid_sort"
)

// ValidationError reports a rejected filter parameter.
type ValidationError struct {
	Code    string `json:"code"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s %s", e.Code, e.Field, e.Message)
}

// RawParams are the untrusted query parameters of a listing request.
// Pointers distinguish "absent" from zero values.
type RawParams struct {
	Category string   `form:"category"`
	Query    string   `form:"search"`
	PriceMin *float64 `form:"min_price"`
	PriceMax *float64 `form:"max_price"`
	Sort     string   `form:"sort"`
	Dir      string   `form:"order"`
	Page     *int     `form:"page"`
	PageSize *int     `form:"limit"`
}

// Spec is the validated, immutable filter specification. Construct only via
// Parse; a zero Spec is not meaningful. Absent optional filters mean
// "no constraint"; active filters combine with logical AND.
type Spec struct {
	Category string
	Query    string
	PriceMin *float64
	PriceMax *float64
	Sort     string
	Dir      string
	Page     int
	PageSize int
}

// Parse validates raw parameters into a Spec, returning the first violation.
// Out-of-range pagination is rejected, never clamped, so behavior stays
// explicit and testable. maxPageSize bounds the page size (inclusive).
func Parse(raw RawParams, maxPageSize int) (Spec, error) {
	s := Spec{
		Category: raw.Category,
		Query:    raw.Query,
		PriceMin: raw.PriceMin,
		PriceMax: raw.PriceMax,
		Sort:     raw.Sort,
		Dir:      raw.Dir,
		Page:     1,
		PageSize: DefaultPageSize,
	}

	if s.PriceMin != nil && s.PriceMax != nil && *s.PriceMin > *s.PriceMax {
		return Spec{}, &ValidationError{Code: CodeInvalidRange, Field: "min_price", Message: "must not exceed max_price"}
	}

	// Only absence takes a default; an explicit page=0 or limit=0 is rejected.
	if raw.Page != nil {
		if *raw.Page < 1 {
			return Spec{}, &ValidationError{Code: CodeInvalidPagination, Field: "page", Message: "must be >= 1"}
		}
		s.Page = *raw.Page
	}
	if raw.PageSize != nil {
		if *raw.PageSize < 1 || *raw.PageSize > maxPageSize {
			return Spec{}, &ValidationError{Code: CodeInvalidPagination, Field: "limit", Message: fmt.Sprintf("must be between 1 and %d", maxPageSize)}
		}
		s.PageSize = *raw.PageSize
	}

	if s.Sort == "" {
		s.Sort = DefaultSort
	}
	if s.Sort != SortPrice && s.Sort != SortDate {
		return Spec{}, &ValidationError{Code: CodeInvalidSort, Field: "sort", Message: "must be one of: price, date"}
	}
	if s.Dir == "" {
		s.Dir = DefaultDir
	}
	if s.Dir != DirAsc && s.Dir != DirDesc {
		return Spec{}, &ValidationError{Code: CodeInvalidSort, Field: "order", Message: "must be one of: asc, desc"}
	}

	return s, nil
}

// Offset returns the slice offset implied by the page metadata.
func (s Spec) Offset() int {
	return (s.Page - 1) * s.PageSize
}
