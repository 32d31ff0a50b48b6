package postgres

import (
	"fmt"
	"strings"

	"github.com/Ping-Win-Info/insavente/internal/listing"
)

// escapeLike neutralizes LIKE metacharacters so the free-text query matches
// literally. The pattern is paired with `ESCAPE '\'` in the query.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// buildItemWhere translates a validated spec into a WHERE clause and its
// arguments. The is_active base predicate is always first; user filters AND
// onto it.
func buildItemWhere(spec listing.Spec) (string, []any) {
	conds := []string{"is_active"}
	args := []any{}

	if spec.Category != "" {
		args = append(args, spec.Category)
		conds = append(conds, fmt.Sprintf("category = $%d", len(args)))
	}
	if spec.PriceMin != nil {
		args = append(args, *spec.PriceMin)
		conds = append(conds, fmt.Sprintf("price >= $%d", len(args)))
	}
	if spec.PriceMax != nil {
		args = append(args, *spec.PriceMax)
		conds = append(conds, fmt.Sprintf("price <= $%d", len(args)))
	}
	if spec.Query != "" {
		args = append(args, "%"+escapeLike(spec.Query)+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf(`(title ILIKE $%d ESCAPE '\' OR description ILIKE $%d ESCAPE '\')`, n, n))
	}

	return "WHERE " + strings.Join(conds, " AND "), args
}

// buildItemOrder renders the ORDER BY clause: primary sort key and direction
// from the spec, id ascending tie-break for stable pagination.
func buildItemOrder(spec listing.Spec) string {
	col := "created_at"
	if spec.Sort == listing.SortPrice {
		col = "price"
	}
	dir := "DESC"
	if spec.Dir == listing.DirAsc {
		dir = "ASC"
	}
	return fmt.Sprintf("ORDER BY %s %s, id ASC", col, dir)
}
