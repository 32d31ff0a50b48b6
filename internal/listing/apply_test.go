package listing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ping-Win-Info/insavente/internal/domain/entity"
)

var baseTime = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

func item(id string, price float64, category string, createdOffset time.Duration) entity.Item {
	return entity.Item{
		ID:        id,
		SellerID:  "seller",
		Title:     "Item " + id,
		Category:  category,
		Price:     price,
		IsActive:  true,
		CreatedAt: baseTime.Add(createdOffset),
	}
}

func mustSpec(t *testing.T, raw RawParams) Spec {
	t.Helper()
	s, err := Parse(raw, 100)
	require.NoError(t, err)
	return s
}

func ids(items []entity.Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func TestApplyTieBreakIsDeterministic(t *testing.T) {
	// Two items share a price; the id tie-break keeps them in a fixed order
	// across page boundaries.
	items := []entity.Item{
		item("A", 10, "other", 0),
		item("B", 20, "other", time.Minute),
		item("C", 20, "other", 2*time.Minute),
		item("D", 5, "other", 3*time.Minute),
	}
	spec := mustSpec(t, RawParams{Sort: SortPrice, Dir: DirAsc, Page: p(1), PageSize: p(2)})

	page1 := Apply(items, spec)
	assert.Equal(t, []string{"D", "A"}, ids(page1.Items))
	assert.Equal(t, 4, page1.TotalItems)
	assert.Equal(t, 2, page1.TotalPages)

	spec.Page = 2
	page2 := Apply(items, spec)
	assert.Equal(t, []string{"B", "C"}, ids(page2.Items))
}

func TestApplyPaginationIsCompletePartition(t *testing.T) {
	var items []entity.Item
	for _, id := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		items = append(items, item(id, 10, "other", 0))
	}
	spec := mustSpec(t, RawParams{Sort: SortPrice, Dir: DirAsc, PageSize: p(3)})

	var seen []string
	for p := 1; p <= 3; p++ {
		spec.Page = p
		seen = append(seen, ids(Apply(items, spec).Items)...)
	}
	// Every item appears exactly once across consecutive pages.
	assert.Equal(t, []string{"a", "b", "c", "d", "e", "f", "g"}, seen)
}

func TestApplyPastEndIsEmpty(t *testing.T) {
	items := []entity.Item{item("A", 10, "other", 0)}
	spec := mustSpec(t, RawParams{Page: p(9), PageSize: p(20)})

	page := Apply(items, spec)
	assert.Empty(t, page.Items)
	assert.Equal(t, 1, page.TotalItems)
	assert.Equal(t, 1, page.TotalPages)
	assert.Equal(t, 9, page.Page)
}

func TestApplyExcludesInactive(t *testing.T) {
	inactive := item("X", 10, "other", 0)
	inactive.IsActive = false
	items := []entity.Item{item("A", 10, "other", 0), inactive}

	page := Apply(items, mustSpec(t, RawParams{}))
	assert.Equal(t, []string{"A"}, ids(page.Items))
	assert.Equal(t, 1, page.TotalItems)
}

func TestApplyFiltersCombineWithAnd(t *testing.T) {
	items := []entity.Item{
		item("A", 15, "electronics", 0),
		item("B", 500, "electronics", 0),
		item("C", 15, "clothing", 0),
	}
	spec := mustSpec(t, RawParams{Category: "electronics", PriceMax: f(100)})

	page := Apply(items, spec)
	assert.Equal(t, []string{"A"}, ids(page.Items))
}

func TestApplyTextMatchIsLiteral(t *testing.T) {
	a := item("A", 10, "other", 0)
	a.Title = "Vélo de course 100% carbone"
	b := item("B", 10, "other", 0)
	b.Description = "presque neuf, peu servi"
	c := item("C", 10, "other", 0)
	c.Title = "Table basse"
	items := []entity.Item{a, b, c}

	// Case-insensitive substring over title and description.
	page := Apply(items, mustSpec(t, RawParams{Query: "vélo"}))
	assert.Equal(t, []string{"A"}, ids(page.Items))

	page = Apply(items, mustSpec(t, RawParams{Query: "NEUF"}))
	assert.Equal(t, []string{"B"}, ids(page.Items))

	// LIKE metacharacters have no special meaning.
	page = Apply(items, mustSpec(t, RawParams{Query: "100%"}))
	assert.Equal(t, []string{"A"}, ids(page.Items))

	page = Apply(items, mustSpec(t, RawParams{Query: "100_"}))
	assert.Empty(t, page.Items)
}

func TestApplyDateSortDefaultsNewestFirst(t *testing.T) {
	items := []entity.Item{
		item("old", 10, "other", 0),
		item("mid", 10, "other", time.Hour),
		item("new", 10, "other", 2*time.Hour),
	}
	page := Apply(items, mustSpec(t, RawParams{}))
	assert.Equal(t, []string{"new", "mid", "old"}, ids(page.Items))
}

func TestApplyIsIdempotent(t *testing.T) {
	items := []entity.Item{
		item("B", 20, "other", time.Minute),
		item("A", 10, "other", 0),
		item("C", 20, "other", 2*time.Minute),
	}
	spec := mustSpec(t, RawParams{Sort: SortPrice, Dir: DirAsc})

	first := Apply(items, spec)
	second := Apply(items, spec)
	assert.Equal(t, ids(first.Items), ids(second.Items))
	assert.Equal(t, first.TotalItems, second.TotalItems)
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	items := []entity.Item{
		item("B", 20, "other", 0),
		item("A", 10, "other", 0),
	}
	_ = Apply(items, mustSpec(t, RawParams{Sort: SortPrice, Dir: DirAsc}))
	assert.Equal(t, "B", items[0].ID)
	assert.Equal(t, "A", items[1].ID)
}
