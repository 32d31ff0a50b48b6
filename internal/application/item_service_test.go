package application

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ping-Win-Info/insavente/internal/authz"
	"github.com/Ping-Win-Info/insavente/internal/domain/entity"
	"github.com/Ping-Win-Info/insavente/internal/infrastructure/memory"
	"github.com/Ping-Win-Info/insavente/internal/listing"
)

func newTestItemService() *ItemService {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return NewItemService(memory.NewItemRepository(), logger, nil, "", nil, "", 100)
}

func seedItem(t *testing.T, svc *ItemService, sellerID, title string, price float64, category string) *entity.Item {
	t.Helper()
	it, err := svc.Create(context.Background(), sellerID, CreateItemInput{
		Title:       title,
		Description: "description of " + title,
		Price:       price,
		Category:    category,
	})
	require.NoError(t, err)
	return it
}

func TestItemListFiltersAndPaginates(t *testing.T) {
	svc := newTestItemService()
	ctx := context.Background()

	seedItem(t, svc, "alice", "Vélo de course", 350, "sports")
	seedItem(t, svc, "alice", "Casque vélo", 40, "sports")
	seedItem(t, svc, "bob", "Grille-pain", 15, "home")

	page, err := svc.List(ctx, listing.RawParams{Category: "sports", Sort: listing.SortPrice, Dir: listing.DirAsc})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "Casque vélo", page.Items[0].Title)
	assert.Equal(t, "Vélo de course", page.Items[1].Title)
	assert.Equal(t, 2, page.TotalItems)
	assert.Equal(t, 1, page.TotalPages)
}

func TestItemListRejectsInvalidParams(t *testing.T) {
	svc := newTestItemService()

	_, err := svc.List(context.Background(), listing.RawParams{Sort: "popularity"})
	var verr *listing.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, listing.CodeInvalidSort, verr.Code)
}

func TestItemRejectsUnknownCategory(t *testing.T) {
	svc := newTestItemService()
	ctx := context.Background()

	_, err := svc.Create(ctx, "alice", CreateItemInput{
		Title:       "Raquette",
		Description: "raquette de tennis",
		Price:       30,
		Category:    "weapons",
	})
	require.ErrorIs(t, err, ErrBadCategory)

	it := seedItem(t, svc, "alice", "Raquette", 30, "sports")
	bad := "weapons"
	_, err = svc.Update(ctx, &authz.Identity{ID: "alice", Role: entity.RoleMember}, it.ID, UpdateItemInput{Category: &bad})
	require.ErrorIs(t, err, ErrBadCategory)
}

func TestItemUpdateOwnershipGate(t *testing.T) {
	svc := newTestItemService()
	ctx := context.Background()

	it := seedItem(t, svc, "alice", "Table basse", 60, "home")
	newTitle := "Table basse en chêne"

	// A stranger is denied, the owner and an admin are not.
	_, err := svc.Update(ctx, &authz.Identity{ID: "bob", Role: entity.RoleMember}, it.ID, UpdateItemInput{Title: &newTitle})
	require.ErrorIs(t, err, ErrForbidden)

	updated, err := svc.Update(ctx, &authz.Identity{ID: "alice", Role: entity.RoleMember}, it.ID, UpdateItemInput{Title: &newTitle})
	require.NoError(t, err)
	assert.Equal(t, newTitle, updated.Title)

	adminPrice := 55.0
	updated, err = svc.Update(ctx, &authz.Identity{ID: "root", Role: entity.RoleAdmin}, it.ID, UpdateItemInput{Price: &adminPrice})
	require.NoError(t, err)
	assert.Equal(t, 55.0, updated.Price)
}

func TestItemDeleteOwnershipGate(t *testing.T) {
	svc := newTestItemService()
	ctx := context.Background()

	it := seedItem(t, svc, "alice", "Lampe", 20, "home")

	err := svc.Delete(ctx, &authz.Identity{ID: "bob", Role: entity.RoleMember}, it.ID)
	require.ErrorIs(t, err, ErrForbidden)

	err = svc.Delete(ctx, &authz.Identity{ID: "alice", Role: entity.RoleMember}, it.ID)
	require.NoError(t, err)

	_, err = svc.Get(ctx, it.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestItemDeactivationHidesFromListing(t *testing.T) {
	svc := newTestItemService()
	ctx := context.Background()

	it := seedItem(t, svc, "alice", "Chaise", 25, "home")
	inactive := false
	_, err := svc.Update(ctx, &authz.Identity{ID: "alice", Role: entity.RoleMember}, it.ID, UpdateItemInput{IsActive: &inactive})
	require.NoError(t, err)

	page, err := svc.List(ctx, listing.RawParams{})
	require.NoError(t, err)
	assert.Empty(t, page.Items)

	// Direct fetch still works for the owner to manage the item.
	got, err := svc.Get(ctx, it.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)
}
