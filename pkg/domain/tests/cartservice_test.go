package tests

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ithalolp/JW-STORE/pkg/domain/model"
	"github.com/Ithalolp/JW-STORE/pkg/domain/service"
)

func setupCart(t *testing.T) (service.CartService, *mockSnapshotStore, *mockEventDispatcher) {
	store := newMockSnapshotStore()
	dispatcher := &mockEventDispatcher{}
	cart := service.NewCartService(store, dispatcher, &sequentialIDGenerator{})
	return cart, store, dispatcher
}

func draft(productID int64, price string, quantity int, size string, delivery model.DeliveryMethod) model.LineItemDraft {
	d := model.LineItemDraft{
		ProductID: productID,
		Name:      "Produto",
		Price:     decimal.RequireFromString(price),
		Quantity:  quantity,
		Size:      size,
		Delivery:  delivery,
		Customer:  model.CustomerSnapshot{Name: "Ana", Phone: "85999990000"},
	}
	if delivery == model.Delivery {
		d.Address = &model.Address{Street: "Rua A", Number: "10", District: "Centro", City: "Fortaleza"}
	}
	return d
}

// requireProjectionInvariant checks that quantities in the persisted legacy
// rows always match the advanced line items.
func requireProjectionInvariant(t *testing.T, cart service.CartService, store *mockSnapshotStore) {
	t.Helper()

	advancedSum := 0
	for _, item := range cart.Items() {
		advancedSum += item.Quantity
	}
	legacySum := 0
	for _, row := range cart.LegacyRows() {
		legacySum += row.Qty
	}
	require.Equal(t, advancedSum, legacySum)

	var persisted []model.LegacyCartRow
	found, err := store.Load(service.LegacyCartKey, &persisted)
	require.NoError(t, err)
	require.True(t, found)

	rows := cart.LegacyRows()
	require.Len(t, persisted, len(rows))
	for i, row := range rows {
		assert.Equal(t, row.ID, persisted[i].ID)
		assert.Equal(t, row.Qty, persisted[i].Qty)
		assert.True(t, row.Price.Equal(persisted[i].Price))
	}
}

func TestAddItemMergesSameSelection(t *testing.T) {
	cart, store, dispatcher := setupCart(t)

	first, err := cart.AddItem(draft(1, "129.90", 2, "M", model.Pickup))
	require.NoError(t, err)

	second, err := cart.AddItem(draft(1, "129.90", 3, "M", model.Pickup))
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	require.Len(t, cart.Items(), 1)
	assert.Equal(t, 5, cart.Items()[0].Quantity)

	// Notifications fire per mutation, advanced then legacy.
	require.Len(t, dispatcher.events, 4)
	_, ok := dispatcher.events[0].(model.AdvancedCartChanged)
	assert.True(t, ok)
	_, ok = dispatcher.events[1].(model.CartChanged)
	assert.True(t, ok)

	requireProjectionInvariant(t, cart, store)
}

func TestAddItemKeepsDistinctSelectionsApart(t *testing.T) {
	cart, store, _ := setupCart(t)

	_, err := cart.AddItem(draft(1, "129.90", 1, "M", model.Pickup))
	require.NoError(t, err)
	_, err = cart.AddItem(draft(1, "129.90", 1, "G", model.Pickup))
	require.NoError(t, err)
	_, err = cart.AddItem(draft(1, "129.90", 1, "M", model.Delivery))
	require.NoError(t, err)

	items := cart.Items()
	require.Len(t, items, 3)
	assert.NotEqual(t, items[0].ID, items[1].ID)
	assert.NotEqual(t, items[1].ID, items[2].ID)

	// One legacy row per product regardless of how many selections exist.
	rows := cart.LegacyRows()
	require.Len(t, rows, 1)
	assert.Equal(t, 3, rows[0].Qty)

	requireProjectionInvariant(t, cart, store)
}

func TestAddItemValidation(t *testing.T) {
	cart, _, dispatcher := setupCart(t)

	t.Run("Fail on zero quantity", func(t *testing.T) {
		_, err := cart.AddItem(draft(1, "10.00", 0, "", model.Pickup))
		assert.ErrorIs(t, err, service.ErrInvalidQuantity)
		assert.Empty(t, dispatcher.events)
	})

	t.Run("Fail on negative price", func(t *testing.T) {
		_, err := cart.AddItem(draft(1, "-10.00", 1, "", model.Pickup))
		assert.ErrorIs(t, err, service.ErrNegativePrice)
		assert.Empty(t, dispatcher.events)
	})
}

func TestUpdateQuantity(t *testing.T) {
	cart, store, dispatcher := setupCart(t)
	item, err := cart.AddItem(draft(1, "129.90", 2, "M", model.Pickup))
	require.NoError(t, err)

	t.Run("Positive delta", func(t *testing.T) {
		cart.UpdateQuantity(item.ID, 1)
		require.Len(t, cart.Items(), 1)
		assert.Equal(t, 3, cart.Items()[0].Quantity)
		requireProjectionInvariant(t, cart, store)
	})

	t.Run("Delta to zero removes the item", func(t *testing.T) {
		cart.UpdateQuantity(item.ID, -3)
		assert.Empty(t, cart.Items())
		assert.Empty(t, cart.LegacyRows())
		requireProjectionInvariant(t, cart, store)
	})

	t.Run("Unknown id is a no-op", func(t *testing.T) {
		dispatcher.Reset()
		cart.UpdateQuantity(42, 1)
		assert.Empty(t, cart.Items())
		assert.Empty(t, dispatcher.events)
	})
}

func TestRemoveItem(t *testing.T) {
	cart, store, _ := setupCart(t)
	item, err := cart.AddItem(draft(1, "129.90", 2, "M", model.Pickup))
	require.NoError(t, err)
	_, err = cart.AddItem(draft(2, "89.90", 1, "", model.Pickup))
	require.NoError(t, err)

	cart.RemoveItem(item.ID)
	require.Len(t, cart.Items(), 1)
	assert.Equal(t, int64(2), cart.Items()[0].ProductID)
	requireProjectionInvariant(t, cart, store)

	// Removing an absent id is not an error.
	cart.RemoveItem(999)
	require.Len(t, cart.Items(), 1)
}

func TestTotals(t *testing.T) {
	cart, _, _ := setupCart(t)

	t.Run("Single pickup item scenario", func(t *testing.T) {
		_, err := cart.AddItem(draft(1, "129.90", 2, "", model.Pickup))
		require.NoError(t, err)

		assert.True(t, cart.Total().Equal(decimal.RequireFromString("259.80")), "total is %s", cart.Total())
		assert.Equal(t, 2, cart.ItemCount())
	})

	t.Run("Heterogeneous fixture", func(t *testing.T) {
		_, err := cart.AddItem(draft(4, "89.90", 1, "", model.Pickup))
		require.NoError(t, err)
		_, err = cart.AddItem(draft(3, "199.90", 3, "M", model.Delivery))
		require.NoError(t, err)

		// 129.90*2 + 89.90*1 + 199.90*3
		assert.True(t, cart.Total().Equal(decimal.RequireFromString("949.40")), "total is %s", cart.Total())
		assert.Equal(t, 6, cart.ItemCount())
	})
}

func TestClear(t *testing.T) {
	cart, store, _ := setupCart(t)
	_, err := cart.AddItem(draft(1, "129.90", 2, "M", model.Pickup))
	require.NoError(t, err)

	cart.Clear()

	assert.Empty(t, cart.Items())
	assert.True(t, cart.Total().IsZero())
	assert.Equal(t, "[]", store.snapshots[service.AdvancedCartKey])
	assert.Equal(t, "[]", store.snapshots[service.LegacyCartKey])
}

func TestCartSurvivesStorageFailures(t *testing.T) {
	t.Run("Read failure degrades to empty cart", func(t *testing.T) {
		store := newMockSnapshotStore()
		store.failReads = true
		cart := service.NewCartService(store, &mockEventDispatcher{}, &sequentialIDGenerator{})
		assert.Empty(t, cart.Items())
	})

	t.Run("Write failure keeps the in-memory state", func(t *testing.T) {
		store := newMockSnapshotStore()
		store.failWrites = true
		cart := service.NewCartService(store, &mockEventDispatcher{}, &sequentialIDGenerator{})

		item, err := cart.AddItem(draft(1, "129.90", 1, "M", model.Pickup))
		require.NoError(t, err)
		require.NotNil(t, item)
		assert.Len(t, cart.Items(), 1)
		assert.Empty(t, store.snapshots)
	})
}

func TestCartReloadsPersistedSnapshot(t *testing.T) {
	store := newMockSnapshotStore()
	cart := service.NewCartService(store, &mockEventDispatcher{}, &sequentialIDGenerator{})
	_, err := cart.AddItem(draft(1, "129.90", 2, "M", model.Delivery))
	require.NoError(t, err)

	reloaded := service.NewCartService(store, &mockEventDispatcher{}, &sequentialIDGenerator{})
	require.Len(t, reloaded.Items(), 1)
	restored := reloaded.Items()[0]
	assert.Equal(t, "M", restored.Size)
	assert.Equal(t, model.Delivery, restored.Delivery)
	require.NotNil(t, restored.Address)
	assert.Equal(t, "Rua A", restored.Address.Street)
	assert.True(t, restored.Price.Equal(decimal.RequireFromString("129.90")))
}
