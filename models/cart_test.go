package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func product(id string, price float64, stock int) *Product {
	return &Product{ID: id, Name: "product " + id, Price: price, Stock: stock}
}

func TestAddClampsToStock(t *testing.T) {
	cart := &Cart{StoreID: "s1"}

	cart.Add(product("x", 5, 3), 5)

	require.Len(t, cart.Items, 1)
	assert.Equal(t, 3, cart.Items[0].Quantity)
}

func TestAddIncrementalClamp(t *testing.T) {
	cart := &Cart{StoreID: "s1"}
	p := product("x", 5, 3)

	cart.Add(p, 2)
	require.Equal(t, 2, cart.Items[0].Quantity)

	// Topping up past the ceiling clamps to stock, it does not error.
	cart.Add(p, 5)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 3, cart.Items[0].Quantity)
}

func TestAddNeverExceedsStock(t *testing.T) {
	for _, requested := range []int{1, 2, 3, 10, 1000} {
		cart := &Cart{StoreID: "s1"}
		cart.Add(product("x", 1, 4), requested)

		want := requested
		if want > 4 {
			want = 4
		}
		assert.Equal(t, want, cart.Items[0].Quantity, "requested %d", requested)
	}
}

func TestAddOutOfStockProductIsNoop(t *testing.T) {
	cart := &Cart{StoreID: "s1"}
	cart.Add(product("x", 1, 0), 2)
	assert.Empty(t, cart.Items)
}

func TestSetQuantityZeroEqualsRemove(t *testing.T) {
	build := func() *Cart {
		cart := &Cart{StoreID: "s1"}
		cart.Add(product("a", 2, 5), 2)
		cart.Add(product("b", 3, 5), 1)
		return cart
	}

	viaSet := build()
	viaSet.SetQuantity("a", 0)

	viaRemove := build()
	viaRemove.Remove("a")

	assert.Equal(t, viaRemove.Items, viaSet.Items)
}

func TestSetQuantityAbsentIsNoop(t *testing.T) {
	cart := &Cart{StoreID: "s1"}
	cart.Add(product("a", 2, 5), 2)

	cart.SetQuantity("missing", 3)

	require.Len(t, cart.Items, 1)
	assert.Equal(t, "a", cart.Items[0].ProductID)
	assert.Equal(t, 2, cart.Items[0].Quantity)
}

func TestSetQuantityClamps(t *testing.T) {
	cart := &Cart{StoreID: "s1"}
	cart.Add(product("a", 2, 5), 2)

	cart.SetQuantity("a", 99)

	assert.Equal(t, 5, cart.Items[0].Quantity)
}

func TestRemoveAbsentIsNoop(t *testing.T) {
	cart := &Cart{StoreID: "s1"}
	cart.Add(product("a", 2, 5), 2)

	cart.Remove("missing")

	assert.Len(t, cart.Items, 1)
}

func TestTotalIndependentOfOrder(t *testing.T) {
	forward := &Cart{StoreID: "s1"}
	forward.Add(product("a", 10.00, 9), 2)
	forward.Add(product("b", 0.50, 9), 3)
	forward.Add(product("c", 7.25, 9), 1)

	backward := &Cart{StoreID: "s1"}
	backward.Add(product("c", 7.25, 9), 1)
	backward.Add(product("b", 0.50, 9), 3)
	backward.Add(product("a", 10.00, 9), 2)

	assert.Equal(t, forward.Total(), backward.Total())
	assert.InDelta(t, 28.75, forward.Total(), 1e-9)
}

func TestCartJSONRoundTrip(t *testing.T) {
	cart := &Cart{StoreID: "s1"}
	cart.Add(product("a", 10.00, 9), 2)
	cart.Add(product("b", 0.50, 9), 3)
	cart.Add(product("c", 7.25, 9), 1)

	data, err := json.Marshal(cart)
	require.NoError(t, err)

	var restored Cart
	require.NoError(t, json.Unmarshal(data, &restored))

	// Same mapping of product id to quantity, and same insertion order.
	require.Len(t, restored.Items, len(cart.Items))
	for i, item := range cart.Items {
		assert.Equal(t, item.ProductID, restored.Items[i].ProductID)
		assert.Equal(t, item.Quantity, restored.Items[i].Quantity)
	}
}
