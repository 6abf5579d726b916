package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func testItem(id string, price int64) Item {
	return Item{
		ItemID:       id,
		RestaurantID: "r-1",
		ItemName:     "item " + id,
		Description:  "tasty",
		Price:        decimal.NewFromInt(price),
	}
}

func TestCart_AddItem_NewLineAndIncrement(t *testing.T) {
	cart := Cart{CartID: "c-1", Username: "john"}

	cart.AddItem(testItem("i-1", 200))
	cart.AddItem(testItem("i-1", 200))

	assert.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	assert.True(t, decimal.NewFromInt(400).Equal(cart.TotalPrice))
}

func TestCart_Recalculate_MultipleLines(t *testing.T) {
	cart := Cart{}
	cart.AddItem(testItem("i-1", 200))
	cart.AddItem(testItem("i-2", 150))
	cart.IncreaseQuantity("i-2")

	assert.True(t, decimal.NewFromInt(500).Equal(cart.TotalPrice))
}

func TestCart_DecreaseQuantity_StopsAtZero(t *testing.T) {
	cart := Cart{}
	cart.AddItem(testItem("i-1", 100))

	assert.True(t, cart.DecreaseQuantity("i-1"))
	assert.True(t, cart.DecreaseQuantity("i-1"))
	assert.Equal(t, 0, cart.Items[0].Quantity)
	assert.True(t, decimal.Zero.Equal(cart.TotalPrice))
}

func TestCart_RemoveItem(t *testing.T) {
	cart := Cart{}
	cart.AddItem(testItem("i-1", 100))
	cart.AddItem(testItem("i-2", 50))

	assert.True(t, cart.RemoveItem("i-1"))
	assert.False(t, cart.RemoveItem("missing"))
	assert.Len(t, cart.Items, 1)
	assert.True(t, decimal.NewFromInt(50).Equal(cart.TotalPrice))
}

func TestCart_OwnershipAndEmptiness(t *testing.T) {
	cart := Cart{Username: "john"}

	assert.True(t, cart.IsEmpty())
	assert.True(t, cart.OwnedBy("john"))
	assert.False(t, cart.OwnedBy("jane"))
}
