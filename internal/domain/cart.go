package domain

import "github.com/shopspring/decimal"

type Cart struct {
	CartID     string
	Username   string
	Items      []CartItem
	TotalPrice decimal.Decimal
}

type CartItem struct {
	ItemID       string
	ItemName     string
	RestaurantID string
	Description  string
	Price        decimal.Decimal
	Quantity     int
}

func (c Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

func (c Cart) OwnedBy(username string) bool {
	return c.Username == username
}

// Recalculate refreshes TotalPrice from the line items.
func (c *Cart) Recalculate() {
	total := decimal.Zero
	for _, line := range c.Items {
		total = total.Add(line.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	c.TotalPrice = total
}

// AddItem increments the line for item, or appends a new line with quantity 1.
func (c *Cart) AddItem(item Item) {
	for i := range c.Items {
		if c.Items[i].ItemID == item.ItemID {
			c.Items[i].Quantity++
			c.Recalculate()
			return
		}
	}
	c.Items = append(c.Items, CartItem{
		ItemID:       item.ItemID,
		ItemName:     item.ItemName,
		RestaurantID: item.RestaurantID,
		Description:  item.Description,
		Price:        item.Price,
		Quantity:     1,
	})
	c.Recalculate()
}

func (c *Cart) RemoveItem(itemID string) bool {
	for i := range c.Items {
		if c.Items[i].ItemID == itemID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			c.Recalculate()
			return true
		}
	}
	return false
}

func (c *Cart) IncreaseQuantity(itemID string) bool {
	for i := range c.Items {
		if c.Items[i].ItemID == itemID {
			c.Items[i].Quantity++
			c.Recalculate()
			return true
		}
	}
	return false
}

// DecreaseQuantity never takes a line below zero.
func (c *Cart) DecreaseQuantity(itemID string) bool {
	for i := range c.Items {
		if c.Items[i].ItemID == itemID {
			if c.Items[i].Quantity > 0 {
				c.Items[i].Quantity--
			}
			c.Recalculate()
			return true
		}
	}
	return false
}
