package models

import "time"

// CartItem is a snapshot of the product at the moment it was added.
// Stock is the clamp ceiling recorded at add time, not a live value.
type CartItem struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Stock     int     `json:"stock"`
	ImageURL  string  `json:"image_url,omitempty"`
	Quantity  int     `json:"quantity"`
}

// Cart is a buyer session's selection for one store. Items keep insertion
// order; product ids are unique within the slice.
type Cart struct {
	StoreID   string     `json:"store_id"`
	Items     []CartItem `json:"items"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Add inserts the product or tops up an existing entry. The resulting
// quantity never exceeds the recorded stock ceiling; the call never fails,
// it clamps silently.
func (c *Cart) Add(p *Product, quantity int) {
	for _, item := range c.Items {
		if item.ProductID == p.ID {
			c.SetQuantity(p.ID, clampQuantity(item.Quantity+quantity, item.Stock))
			return
		}
	}
	if clampQuantity(quantity, p.Stock) <= 0 {
		return
	}
	c.Items = append(c.Items, CartItem{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Stock:     p.Stock,
		ImageURL:  p.ImageURL,
		Quantity:  clampQuantity(quantity, p.Stock),
	})
}

// Remove deletes the entry for the product if present.
func (c *Cart) Remove(productID string) {
	for i, item := range c.Items {
		if item.ProductID == productID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return
		}
	}
}

// SetQuantity updates an existing entry. Absent entries are a no-op and a
// quantity of zero or less collapses to removal, so no entry ever sits in
// the cart with quantity outside [1, stock].
func (c *Cart) SetQuantity(productID string, quantity int) {
	if quantity <= 0 {
		c.Remove(productID)
		return
	}
	for i, item := range c.Items {
		if item.ProductID == productID {
			c.Items[i].Quantity = clampQuantity(quantity, item.Stock)
			return
		}
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.Items = nil
}

// Total is the exact sum of price*quantity over all entries.
func (c *Cart) Total() float64 {
	var total float64
	for _, item := range c.Items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

// Item returns the entry for the product, or nil.
func (c *Cart) Item(productID string) *CartItem {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return &c.Items[i]
		}
	}
	return nil
}

func clampQuantity(quantity, stock int) int {
	if quantity > stock {
		return stock
	}
	return quantity
}
