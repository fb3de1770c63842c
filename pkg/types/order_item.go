package types

// OrderItem is the immutable snapshot of one cart line at purchase time.
// Price is in minor currency units (paise), mirroring the order amount.
type OrderItem struct {
	ProductID string `json:"id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Quantity  int    `json:"quantity"`
}

// OrderItems is stored on the order row as a JSON column.
type OrderItems []OrderItem

// Subtotal sums price * quantity across all items.
func (items OrderItems) Subtotal() int64 {
	var total int64
	for _, item := range items {
		total += item.Price * int64(item.Quantity)
	}
	return total
}
