// Package cart holds a member's pre-checkout book selection. A cart is
// ephemeral: it lives alongside the login session and is never part of
// the persisted circulation state.
package cart

// Item is one selected book. No two items in a cart share a BookID;
// every write path below upserts instead of appending.
type Item struct {
	BookID   string `json:"bookId"`
	Quantity int    `json:"quantity"`
}

// Add upserts bookID into the cart with quantity 1. If the book is
// already in the cart the cart is returned unchanged and added is false,
// matching the storefront behavior of refusing a duplicate add rather
// than bumping the quantity silently.
func Add(items []Item, bookID string) (out []Item, added bool) {
	for _, it := range items {
		if it.BookID == bookID {
			return items, false
		}
	}
	out = make([]Item, len(items), len(items)+1)
	copy(out, items)
	return append(out, Item{BookID: bookID, Quantity: 1}), true
}

// SetQuantity updates the quantity for bookID, keeping its position.
// Quantities below 1 are clamped to 1. Unknown bookID is a no-op.
func SetQuantity(items []Item, bookID string, quantity int) []Item {
	if quantity < 1 {
		quantity = 1
	}
	out := make([]Item, len(items))
	copy(out, items)
	for i := range out {
		if out[i].BookID == bookID {
			out[i].Quantity = quantity
		}
	}
	return out
}

// Remove drops bookID from the cart.
func Remove(items []Item, bookID string) []Item {
	out := make([]Item, 0, len(items))
	for _, it := range items {
		if it.BookID != bookID {
			out = append(out, it)
		}
	}
	return out
}

// TotalQuantity sums the copies across all items.
func TotalQuantity(items []Item) int {
	total := 0
	for _, it := range items {
		total += it.Quantity
	}
	return total
}
