package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddUpserts(t *testing.T) {
	items, added := Add(nil, "book-1")
	assert.True(t, added)
	assert.Equal(t, []Item{{BookID: "book-1", Quantity: 1}}, items)

	items, added = Add(items, "book-2")
	assert.True(t, added)
	assert.Len(t, items, 2)

	// a second add of the same book never appends a second row
	again, added := Add(items, "book-1")
	assert.False(t, added)
	assert.Len(t, again, 2)

	seen := map[string]int{}
	for _, it := range again {
		seen[it.BookID]++
	}
	for bookID, n := range seen {
		assert.Equal(t, 1, n, "book %s has %d rows", bookID, n)
	}
}

func TestSetQuantity(t *testing.T) {
	items := []Item{{BookID: "book-1", Quantity: 1}, {BookID: "book-2", Quantity: 1}}

	got := SetQuantity(items, "book-1", 3)
	assert.Equal(t, 3, got[0].Quantity)
	assert.Equal(t, 1, items[0].Quantity, "input not mutated")

	got = SetQuantity(items, "book-1", 0)
	assert.Equal(t, 1, got[0].Quantity, "clamped to 1")

	got = SetQuantity(items, "missing", 5)
	assert.Equal(t, items, got)
}

func TestRemove(t *testing.T) {
	items := []Item{{BookID: "book-1", Quantity: 1}, {BookID: "book-2", Quantity: 2}}

	got := Remove(items, "book-1")
	assert.Equal(t, []Item{{BookID: "book-2", Quantity: 2}}, got)

	got = Remove(got, "missing")
	assert.Len(t, got, 1)
}

func TestTotalQuantity(t *testing.T) {
	assert.Equal(t, 0, TotalQuantity(nil))
	assert.Equal(t, 5, TotalQuantity([]Item{
		{BookID: "book-1", Quantity: 2},
		{BookID: "book-2", Quantity: 3},
	}))
}
