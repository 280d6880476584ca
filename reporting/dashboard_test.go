package reporting

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartlib/models"
)

var now = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func borrowing(id, userID, status string, due time.Time, details ...models.BorrowingDetail) models.Borrowing {
	return models.Borrowing{ID: id, UserID: userID, Status: status, DueDate: due, Details: details}
}

func detail(bookID string, qty int) models.BorrowingDetail {
	return models.BorrowingDetail{BookID: bookID, Quantity: qty}
}

func TestBuildCountsAndStock(t *testing.T) {
	books := []models.Book{
		{ID: "b1", Title: "Laskar Pelangi", Stock: 3},
		{ID: "b2", Title: "Clean Code", Stock: 1},
	}
	borrowings := []models.Borrowing{
		borrowing("p1", "u1", models.StatusPending, now.AddDate(0, 0, 7), detail("b1", 1)),
		borrowing("a1", "u1", models.StatusActive, now.AddDate(0, 0, 3), detail("b1", 2)),
		borrowing("a2", "u2", models.StatusActive, now.AddDate(0, 0, -2), detail("b2", 1)), // overdue
		borrowing("r1", "u2", models.StatusReturning, now.AddDate(0, 0, 1), detail("b1", 1)),
		borrowing("d1", "u3", models.StatusReturned, now.AddDate(0, 0, -10), detail("b2", 1)),
	}
	borrowings[4].LateFee = 4000

	d := Build(books, borrowings, now, 2000)

	assert.Equal(t, 2, d.TotalTitles)
	assert.Equal(t, 4, d.AvailableStock)
	assert.Equal(t, 4, d.BorrowedCopies) // a1 + a2 + r1

	assert.Equal(t, 1, d.PendingCount)
	assert.Equal(t, 2, d.ActiveCount)
	assert.Equal(t, 1, d.OverdueCount)
	assert.Equal(t, 1, d.ReturningCount)
	assert.Equal(t, 1, d.ReturnedCount)

	assert.Equal(t, 2, d.DistinctBorrowers, "pending and returned do not count")
	assert.Equal(t, int64(4000), d.BookedLateFees)
	// a2: 2 days x 1 copy x 2000 = 4000; r1 not yet due contributes 0
	assert.Equal(t, int64(4000), d.OutstandingLateFees)
}

func TestBuildPopularBooks(t *testing.T) {
	books := []models.Book{
		{ID: "b1", Title: "Laskar Pelangi"},
		{ID: "b2", Title: "Clean Code"},
		{ID: "b3", Title: "Sapiens"},
	}
	borrowings := []models.Borrowing{
		borrowing("x1", "u1", models.StatusReturned, now, detail("b2", 1)),
		borrowing("x2", "u2", models.StatusActive, now, detail("b1", 3), detail("b2", 1)),
		borrowing("x3", "u3", models.StatusPending, now, detail("b1", 1)),
	}

	d := Build(books, borrowings, now, 2000)

	require.Len(t, d.PopularBooks, 2, "never-borrowed titles are excluded")
	assert.Equal(t, "b1", d.PopularBooks[0].Book.ID)
	assert.Equal(t, 4, d.PopularBooks[0].BorrowCount)
	assert.Equal(t, "b2", d.PopularBooks[1].Book.ID)
	assert.Equal(t, 2, d.PopularBooks[1].BorrowCount)
}

func TestBuildEmpty(t *testing.T) {
	d := Build(nil, nil, now, 2000)
	assert.Zero(t, d.TotalTitles)
	assert.Zero(t, d.OutstandingLateFees)
	assert.Empty(t, d.PopularBooks)
}
