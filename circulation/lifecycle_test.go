package circulation

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartlib/cart"
	"smartlib/models"
)

var (
	day0 = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	due  = day0.AddDate(0, 0, 7)
)

func testBooks() []models.Book {
	return []models.Book{
		{ID: "book-1", Title: "Laskar Pelangi", Genre: "Novel", Stock: 5},
		{ID: "book-2", Title: "Clean Code", Genre: "Teknologi", Stock: 2},
		{ID: "book-3", Title: "Sapiens", Genre: "Sejarah", Stock: 0},
	}
}

func testUser() *models.User {
	return &models.User{ID: "user-1", Name: "Budi", MembershipID: "MEM-000001"}
}

func mustCreate(t *testing.T, books []models.Book, items []cart.Item) models.Borrowing {
	t.Helper()
	b, err := CreateBorrowing(books, items, testUser(), day0, due)
	require.NoError(t, err)
	return b
}

func TestCreateBorrowing(t *testing.T) {
	t.Run("builds a pending borrowing with denormalized titles", func(t *testing.T) {
		b := mustCreate(t, testBooks(), []cart.Item{
			{BookID: "book-1", Quantity: 2},
			{BookID: "book-2", Quantity: 1},
		})

		assert.Equal(t, models.StatusPending, b.Status)
		assert.Equal(t, "user-1", b.UserID)
		require.Len(t, b.Details, 2)
		assert.Equal(t, "Laskar Pelangi", b.Details[0].BookTitle)
		assert.Equal(t, 2, b.Details[0].Quantity)
		assert.NotEmpty(t, b.Barcode)
	})

	t.Run("aggregates duplicate cart rows by book id", func(t *testing.T) {
		b := mustCreate(t, testBooks(), []cart.Item{
			{BookID: "book-1", Quantity: 2},
			{BookID: "book-2", Quantity: 1},
			{BookID: "book-1", Quantity: 3},
		})

		require.Len(t, b.Details, 2)
		seen := map[string]int{}
		for _, d := range b.Details {
			seen[d.BookID]++
		}
		for bookID, n := range seen {
			assert.Equal(t, 1, n, "book %s appears %d times", bookID, n)
		}
		assert.Equal(t, 5, b.Details[0].Quantity, "quantities must be summed")
	})

	t.Run("empty cart", func(t *testing.T) {
		_, err := CreateBorrowing(testBooks(), nil, testUser(), day0, due)
		assert.ErrorIs(t, err, ErrEmptyCart)
	})

	t.Run("due date not after borrow date", func(t *testing.T) {
		_, err := CreateBorrowing(testBooks(), []cart.Item{{BookID: "book-1", Quantity: 1}}, testUser(), day0, day0)
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("unknown book", func(t *testing.T) {
		_, err := CreateBorrowing(testBooks(), []cart.Item{{BookID: "nope", Quantity: 1}}, testUser(), day0, due)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("non-positive quantity", func(t *testing.T) {
		_, err := CreateBorrowing(testBooks(), []cart.Item{{BookID: "book-1", Quantity: 0}}, testUser(), day0, due)
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestConfirmBorrowing(t *testing.T) {
	t.Run("decrements stock and activates", func(t *testing.T) {
		books := testBooks()
		b := mustCreate(t, books, []cart.Item{{BookID: "book-1", Quantity: 2}})
		borrowings := []models.Borrowing{b}

		gotBooks, gotBorrowings, err := ConfirmBorrowing(books, borrowings, b.ID)
		require.NoError(t, err)

		assert.Equal(t, 3, gotBooks[0].Stock)
		assert.Equal(t, models.StatusActive, gotBorrowings[0].Status)
		// inputs untouched
		assert.Equal(t, 5, books[0].Stock)
		assert.Equal(t, models.StatusPending, borrowings[0].Status)
	})

	t.Run("second confirm fails and stock stays at one application", func(t *testing.T) {
		books := testBooks()
		b := mustCreate(t, books, []cart.Item{{BookID: "book-1", Quantity: 2}})

		books1, borrowings1, err := ConfirmBorrowing(books, []models.Borrowing{b}, b.ID)
		require.NoError(t, err)

		_, _, err = ConfirmBorrowing(books1, borrowings1, b.ID)
		assert.ErrorIs(t, err, ErrInvalidState)
		assert.Equal(t, 3, books1[0].Stock, "stock must equal one application")
	})

	t.Run("insufficient stock names the book and changes nothing", func(t *testing.T) {
		books := testBooks()
		b := mustCreate(t, books, []cart.Item{
			{BookID: "book-1", Quantity: 1},
			{BookID: "book-3", Quantity: 1}, // stock 0
		})

		_, _, err := ConfirmBorrowing(books, []models.Borrowing{b}, b.ID)
		var stockErr *InsufficientStockError
		require.ErrorAs(t, err, &stockErr)
		assert.Equal(t, "book-3", stockErr.BookID)
		assert.Equal(t, "Sapiens", stockErr.BookTitle)
		assert.Equal(t, 1, stockErr.Requested)
		assert.Equal(t, 0, stockErr.Available)
		assert.Equal(t, 5, books[0].Stock, "no partial application")
	})

	t.Run("unknown borrowing", func(t *testing.T) {
		_, _, err := ConfirmBorrowing(testBooks(), nil, "nope")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestRequestReturn(t *testing.T) {
	activeBorrowing := func(t *testing.T) ([]models.Book, []models.Borrowing, models.Borrowing) {
		t.Helper()
		books := testBooks()
		b := mustCreate(t, books, []cart.Item{{BookID: "book-1", Quantity: 1}})
		books1, borrowings1, err := ConfirmBorrowing(books, []models.Borrowing{b}, b.ID)
		require.NoError(t, err)
		return books1, borrowings1, b
	}

	t.Run("issues a distinct return barcode", func(t *testing.T) {
		_, borrowings, b := activeBorrowing(t)

		got, err := RequestReturn(borrowings, b.ID, testUser(), due)
		require.NoError(t, err)
		assert.Equal(t, models.StatusReturning, got[0].Status)
		assert.NotEmpty(t, got[0].ReturnBarcode)
		assert.NotEqual(t, got[0].Barcode, got[0].ReturnBarcode)
		require.NotNil(t, got[0].ReturnRequestDate)
	})

	t.Run("works on an overdue loan", func(t *testing.T) {
		_, borrowings, b := activeBorrowing(t)

		now := due.AddDate(0, 0, 10)
		require.True(t, IsOverdue(&borrowings[0], now))
		_, err := RequestReturn(borrowings, b.ID, testUser(), now)
		assert.NoError(t, err)
	})

	t.Run("rejected from pending and returned", func(t *testing.T) {
		books := testBooks()
		pending := mustCreate(t, books, []cart.Item{{BookID: "book-1", Quantity: 1}})
		_, err := RequestReturn([]models.Borrowing{pending}, pending.ID, testUser(), day0)
		assert.ErrorIs(t, err, ErrInvalidState)

		_, borrowings, b := activeBorrowing(t)
		borrowings, err = RequestReturn(borrowings, b.ID, testUser(), due)
		require.NoError(t, err)
		_, borrowings2, err := ConfirmReturn(books, borrowings, b.ID, due, 2000)
		require.NoError(t, err)

		_, err = RequestReturn(borrowings2, b.ID, testUser(), due)
		assert.ErrorIs(t, err, ErrInvalidState)
	})
}

func TestConfirmReturn(t *testing.T) {
	returningBorrowing := func(t *testing.T, items []cart.Item) ([]models.Book, []models.Borrowing, models.Borrowing) {
		t.Helper()
		books := testBooks()
		b := mustCreate(t, books, items)
		books1, borrowings1, err := ConfirmBorrowing(books, []models.Borrowing{b}, b.ID)
		require.NoError(t, err)
		borrowings2, err := RequestReturn(borrowings1, b.ID, testUser(), due)
		require.NoError(t, err)
		return books1, borrowings2, b
	}

	t.Run("stock round-trips to the pre-borrow value", func(t *testing.T) {
		books, borrowings, b := returningBorrowing(t, []cart.Item{
			{BookID: "book-1", Quantity: 2},
			{BookID: "book-2", Quantity: 1},
		})

		gotBooks, gotBorrowings, err := ConfirmReturn(books, borrowings, b.ID, due, 2000)
		require.NoError(t, err)
		assert.Equal(t, 5, gotBooks[0].Stock)
		assert.Equal(t, 2, gotBooks[1].Stock)
		assert.Equal(t, models.StatusReturned, gotBorrowings[0].Status)
		require.NotNil(t, gotBorrowings[0].ReturnDate)
	})

	t.Run("three days late, two copies, rate 2000", func(t *testing.T) {
		books, borrowings, b := returningBorrowing(t, []cart.Item{{BookID: "book-1", Quantity: 2}})

		_, got, err := ConfirmReturn(books, borrowings, b.ID, due.AddDate(0, 0, 3), 2000)
		require.NoError(t, err)
		assert.Equal(t, 3, got[0].DaysLate)
		assert.Equal(t, int64(12000), got[0].LateFee)
	})

	t.Run("on time owes nothing", func(t *testing.T) {
		books, borrowings, b := returningBorrowing(t, []cart.Item{{BookID: "book-1", Quantity: 2}})

		_, got, err := ConfirmReturn(books, borrowings, b.ID, due, 2000)
		require.NoError(t, err)
		assert.Equal(t, 0, got[0].DaysLate)
		assert.Equal(t, int64(0), got[0].LateFee)
	})

	t.Run("rejected unless returning", func(t *testing.T) {
		books := testBooks()
		pending := mustCreate(t, books, []cart.Item{{BookID: "book-1", Quantity: 1}})
		_, _, err := ConfirmReturn(books, []models.Borrowing{pending}, pending.ID, due, 2000)
		assert.ErrorIs(t, err, ErrInvalidState)
	})

	t.Run("book deleted while on loan is skipped on restock", func(t *testing.T) {
		books, borrowings, b := returningBorrowing(t, []cart.Item{{BookID: "book-1", Quantity: 1}})

		// catalog shrank while the loan was out
		shrunk := books[1:]
		gotBooks, gotBorrowings, err := ConfirmReturn(shrunk, borrowings, b.ID, due, 2000)
		require.NoError(t, err)
		assert.Len(t, gotBooks, 2)
		assert.Equal(t, models.StatusReturned, gotBorrowings[0].Status)
	})
}

func TestDaysLate(t *testing.T) {
	tests := []struct {
		name string
		at   time.Time
		want int
	}{
		{"before due", due.Add(-time.Hour), 0},
		{"exactly due", due, 0},
		{"twelve hours late floors to zero", due.Add(12 * time.Hour), 0},
		{"one day late", due.AddDate(0, 0, 1), 1},
		{"three and a half days floors to three", due.Add(84 * time.Hour), 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DaysLate(due, tt.at))
		})
	}
}

func TestOverdueIsDerived(t *testing.T) {
	b := models.Borrowing{Status: models.StatusActive, DueDate: due}

	assert.False(t, IsOverdue(&b, due))
	assert.True(t, IsOverdue(&b, due.Add(time.Minute)))
	assert.Equal(t, models.StatusOverdue, DisplayStatus(&b, due.Add(time.Minute)))
	assert.Equal(t, models.StatusActive, DisplayStatus(&b, due))

	// stored status never flips
	assert.Equal(t, models.StatusActive, b.Status)

	returned := models.Borrowing{Status: models.StatusReturned, DueDate: due}
	assert.False(t, IsOverdue(&returned, due.AddDate(0, 0, 30)))
}

func TestErrorsStayMatchableThroughWrapping(t *testing.T) {
	books := testBooks()
	b := mustCreate(t, books, []cart.Item{{BookID: "book-1", Quantity: 1}})
	books1, borrowings1, err := ConfirmBorrowing(books, []models.Borrowing{b}, b.ID)
	require.NoError(t, err)

	_, _, err = ConfirmBorrowing(books1, borrowings1, b.ID)
	assert.True(t, errors.Is(err, ErrInvalidState))
	assert.Contains(t, err.Error(), b.ID)
}
