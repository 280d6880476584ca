// Package circulation owns the borrowing lifecycle: status transitions
// and their side effects on book stock.
//
//	pending --confirm--> active --return request--> returning --confirm--> returned
//
// The transition functions in this file are pure: they take collection
// snapshots, never mutate their inputs, and either return fresh updated
// snapshots or an error with nothing applied. Re-entrancy is handled by
// the status preconditions alone — a second confirm of the same
// borrowing fails ErrInvalidState instead of applying twice.
package circulation

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"smartlib/cart"
	"smartlib/models"
)

// CreateBorrowing converts a cart into a pending borrowing for user.
// Cart rows are aggregated by book id, summing quantities, so a
// duplicate bookId can never surface as a duplicate detail downstream.
func CreateBorrowing(books []models.Book, items []cart.Item, user *models.User, borrowDate, dueDate time.Time) (models.Borrowing, error) {
	if len(items) == 0 {
		return models.Borrowing{}, ErrEmptyCart
	}
	if !dueDate.After(borrowDate) {
		return models.Borrowing{}, fmt.Errorf("%w: due date %s is not after borrow date %s",
			ErrValidation, dueDate.Format(time.DateOnly), borrowDate.Format(time.DateOnly))
	}

	byID := bookIndex(books)

	// Aggregate in first-seen order.
	order := make([]string, 0, len(items))
	qty := make(map[string]int, len(items))
	for _, it := range items {
		if it.Quantity < 1 {
			return models.Borrowing{}, fmt.Errorf("%w: quantity %d for book %s", ErrValidation, it.Quantity, it.BookID)
		}
		if _, seen := qty[it.BookID]; !seen {
			order = append(order, it.BookID)
		}
		qty[it.BookID] += it.Quantity
	}

	id := uuid.NewString()
	details := make([]models.BorrowingDetail, 0, len(order))
	for _, bookID := range order {
		book, ok := byID[bookID]
		if !ok {
			return models.Borrowing{}, fmt.Errorf("book %s: %w", bookID, ErrNotFound)
		}
		details = append(details, models.BorrowingDetail{
			ID:          uuid.NewString(),
			BorrowingID: id,
			BookID:      bookID,
			BookTitle:   book.Title,
			Quantity:    qty[bookID],
		})
	}

	return models.Borrowing{
		ID:         id,
		UserID:     user.ID,
		Details:    details,
		BorrowDate: borrowDate,
		DueDate:    dueDate,
		Status:     models.StatusPending,
		Barcode:    BorrowBarcode(user.MembershipID, borrowDate),
	}, nil
}

// ConfirmBorrowing moves a pending borrowing to active and decrements
// stock by each detail's quantity. Both collections are updated together
// or neither is. A borrowing that already left pending is rejected,
// which makes a double-fired confirm harmless.
func ConfirmBorrowing(books []models.Book, borrowings []models.Borrowing, borrowingID string) ([]models.Book, []models.Borrowing, error) {
	idx, err := findBorrowing(borrowings, borrowingID)
	if err != nil {
		return nil, nil, err
	}
	b := borrowings[idx]
	if b.Status != models.StatusPending {
		return nil, nil, fmt.Errorf("%w: borrowing %s is %s, not %s", ErrInvalidState, borrowingID, b.Status, models.StatusPending)
	}

	byID := make(map[string]int, len(books)) // book id -> index
	for i, book := range books {
		byID[book.ID] = i
	}
	for _, d := range b.Details {
		i, ok := byID[d.BookID]
		if !ok {
			return nil, nil, fmt.Errorf("book %s: %w", d.BookID, ErrNotFound)
		}
		if books[i].Stock < d.Quantity {
			return nil, nil, &InsufficientStockError{
				BookID:    d.BookID,
				BookTitle: d.BookTitle,
				Requested: d.Quantity,
				Available: books[i].Stock,
			}
		}
	}

	outBooks := cloneBooks(books)
	for _, d := range b.Details {
		outBooks[byID[d.BookID]].Stock -= d.Quantity
	}
	outBorrowings := cloneBorrowings(borrowings)
	outBorrowings[idx].Status = models.StatusActive
	return outBooks, outBorrowings, nil
}

// RequestReturn moves an active borrowing to returning and attaches a
// distinct return barcode. Works equally for a loan already past due,
// since overdue is a view over active, not a stored status.
func RequestReturn(borrowings []models.Borrowing, borrowingID string, user *models.User, now time.Time) ([]models.Borrowing, error) {
	idx, err := findBorrowing(borrowings, borrowingID)
	if err != nil {
		return nil, err
	}
	b := borrowings[idx]
	if b.Status != models.StatusActive {
		return nil, fmt.Errorf("%w: borrowing %s is %s, not %s", ErrInvalidState, borrowingID, b.Status, models.StatusActive)
	}

	out := cloneBorrowings(borrowings)
	requestDate := now
	out[idx].Status = models.StatusReturning
	out[idx].ReturnBarcode = ReturnBarcode(user.MembershipID, now)
	out[idx].ReturnRequestDate = &requestDate
	return out, nil
}

// ConfirmReturn completes a returning borrowing: restores each book's
// stock, books the late fee, and records the return date. The fee is
// daysLate x total copies x ratePerBookDay; on-time returns owe nothing.
func ConfirmReturn(books []models.Book, borrowings []models.Borrowing, borrowingID string, now time.Time, ratePerBookDay int64) ([]models.Book, []models.Borrowing, error) {
	idx, err := findBorrowing(borrowings, borrowingID)
	if err != nil {
		return nil, nil, err
	}
	b := borrowings[idx]
	if b.Status != models.StatusReturning {
		return nil, nil, fmt.Errorf("%w: borrowing %s is %s, not %s", ErrInvalidState, borrowingID, b.Status, models.StatusReturning)
	}

	daysLate := DaysLate(b.DueDate, now)
	fee := int64(daysLate) * int64(b.TotalQuantity()) * ratePerBookDay

	outBooks := cloneBooks(books)
	byID := make(map[string]int, len(outBooks))
	for i, book := range outBooks {
		byID[book.ID] = i
	}
	// A book removed from the catalog while on loan simply has no stock
	// row left to restore.
	for _, d := range b.Details {
		if i, ok := byID[d.BookID]; ok {
			outBooks[i].Stock += d.Quantity
		}
	}

	outBorrowings := cloneBorrowings(borrowings)
	returnDate := now
	outBorrowings[idx].Status = models.StatusReturned
	outBorrowings[idx].ReturnDate = &returnDate
	outBorrowings[idx].DaysLate = daysLate
	outBorrowings[idx].LateFee = fee
	return outBooks, outBorrowings, nil
}

// IsOverdue reports whether an active borrowing is past its due date.
// Overdue is purely a derived view; nothing ever writes it to storage.
func IsOverdue(b *models.Borrowing, now time.Time) bool {
	return b.Status == models.StatusActive && now.After(b.DueDate)
}

// DisplayStatus is the status to present: active-past-due shows as
// overdue, everything else as stored.
func DisplayStatus(b *models.Borrowing, now time.Time) string {
	if IsOverdue(b, now) {
		return models.StatusOverdue
	}
	return b.Status
}

// DaysLate is the whole days elapsed past due, floored, never negative.
func DaysLate(dueDate, at time.Time) int {
	days := math.Floor(at.Sub(dueDate).Hours() / 24)
	if days < 0 {
		return 0
	}
	return int(days)
}

// AccruedFee is the fee an outstanding borrowing would owe if returned
// at the given instant. Used by reporting; the booked fee is written
// only by ConfirmReturn.
func AccruedFee(b *models.Borrowing, now time.Time, ratePerBookDay int64) int64 {
	return int64(DaysLate(b.DueDate, now)) * int64(b.TotalQuantity()) * ratePerBookDay
}

func findBorrowing(borrowings []models.Borrowing, id string) (int, error) {
	for i := range borrowings {
		if borrowings[i].ID == id {
			return i, nil
		}
	}
	return 0, fmt.Errorf("borrowing %s: %w", id, ErrNotFound)
}

func bookIndex(books []models.Book) map[string]models.Book {
	byID := make(map[string]models.Book, len(books))
	for _, b := range books {
		byID[b.ID] = b
	}
	return byID
}

func cloneBooks(books []models.Book) []models.Book {
	out := make([]models.Book, len(books))
	copy(out, books)
	return out
}

func cloneBorrowings(borrowings []models.Borrowing) []models.Borrowing {
	out := make([]models.Borrowing, len(borrowings))
	for i := range borrowings {
		out[i] = borrowings[i].Clone()
	}
	return out
}
