// Package reporting computes the admin dashboard projections. Pure
// read-side: everything here is derived on demand from the current
// collections, nothing is stored.
package reporting

import (
	"sort"
	"time"

	"smartlib/circulation"
	"smartlib/models"
)

// PopularBook is a catalog entry ranked by how often it left the shelf.
type PopularBook struct {
	Book        models.Book `json:"book"`
	BorrowCount int         `json:"borrowCount"`
}

// Dashboard is the admin landing-page aggregate.
type Dashboard struct {
	TotalTitles    int `json:"totalTitles"`
	AvailableStock int `json:"availableStock"` // copies on the shelf; confirm already subtracted loans
	BorrowedCopies int `json:"borrowedCopies"` // copies out with members right now

	PendingCount   int `json:"pendingCount"`
	ActiveCount    int `json:"activeCount"` // includes overdue
	OverdueCount   int `json:"overdueCount"`
	ReturningCount int `json:"returningCount"`
	ReturnedCount  int `json:"returnedCount"`

	DistinctBorrowers int `json:"distinctBorrowers"`

	// OutstandingLateFees is what overdue and returning borrowings would
	// owe if all came back right now. BookedLateFees is what completed
	// returns actually paid.
	OutstandingLateFees int64 `json:"outstandingLateFees"`
	BookedLateFees      int64 `json:"bookedLateFees"`

	PopularBooks []PopularBook `json:"popularBooks"`
}

// Build assembles the dashboard at the given instant. Overdue is
// derived: an active borrowing past due counts as overdue and also as
// active.
func Build(books []models.Book, borrowings []models.Borrowing, now time.Time, ratePerBookDay int64) Dashboard {
	d := Dashboard{TotalTitles: len(books)}
	for _, b := range books {
		d.AvailableStock += b.Stock
	}

	borrowCounts := make(map[string]int)
	borrowers := make(map[string]struct{})
	for i := range borrowings {
		b := &borrowings[i]
		for _, det := range b.Details {
			borrowCounts[det.BookID] += det.Quantity
		}
		switch b.Status {
		case models.StatusPending:
			d.PendingCount++
		case models.StatusActive:
			d.ActiveCount++
			d.BorrowedCopies += b.TotalQuantity()
			borrowers[b.UserID] = struct{}{}
			if circulation.IsOverdue(b, now) {
				d.OverdueCount++
				d.OutstandingLateFees += circulation.AccruedFee(b, now, ratePerBookDay)
			}
		case models.StatusReturning:
			d.ReturningCount++
			d.BorrowedCopies += b.TotalQuantity()
			borrowers[b.UserID] = struct{}{}
			d.OutstandingLateFees += circulation.AccruedFee(b, now, ratePerBookDay)
		case models.StatusReturned:
			d.ReturnedCount++
			d.BookedLateFees += b.LateFee
		}
	}
	d.DistinctBorrowers = len(borrowers)
	d.PopularBooks = popular(books, borrowCounts, 5)
	return d
}

// popular ranks books by total copies borrowed across all borrowings,
// descending, keeping the top n that were borrowed at least once.
func popular(books []models.Book, counts map[string]int, n int) []PopularBook {
	out := make([]PopularBook, 0, len(counts))
	for _, b := range books {
		if c := counts[b.ID]; c > 0 {
			out = append(out, PopularBook{Book: b, BorrowCount: c})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].BorrowCount > out[j].BorrowCount
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}
