package models

import "time"

const (
	BorrowingTable       = "smartlib_borrowings"
	BorrowingDetailTable = "smartlib_borrowing_details"
)

// Borrowing status machine:
//
//	pending --confirm--> active --return request--> returning --confirm--> returned
//
// "overdue" is never written to storage; an active borrowing past its due
// date is reported as overdue by the read side.
const (
	StatusPending   = "pending"
	StatusActive    = "active"
	StatusReturning = "returning"
	StatusReturned  = "returned"
	StatusOverdue   = "overdue"
)

// BorrowingDetail is one line item of a borrowing. Within a borrowing,
// BookID is unique; checkout collapses duplicate cart rows before any
// detail is created.
type BorrowingDetail struct {
	ID          string `gorm:"type:uuid;primaryKey" json:"id"`
	BorrowingID string `gorm:"type:uuid;index;not null" json:"-"`
	BookID      string `gorm:"type:uuid;index;not null" json:"bookId"`
	BookTitle   string `gorm:"size:255;not null" json:"bookTitle"`
	Quantity    int    `gorm:"not null" json:"quantity"`
}

func (BorrowingDetail) TableName() string { return BorrowingDetailTable }

// Borrowing is one checkout transaction covering one or more books for
// one member. Its status field drives all stock mutation.
type Borrowing struct {
	ID         string            `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     string            `gorm:"type:uuid;index;not null" json:"userId"`
	Details    []BorrowingDetail `gorm:"foreignKey:BorrowingID;constraint:OnDelete:CASCADE" json:"details"`
	BorrowDate time.Time         `gorm:"not null" json:"borrowDate"`
	DueDate    time.Time         `gorm:"not null;index" json:"dueDate"`

	ReturnRequestDate *time.Time `json:"returnRequestDate,omitempty"`
	ReturnDate        *time.Time `json:"returnDate,omitempty"`

	Status        string `gorm:"size:16;not null;index" json:"status"`
	Barcode       string `gorm:"size:64;index" json:"barcode"`
	ReturnBarcode string `gorm:"size:64" json:"returnBarcode,omitempty"`

	LateFee  int64 `gorm:"not null;default:0" json:"lateFee"`
	DaysLate int   `gorm:"not null;default:0" json:"daysLate"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Borrowing) TableName() string { return BorrowingTable }

// TotalQuantity is the number of copies covered by this borrowing.
func (b *Borrowing) TotalQuantity() int {
	total := 0
	for _, d := range b.Details {
		total += d.Quantity
	}
	return total
}

// Clone returns a deep copy; Details gets its own backing array so the
// lifecycle functions can build updated snapshots without touching inputs.
func (b Borrowing) Clone() Borrowing {
	out := b
	out.Details = make([]BorrowingDetail, len(b.Details))
	copy(out.Details, b.Details)
	return out
}
