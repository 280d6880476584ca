package circulation

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"smartlib/cart"
	"smartlib/models"
)

// Store is the persistence port for the circulation collections. Reads
// and writes cover the full collection; no partial-update protocol is
// assumed, so any backend that can round-trip both slices will do.
type Store interface {
	LoadBooks(ctx context.Context) ([]models.Book, error)
	SaveBooks(ctx context.Context, books []models.Book) error
	LoadBorrowings(ctx context.Context) ([]models.Borrowing, error)
	SaveBorrowings(ctx context.Context, borrowings []models.Borrowing) error
}

// Config carries the circulation policy knobs.
type Config struct {
	// LateFeePerBookDay is the fee per copy per day past due, in Rupiah.
	LateFeePerBookDay int64
	// LoanPeriodDays sets the due date at checkout.
	LoanPeriodDays int
}

// Service wires the pure lifecycle functions to a Store. It owns the
// current in-memory snapshot of books and borrowings under one mutex:
// there is at most one writer, and a second mutation for the same
// borrowing that sneaks in behind the first simply fails its status
// precondition.
//
// A Store failure never takes the service down. Failed loads fall back
// to the supplied seed data; failed writes are logged and the service
// keeps operating against its last-known in-memory state.
type Service struct {
	store Store
	cfg   Config
	log   *zap.Logger

	mu         sync.Mutex
	books      []models.Book
	borrowings []models.Borrowing
	degraded   bool
}

func NewService(store Store, cfg Config, log *zap.Logger) *Service {
	return &Service{store: store, cfg: cfg, log: log}
}

// Load pulls both collections from the store. When the store is
// unreachable the service seeds itself with seedBooks and runs degraded.
func (s *Service) Load(ctx context.Context, seedBooks []models.Book) {
	s.mu.Lock()
	defer s.mu.Unlock()

	books, err := s.store.LoadBooks(ctx)
	if err == nil {
		var borrowings []models.Borrowing
		borrowings, err = s.store.LoadBorrowings(ctx)
		if err == nil {
			s.books = books
			s.borrowings = borrowings
			s.degraded = false
			s.log.Info("circulation state loaded",
				zap.Int("books", len(books)), zap.Int("borrowings", len(borrowings)))
			return
		}
	}

	s.degraded = true
	s.books = cloneBooks(seedBooks)
	s.borrowings = nil
	s.log.Warn("store unreachable, falling back to seed data",
		zap.Error(fmt.Errorf("%w: %v", ErrStorageUnavailable, err)))
}

// SeedIfEmpty installs the demo catalog when the store loaded cleanly
// but holds no books yet, mirroring first-run initialization.
func (s *Service) SeedIfEmpty(ctx context.Context, seedBooks []models.Book) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.books) > 0 {
		return
	}
	s.books = cloneBooks(seedBooks)
	s.persistBooks(ctx)
	s.log.Info("seeded demo catalog", zap.Int("books", len(seedBooks)))
}

// Degraded reports whether the service is running on in-memory state
// that could not be loaded from or written to the store.
func (s *Service) Degraded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.degraded
}

// ---- reads ----

func (s *Service) Books() []models.Book {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneBooks(s.books)
}

func (s *Service) FindBook(id string) (models.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.books {
		if b.ID == id {
			return b, nil
		}
	}
	return models.Book{}, fmt.Errorf("book %s: %w", id, ErrNotFound)
}

func (s *Service) Borrowings() []models.Borrowing {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneBorrowings(s.borrowings)
}

func (s *Service) BorrowingsForUser(userID string) []models.Borrowing {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Borrowing
	for i := range s.borrowings {
		if s.borrowings[i].UserID == userID {
			out = append(out, s.borrowings[i].Clone())
		}
	}
	return out
}

func (s *Service) FindBorrowing(id string) (models.Borrowing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.borrowings {
		if s.borrowings[i].ID == id {
			return s.borrowings[i].Clone(), nil
		}
	}
	return models.Borrowing{}, fmt.Errorf("borrowing %s: %w", id, ErrNotFound)
}

// FindByBarcode resolves a scanned token against both the borrow and
// the return barcode. Barcodes are only practically unique; the newest
// match wins when an old one collides.
func (s *Service) FindByBarcode(code string) (models.Borrowing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(s.borrowings) - 1; i >= 0; i-- {
		b := &s.borrowings[i]
		if b.Barcode == code || (b.ReturnBarcode != "" && b.ReturnBarcode == code) {
			return b.Clone(), nil
		}
	}
	return models.Borrowing{}, fmt.Errorf("barcode %s: %w", code, ErrNotFound)
}

// ---- lifecycle mutations ----

// Checkout converts the member's cart into a pending borrowing due
// LoanPeriodDays from now.
func (s *Service) Checkout(ctx context.Context, items []cart.Item, user *models.User, now time.Time) (models.Borrowing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	dueDate := now.AddDate(0, 0, s.cfg.LoanPeriodDays)
	b, err := CreateBorrowing(s.books, items, user, now, dueDate)
	if err != nil {
		return models.Borrowing{}, err
	}
	s.borrowings = append(cloneBorrowings(s.borrowings), b)
	s.persistBorrowings(ctx)
	return b.Clone(), nil
}

// ConfirmBorrowing is the staff-side scan that activates a pending
// borrowing and takes its copies out of stock.
func (s *Service) ConfirmBorrowing(ctx context.Context, borrowingID string) (models.Borrowing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	books, borrowings, err := ConfirmBorrowing(s.books, s.borrowings, borrowingID)
	if err != nil {
		return models.Borrowing{}, err
	}
	s.books = books
	s.borrowings = borrowings
	s.persistBooks(ctx)
	s.persistBorrowings(ctx)
	return s.mustFind(borrowingID), nil
}

// RequestReturn is the member-side action announcing the books are
// coming back; it issues the RET barcode for the staff scan.
func (s *Service) RequestReturn(ctx context.Context, borrowingID string, user *models.User, now time.Time) (models.Borrowing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	borrowings, err := RequestReturn(s.borrowings, borrowingID, user, now)
	if err != nil {
		return models.Borrowing{}, err
	}
	s.borrowings = borrowings
	s.persistBorrowings(ctx)
	return s.mustFind(borrowingID), nil
}

// ConfirmReturn is the staff-side scan that completes the return,
// restores stock, and books the late fee.
func (s *Service) ConfirmReturn(ctx context.Context, borrowingID string, now time.Time) (models.Borrowing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	books, borrowings, err := ConfirmReturn(s.books, s.borrowings, borrowingID, now, s.cfg.LateFeePerBookDay)
	if err != nil {
		return models.Borrowing{}, err
	}
	s.books = books
	s.borrowings = borrowings
	s.persistBooks(ctx)
	s.persistBorrowings(ctx)
	return s.mustFind(borrowingID), nil
}

// ---- catalog mutations (admin) ----

// AddBook registers a new title.
func (s *Service) AddBook(ctx context.Context, book models.Book) (models.Book, error) {
	if book.Title == "" {
		return models.Book{}, fmt.Errorf("%w: title is required", ErrValidation)
	}
	if book.Stock < 0 {
		return models.Book{}, fmt.Errorf("%w: stock must not be negative", ErrValidation)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	book.ID = uuid.NewString()
	s.books = append(cloneBooks(s.books), book)
	s.persistBooks(ctx)
	return book, nil
}

// UpdateBook replaces the stored fields of an existing title.
func (s *Service) UpdateBook(ctx context.Context, book models.Book) (models.Book, error) {
	if book.Stock < 0 {
		return models.Book{}, fmt.Errorf("%w: stock must not be negative", ErrValidation)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	books := cloneBooks(s.books)
	for i := range books {
		if books[i].ID == book.ID {
			book.CreatedAt = books[i].CreatedAt
			books[i] = book
			s.books = books
			s.persistBooks(ctx)
			return book, nil
		}
	}
	return models.Book{}, fmt.Errorf("book %s: %w", book.ID, ErrNotFound)
}

// SetStock overwrites a title's stock level.
func (s *Service) SetStock(ctx context.Context, bookID string, stock int) (models.Book, error) {
	if stock < 0 {
		return models.Book{}, fmt.Errorf("%w: stock must not be negative", ErrValidation)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	books := cloneBooks(s.books)
	for i := range books {
		if books[i].ID == bookID {
			books[i].Stock = stock
			s.books = books
			s.persistBooks(ctx)
			return books[i], nil
		}
	}
	return models.Book{}, fmt.Errorf("book %s: %w", bookID, ErrNotFound)
}

// DeleteBook removes a title from the catalog. Copies of it still out
// on loan are simply not restocked when they come back.
func (s *Service) DeleteBook(ctx context.Context, bookID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	books := make([]models.Book, 0, len(s.books))
	found := false
	for _, b := range s.books {
		if b.ID == bookID {
			found = true
			continue
		}
		books = append(books, b)
	}
	if !found {
		return fmt.Errorf("book %s: %w", bookID, ErrNotFound)
	}
	s.books = books
	s.persistBooks(ctx)
	return nil
}

// ---- persistence ----

// persistBooks and persistBorrowings are called with the mutex held.
// Write failures flip the service into degraded mode instead of
// propagating: the in-memory state is already consistent and stays the
// source of truth until the store comes back.

func (s *Service) persistBooks(ctx context.Context) {
	if err := s.store.SaveBooks(ctx, s.books); err != nil {
		s.degraded = true
		s.log.Warn("saving books failed, continuing in memory",
			zap.Error(fmt.Errorf("%w: %v", ErrStorageUnavailable, err)))
		return
	}
	s.degraded = false
}

func (s *Service) persistBorrowings(ctx context.Context) {
	if err := s.store.SaveBorrowings(ctx, s.borrowings); err != nil {
		s.degraded = true
		s.log.Warn("saving borrowings failed, continuing in memory",
			zap.Error(fmt.Errorf("%w: %v", ErrStorageUnavailable, err)))
		return
	}
	s.degraded = false
}

func (s *Service) mustFind(id string) models.Borrowing {
	for i := range s.borrowings {
		if s.borrowings[i].ID == id {
			return s.borrowings[i].Clone()
		}
	}
	// Unreachable: callers only ask for ids the transition just touched.
	return models.Borrowing{}
}
