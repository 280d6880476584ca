package db

import (
	"context"
	"sync"

	"smartlib/models"
)

// MemStore keeps the circulation collections in process memory. It backs
// the store=memory variant, where the app behaves like the demo with no
// database: state survives as long as the process does.
type MemStore struct {
	mu         sync.Mutex
	books      []models.Book
	borrowings []models.Borrowing
}

func NewMemStore() *MemStore { return &MemStore{} }

func (m *MemStore) LoadBooks(ctx context.Context) ([]models.Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Book, len(m.books))
	copy(out, m.books)
	return out, nil
}

func (m *MemStore) SaveBooks(ctx context.Context, books []models.Book) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.books = make([]models.Book, len(books))
	copy(m.books, books)
	return nil
}

func (m *MemStore) LoadBorrowings(ctx context.Context) ([]models.Borrowing, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Borrowing, len(m.borrowings))
	for i := range m.borrowings {
		out[i] = m.borrowings[i].Clone()
	}
	return out, nil
}

func (m *MemStore) SaveBorrowings(ctx context.Context, borrowings []models.Borrowing) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.borrowings = make([]models.Borrowing, len(borrowings))
	for i := range borrowings {
		m.borrowings[i] = borrowings[i].Clone()
	}
	return nil
}
