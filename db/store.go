package db

import (
	"context"

	"gorm.io/gorm"

	"smartlib/models"
)

// Store is the postgres implementation of the circulation storage port.
// The port's contract is full-collection reads and writes, so each save
// replaces the table contents wholesale inside one transaction — the
// service's in-memory snapshot is the source of truth and the write must
// mirror it exactly, deletions included.
type Store struct{ DB *gorm.DB }

func NewStore(conn *gorm.DB) *Store { return &Store{DB: conn} }

func (s *Store) LoadBooks(ctx context.Context) ([]models.Book, error) {
	var books []models.Book
	if err := s.DB.WithContext(ctx).Order("title ASC").Find(&books).Error; err != nil {
		return nil, err
	}
	return books, nil
}

func (s *Store) SaveBooks(ctx context.Context, books []models.Book) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).
			Delete(&models.Book{}).Error; err != nil {
			return err
		}
		if len(books) == 0 {
			return nil
		}
		return tx.CreateInBatches(books, 100).Error
	})
}

func (s *Store) LoadBorrowings(ctx context.Context) ([]models.Borrowing, error) {
	var borrowings []models.Borrowing
	if err := s.DB.WithContext(ctx).
		Preload("Details").
		Order("created_at ASC").
		Find(&borrowings).Error; err != nil {
		return nil, err
	}
	return borrowings, nil
}

func (s *Store) SaveBorrowings(ctx context.Context, borrowings []models.Borrowing) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).
			Delete(&models.BorrowingDetail{}).Error; err != nil {
			return err
		}
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).
			Delete(&models.Borrowing{}).Error; err != nil {
			return err
		}
		if len(borrowings) == 0 {
			return nil
		}
		return tx.CreateInBatches(borrowings, 100).Error
	})
}
