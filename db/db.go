package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"smartlib/config"
	"smartlib/models"
)

func ConnectDB(cfg config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort,
	)
	conn, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := Migrate(conn); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return conn, nil
}

func Migrate(conn *gorm.DB) error {
	if err := conn.AutoMigrate(
		&models.User{},
		&models.Book{},
		&models.Borrowing{},
		&models.BorrowingDetail{},
		&models.Activity{},
	); err != nil {
		return err
	}

	// Open borrowings are what confirmation screens query all day.
	if err := conn.Exec(fmt.Sprintf(`
	  CREATE INDEX IF NOT EXISTS %s_open_status
	  ON %s (status, due_date)
	  WHERE status <> 'returned';
	`, models.BorrowingTable, models.BorrowingTable)).Error; err != nil {
		return err
	}

	// One detail row per book within a borrowing; checkout already
	// collapses duplicates, this backstops the invariant.
	if err := conn.Exec(fmt.Sprintf(`
	  CREATE UNIQUE INDEX IF NOT EXISTS %s_one_per_book
	  ON %s (borrowing_id, book_id);
	`, models.BorrowingDetailTable, models.BorrowingDetailTable)).Error; err != nil {
		return err
	}

	return nil
}
