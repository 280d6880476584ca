package models

import "time"

const BookTable = "smartlib_books"

type Book struct {
	ID          string    `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string    `gorm:"size:255;not null;index" json:"title"`
	Author      string    `gorm:"size:255;not null" json:"author"`
	Publisher   string    `gorm:"size:255" json:"publisher"`
	Genre       string    `gorm:"size:100;index" json:"genre"`
	Description string    `gorm:"type:text" json:"description"`
	CoverURL    string    `gorm:"size:512" json:"coverUrl"`
	PublishYear int       `json:"publishYear"`
	Stock       int       `gorm:"not null;default:0" json:"stock"` // copies on the shelf right now
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (Book) TableName() string { return BookTable }
