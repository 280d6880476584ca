package models

import "time"

const ActivityTable = "smartlib_activities"

// Activity actions recorded by the audit log.
const (
	ActionLogin         = "login"
	ActionLogout        = "logout"
	ActionRegister      = "register"
	ActionBorrowRequest = "borrow_request"
	ActionBorrowConfirm = "borrow_confirm"
	ActionReturnRequest = "return_request"
	ActionReturnConfirm = "return_confirm"
	ActionBookAdd       = "book_add"
	ActionBookEdit      = "book_edit"
	ActionBookDelete    = "book_delete"
	ActionStockUpdate   = "stock_update"
)

// Activity is an append-only audit record. Rows are never updated or
// deleted once written.
type Activity struct {
	ID          string         `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      string         `gorm:"type:uuid;index" json:"userId"`
	UserName    string         `gorm:"size:255" json:"userName"`
	UserRole    string         `gorm:"size:16" json:"userRole"`
	Action      string         `gorm:"size:32;index;not null" json:"action"`
	Description string         `gorm:"size:512" json:"description"`
	Timestamp   time.Time      `gorm:"index;not null" json:"timestamp"`
	Metadata    map[string]any `gorm:"serializer:json;type:jsonb" json:"metadata,omitempty"`
}

func (Activity) TableName() string { return ActivityTable }
