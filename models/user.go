package models

import "time"

const UserTable = "smartlib_users"

const (
	RoleMember = "member"
	RoleAdmin  = "admin"
)

type User struct {
	ID           string `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string `gorm:"size:255;not null" json:"name"`
	Email        string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Phone        string `gorm:"size:32" json:"phone"`
	Address      string `gorm:"size:512" json:"address"`
	// MembershipID looks like MEM-000001 for members, ADM-000001 for admins.
	MembershipID string    `gorm:"uniqueIndex;size:32;not null" json:"membershipId"`
	Role         string    `gorm:"size:16;not null;default:'member'" json:"role"`
	JoinDate     time.Time `gorm:"not null" json:"joinDate"`
	AvatarURL    string    `gorm:"size:512" json:"avatar,omitempty"`

	LastLoginAt *time.Time `gorm:"index" json:"lastLoginAt,omitempty"`
	LastSeenAt  *time.Time `gorm:"index" json:"lastSeenAt,omitempty"`
	LoginCount  int64      `gorm:"not null;default:0" json:"loginCount"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (User) TableName() string { return UserTable }

func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }
