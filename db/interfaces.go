package db

import (
	"context"

	"smartlib/models"
)

// UserStore is the persistence port for accounts. Implemented by the
// postgres Repo and by MemRepo for the store=memory variant.
type UserStore interface {
	CreateUser(ctx context.Context, u *models.User) error
	FindUserByID(ctx context.Context, id string) (*models.User, error)
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateUser(ctx context.Context, u *models.User) error
	DeleteUserByID(ctx context.Context, id string) error
	ListUsers(ctx context.Context, q string, page, size int) (ListUsersResult, error)
	CountUsers(ctx context.Context) (int64, error)

	TouchUserLogin(ctx context.Context, userID string) error
	TouchUserSeen(ctx context.Context, userID string) error
}

// ActivityStore is the append-only audit log port.
type ActivityStore interface {
	AppendActivity(ctx context.Context, a *models.Activity) error
	ListActivities(ctx context.Context, limit int) ([]models.Activity, error)
}

type ListUsersResult struct {
	Users []models.User `json:"users"`
	Total int64         `json:"total"`
}
