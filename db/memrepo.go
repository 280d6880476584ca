package db

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"gorm.io/gorm"

	"smartlib/models"
)

// MemRepo is the in-memory UserStore/ActivityStore for the store=memory
// variant. It reports missing rows with gorm.ErrRecordNotFound so
// callers can keep a single errors.Is path for both backends.
type MemRepo struct {
	mu         sync.Mutex
	users      map[string]models.User
	activities []models.Activity
}

func NewMemRepo() *MemRepo {
	return &MemRepo{users: make(map[string]models.User)}
}

func (m *MemRepo) CreateUser(ctx context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return ErrDuplicateEmail
		}
	}
	m.users[u.ID] = *u
	return nil
}

func (m *MemRepo) FindUserByID(ctx context.Context, id string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &u, nil
}

func (m *MemRepo) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) {
			out := u
			return &out, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MemRepo) UpdateUser(ctx context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[u.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.users[u.ID] = *u
	return nil
}

func (m *MemRepo) DeleteUserByID(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.users, id)
	return nil
}

func (m *MemRepo) ListUsers(ctx context.Context, q string, page, size int) (ListUsersResult, error) {
	if page <= 0 {
		page = 1
	}
	if size <= 0 || size > 100 {
		size = 20
	}
	q = strings.ToLower(strings.TrimSpace(q))

	m.mu.Lock()
	defer m.mu.Unlock()
	var all []models.User
	for _, u := range m.users {
		if q != "" &&
			!strings.Contains(strings.ToLower(u.Name), q) &&
			!strings.Contains(strings.ToLower(u.Email), q) &&
			!strings.Contains(strings.ToLower(u.MembershipID), q) {
			continue
		}
		all = append(all, u)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })

	total := int64(len(all))
	start := (page - 1) * size
	if start >= len(all) {
		return ListUsersResult{Total: total}, nil
	}
	end := start + size
	if end > len(all) {
		end = len(all)
	}
	return ListUsersResult{Users: all[start:end], Total: total}, nil
}

func (m *MemRepo) CountUsers(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.users)), nil
}

func (m *MemRepo) TouchUserLogin(ctx context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	now := time.Now().UTC()
	u.LastLoginAt = &now
	u.LastSeenAt = &now
	u.LoginCount++
	m.users[userID] = u
	return nil
}

func (m *MemRepo) TouchUserSeen(ctx context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	now := time.Now().UTC()
	u.LastSeenAt = &now
	m.users[userID] = u
	return nil
}

func (m *MemRepo) AppendActivity(ctx context.Context, a *models.Activity) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.activities = append(m.activities, *a)
	return nil
}

func (m *MemRepo) ListActivities(ctx context.Context, limit int) ([]models.Activity, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Activity, len(m.activities))
	copy(out, m.activities)
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
