package repository

import (
	"context"
	"sync"

	"github.com/taskmate/taskmate/internal/model"
)

// MemoryRepository keeps user documents in process memory. It backs tests
// and local development via DATABASE_URL=memory://.
type MemoryRepository struct {
	mu      sync.RWMutex
	byID    map[string]*model.User
	byEmail map[string]string
}

// NewMemory creates an empty MemoryRepository.
func NewMemory() *MemoryRepository {
	return &MemoryRepository{
		byID:    make(map[string]*model.User),
		byEmail: make(map[string]string),
	}
}

// CreateUser inserts a new user.
func (r *MemoryRepository) CreateUser(ctx context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byEmail[user.Email]; ok {
		return ErrEmailExists
	}
	r.byID[user.ID] = cloneUser(user)
	r.byEmail[user.Email] = user.ID
	return nil
}

// GetUserByID retrieves a user by ID without the password hash.
func (r *MemoryRepository) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	return r.get(id, false)
}

// GetUserByEmail retrieves a user by email without the password hash.
func (r *MemoryRepository) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.getByEmail(email, false)
}

// GetUserByEmailWithPassword retrieves a user by email including the password hash.
func (r *MemoryRepository) GetUserByEmailWithPassword(ctx context.Context, email string) (*model.User, error) {
	return r.getByEmail(email, true)
}

// SaveUser writes the mutable fields of user back.
func (r *MemoryRepository) SaveUser(ctx context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.byID[user.ID]
	if !ok {
		return ErrUserNotFound
	}

	updated := cloneUser(user)
	updated.Email = stored.Email
	updated.Password = stored.Password
	updated.CreatedAt = stored.CreatedAt
	r.byID[user.ID] = updated
	return nil
}

// Count returns the number of stored users.
func (r *MemoryRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}

// Ping always succeeds.
func (r *MemoryRepository) Ping(ctx context.Context) error {
	return nil
}

// Close is a no-op.
func (r *MemoryRepository) Close(ctx context.Context) error {
	return nil
}

func (r *MemoryRepository) getByEmail(email string, withPassword bool) (*model.User, error) {
	r.mu.RLock()
	id, ok := r.byEmail[email]
	r.mu.RUnlock()
	if !ok {
		return nil, ErrUserNotFound
	}
	return r.get(id, withPassword)
}

func (r *MemoryRepository) get(id string, withPassword bool) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.byID[id]
	if !ok {
		return nil, ErrUserNotFound
	}

	user := cloneUser(stored)
	if !withPassword {
		user.Password = ""
	}
	return normalize(user), nil
}

// cloneUser deep-copies a user so callers never alias stored state.
func cloneUser(u *model.User) *model.User {
	c := *u
	if u.OTP != nil {
		otp := *u.OTP
		c.OTP = &otp
	}
	if u.OTPExpiry != nil {
		exp := *u.OTPExpiry
		c.OTPExpiry = &exp
	}
	if u.Tasks != nil {
		c.Tasks = make([]model.Task, len(u.Tasks))
		copy(c.Tasks, u.Tasks)
	}
	return &c
}
