// Package repository provides the user document store.
//
// A User document embeds its Task list; every backend loads and saves the
// two together. The password field is excluded from reads unless a method
// explicitly asks for it.
package repository

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/taskmate/taskmate/internal/model"
)

// Common errors for user repository operations.
var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailExists  = errors.New("email already exists")
)

// Store is the persistence contract for user documents.
type Store interface {
	// CreateUser inserts a new user. Returns ErrEmailExists if the email is taken.
	CreateUser(ctx context.Context, user *model.User) error
	// GetUserByID loads a user without the password hash.
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	// GetUserByEmail loads a user without the password hash.
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	// GetUserByEmailWithPassword loads a user including the password hash.
	GetUserByEmailWithPassword(ctx context.Context, email string) (*model.User, error)
	// SaveUser writes every mutable field of the document back. The password
	// hash and email are never rewritten.
	SaveUser(ctx context.Context, user *model.User) error
	// Ping checks connectivity.
	Ping(ctx context.Context) error
	// Close releases the underlying connections.
	Close(ctx context.Context) error
}

// Open connects to the store named by databaseURL. The scheme selects the
// backend: mongodb/mongodb+srv, postgres/postgresql, or memory.
func Open(ctx context.Context, databaseURL, databaseName string) (Store, error) {
	u, err := url.Parse(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	switch u.Scheme {
	case "mongodb", "mongodb+srv":
		return NewMongo(ctx, databaseURL, databaseName)
	case "postgres", "postgresql":
		return NewPostgres(ctx, databaseURL)
	case "memory":
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unsupported database scheme %q", u.Scheme)
	}
}

// normalize guarantees a non-nil task list so documents serialize as [].
func normalize(user *model.User) *model.User {
	if user.Tasks == nil {
		user.Tasks = []model.Task{}
	}
	return user
}
