// Package testutil holds helpers shared by package tests.
package testutil

import (
	"context"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taskmate/taskmate/internal/model"
)

// RequireEnv returns an environment variable or skips the test if missing.
func RequireEnv(t testing.TB, key string) string {
	t.Helper()
	value := os.Getenv(key)
	if value == "" {
		t.Skipf("%s not set", key)
	}
	return value
}

// FlushRedis clears the current Redis database.
func FlushRedis(ctx context.Context, client *redis.Client) error {
	return client.FlushDB(ctx).Err()
}

// ============================================================================
// Test Data Factories
// ============================================================================

var seq atomic.Uint64

// UniqueID generates a unique ID for tests.
func UniqueID(prefix string) string {
	return fmt.Sprintf("%s-%d-%d", prefix, time.Now().UnixNano(), seq.Add(1))
}

// UniqueEmail generates a unique lower-case email address for tests.
func UniqueEmail(prefix string) string {
	return fmt.Sprintf("%s-%d-%d@example.com", prefix, time.Now().UnixNano(), seq.Add(1))
}

// NewTestUser creates an unverified user with sensible defaults and no
// password hash.
func NewTestUser(t testing.TB, email string) *model.User {
	t.Helper()
	return &model.User{
		ID:    UniqueID("user"),
		Name:  "Test User",
		Email: email,
		Avatar: model.Avatar{
			PublicID: model.DefaultAvatarPublicID,
			URL:      model.DefaultAvatarURL,
		},
		Tasks:     []model.Task{},
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}
}

// NewTestTask creates a pending task with the given title.
func NewTestTask(t testing.TB, title string) model.Task {
	t.Helper()
	return model.Task{
		ID:          UniqueID("task"),
		Title:       title,
		Description: "description of " + title,
		CreatedAt:   time.Now().UTC().Truncate(time.Millisecond),
	}
}

// ============================================================================
// Mail capture
// ============================================================================

// Message is one mail captured by CaptureMailer.
type Message struct {
	To      string
	Subject string
	Body    string
}

// CaptureMailer records every message instead of delivering it. Set Err to
// make SendMail fail.
type CaptureMailer struct {
	mu       sync.Mutex
	messages []Message
	Err      error
}

// SendMail records the message or returns Err.
func (m *CaptureMailer) SendMail(ctx context.Context, to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.messages = append(m.messages, Message{To: to, Subject: subject, Body: body})
	return nil
}

// Messages returns a copy of every captured message.
func (m *CaptureMailer) Messages() []Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Message, len(m.messages))
	copy(out, m.messages)
	return out
}

// Last returns the most recent message sent to addr.
func (m *CaptureMailer) Last(addr string) (Message, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := len(m.messages) - 1; i >= 0; i-- {
		if m.messages[i].To == addr {
			return m.messages[i], true
		}
	}
	return Message{}, false
}
