//go:build integration

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/taskmate/taskmate/internal/testutil"
)

func TestMongoRepository(t *testing.T) {
	uri := testutil.RequireEnv(t, "MONGO_URL")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	repo, err := NewMongo(ctx, uri, "taskmate_test")
	if err != nil {
		t.Fatalf("NewMongo failed: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close(context.Background()) })

	runStoreSuite(t, repo)
}

func TestPostgresRepository(t *testing.T) {
	dbURL := testutil.RequireEnv(t, "DATABASE_URL")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	repo, err := NewPostgres(ctx, dbURL)
	if err != nil {
		t.Fatalf("NewPostgres failed: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close(context.Background()) })

	// Migrations must be safe to re-run.
	if err := repo.Migrate(ctx); err != nil {
		t.Fatalf("second Migrate failed: %v", err)
	}

	runStoreSuite(t, repo)
}
