package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/taskmate/taskmate/internal/model"
	"github.com/taskmate/taskmate/internal/testutil"
)

// runStoreSuite exercises the behaviour every Store backend must share.
func runStoreSuite(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	t.Run("create and get", func(t *testing.T) {
		user := testutil.NewTestUser(t, testutil.UniqueEmail("create"))
		user.Password = "hash"
		if err := store.CreateUser(ctx, user); err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}

		byID, err := store.GetUserByID(ctx, user.ID)
		if err != nil {
			t.Fatalf("GetUserByID failed: %v", err)
		}
		if byID.Email != user.Email || byID.Name != user.Name {
			t.Errorf("GetUserByID = %+v, want email %q name %q", byID, user.Email, user.Name)
		}
		if byID.Password != "" {
			t.Error("GetUserByID returned password hash")
		}
		if byID.Tasks == nil {
			t.Error("Tasks should be an empty list, got nil")
		}
		if byID.Avatar.PublicID != model.DefaultAvatarPublicID {
			t.Errorf("Avatar.PublicID = %q, want %q", byID.Avatar.PublicID, model.DefaultAvatarPublicID)
		}

		byEmail, err := store.GetUserByEmail(ctx, user.Email)
		if err != nil {
			t.Fatalf("GetUserByEmail failed: %v", err)
		}
		if byEmail.ID != user.ID || byEmail.Password != "" {
			t.Errorf("GetUserByEmail = %+v", byEmail)
		}

		withPassword, err := store.GetUserByEmailWithPassword(ctx, user.Email)
		if err != nil {
			t.Fatalf("GetUserByEmailWithPassword failed: %v", err)
		}
		if withPassword.Password != "hash" {
			t.Errorf("Password = %q, want %q", withPassword.Password, "hash")
		}
	})

	t.Run("duplicate email", func(t *testing.T) {
		email := testutil.UniqueEmail("dup")
		if err := store.CreateUser(ctx, testutil.NewTestUser(t, email)); err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}
		err := store.CreateUser(ctx, testutil.NewTestUser(t, email))
		if !errors.Is(err, ErrEmailExists) {
			t.Errorf("second CreateUser error = %v, want ErrEmailExists", err)
		}
	})

	t.Run("not found", func(t *testing.T) {
		if _, err := store.GetUserByID(ctx, "missing-id"); !errors.Is(err, ErrUserNotFound) {
			t.Errorf("GetUserByID error = %v, want ErrUserNotFound", err)
		}
		if _, err := store.GetUserByEmail(ctx, "missing@example.com"); !errors.Is(err, ErrUserNotFound) {
			t.Errorf("GetUserByEmail error = %v, want ErrUserNotFound", err)
		}
	})

	t.Run("save persists otp and tasks", func(t *testing.T) {
		user := testutil.NewTestUser(t, testutil.UniqueEmail("save"))
		user.Password = "hash"
		expiry := time.Now().UTC().Add(5 * time.Minute).Truncate(time.Millisecond)
		user.SetOTP(123456, expiry)
		if err := store.CreateUser(ctx, user); err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}

		loaded, err := store.GetUserByID(ctx, user.ID)
		if err != nil {
			t.Fatalf("GetUserByID failed: %v", err)
		}
		if loaded.OTP == nil || *loaded.OTP != 123456 {
			t.Fatalf("OTP = %v, want 123456", loaded.OTP)
		}
		if loaded.OTPExpiry == nil || !loaded.OTPExpiry.Equal(expiry) {
			t.Fatalf("OTPExpiry = %v, want %v", loaded.OTPExpiry, expiry)
		}

		loaded.MarkVerified()
		loaded.Tasks = append(loaded.Tasks, testutil.NewTestTask(t, "first"), testutil.NewTestTask(t, "second"))
		loaded.Tasks[1].Toggle()
		if err := store.SaveUser(ctx, loaded); err != nil {
			t.Fatalf("SaveUser failed: %v", err)
		}

		saved, err := store.GetUserByEmailWithPassword(ctx, user.Email)
		if err != nil {
			t.Fatalf("GetUserByEmailWithPassword failed: %v", err)
		}
		if !saved.Verified {
			t.Error("Verified should be true after save")
		}
		if saved.OTP != nil || saved.OTPExpiry != nil {
			t.Error("OTP pair should be cleared after save")
		}
		if saved.Password != "hash" {
			t.Errorf("SaveUser without password must keep the stored hash, got %q", saved.Password)
		}
		if len(saved.Tasks) != 2 {
			t.Fatalf("len(Tasks) = %d, want 2", len(saved.Tasks))
		}
		if saved.Tasks[0].Title != "first" || saved.Tasks[0].Completed {
			t.Errorf("Tasks[0] = %+v", saved.Tasks[0])
		}
		if saved.Tasks[1].Title != "second" || !saved.Tasks[1].Completed {
			t.Errorf("Tasks[1] = %+v", saved.Tasks[1])
		}
	})

	t.Run("save unknown user", func(t *testing.T) {
		user := testutil.NewTestUser(t, testutil.UniqueEmail("ghost"))
		if err := store.SaveUser(ctx, user); !errors.Is(err, ErrUserNotFound) {
			t.Errorf("SaveUser error = %v, want ErrUserNotFound", err)
		}
	})

	t.Run("ping", func(t *testing.T) {
		if err := store.Ping(ctx); err != nil {
			t.Errorf("Ping failed: %v", err)
		}
	})
}

func TestMemoryRepository(t *testing.T) {
	runStoreSuite(t, NewMemory())
}

func TestMemoryRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewMemory()

	user := testutil.NewTestUser(t, "copy@example.com")
	user.Tasks = []model.Task{testutil.NewTestTask(t, "task")}
	if err := repo.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	// Mutating the caller's value must not reach the store.
	user.Tasks[0].Title = "changed"

	loaded, err := repo.GetUserByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetUserByID failed: %v", err)
	}
	if loaded.Tasks[0].Title != "task" {
		t.Errorf("stored task title = %q, want %q", loaded.Tasks[0].Title, "task")
	}

	loaded.Tasks[0].Completed = true
	again, _ := repo.GetUserByID(ctx, user.ID)
	if again.Tasks[0].Completed {
		t.Error("loaded user aliases stored state")
	}
	if repo.Count() != 1 {
		t.Errorf("Count() = %d, want 1", repo.Count())
	}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	store, err := Open(ctx, "memory://", "taskmate")
	if err != nil {
		t.Fatalf("Open(memory://) failed: %v", err)
	}
	if _, ok := store.(*MemoryRepository); !ok {
		t.Errorf("Open(memory://) = %T, want *MemoryRepository", store)
	}

	if _, err := Open(ctx, "mysql://localhost/db", "taskmate"); err == nil {
		t.Error("Open with unsupported scheme should fail")
	}
}
