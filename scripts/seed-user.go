package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/taskmate/taskmate/internal/auth"
	"github.com/taskmate/taskmate/internal/model"
	"github.com/taskmate/taskmate/internal/repository"
)

type output struct {
	UserID   string `json:"user_id"`
	Email    string `json:"email"`
	Verified bool   `json:"verified"`
}

func main() {
	var (
		databaseURL  = flag.String("database-url", os.Getenv("DATABASE_URL"), "Store connection string (mongodb://, postgres:// or memory://)")
		databaseName = flag.String("database-name", envOr("DATABASE_NAME", "taskmate"), "MongoDB database name")
		name         = flag.String("name", "Demo User", "Display name")
		email        = flag.String("email", "demo@taskmate.local", "Login email")
		password     = flag.String("password", "", "Login password (required)")
		format       = flag.String("format", "plain", "Output format: plain or json")
	)
	flag.Parse()

	if *databaseURL == "" {
		fmt.Fprintln(os.Stderr, "DATABASE_URL is required")
		os.Exit(1)
	}
	if *password == "" {
		fmt.Fprintln(os.Stderr, "-password is required")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	store, err := repository.Open(ctx, *databaseURL, *databaseName)
	if err != nil {
		fmt.Fprintln(os.Stderr, "connect database:", err)
		os.Exit(1)
	}
	defer store.Close(context.Background())

	hash, err := auth.HashPassword(*password)
	if err != nil {
		fmt.Fprintln(os.Stderr, "hash password:", err)
		os.Exit(1)
	}

	user := &model.User{
		ID:       ulid.Make().String(),
		Name:     strings.TrimSpace(*name),
		Email:    strings.ToLower(strings.TrimSpace(*email)),
		Password: hash,
		Avatar: model.Avatar{
			PublicID: model.DefaultAvatarPublicID,
			URL:      model.DefaultAvatarURL,
		},
		Verified:  true,
		Tasks:     []model.Task{},
		CreatedAt: time.Now().UTC(),
	}

	if err := store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			fmt.Fprintf(os.Stderr, "user %s already exists\n", user.Email)
		} else {
			fmt.Fprintln(os.Stderr, "create user:", err)
		}
		os.Exit(1)
	}

	out := output{UserID: user.ID, Email: user.Email, Verified: user.Verified}
	switch *format {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(out)
	default:
		fmt.Printf("user_id: %s\nemail: %s\nverified: %t\n", out.UserID, out.Email, out.Verified)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
