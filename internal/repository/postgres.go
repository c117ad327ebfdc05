package repository

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"sort"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taskmate/taskmate/internal/model"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// PostgresRepository stores each user as one row with the avatar and the
// embedded task list held in JSONB columns.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgres creates a PostgresRepository with a connection pool and
// applies the embedded schema migrations.
func NewPostgres(ctx context.Context, databaseURL string) (*PostgresRepository, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	// Connection pool settings
	config.MaxConns = 10
	config.MinConns = 2

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	repo := &PostgresRepository{pool: pool}
	if err := repo.Migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return repo, nil
}

// Migrate applies every embedded migration in file name order.
// Migrations are written to be idempotent.
func (r *PostgresRepository) Migrate(ctx context.Context) error {
	names, err := fs.Glob(migrationFiles, "migrations/*.sql")
	if err != nil {
		return fmt.Errorf("list migrations: %w", err)
	}
	sort.Strings(names)

	for _, name := range names {
		sql, err := migrationFiles.ReadFile(name)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", name, err)
		}
		if _, err := r.pool.Exec(ctx, string(sql)); err != nil {
			return fmt.Errorf("apply migration %s: %w", name, err)
		}
	}
	return nil
}

// CreateUser inserts a new user into the database.
func (r *PostgresRepository) CreateUser(ctx context.Context, user *model.User) error {
	normalize(user)

	avatar, tasks, err := encodeDocument(user)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO users (id, name, email, password, avatar, verified, otp, otp_expiry, tasks, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err = r.pool.Exec(ctx, query,
		user.ID,
		user.Name,
		user.Email,
		user.Password,
		avatar,
		user.Verified,
		user.OTP,
		user.OTPExpiry,
		tasks,
		user.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrEmailExists
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// GetUserByID retrieves a user by their ID.
func (r *PostgresRepository) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	return r.getUser(ctx, "id", id, false)
}

// GetUserByEmail retrieves a user by their email address.
func (r *PostgresRepository) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.getUser(ctx, "email", email, false)
}

// GetUserByEmailWithPassword retrieves a user by email including the password hash.
func (r *PostgresRepository) GetUserByEmailWithPassword(ctx context.Context, email string) (*model.User, error) {
	return r.getUser(ctx, "email", email, true)
}

// SaveUser writes the mutable columns of the user row.
func (r *PostgresRepository) SaveUser(ctx context.Context, user *model.User) error {
	normalize(user)

	avatar, tasks, err := encodeDocument(user)
	if err != nil {
		return err
	}

	query := `
		UPDATE users
		SET name = $2, avatar = $3, verified = $4, otp = $5, otp_expiry = $6, tasks = $7
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		user.ID,
		user.Name,
		avatar,
		user.Verified,
		user.OTP,
		user.OTPExpiry,
		tasks,
	)
	if err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}

	return nil
}

// Ping checks database connectivity.
func (r *PostgresRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

// Close closes the database connection pool.
func (r *PostgresRepository) Close(ctx context.Context) error {
	r.pool.Close()
	return nil
}

// Pool returns the underlying connection pool.
// Use sparingly - prefer adding methods to PostgresRepository.
func (r *PostgresRepository) Pool() *pgxpool.Pool {
	return r.pool
}

// getUser loads one user where column equals value. column is always a
// constant chosen by the caller, never user input.
func (r *PostgresRepository) getUser(ctx context.Context, column, value string, withPassword bool) (*model.User, error) {
	query := fmt.Sprintf(`
		SELECT id, name, email, password, avatar, verified, otp, otp_expiry, tasks, created_at
		FROM users
		WHERE %s = $1
	`, column)

	var (
		user   model.User
		avatar []byte
		tasks  []byte
	)
	err := r.pool.QueryRow(ctx, query, value).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Password,
		&avatar,
		&user.Verified,
		&user.OTP,
		&user.OTPExpiry,
		&tasks,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by %s: %w", column, err)
	}

	if err := json.Unmarshal(avatar, &user.Avatar); err != nil {
		return nil, fmt.Errorf("decode avatar: %w", err)
	}
	if err := json.Unmarshal(tasks, &user.Tasks); err != nil {
		return nil, fmt.Errorf("decode tasks: %w", err)
	}
	if !withPassword {
		user.Password = ""
	}

	return normalize(&user), nil
}

func encodeDocument(user *model.User) (avatar, tasks []byte, err error) {
	avatar, err = json.Marshal(user.Avatar)
	if err != nil {
		return nil, nil, fmt.Errorf("encode avatar: %w", err)
	}
	tasks, err = json.Marshal(user.Tasks)
	if err != nil {
		return nil, nil, fmt.Errorf("encode tasks: %w", err)
	}
	return avatar, tasks, nil
}

// isUniqueViolation checks if the error is a PostgreSQL unique constraint violation.
func isUniqueViolation(err error) bool {
	// PostgreSQL error code 23505 is unique_violation
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
