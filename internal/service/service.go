// Package service provides business logic for accounts and their tasks.
package service

import (
	"errors"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/taskmate/taskmate/internal/auth"
	"github.com/taskmate/taskmate/internal/mail"
	"github.com/taskmate/taskmate/internal/metrics"
	"github.com/taskmate/taskmate/internal/model"
	"github.com/taskmate/taskmate/internal/repository"
)

// Service errors.
var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrEmailExists        = errors.New("user already exists")
	ErrInvalidOTP         = errors.New("invalid or expired OTP")
	ErrAlreadyVerified    = errors.New("account already verified")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrTaskNotFound       = errors.New("task not found")
)

// DefaultOTPValidity is used when Options.OTPValidity is zero.
const DefaultOTPValidity = 5 * time.Minute

const otpMailSubject = "Verify your account"

// TokenIssuer issues signed session tokens.
type TokenIssuer interface {
	Issue(userID string) (*auth.Token, error)
}

// Options tunes UserService behaviour.
type Options struct {
	// OTPValidity is how long a verification code stays usable.
	OTPValidity time.Duration
	// RefreshOnRead makes Profile issue a fresh session token.
	RefreshOnRead bool
}

// Session is the result of an operation that (re)authenticates a user.
// Token is nil when no new token was issued.
type Session struct {
	User  *model.User
	Token *auth.Token
}

// UserService handles account and task business logic.
type UserService struct {
	store   repository.Store
	mailer  mail.Sender
	tokens  TokenIssuer
	metrics metrics.Recorder
	opts    Options

	now         func() time.Time
	newID       func() string
	generateOTP func() (int, error)
}

// NewUserService creates a new UserService.
func NewUserService(store repository.Store, mailer mail.Sender, tokens TokenIssuer, recorder metrics.Recorder, opts Options) *UserService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	if opts.OTPValidity <= 0 {
		opts.OTPValidity = DefaultOTPValidity
	}
	return &UserService{
		store:       store,
		mailer:      mailer,
		tokens:      tokens,
		metrics:     recorder,
		opts:        opts,
		now:         func() time.Time { return time.Now().UTC() },
		newID:       func() string { return ulid.Make().String() },
		generateOTP: auth.GenerateOTP,
	}
}

// normalizeEmail trims and lower-cases an address so lookups are
// case-insensitive.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// mapStoreError translates repository sentinels to service errors.
func mapStoreError(err error) error {
	switch {
	case errors.Is(err, repository.ErrUserNotFound):
		return ErrUserNotFound
	case errors.Is(err, repository.ErrEmailExists):
		return ErrEmailExists
	default:
		return err
	}
}
