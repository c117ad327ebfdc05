package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/taskmate/taskmate/internal/auth"
	"github.com/taskmate/taskmate/internal/metrics"
	"github.com/taskmate/taskmate/internal/model"
	"github.com/taskmate/taskmate/internal/repository"
)

// RegisterInput defines input for registering an account.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// Register creates an unverified account, mails it a verification code and
// opens a session for it.
func (s *UserService) Register(ctx context.Context, input RegisterInput) (*Session, error) {
	name := strings.TrimSpace(input.Name)
	email := normalizeEmail(input.Email)
	if name == "" || email == "" || input.Password == "" {
		return nil, fmt.Errorf("%w: name, email and password are required", ErrInvalidInput)
	}

	_, err := s.store.GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, ErrEmailExists
	case !errors.Is(err, repository.ErrUserNotFound):
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	otp, err := s.generateOTP()
	if err != nil {
		return nil, fmt.Errorf("failed to generate OTP: %w", err)
	}

	now := s.now()
	user := &model.User{
		ID:       s.newID(),
		Name:     name,
		Email:    email,
		Password: hash,
		Avatar: model.Avatar{
			PublicID: model.DefaultAvatarPublicID,
			URL:      model.DefaultAvatarURL,
		},
		Tasks:     []model.Task{},
		CreatedAt: now,
	}
	user.SetOTP(otp, now.Add(s.opts.OTPValidity))

	if err := s.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	s.metrics.IncUserRegistered()

	if err := s.sendOTP(ctx, user.Email, otp); err != nil {
		return nil, err
	}

	user.Password = ""
	return s.openSession(user)
}

// Verify confirms the account with the code that was mailed to it. A wrong
// code, an expired code and an account with no pending code all fail with
// ErrInvalidOTP.
func (s *UserService) Verify(ctx context.Context, userID string, otp int) (*Session, error) {
	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return nil, mapStoreError(err)
	}

	if user.Verified || !user.OTPMatches(otp, s.now()) {
		s.metrics.IncVerifyFailed()
		return nil, ErrInvalidOTP
	}

	user.MarkVerified()
	if err := s.store.SaveUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to save user: %w", mapStoreError(err))
	}
	s.metrics.IncUserVerified()

	return s.openSession(user)
}

// ResendOTP replaces the pending verification code of an unverified account
// and mails the new one.
func (s *UserService) ResendOTP(ctx context.Context, userID string) error {
	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return mapStoreError(err)
	}
	if user.Verified {
		return ErrAlreadyVerified
	}

	otp, err := s.generateOTP()
	if err != nil {
		return fmt.Errorf("failed to generate OTP: %w", err)
	}
	user.SetOTP(otp, s.now().Add(s.opts.OTPValidity))

	if err := s.store.SaveUser(ctx, user); err != nil {
		return fmt.Errorf("failed to save user: %w", mapStoreError(err))
	}

	return s.sendOTP(ctx, user.Email, otp)
}

// Login checks credentials and opens a session. Unknown emails and wrong
// passwords are indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, email, password string) (*Session, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", ErrInvalidInput)
	}

	user, err := s.store.GetUserByEmailWithPassword(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			auth.EqualizeTiming(password)
			s.metrics.IncLogin(metrics.LoginFailed)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	ok, err := auth.VerifyPassword(password, user.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}
	if !ok {
		s.metrics.IncLogin(metrics.LoginFailed)
		return nil, ErrInvalidCredentials
	}
	s.metrics.IncLogin(metrics.LoginSuccess)

	user.Password = ""
	return s.openSession(user)
}

// Profile loads the account. When refresh-on-read is enabled the returned
// session carries a new token.
func (s *UserService) Profile(ctx context.Context, userID string) (*Session, error) {
	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return nil, mapStoreError(err)
	}

	if !s.opts.RefreshOnRead {
		return &Session{User: user}, nil
	}
	return s.openSession(user)
}

func (s *UserService) openSession(user *model.User) (*Session, error) {
	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue session token: %w", err)
	}
	return &Session{User: user, Token: token}, nil
}

func (s *UserService) sendOTP(ctx context.Context, email string, otp int) error {
	start := time.Now()
	err := s.mailer.SendMail(ctx, email, otpMailSubject, "Your OTP is "+auth.FormatOTP(otp))
	s.metrics.ObserveMailDuration(time.Since(start))
	s.metrics.IncOTPMailSent(err == nil)
	if err != nil {
		return fmt.Errorf("failed to send OTP mail: %w", err)
	}
	return nil
}
