// Package dto provides Data Transfer Objects for API requests and responses.
package dto

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/taskmate/taskmate/internal/model"
)

// ErrInvalidOTPFormat is returned when an otp field is neither a whole
// number nor a string of digits.
var ErrInvalidOTPFormat = errors.New("otp must be numeric")

// RegisterRequest represents the request body for registering an account.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents the request body for logging in.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// VerifyRequest represents the request body for verifying an account.
type VerifyRequest struct {
	OTP *OTPCode `json:"otp"`
}

// OTPCode accepts a verification code sent either as a JSON number or as a
// numeric string, so "004217" and 4217 are the same code.
type OTPCode int

// UnmarshalJSON implements json.Unmarshaler.
func (c *OTPCode) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if strings.HasPrefix(s, `"`) {
		unquoted, err := strconv.Unquote(s)
		if err != nil {
			return ErrInvalidOTPFormat
		}
		s = strings.TrimSpace(unquoted)
	}

	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return ErrInvalidOTPFormat
	}
	*c = OTPCode(n)
	return nil
}

// UserResponse represents an account in API responses.
type UserResponse struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Email     string         `json:"email"`
	Avatar    model.Avatar   `json:"avatar"`
	Verified  bool           `json:"verified"`
	Tasks     []TaskResponse `json:"tasks"`
	CreatedAt time.Time      `json:"created_at"`
}

// ToUserResponse converts a model.User to UserResponse.
func ToUserResponse(u *model.User) *UserResponse {
	if u == nil {
		return nil
	}
	tasks := make([]TaskResponse, 0, len(u.Tasks))
	for i := range u.Tasks {
		tasks = append(tasks, ToTaskResponse(&u.Tasks[i]))
	}
	return &UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Avatar:    u.Avatar,
		Verified:  u.Verified,
		Tasks:     tasks,
		CreatedAt: u.CreatedAt,
	}
}
