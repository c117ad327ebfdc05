// Package model defines domain entities for the application.
package model

import "time"

// Avatar placeholder values assigned at registration.
const (
	DefaultAvatarPublicID = "sample_id"
	DefaultAvatarURL      = ""
)

// Avatar references a user's profile image.
type Avatar struct {
	PublicID string `json:"public_id" bson:"public_id"`
	URL      string `json:"url" bson:"url"`
}

// User is the account document. Tasks are embedded and owned exclusively
// by the user; they are loaded and saved together with it.
type User struct {
	ID        string     `json:"id" bson:"_id"`
	Name      string     `json:"name" bson:"name"`
	Email     string     `json:"email" bson:"email"`
	Password  string     `json:"-" bson:"password,omitempty"` // Never serialize
	Avatar    Avatar     `json:"avatar" bson:"avatar"`
	Verified  bool       `json:"verified" bson:"verified"`
	OTP       *int       `json:"-" bson:"otp"`
	OTPExpiry *time.Time `json:"-" bson:"otp_expiry"`
	Tasks     []Task     `json:"tasks" bson:"tasks"`
	CreatedAt time.Time  `json:"created_at" bson:"created_at"`
}

// SetOTP stores a pending verification code. Code and expiry are always set
// together.
func (u *User) SetOTP(code int, expiry time.Time) {
	u.OTP = &code
	u.OTPExpiry = &expiry
}

// ClearOTP removes any pending verification code.
func (u *User) ClearOTP() {
	u.OTP = nil
	u.OTPExpiry = nil
}

// OTPMatches reports whether code equals the stored OTP and the OTP has not
// expired at now.
func (u *User) OTPMatches(code int, now time.Time) bool {
	if u.OTP == nil || u.OTPExpiry == nil {
		return false
	}
	if *u.OTP != code {
		return false
	}
	return !u.OTPExpiry.Before(now)
}

// MarkVerified flags the account as verified and clears the OTP pair.
func (u *User) MarkVerified() {
	u.Verified = true
	u.ClearOTP()
}

// FindTask returns a pointer into the task list for the given id, or nil.
func (u *User) FindTask(id string) *Task {
	for i := range u.Tasks {
		if u.Tasks[i].ID == id {
			return &u.Tasks[i]
		}
	}
	return nil
}

// RemoveTask rebuilds the task list without the task matching id.
// Returns false if no task matched; the list is left unchanged.
func (u *User) RemoveTask(id string) bool {
	kept := make([]Task, 0, len(u.Tasks))
	for _, t := range u.Tasks {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	removed := len(kept) != len(u.Tasks)
	u.Tasks = kept
	return removed
}
