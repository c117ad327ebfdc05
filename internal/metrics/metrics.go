// Package metrics provides lightweight hooks for instrumentation.
package metrics

import "time"

// Login outcomes passed to Recorder.IncLogin.
const (
	LoginSuccess     = "success"
	LoginFailed      = "failed"
	LoginRateLimited = "rate_limited"
)

// Recorder captures metric events for the application.
// Implementations can expose these to Prometheus, StatsD, etc.
type Recorder interface {
	// Account metrics
	IncUserRegistered()
	IncUserVerified()
	IncVerifyFailed()
	IncLogin(result string) // result: LoginSuccess, LoginFailed or LoginRateLimited

	// Mail metrics
	IncOTPMailSent(ok bool)
	ObserveMailDuration(duration time.Duration)

	// Task metrics
	IncTaskAdded()
	IncTaskRemoved()
	IncTaskToggled()
}

// Snapshotter exposes a snapshot of current metrics.
type Snapshotter interface {
	Snapshot() Snapshot
}
