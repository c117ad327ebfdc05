package metrics

import "time"

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards all metrics.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

// IncUserRegistered is a no-op.
func (n *NoopRecorder) IncUserRegistered() {}

// IncUserVerified is a no-op.
func (n *NoopRecorder) IncUserVerified() {}

// IncVerifyFailed is a no-op.
func (n *NoopRecorder) IncVerifyFailed() {}

// IncLogin is a no-op.
func (n *NoopRecorder) IncLogin(result string) {}

// IncOTPMailSent is a no-op.
func (n *NoopRecorder) IncOTPMailSent(ok bool) {}

// ObserveMailDuration is a no-op.
func (n *NoopRecorder) ObserveMailDuration(duration time.Duration) {}

// IncTaskAdded is a no-op.
func (n *NoopRecorder) IncTaskAdded() {}

// IncTaskRemoved is a no-op.
func (n *NoopRecorder) IncTaskRemoved() {}

// IncTaskToggled is a no-op.
func (n *NoopRecorder) IncTaskToggled() {}
