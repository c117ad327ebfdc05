package metrics

import (
	"sync/atomic"
	"time"
)

// Snapshot captures current in-memory counters.
type Snapshot struct {
	UsersRegistered     uint64
	UsersVerified       uint64
	VerifyFailed        uint64
	LoginsSucceeded     uint64
	LoginsFailed        uint64
	LoginsRateLimited   uint64
	OTPMailsSent        uint64
	OTPMailsFailed      uint64
	MailDurationCount   uint64
	MailDurationTotalNs int64
	TasksAdded          uint64
	TasksRemoved        uint64
	TasksToggled        uint64
}

// InMemoryRecorder stores metrics in memory. It backs the /metrics endpoint
// and is inspected directly by tests.
type InMemoryRecorder struct {
	usersRegistered     atomic.Uint64
	usersVerified       atomic.Uint64
	verifyFailed        atomic.Uint64
	loginsSucceeded     atomic.Uint64
	loginsFailed        atomic.Uint64
	loginsRateLimited   atomic.Uint64
	otpMailsSent        atomic.Uint64
	otpMailsFailed      atomic.Uint64
	mailDurationCount   atomic.Uint64
	mailDurationTotalNs atomic.Int64
	tasksAdded          atomic.Uint64
	tasksRemoved        atomic.Uint64
	tasksToggled        atomic.Uint64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	return Snapshot{
		UsersRegistered:     m.usersRegistered.Load(),
		UsersVerified:       m.usersVerified.Load(),
		VerifyFailed:        m.verifyFailed.Load(),
		LoginsSucceeded:     m.loginsSucceeded.Load(),
		LoginsFailed:        m.loginsFailed.Load(),
		LoginsRateLimited:   m.loginsRateLimited.Load(),
		OTPMailsSent:        m.otpMailsSent.Load(),
		OTPMailsFailed:      m.otpMailsFailed.Load(),
		MailDurationCount:   m.mailDurationCount.Load(),
		MailDurationTotalNs: m.mailDurationTotalNs.Load(),
		TasksAdded:          m.tasksAdded.Load(),
		TasksRemoved:        m.tasksRemoved.Load(),
		TasksToggled:        m.tasksToggled.Load(),
	}
}

// IncUserRegistered increments the registration counter.
func (m *InMemoryRecorder) IncUserRegistered() { m.usersRegistered.Add(1) }

// IncUserVerified increments the successful verification counter.
func (m *InMemoryRecorder) IncUserVerified() { m.usersVerified.Add(1) }

// IncVerifyFailed increments the rejected OTP counter.
func (m *InMemoryRecorder) IncVerifyFailed() { m.verifyFailed.Add(1) }

// IncLogin increments the counter for a login outcome. Unknown outcomes
// count as failures.
func (m *InMemoryRecorder) IncLogin(result string) {
	switch result {
	case LoginSuccess:
		m.loginsSucceeded.Add(1)
	case LoginRateLimited:
		m.loginsRateLimited.Add(1)
	default:
		m.loginsFailed.Add(1)
	}
}

// IncOTPMailSent counts an OTP delivery attempt.
func (m *InMemoryRecorder) IncOTPMailSent(ok bool) {
	if ok {
		m.otpMailsSent.Add(1)
		return
	}
	m.otpMailsFailed.Add(1)
}

// ObserveMailDuration records how long a mail delivery took.
func (m *InMemoryRecorder) ObserveMailDuration(duration time.Duration) {
	m.mailDurationCount.Add(1)
	m.mailDurationTotalNs.Add(duration.Nanoseconds())
}

// IncTaskAdded increments the task added counter.
func (m *InMemoryRecorder) IncTaskAdded() { m.tasksAdded.Add(1) }

// IncTaskRemoved increments the task removed counter.
func (m *InMemoryRecorder) IncTaskRemoved() { m.tasksRemoved.Add(1) }

// IncTaskToggled increments the task toggled counter.
func (m *InMemoryRecorder) IncTaskToggled() { m.tasksToggled.Add(1) }
