package metrics

import "sync"

// InMemoryRecorder keeps counters in memory. Used in tests and as a
// stand-in until a real metrics backend is wired up.
type InMemoryRecorder struct {
	mu           sync.Mutex
	registered   int64
	loginSuccess int64
	loginFailure int64
	authRejected map[string]int64
	rateLimited  int64
}

// NewInMemory returns a Recorder backed by in-memory counters.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{
		authRejected: make(map[string]int64),
	}
}

// IncUserRegistered increments the registration counter.
func (m *InMemoryRecorder) IncUserRegistered() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.registered++
}

// IncLoginSuccess increments the successful login counter.
func (m *InMemoryRecorder) IncLoginSuccess() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loginSuccess++
}

// IncLoginFailure increments the failed login counter.
func (m *InMemoryRecorder) IncLoginFailure() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loginFailure++
}

// IncAuthRejected increments the rejection counter for a reason.
func (m *InMemoryRecorder) IncAuthRejected(reason string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.authRejected[reason]++
}

// IncRateLimited increments the rate-limited counter.
func (m *InMemoryRecorder) IncRateLimited() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rateLimited++
}

// Snapshot returns a copy of the current counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	rejected := make(map[string]int64, len(m.authRejected))
	for k, v := range m.authRejected {
		rejected[k] = v
	}

	return Snapshot{
		UsersRegistered: m.registered,
		LoginSuccesses:  m.loginSuccess,
		LoginFailures:   m.loginFailure,
		AuthRejected:    rejected,
		RateLimited:     m.rateLimited,
	}
}
