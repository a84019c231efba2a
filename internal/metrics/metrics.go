// Package metrics provides lightweight hooks for instrumentation.
package metrics

// Recorder captures metric events for the application.
// Implementations can expose these to Prometheus, StatsD, etc.
type Recorder interface {
	IncUserRegistered()
	IncLoginSuccess()
	IncLoginFailure()
	IncAuthRejected(reason string) // reason: "expired", "malformed", "missing"
	IncRateLimited()
}

// Snapshot is a point-in-time view of the counters.
type Snapshot struct {
	UsersRegistered int64
	LoginSuccesses  int64
	LoginFailures   int64
	AuthRejected    map[string]int64
	RateLimited     int64
}
