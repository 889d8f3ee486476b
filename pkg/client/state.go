package client

import "sync"

// Status tracks the lifecycle of a store's most recent request.
type Status int

const (
	StatusIdle Status = iota
	StatusPending
	StatusFulfilled
	StatusRejected
)

// String returns the lowercase status name.
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusPending:
		return "pending"
	case StatusFulfilled:
		return "fulfilled"
	case StatusRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// asyncState records the idle/pending/fulfilled/rejected transitions of
// a store's requests, with the error that caused a rejection.
type asyncState struct {
	mu     sync.Mutex
	status Status
	err    error
}

// track runs fn, moving the state through pending and into fulfilled or
// rejected, and returns fn's error.
func (a *asyncState) track(fn func() error) error {
	a.mu.Lock()
	a.status = StatusPending
	a.err = nil
	a.mu.Unlock()

	err := fn()

	a.mu.Lock()
	if err != nil {
		a.status = StatusRejected
		a.err = err
	} else {
		a.status = StatusFulfilled
	}
	a.mu.Unlock()
	return err
}

// state returns the current status and the error from the last
// rejection, if any.
func (a *asyncState) state() (Status, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.status, a.err
}

// reset returns the state to idle.
func (a *asyncState) reset() {
	a.mu.Lock()
	a.status = StatusIdle
	a.err = nil
	a.mu.Unlock()
}
