package crawler

import "sync"

// abortSignal is closed once, on the first fatal condition of a run. The
// cause is kept so Start can report it after the collector drains.
type abortSignal struct {
	ch    chan struct{}
	once  sync.Once
	mu    sync.Mutex
	cause error
}

func newAbortSignal() *abortSignal {
	return &abortSignal{ch: make(chan struct{})}
}

// Done is closed when the run has been aborted.
func (a *abortSignal) Done() <-chan struct{} {
	return a.ch
}

// Abort records cause and closes Done. Only the first call has effect.
func (a *abortSignal) Abort(cause error) {
	a.once.Do(func() {
		a.mu.Lock()
		a.cause = cause
		a.mu.Unlock()
		close(a.ch)
	})
}

// Cause returns the error passed to the first Abort, or nil.
func (a *abortSignal) Cause() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.cause
}

func (a *abortSignal) aborted() bool {
	select {
	case <-a.ch:
		return true
	default:
		return false
	}
}
