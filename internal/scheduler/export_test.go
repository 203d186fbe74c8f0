package scheduler

import "context"

// RunContext exposes the context scheduled runs receive.
func RunContext(s *Scheduler) context.Context {
	return s.ctx
}
