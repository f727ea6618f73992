package state

import "context"

// Scope ties in-flight requests to the lifetime of a page view. Renew
// cancels whatever the previous view started and bumps the generation so
// late results can be recognized and dropped.
//
// The zero value is ready to use with context.Background as its parent.
type Scope struct {
	parent context.Context
	ctx    context.Context
	cancel context.CancelFunc
	gen    uint64
}

// NewScope returns a Scope whose contexts derive from parent.
func NewScope(parent context.Context) *Scope {
	return &Scope{parent: parent}
}

// Renew cancels the current context and starts a new generation.
func (s *Scope) Renew() (context.Context, uint64) {
	if s.cancel != nil {
		s.cancel()
	}
	parent := s.parent
	if parent == nil {
		parent = context.Background()
	}
	s.ctx, s.cancel = context.WithCancel(parent)
	s.gen++
	return s.ctx, s.gen
}

// Context returns the current context, starting a generation if none exists.
func (s *Scope) Context() context.Context {
	if s.ctx == nil {
		ctx, _ := s.Renew()
		return ctx
	}
	return s.ctx
}

// Generation returns the current generation.
func (s *Scope) Generation() uint64 { return s.gen }

// Current reports whether gen is the live generation.
func (s *Scope) Current(gen uint64) bool { return s.ctx != nil && gen == s.gen }

// Cancel abandons in-flight work. Results tagged with the old generation
// are no longer Current.
func (s *Scope) Cancel() {
	if s.cancel != nil {
		s.cancel()
	}
	s.ctx, s.cancel = nil, nil
	s.gen++
}
