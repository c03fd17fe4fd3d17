package application

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"indexdeck/internal/domain"
	"indexdeck/internal/ports"
)

// CacheClearSession hosts a CacheClearController for callers without an
// event loop of their own (CLI, MCP). Transitions are serialized by a
// mutex, the request runs in a goroutine and the dismissal is a timer
// that is stopped on every Trigger and on Close.
type CacheClearSession struct {
	mu     sync.Mutex
	ctrl   *CacheClearController
	timer  *time.Timer
	closed bool
}

type pendingClear struct {
	done   chan struct{}
	state  domain.CacheClearState
	closed bool
}

// NewCacheClearSession creates a session around a new controller
func NewCacheClearSession(svc ports.CacheService, logger *slog.Logger, opts ...ControllerOption) *CacheClearSession {
	return &CacheClearSession{
		ctrl: NewCacheClearController(svc, logger, opts...),
	}
}

// State returns the current state
func (s *CacheClearSession) State() domain.CacheClearState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctrl.State()
}

// Trigger starts a clear in the background. It returns
// ErrClearInProgress while a previous clear is still running.
func (s *CacheClearSession) Trigger(ctx context.Context) error {
	_, err := s.start(ctx)
	return err
}

// TriggerAndWait starts a clear and waits for its outcome.
// A failed clear returns ErrCacheClearFailed alongside the Failed state.
// If the session is closed before the outcome arrives it returns ErrClosed.
func (s *CacheClearSession) TriggerAndWait(ctx context.Context) (domain.CacheClearState, error) {
	p, err := s.start(ctx)
	if err != nil {
		return s.State(), err
	}

	select {
	case <-p.done:
	case <-ctx.Done():
		return s.State(), ctx.Err()
	}

	if p.closed {
		return p.state, ErrClosed
	}
	if p.state.Phase == domain.CacheClearFailed {
		return p.state, ErrCacheClearFailed
	}
	return p.state, nil
}

// Close disposes the controller and stops any pending dismissal.
// An in-flight request is left to finish; its result is ignored.
func (s *CacheClearSession) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	s.stopTimer()
	s.ctrl.Dispose()
}

func (s *CacheClearSession) start(ctx context.Context) (*pendingClear, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrClosed
	}
	attempt, ok := s.ctrl.Trigger()
	if !ok {
		return nil, ErrClearInProgress
	}
	s.stopTimer()

	p := &pendingClear{done: make(chan struct{})}
	reqCtx := context.WithoutCancel(ctx)
	go func() {
		result := attempt.Run(reqCtx)
		s.complete(result, p)
	}()
	return p, nil
}

func (s *CacheClearSession) complete(result ClearResult, p *pendingClear) {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer close(p.done)

	if s.closed {
		p.state = s.ctrl.State()
		p.closed = true
		return
	}
	d, ok := s.ctrl.Complete(result)
	p.state = s.ctrl.State()
	if !ok {
		return
	}
	s.timer = time.AfterFunc(d.After, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.ctrl.Dismiss(d)
	})
}

func (s *CacheClearSession) stopTimer() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}
