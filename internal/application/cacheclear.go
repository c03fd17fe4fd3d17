package application

import (
	"context"
	"log/slog"
	"time"

	"indexdeck/internal/domain"
	"indexdeck/internal/logging"
	"indexdeck/internal/ports"
)

// DismissAfter is how long a success stays visible before reverting to Idle
const DismissAfter = 3000 * time.Millisecond

// CacheClearController drives the cache-clear action:
//
//	Idle      --Trigger-->   Clearing
//	Clearing  --ok-->        Succeeded(n) --DismissAfter--> Idle
//	Clearing  --failure-->   Failed (stays until the next Trigger)
//	Succeeded/Failed --Trigger--> Clearing
//
// It owns no goroutines or timers. The host runs the attempt returned by
// Trigger, feeds the result to Complete on its own loop, and schedules the
// returned Dismissal. Every method must be called from that one loop.
type CacheClearController struct {
	svc          ports.CacheService
	logger       *slog.Logger
	dismissAfter time.Duration

	state    domain.CacheClearState
	attempt  uint64 // latest attempt ID
	pending  uint64 // attempt whose dismissal is scheduled, 0 if none
	disposed bool
}

// ControllerOption configures a CacheClearController
type ControllerOption func(*CacheClearController)

// WithDismissAfter overrides the success dismissal interval
func WithDismissAfter(d time.Duration) ControllerOption {
	return func(c *CacheClearController) {
		c.dismissAfter = d
	}
}

// NewCacheClearController creates a controller in the Idle state
func NewCacheClearController(svc ports.CacheService, logger *slog.Logger, opts ...ControllerOption) *CacheClearController {
	c := &CacheClearController{
		svc:          svc,
		logger:       logging.Default(logger).With("component", "cacheclear"),
		dismissAfter: DismissAfter,
		state:        domain.Idle(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ClearAttempt is a single outbound clear request
type ClearAttempt struct {
	id  uint64
	svc ports.CacheService
}

// ClearResult is the outcome of running a ClearAttempt
type ClearResult struct {
	Attempt uint64
	Deleted int
	Err     error
}

// Dismissal is a scheduled return to Idle after a success
type Dismissal struct {
	Attempt uint64
	After   time.Duration
}

// ID returns the attempt identifier
func (a *ClearAttempt) ID() uint64 {
	return a.id
}

// Run issues the request. It does not touch controller state and may run
// off the host loop.
func (a *ClearAttempt) Run(ctx context.Context) ClearResult {
	deleted, err := a.svc.Clear(ctx)
	return ClearResult{Attempt: a.id, Deleted: deleted, Err: err}
}

// State returns the current state
func (c *CacheClearController) State() domain.CacheClearState {
	return c.state
}

// Disposed reports whether Dispose has been called
func (c *CacheClearController) Disposed() bool {
	return c.disposed
}

// Trigger starts a new attempt. It returns false while a clear is in
// flight or after disposal; otherwise any pending dismissal is cancelled
// and the state becomes Clearing.
func (c *CacheClearController) Trigger() (*ClearAttempt, bool) {
	if c.disposed || c.state.Phase == domain.CacheClearClearing {
		return nil, false
	}

	c.pending = 0
	c.attempt++
	c.state = domain.Clearing()
	c.logger.Info("clearing cache", "attempt", c.attempt)

	return &ClearAttempt{id: c.attempt, svc: c.svc}, true
}

// Complete applies the result of the current attempt. On success it
// returns the dismissal the host must schedule.
func (c *CacheClearController) Complete(r ClearResult) (Dismissal, bool) {
	if c.disposed || r.Attempt != c.attempt || c.state.Phase != domain.CacheClearClearing {
		return Dismissal{}, false
	}

	if r.Err != nil {
		c.logger.Warn("cache clear failed", "attempt", r.Attempt, "error", r.Err)
		c.state = domain.Failed(CacheClearFailedMessage)
		return Dismissal{}, false
	}

	c.logger.Info("cache cleared", "attempt", r.Attempt, "deleted", r.Deleted)
	c.state = domain.Succeeded(r.Deleted)
	c.pending = r.Attempt
	return Dismissal{Attempt: r.Attempt, After: c.dismissAfter}, true
}

// Dismiss returns to Idle if d is still the pending dismissal.
// Dismissals superseded by a newer Trigger are ignored.
func (c *CacheClearController) Dismiss(d Dismissal) bool {
	if c.disposed || c.pending == 0 || d.Attempt != c.pending {
		return false
	}
	c.pending = 0
	c.state = domain.Idle()
	return true
}

// Dispose detaches the controller from its host. It is idempotent; results
// and dismissals arriving afterwards are ignored.
func (c *CacheClearController) Dispose() {
	c.disposed = true
	c.pending = 0
}

// Err returns ErrCacheClearFailed when the last attempt failed
func (c *CacheClearController) Err() error {
	if c.state.Phase == domain.CacheClearFailed {
		return ErrCacheClearFailed
	}
	return nil
}
