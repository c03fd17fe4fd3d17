package commands

import (
	"context"

	"indexdeck/internal/application"
	"indexdeck/internal/domain"
)

// ClearCacheResult contains the result of clearing the server cache
type ClearCacheResult struct {
	State   domain.CacheClearState
	Message string
}

// ClearCacheCommand clears the server-side search cache and waits for
// the outcome
type ClearCacheCommand struct {
	session *application.CacheClearSession
}

// NewClearCacheCommand creates a new ClearCacheCommand
func NewClearCacheCommand(session *application.CacheClearSession) *ClearCacheCommand {
	return &ClearCacheCommand{session: session}
}

// Execute runs the clear cache command. Failures return
// application.ErrCacheClearFailed with the fixed user message.
func (c *ClearCacheCommand) Execute(ctx context.Context) (*ClearCacheResult, error) {
	state, err := c.session.TriggerAndWait(ctx)
	if err != nil {
		return &ClearCacheResult{State: state, Message: state.Summary()}, err
	}
	return &ClearCacheResult{
		State:   state,
		Message: state.Summary(),
	}, nil
}
