package ports

import "context"

// CacheService is the server-side search cache
type CacheService interface {
	// Clear evicts every cached entry and returns how many were removed.
	// Implementations issue exactly one request per call and never retry.
	Clear(ctx context.Context) (int, error)
}
