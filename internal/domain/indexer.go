package domain

import "time"

// Indexer is an external search source together with its mirror links.
// Link order is significant: PrimaryLinks[0] is the canonical default.
type Indexer struct {
	ID           string
	Name         string
	PrimaryLinks []string
	LegacyLinks  []string
	CreatedAt    time.Time
}

// Options resolves the indexer's links into addressable mirror options
func (ix *Indexer) Options() []MirrorOption {
	return Resolve(ix.PrimaryLinks, ix.LegacyLinks)
}

// MirrorCount returns the total number of links across both pools
func (ix *Indexer) MirrorCount() int {
	return len(ix.PrimaryLinks) + len(ix.LegacyLinks)
}
