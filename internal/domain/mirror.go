package domain

import (
	"net/url"
	"strings"
)

// MirrorSource tells which link pool a mirror option came from
type MirrorSource int

const (
	SourcePrimary MirrorSource = iota
	SourceLegacy
)

func (s MirrorSource) String() string {
	switch s {
	case SourcePrimary:
		return "Primary"
	case SourceLegacy:
		return "Legacy"
	default:
		return "Unknown"
	}
}

const (
	legacySuffix  = " (Legacy)"
	defaultSuffix = " (Default)"
)

// MirrorOption is one addressable mirror of an indexer.
// GlobalIndex is the flat address used for selection; Source and
// OriginalIndex locate the option in the list it was derived from.
type MirrorOption struct {
	GlobalIndex   int
	URL           string
	Source        MirrorSource
	OriginalIndex int
}

// IsLegacy reports whether the option came from the legacy pool
func (o MirrorOption) IsLegacy() bool {
	return o.Source == SourceLegacy
}

// Resolve merges the primary and legacy link lists into one option set.
// Primary links occupy 0..len(primary)-1 in order, legacy links follow.
func Resolve(primary, legacy []string) []MirrorOption {
	options := make([]MirrorOption, 0, len(primary)+len(legacy))
	for i, link := range primary {
		options = append(options, MirrorOption{
			GlobalIndex:   i,
			URL:           link,
			Source:        SourcePrimary,
			OriginalIndex: i,
		})
	}
	for i, link := range legacy {
		options = append(options, MirrorOption{
			GlobalIndex:   len(primary) + i,
			URL:           link,
			Source:        SourceLegacy,
			OriginalIndex: i,
		})
	}
	return options
}

// ShouldOffer reports whether a mirror chooser should be shown at all.
// A single mirror (or none) needs no chooser.
func ShouldOffer(options []MirrorOption) bool {
	return len(options) > 1
}

// FormatLabel renders the display label for a mirror option.
// Index 0 is always labeled default, even when it is a legacy link.
func FormatLabel(option MirrorOption) string {
	var b strings.Builder
	b.WriteString(MirrorHost(option.URL))
	if option.IsLegacy() {
		b.WriteString(legacySuffix)
	}
	if option.GlobalIndex == 0 {
		b.WriteString(defaultSuffix)
	}
	return b.String()
}

// MirrorHost returns the hostname of an absolute URL, or the raw string
// when it cannot be parsed as one. IPv6 hosts keep their brackets.
func MirrorHost(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Hostname() == "" {
		return raw
	}
	host := u.Hostname()
	if strings.Contains(host, ":") {
		return "[" + host + "]"
	}
	return host
}
