package domain

import "fmt"

// CacheClearPhase is the phase of the cache-clear action
type CacheClearPhase int

const (
	CacheClearIdle CacheClearPhase = iota
	CacheClearClearing
	CacheClearSucceeded
	CacheClearFailed
)

func (p CacheClearPhase) String() string {
	switch p {
	case CacheClearIdle:
		return "Idle"
	case CacheClearClearing:
		return "Clearing"
	case CacheClearSucceeded:
		return "Succeeded"
	case CacheClearFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// CacheClearState is the observable state of the cache-clear action.
// Deleted is meaningful only when Succeeded, Message only when Failed.
type CacheClearState struct {
	Phase   CacheClearPhase
	Deleted int
	Message string
}

// Idle returns the resting state
func Idle() CacheClearState {
	return CacheClearState{Phase: CacheClearIdle}
}

// Clearing returns the in-flight state
func Clearing() CacheClearState {
	return CacheClearState{Phase: CacheClearClearing}
}

// Succeeded returns the success state carrying the deleted entry count
func Succeeded(deleted int) CacheClearState {
	return CacheClearState{Phase: CacheClearSucceeded, Deleted: deleted}
}

// Failed returns the failure state carrying the user-facing message
func Failed(message string) CacheClearState {
	return CacheClearState{Phase: CacheClearFailed, Message: message}
}

func (s CacheClearState) String() string {
	switch s.Phase {
	case CacheClearSucceeded:
		return fmt.Sprintf("Succeeded(%d)", s.Deleted)
	case CacheClearFailed:
		return fmt.Sprintf("Failed(%q)", s.Message)
	default:
		return s.Phase.String()
	}
}

// Summary is the user-facing one-line description of the state
func (s CacheClearState) Summary() string {
	switch s.Phase {
	case CacheClearClearing:
		return "Clearing cache..."
	case CacheClearSucceeded:
		if s.Deleted == 1 {
			return "Cleared 1 cache entry"
		}
		return fmt.Sprintf("Cleared %d cache entries", s.Deleted)
	case CacheClearFailed:
		return s.Message
	default:
		return ""
	}
}
