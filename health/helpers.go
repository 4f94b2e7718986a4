package health

import (
	"fmt"
	"time"
)

// Health states, ordered by severity.
const (
	StateHealthy   = "healthy"
	StateDegraded  = "degraded"
	StateUnhealthy = "unhealthy"
)

func newStatus(component, state, message string) Status {
	return Status{
		Component: component,
		Healthy:   state == StateHealthy,
		Status:    state,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// NewHealthy creates a healthy status
func NewHealthy(component, message string) Status {
	return newStatus(component, StateHealthy, message)
}

// NewUnhealthy creates an unhealthy status
func NewUnhealthy(component, message string) Status {
	return newStatus(component, StateUnhealthy, message)
}

// NewDegraded creates a degraded status
func NewDegraded(component, message string) Status {
	return newStatus(component, StateDegraded, message)
}

func severity(s Status) int {
	switch s.Status {
	case StateUnhealthy:
		return 2
	case StateDegraded:
		return 1
	default:
		return 0
	}
}

// Aggregate folds sub-statuses into one status carrying the worst state.
// The message names how many parts are in that state.
func Aggregate(component string, subStatuses []Status) Status {
	worst, count := 0, 0
	for _, sub := range subStatuses {
		switch sev := severity(sub); {
		case sev > worst:
			worst, count = sev, 1
		case sev == worst:
			count++
		}
	}

	var status Status
	switch worst {
	case 2:
		status = NewUnhealthy(component, fmt.Sprintf("%d of %d parts unhealthy", count, len(subStatuses)))
	case 1:
		status = NewDegraded(component, fmt.Sprintf("%d of %d parts degraded", count, len(subStatuses)))
	default:
		status = NewHealthy(component, fmt.Sprintf("%d parts healthy", len(subStatuses)))
	}

	if len(subStatuses) > 0 {
		status.SubStatuses = append([]Status(nil), subStatuses...)
	}
	return status
}
