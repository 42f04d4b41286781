package domain

// RescueStatus enumerates lifecycle states for rescues.
type RescueStatus string

const (
	RescueStatusQueued   RescueStatus = "queued"
	RescueStatusOpen     RescueStatus = "open"
	RescueStatusInactive RescueStatus = "inactive"
	RescueStatusClosed   RescueStatus = "closed"
)

// ParseRescueStatus maps text to a RescueStatus.
func ParseRescueStatus(text string) (RescueStatus, bool) {
	switch RescueStatus(text) {
	case RescueStatusQueued, RescueStatusOpen, RescueStatusInactive, RescueStatusClosed:
		return RescueStatus(text), true
	default:
		return "", false
	}
}

// RescueOutcome records how a closed rescue ended.
type RescueOutcome string

const (
	RescueOutcomeSuccess RescueOutcome = "success"
	RescueOutcomePurge   RescueOutcome = "purge"
)

var allowedTransitions = map[RescueStatus][]RescueStatus{
	RescueStatusQueued:   {RescueStatusOpen, RescueStatusInactive, RescueStatusClosed},
	RescueStatusOpen:     {RescueStatusInactive, RescueStatusClosed},
	RescueStatusInactive: {RescueStatusOpen, RescueStatusClosed},
	RescueStatusClosed:   {},
}

func isValidTransition(current, next RescueStatus) bool {
	for _, candidate := range allowedTransitions[current] {
		if candidate == next {
			return true
		}
	}
	return false
}
