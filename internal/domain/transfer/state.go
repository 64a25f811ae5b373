package domain_transfer

// Status is the settlement state of a transfer receipt. A receipt is created
// PENDING and settles exactly once.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusCompleted Status = "COMPLETED"
	StatusFailed    Status = "FAILED"
)

var transitions = map[Status][]Status{
	StatusPending: {StatusCompleted, StatusFailed},
}

func (s Status) IsFinal() bool {
	return len(transitions[s]) == 0
}

func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}

	return false
}
