package engine

// Phase is the lifecycle stage of a typing session.
type Phase int

const (
	// PhaseIdle means no input has been accepted yet.
	PhaseIdle Phase = iota
	// PhaseActive means the countdown is running and input is accepted.
	PhaseActive
	// PhaseCompleted is terminal until the next reset.
	PhaseCompleted
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseActive:
		return "active"
	case PhaseCompleted:
		return "completed"
	default:
		return "unknown"
	}
}
