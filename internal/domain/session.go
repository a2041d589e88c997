package domain

// Phase is the lifecycle state of the active session step.
type Phase int

const (
	// PhaseNotStarted means the current step has not been entered yet.
	PhaseNotStarted Phase = iota
	// PhaseAwaitingPour gates bloom steps: the countdown is deferred
	// until the user confirms the pour happened.
	PhaseAwaitingPour
	// PhaseActive means a countdown is running or a milestone-tracked
	// pour is in progress.
	PhaseActive
	// PhaseStepReady means the step's work is done and the session waits
	// for the user to advance.
	PhaseStepReady
	// PhaseCompleted means the final step was advanced past.
	PhaseCompleted
)

// String returns a human-readable phase name.
func (p Phase) String() string {
	switch p {
	case PhaseNotStarted:
		return "not_started"
	case PhaseAwaitingPour:
		return "awaiting_pour"
	case PhaseActive:
		return "active"
	case PhaseStepReady:
		return "step_ready"
	case PhaseCompleted:
		return "completed"
	default:
		return "unknown"
	}
}
