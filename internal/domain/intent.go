package domain

// IntentType classifies what the user wants the session to do.
type IntentType int

const (
	IntentUnknown IntentType = iota
	IntentStart
	IntentConfirmPour
	IntentNext
	IntentPause
	IntentResume
	IntentRestart
	IntentExit
	IntentStatus
	IntentHelp
)

// String returns a human-readable intent type.
func (i IntentType) String() string {
	switch i {
	case IntentStart:
		return "start"
	case IntentConfirmPour:
		return "confirm_pour"
	case IntentNext:
		return "next"
	case IntentPause:
		return "pause"
	case IntentResume:
		return "resume"
	case IntentRestart:
		return "restart"
	case IntentExit:
		return "exit"
	case IntentStatus:
		return "status"
	case IntentHelp:
		return "help"
	default:
		return "unknown"
	}
}

// Intent represents a parsed user action.
type Intent struct {
	Type    IntentType
	Payload string // raw input, kept for logging
}
