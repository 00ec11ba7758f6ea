package engine

// State is the lifecycle stage of an Engine.
type State int

const (
	StateUninitialized State = iota
	StateInitialized
	StateRunning
	StateRoundEnded
	StateTerminated
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateInitialized:
		return "initialized"
	case StateRunning:
		return "running"
	case StateRoundEnded:
		return "round-ended"
	case StateTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}
