package pipeline

// State is a stage of a pipeline run.
type State int

const (
	StateIdle State = iota
	StateExtracting
	StateConverting
	StateEnriching
	StateSynthesizing
	StateDelivering
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateExtracting:
		return "extracting"
	case StateConverting:
		return "converting"
	case StateEnriching:
		return "enriching"
	case StateSynthesizing:
		return "synthesizing"
	case StateDelivering:
		return "delivering"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Ready reports whether the initiator may start another run.
func (s State) Ready() bool {
	return s == StateIdle || s == StateFailed
}

// StateFunc observes state transitions of a run.
type StateFunc func(runID string, state State)
