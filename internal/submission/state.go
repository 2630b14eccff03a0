package submission

// State is the derived submission state
type State int

const (
	// Idle means nothing has been submitted, or the result was cleared
	Idle State = iota
	// InFlight means a request has been issued and not yet resolved
	InFlight
	// Succeeded means the corrected text (or the fallback) is showing
	Succeeded
	// Failed means the error marker is showing
	Failed
)

var stateNames = map[State]string{
	Idle:      "idle",
	InFlight:  "in_flight",
	Succeeded: "succeeded",
	Failed:    "failed",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}

// deriveState computes the state from the stored fields.
// failed is set by a request error, so a service answer that happens to
// equal ErrorMarker still counts as a success.
func deriveState(loading, failed bool, corrected string) State {
	switch {
	case loading:
		return InFlight
	case corrected == "":
		return Idle
	case failed:
		return Failed
	default:
		return Succeeded
	}
}
