package compose

// State is the lifecycle of one asynchronously loaded resource. Making the
// states explicit keeps illegal combinations (loaded-and-failed, error with
// no failure) unrepresentable in the view model.
type State int

const (
	// StateIdle means the load has not been started.
	StateIdle State = iota
	// StateLoading means a request is in flight.
	StateLoading
	// StateLoaded means the resource resolved, possibly with an empty payload.
	StateLoaded
	// StateNotFound means the resource legitimately does not exist. This is a
	// valid empty result, not a failure.
	StateNotFound
	// StateFailed means a transport-level failure. It is scoped to this
	// resource and never blocks the others.
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateNotFound:
		return "not_found"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Settled reports whether the resource has left the in-flight states.
func (s State) Settled() bool {
	return s == StateLoaded || s == StateNotFound || s == StateFailed
}
