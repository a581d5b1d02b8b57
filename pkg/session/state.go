package session

// State is where the manager is in the session lifecycle.
type State uint8

const (
	// StateUnknown is the initial state until Restore has finished. Nothing
	// should render as signed in or signed out while here.
	StateUnknown State = iota
	StateAuthenticated
	StateUnauthenticated
)

func (s State) String() string {
	switch s {
	case StateUnknown:
		return "unknown"
	case StateAuthenticated:
		return "authenticated"
	case StateUnauthenticated:
		return "unauthenticated"
	default:
		return "invalid"
	}
}
