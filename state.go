package handoff

// State is the occupancy of a buffer. It is always derived from the item count and the
// capacity and never stored.
type State int

const (
	Empty State = iota
	Partial
	Full
)

func (s State) String() string {
	switch s {
	case Empty:
		return "empty"
	case Partial:
		return "partial"
	case Full:
		return "full"
	default:
		return "unknown"
	}
}

// occupancy classifies count against capacity. A capacity < 1 means unbounded.
func occupancy(count, capacity int) State {
	switch {
	case count == 0:
		return Empty
	case capacity > 0 && count >= capacity:
		return Full
	default:
		return Partial
	}
}
