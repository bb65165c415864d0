package store

// Phase tracks where a store is in its load lifecycle.
// Phases are re-entrant: a populated store moves back to PhaseLoading on refresh.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhasePopulated
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhasePopulated:
		return "populated"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// State is a point-in-time copy of a store handed to listeners
type State[T any] struct {
	Items     []T
	IsLoading bool
	Error     string // empty when no error
	Phase     Phase
	Version   uint64
}

// Entity is anything stored by id
type Entity interface {
	GetID() string
}

// cloner is implemented by entities that hold maps or pointers
type cloner[T any] interface {
	Clone() T
}

// cloneItem returns a copy of item that shares no mutable state with it
func cloneItem[T Entity](item T) T {
	if c, ok := any(item).(cloner[T]); ok {
		return c.Clone()
	}
	return item
}

func cloneItems[T Entity](items []T) []T {
	out := make([]T, len(items))
	for i, item := range items {
		out[i] = cloneItem(item)
	}
	return out
}
