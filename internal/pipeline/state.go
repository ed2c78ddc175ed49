package pipeline

// State identifies where a generation run is in its lifecycle. Transitions
// only move forward: Idle → FetchingSkills → Generating → Saving → Done,
// with any non-terminal state able to fail. Done and Failed are terminal.
type State string

// Pipeline states.
const (
	StateIdle           State = "idle"
	StateFetchingSkills State = "fetching_skills"
	StateGenerating     State = "generating"
	StateSaving         State = "saving"
	StateDone           State = "done"
	StateFailed         State = "failed"
)

// Terminal reports whether no further transitions can occur.
func (s State) Terminal() bool {
	return s == StateDone || s == StateFailed
}

// order maps each state to its position in the forward sequence. Failed is
// reachable from anything non-terminal.
var order = map[State]int{
	StateIdle:           0,
	StateFetchingSkills: 1,
	StateGenerating:     2,
	StateSaving:         3,
	StateDone:           4,
}

// CanTransition reports whether moving from s to next is a legal step.
func (s State) CanTransition(next State) bool {
	if s.Terminal() {
		return false
	}
	if next == StateFailed {
		return true
	}
	from, ok := order[s]
	if !ok {
		return false
	}
	to, ok := order[next]
	if !ok {
		return false
	}
	return to > from
}
