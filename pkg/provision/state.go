package provision

// State is the progress of a provisioning run.
type State int

const (
	Unchecked State = iota
	// AlreadySatisfied means the target directory existed and nothing was done.
	AlreadySatisfied
	NeedsGeneration
	Completed
	Failed
)

var stateNames = [...]string{
	Unchecked:        "unchecked",
	AlreadySatisfied: "already-satisfied",
	NeedsGeneration:  "needs-generation",
	Completed:        "completed",
	Failed:           "failed",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// Terminal reports whether no further transition can happen from s.
func (s State) Terminal() bool {
	return s == AlreadySatisfied || s == Completed || s == Failed
}
