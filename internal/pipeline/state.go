package pipeline

// State is a phase of one scaffolding run.
type State int

const (
	// StateIdle is the state before Run is called.
	StateIdle State = iota
	// StateCreatingDirectory creates the project directory.
	StateCreatingDirectory
	// StatePopulatingTemplate clones the template branch.
	StatePopulatingTemplate
	// StateReinitializing replaces the template history with a fresh repository.
	StateReinitializing
	// StateInstallingDependencies runs the package manager.
	StateInstallingDependencies
	// StateDone means every step succeeded.
	StateDone
	// StateAborting means the user confirmed termination and cleanup is running.
	StateAborting
	// StateFailed means a step failed; the directory is left in place.
	StateFailed
	// StateStopped means the user declined termination under the stop policy.
	StateStopped
)

// String returns a human-readable representation of the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateCreatingDirectory:
		return "creating_directory"
	case StatePopulatingTemplate:
		return "populating_template"
	case StateReinitializing:
		return "reinitializing"
	case StateInstallingDependencies:
		return "installing_dependencies"
	case StateDone:
		return "done"
	case StateAborting:
		return "aborting"
	case StateFailed:
		return "failed"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// IsTerminal reports whether no further transition can follow s.
func (s State) IsTerminal() bool {
	switch s {
	case StateDone, StateFailed, StateStopped:
		return true
	case StateIdle, StateCreatingDirectory, StatePopulatingTemplate,
		StateReinitializing, StateInstallingDependencies, StateAborting:
		return false
	}
	return false
}
