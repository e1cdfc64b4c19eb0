// Package jobctl is the job-control engine: the shell's model of jobs and
// processes, the launcher that forks and wires them, the reaper that
// reconciles kernel status into that model, and the job table the built-ins
// mutate.
package jobctl

// ProcState is the lifecycle state of one Process. Transitions are
// monotonic within a single launch: Running -> Stopped <-> Running ->
// Done|Error, with Done and Error terminal.
type ProcState int

const (
	ProcRunning ProcState = iota
	ProcStopped
	ProcDone
	ProcError
)

func (s ProcState) String() string {
	switch s {
	case ProcRunning:
		return "Running"
	case ProcStopped:
		return "Stopped"
	case ProcDone:
		return "Done"
	case ProcError:
		return "Error"
	default:
		return "Unknown"
	}
}

// Process is one command in a pipeline. in/out/err fds are owned by the
// parent only when the corresponding CloseMe entry is set; a Process never
// holds a fd past the launch that opened it.
type Process struct {
	Pid  int
	Argv []string

	// Explicit redirection fds the parent opened for this process, or -1 if
	// the process should inherit/use a pipe instead.
	In, Out, Err int

	// CloseMe[0..2] marks which of In/Out/Err the parent is responsible for
	// closing (because it opened them for this process specifically, as
	// opposed to holding a pipe end destined for a sibling).
	CloseMe [3]bool

	State ProcState

	// Next chains to the following process in the pipeline, nil at the tail.
	Next *Process
}

// newProcess constructs a Process with no owned fds and Running state; the
// launcher fills in Pid once the process is forked.
func newProcess(argv []string) *Process {
	return &Process{
		Argv:  argv,
		In:    -1,
		Out:   -1,
		Err:   -1,
		State: ProcRunning,
	}
}

// closeOwned closes every fd this Process is responsible for, per CloseMe.
// Safe to call multiple times; a closed fd is reset to -1 so a second call
// is a no-op for it.
func (p *Process) closeOwned(closer func(fd int) error) {
	fds := [3]*int{&p.In, &p.Out, &p.Err}
	for i, fd := range fds {
		if p.CloseMe[i] && *fd >= 0 {
			_ = closer(*fd)
			*fd = -1
		}
	}
}
