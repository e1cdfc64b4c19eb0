package jobctl

import (
	"github.com/spenceryue/yash/internal/terminal"
	"github.com/spenceryue/yash/internal/token"
	"golang.org/x/sys/unix"
)

// maxPipelineMembers caps the number of processes a single Job may contain.
// Arbitrary in the original source; kept as a named constant per the design
// decision to treat it as configuration rather than derive it (spec §9).
const maxPipelineMembers = 100

// JobState is the derived state of a Job; see deriveJobState.
type JobState int

const (
	JobRunning JobState = iota
	JobStopped
	JobDone
	JobError
)

func (s JobState) String() string {
	switch s {
	case JobRunning:
		return "Running"
	case JobStopped:
		return "Stopped"
	case JobDone:
		return "Done"
	case JobError:
		return "Error"
	default:
		return "Unknown"
	}
}

// Job is a pipeline entered as one command line, the unit of job control.
type Job struct {
	Index      int
	Pgid       int
	Foreground bool
	Command    string
	State      JobState

	// TModes is populated the first time this job is Stopped while in the
	// foreground (see reaper.go); nil otherwise.
	TModes *terminal.Modes

	First  *Process
	nProcs int
}

// Processes returns the Job's processes in pipeline order.
func (j *Job) Processes() []*Process {
	out := make([]*Process, 0, j.nProcs)
	for p := j.First; p != nil; p = p.Next {
		out = append(out, p)
	}
	return out
}

// BuildJob parses tok into a Job: repeatedly splitting off pipeline
// segments, opening explicit redirections in the parent, and truncating
// each segment's argv. The job returned has no Pgid and is not running; the
// caller must pass it to a Launcher.
//
// Open Question (spec §9, resolved): "2>" uses create-truncate semantics,
// matching ">", not read-only.
func BuildJob(tok token.Tokens) (*Job, error) {
	if len(tok) == 0 {
		return nil, ErrEmptyCommand
	}

	foreground := !tok.HasBackground()
	command := tok.String()

	var head, first, last *Process
	n := 0
	remaining := tok
	for {
		var segment token.Tokens
		segment, remaining = remaining.SplitAtPipe()

		if n == maxPipelineMembers {
			freeChain(first)
			return nil, ErrPipelineTooLong
		}

		p, err := buildProcess(segment)
		if err != nil {
			freeChain(first)
			return nil, err
		}

		if head == nil {
			first = p
		} else {
			head.Next = p
		}
		head = p
		last = p
		n++

		if len(remaining) == 0 {
			break
		}
	}
	_ = last

	return &Job{
		Pgid:       0,
		Foreground: foreground,
		Command:    command,
		State:      JobRunning,
		First:      first,
		nProcs:     n,
	}, nil
}

// buildProcess opens this pipeline segment's explicit redirections in the
// parent and truncates its argv. argv may legitimately be empty (a user
// error like a leading "|" or "||"); the launcher reports "command not
// found" for it itself, without forking (see Launcher.launchOne).
func buildProcess(segment token.Tokens) (*Process, error) {
	argv := segment.TruncateArgv()
	p := newProcess(argv)

	if path, ok := segment.FindRedirect("<"); ok {
		fd, err := openRedirect(path, unix.O_RDONLY, 0)
		if err != nil {
			return nil, err
		}
		p.In = fd
		p.CloseMe[0] = true
	}

	if path, ok := segment.FindRedirect(">"); ok {
		fd, err := openRedirect(path, unix.O_WRONLY|unix.O_CREAT|unix.O_TRUNC, 0666)
		if err != nil {
			p.closeOwned(closeFD)
			return nil, err
		}
		p.Out = fd
		p.CloseMe[1] = true
	}

	if path, ok := segment.FindRedirect("2>"); ok {
		fd, err := openRedirect(path, unix.O_WRONLY|unix.O_CREAT|unix.O_TRUNC, 0666)
		if err != nil {
			p.closeOwned(closeFD)
			return nil, err
		}
		p.Err = fd
		p.CloseMe[2] = true
	}

	return p, nil
}

// openRedirect opens path in the parent for use as a redirection fd, as a
// bare fd rather than an *os.File so no GC finalizer can close it out from
// under the launcher before dup2. On failure it returns an error formatted
// per spec §7 ("yash: <path>: <msg>").
func openRedirect(path string, flag int, perm uint32) (int, error) {
	fd, err := unix.Open(path, flag, perm)
	if err != nil {
		return -1, &RedirectError{Path: path, Err: err}
	}
	return fd, nil
}

func closeFD(fd int) error {
	return closeRawFD(fd)
}

// freeChain releases every fd owned by the processes in a partially built
// pipeline, e.g. after a later segment fails to build.
func freeChain(first *Process) {
	for p := first; p != nil; p = p.Next {
		p.closeOwned(closeFD)
	}
}
