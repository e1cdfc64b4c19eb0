package jobctl

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"syscall"

	"github.com/spenceryue/yash/internal/diag"
	"github.com/spenceryue/yash/internal/terminal"
	"go.uber.org/zap"
	"golang.org/x/sys/unix"
)

// Launcher forks and wires a Job's processes. One Launcher is shared across
// the REPL's lifetime; it holds no per-job state between calls.
type Launcher struct {
	Term *terminal.Manager

	// Log receives fork/pipe/exec diagnostics (internal/diag); nil logs
	// nothing. Never used for the user-facing "command not found"/"yash:
	// exec: ..." stderr lines, which are the spec-mandated protocol text.
	Log *zap.Logger
}

func NewLauncher(term *terminal.Manager) *Launcher {
	return &Launcher{Term: term}
}

func (l *Launcher) logger() *zap.Logger {
	if l.Log == nil {
		return zap.NewNop()
	}
	return l.Log
}

// Launch forks every process in job, wiring stdin/stdout across at most two
// live pipes at a time (spec.md §4.4 step 2: each iteration opens the next
// pipe, dups it into the two adjacent children, and closes the parent's own
// copies before moving on, so only the pipe just opened and the one from the
// previous iteration are ever live simultaneously) and assigning every
// process to job's process group. If job.Foreground, the new group is also
// raced onto the controlling terminal from the launching side, tolerating
// whichever of parent/child loses the race — exactly as spec.md §4.4 step 3
// and §9 require.
//
// Go's fork+exec primitive (syscall.ForkExec) reports an exec failure to the
// parent synchronously, before returning, rather than leaving a live child
// to print its own diagnostic and exit(1) the way the original C shell's
// child branch does — Go gives no safe hook to run arbitrary code between
// fork and exec, so there is no child process left to do that reporting.
// Launch adapts by performing that reporting itself, immediately, on the
// parent's behalf, and recording the process as ProcDone with no Pid — the
// exit(1)-then-WIFEXITED equivalent per spec.md §4.4/§7 and
// original_source/job_control.h's update_Process, which only reaches
// Error_State from the anomalous wait(2) branch, never from an exec
// failure. A sibling that did fork successfully is still a live kernel
// child and must still be wait4'd; marking the failed member ProcError
// instead would make deriveJobState short-circuit the whole job to
// JobError and abandon that sibling unreaped.
func (l *Launcher) Launch(job *Job) error {
	procs := job.Processes()
	prevRead := -1
	pgidKnown := false

	for i, p := range procs {
		last := i == len(procs)-1

		var pipeFDs [2]int
		if !last {
			var fds [2]int
			if err := unix.Pipe2(fds[:], unix.O_CLOEXEC); err != nil {
				closeOnFailure(prevRead)
				freeChain(p)
				l.logger().Warn("pipe2 failed", zap.Int("step", i), zap.Error(err))
				diag.DumpErrChain(l.logger(), err)
				return fmt.Errorf("jobctl: pipe: %w", err)
			}
			pipeFDs = fds
		}

		stdin := 0
		if p.In >= 0 {
			stdin = p.In
		} else if prevRead >= 0 {
			stdin = prevRead
		}

		stdout := 1
		if p.Out >= 0 {
			stdout = p.Out
		} else if !last {
			stdout = pipeFDs[1]
		}

		stderr := 2
		if p.Err >= 0 {
			stderr = p.Err
		}

		pgid := 0
		if pgidKnown {
			pgid = job.Pgid
		}

		l.launchOne(job, p, stdin, stdout, stderr, pgid, i == 0)

		if p.Pid > 0 && !pgidKnown {
			job.Pgid = p.Pid
			pgidKnown = true
			if job.Foreground {
				_ = l.Term.SetForeground(job.Pgid)
			}
		}

		p.closeOwned(closeFD)
		if prevRead >= 0 {
			_ = unix.Close(prevRead)
		}
		if !last {
			_ = unix.Close(pipeFDs[1])
			prevRead = pipeFDs[0]
		}
	}

	// A process that failed to fork+exec at all (see the Launch doc comment)
	// never becomes a real kernel child for the reaper to wait on; fold that
	// into the job's derived state now so Reaper.Wait never blocks on a
	// wait4(-0, ...) for a job with no forked children left to reap.
	job.State = deriveJobState(job)

	return nil
}

// launchOne forks and execs a single process, updating p.State/p.Pid in
// place. It never returns an error: an exec failure is a normal outcome for
// one pipeline member (the others still run), reported via p.State and a
// diagnostic written to stderr, not propagated to the caller.
func (l *Launcher) launchOne(job *Job, p *Process, stdin, stdout, stderr, pgid int, isFirst bool) {
	if len(p.Argv) == 0 {
		// Empty argv (spec.md §4.2: a line starting with "|" or "||")
		// reaches the launcher as a user error reported "from the child";
		// there is no argv[0] to even look up.
		fmt.Fprintln(os.Stderr, ": command not found")
		p.State = ProcDone
		p.Pid = -1
		return
	}

	path, lookErr := exec.LookPath(p.Argv[0])
	if lookErr != nil {
		l.logger().Debug("lookpath failed", zap.String("argv0", p.Argv[0]), zap.Error(lookErr))
		reportExecFailure(p, lookErr)
		return
	}

	attr := &syscall.ProcAttr{
		Files: []uintptr{uintptr(stdin), uintptr(stdout), uintptr(stderr)},
		Env:   os.Environ(),
		Sys: &syscall.SysProcAttr{
			Setpgid: true,
			Pgid:    pgid,
		},
	}

	if isFirst && job.Foreground {
		attr.Files = append(attr.Files, uintptr(l.Term.Fd()))
		attr.Sys.Foreground = true
		attr.Sys.Ctty = len(attr.Files) - 1
	}

	pid, err := syscall.ForkExec(path, p.Argv, attr)
	if err != nil {
		l.logger().Warn("forkexec failed", zap.String("argv0", p.Argv[0]), zap.Error(err))
		diag.DumpErrChain(l.logger(), err)
		reportExecFailure(p, err)
		return
	}

	p.Pid = pid
	p.State = ProcRunning
}

func reportExecFailure(p *Process, err error) {
	if errors.Is(err, os.ErrNotExist) || errors.Is(err, exec.ErrNotFound) {
		fmt.Fprintf(os.Stderr, "%s: command not found\n", p.Argv[0])
	} else {
		fmt.Fprintf(os.Stderr, "yash: exec: %s: %s\n", p.Argv[0], err)
	}
	// exit(1) equivalent (spec.md §4.4/§7): WIFEXITED, not an anomalous
	// wait — ProcDone, never ProcError. See the Launch doc comment.
	p.State = ProcDone
	p.Pid = -1
}

func closeOnFailure(fd int) {
	if fd >= 0 {
		_ = unix.Close(fd)
	}
}
