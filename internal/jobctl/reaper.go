package jobctl

import (
	"github.com/spenceryue/yash/internal/diag"
	"github.com/spenceryue/yash/internal/terminal"
	"go.uber.org/zap"
	"golang.org/x/sys/unix"
)

// Reaper collects child status and folds it into the in-memory Job/Process
// model. Update and Wait share one implementation (reap) parameterized by
// whether the wait may block, per spec.md §4.5.
type Reaper struct {
	Term *terminal.Manager

	// Log receives wait(2) anomaly diagnostics (internal/diag); nil logs
	// nothing.
	Log *zap.Logger
}

func NewReaper(term *terminal.Manager) *Reaper {
	return &Reaper{Term: term}
}

func (r *Reaper) logger() *zap.Logger {
	if r.Log == nil {
		return zap.NewNop()
	}
	return r.Log
}

// Update performs a non-blocking WUNTRACED|WNOHANG sweep of every live job
// in tbl, called before every prompt.
func (r *Reaper) Update(tbl *Table) {
	for _, j := range tbl.Jobs() {
		if j.State == JobRunning || j.State == JobStopped {
			r.reap(tbl, j, false)
		}
	}
}

// Wait performs a blocking WUNTRACED wait on job, called right after
// launching a foreground job, or after resuming one with fg. It returns
// once job has left JobRunning, and — per spec.md §4.6's terminal protocol —
// reclaims the terminal for the shell: restore the shell's own saved tmodes,
// then set the foreground pgid back to the shell's.
func (r *Reaper) Wait(tbl *Table, job *Job) {
	r.reap(tbl, job, true)
	_ = r.Term.Restore()
	_ = r.Term.SetForeground(r.Term.ShellPgid)
}

// reap looks up a reaped pid via tbl.FindByPid — the same "lookup by pid
// across all jobs" operation spec.md §4.3 mandates for the job table,
// mirroring original_source/job_control.h's find_Process, which also scans
// every job rather than just the one being waited on.
func (r *Reaper) reap(tbl *Table, job *Job, blocking bool) {
	options := unix.WUNTRACED
	if !blocking {
		options |= unix.WNOHANG
	}

	for {
		if job.State == JobDone || job.State == JobError {
			return
		}
		if !blocking && job.State == JobStopped {
			return
		}

		var ws unix.WaitStatus
		pid, err := unix.Wait4(-job.Pgid, &ws, options, nil)
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			if err == unix.ECHILD {
				// Defensive reconciliation (spec.md §4.5): some other reap
				// already collected this job's children.
				r.logger().Debug("wait4 ECHILD reconciled as Done", zap.Int("pgid", job.Pgid))
				if blocking {
					markAllDone(job)
					job.State = JobDone
				}
				return
			}
			r.logger().Warn("wait4 failed", zap.Int("pgid", job.Pgid), zap.Error(err))
			diag.DumpErrChain(r.logger(), err)
			return
		}
		if pid == 0 {
			// WNOHANG: no status change pending right now.
			return
		}

		_, proc, found := tbl.FindByPid(pid)
		if !found {
			continue
		}

		switch {
		case ws.Stopped():
			proc.State = ProcStopped
			job.State = deriveJobState(job)
			if job.State == JobStopped && job.Foreground && job.TModes == nil {
				job.TModes = new(terminal.Modes)
				_ = r.Term.SnapshotInto(job.TModes)
			}
		case ws.Exited() || ws.Signaled():
			proc.State = ProcDone
			if ws.Signaled() && ws.Signal() != unix.SIGINT {
				job.Foreground = false
			}
			job.State = deriveJobState(job)
		default:
			proc.State = ProcError
			job.State = JobError
			return
		}

		if blocking && job.State != JobRunning {
			return
		}
	}
}

func markAllDone(job *Job) {
	for p := job.First; p != nil; p = p.Next {
		if p.State == ProcRunning || p.State == ProcStopped {
			p.State = ProcDone
		}
	}
}

// deriveJobState folds per-process state into the job's state, per
// spec.md §4.5:
//
//	Running iff every process is Running.
//	Stopped iff every process is Stopped or Done, and at least one Stopped.
//	Done    iff every process is Done.
//	Error   if any process is Error.
//
// Any other mix (some process still Running alongside Stopped or Done
// ones) also yields Running.
func deriveJobState(job *Job) JobState {
	allRunning := true
	allDone := true
	anyStopped := false
	allStoppedOrDone := true

	for p := job.First; p != nil; p = p.Next {
		switch p.State {
		case ProcError:
			return JobError
		case ProcRunning:
			allDone = false
			allStoppedOrDone = false
		case ProcStopped:
			allRunning = false
			allDone = false
			anyStopped = true
		case ProcDone:
			allRunning = false
		}
	}

	switch {
	case allRunning:
		return JobRunning
	case allDone:
		return JobDone
	case anyStopped && allStoppedOrDone:
		return JobStopped
	default:
		return JobRunning
	}
}
