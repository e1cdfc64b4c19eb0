package builtin

import (
	"fmt"

	"github.com/spenceryue/yash/internal/jobctl"
	"golang.org/x/sys/unix"
)

// Fg implements the fg builtin: resume the most recent
// Stopped-or-backgrounded job in the foreground, blocking until it leaves
// Running again.
func (r *Registry) Fg() {
	job, err := r.Table.MostRecentResumable()
	if err != nil {
		fmt.Fprintln(r.Out, "yash: fg: current: no such job")
		return
	}

	// TModes is non-nil only if the job was ever stopped in the foreground,
	// so this also covers a stopped job that was resumed with bg since.
	if job.TModes != nil {
		_ = r.Term.Apply(job.TModes)
	}

	job.Foreground = true
	resumeStoppedProcesses(job)
	fmt.Fprintln(r.Out, JobLine(job, true))

	_ = r.Term.SetForeground(job.Pgid)
	_ = unix.Kill(-job.Pgid, unix.SIGCONT)
	r.Reaper.Wait(r.Table, job)
}

// resumeStoppedProcesses marks every Stopped process in job Running ahead of
// a SIGCONT; processes already Done stay Done.
func resumeStoppedProcesses(job *jobctl.Job) {
	for p := job.First; p != nil; p = p.Next {
		if p.State == jobctl.ProcStopped {
			p.State = jobctl.ProcRunning
		}
	}
	job.State = jobctl.JobRunning
}
