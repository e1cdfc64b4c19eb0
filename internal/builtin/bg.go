package builtin

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// Bg implements the bg builtin: resume the most recent
// Stopped job in the background. The terminal stays with the shell.
func (r *Registry) Bg() {
	job, err := r.Table.MostRecentStopped()
	if err != nil {
		fmt.Fprintln(r.Out, "yash: bg: current: no such job")
		return
	}

	job.Foreground = false
	resumeStoppedProcesses(job)
	fmt.Fprintln(r.Out, JobLine(job, true))

	_ = unix.Kill(-job.Pgid, unix.SIGCONT)
}
