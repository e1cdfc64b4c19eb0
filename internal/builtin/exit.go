package builtin

import (
	"fmt"

	"github.com/spenceryue/yash/internal/jobctl"
	"golang.org/x/sys/unix"
)

// Exit implements the exit builtin. The original source unconditionally
// SIGHUPs every job and exits even with Stopped jobs present; DESIGN.md
// (Open Question #3) calls out a deliberate departure instead: a bare exit
// while Stopped jobs remain warns once and refuses, and only a second
// consecutive bare exit (no other command run in between) proceeds.
func (r *Registry) Exit() (shouldExit bool) {
	if r.hasStoppedJob() && !r.exitWarned {
		fmt.Fprintln(r.Out, "yash: exit: there are stopped jobs")
		r.exitWarned = true
		return false
	}

	for _, j := range r.Table.Jobs() {
		if j.Pgid > 0 {
			_ = unix.Kill(-j.Pgid, unix.SIGHUP)
		}
	}
	fmt.Fprintln(r.Out, "exit")
	return true
}

// NoteOtherCommand clears the warn-once state; called by the REPL whenever
// it runs anything other than a bare exit, so the "second consecutive bare
// exit" rule only counts truly consecutive invocations.
func (r *Registry) NoteOtherCommand() {
	r.exitWarned = false
}

func (r *Registry) hasStoppedJob() bool {
	for _, j := range r.Table.Jobs() {
		if j.State == jobctl.JobStopped {
			return true
		}
	}
	return false
}
