// Package builtin implements the shell's reserved command words: fg, bg,
// jobs, exit. Dispatched by internal/repl before any fork is attempted —
// a builtin name must be the line's only token, with nothing else on the line.
package builtin

import (
	"fmt"
	"io"
	"strings"

	"github.com/spenceryue/yash/internal/jobctl"
	"github.com/spenceryue/yash/internal/terminal"
)

// Names lists the reserved builtin words.
var Names = map[string]bool{
	"fg":   true,
	"bg":   true,
	"jobs": true,
	"exit": true,
}

// Registry wires a builtin dispatch against the shell's live state.
type Registry struct {
	Table  *jobctl.Table
	Reaper *jobctl.Reaper
	Term   *terminal.Manager
	Out    io.Writer

	// exitWarned records whether the previous REPL iteration was a bare
	// "exit" that refused to run because stopped jobs remained — the
	// warn-once departure decided in DESIGN.md (Open Question #3).
	exitWarned bool
}

func NewRegistry(tbl *jobctl.Table, reaper *jobctl.Reaper, term *terminal.Manager, out io.Writer) *Registry {
	return &Registry{Table: tbl, Reaper: reaper, Term: term, Out: out}
}

// Dispatch runs the named builtin. It reports whether the REPL loop should
// terminate.
func (r *Registry) Dispatch(name string) (shouldExit bool) {
	switch name {
	case "fg":
		r.Fg()
	case "bg":
		r.Bg()
	case "jobs":
		r.Jobs()
	case "exit":
		return r.Exit()
	}
	return false
}

// JobLine renders one job in the job-listing format:
//
//	[<index>]<cur>  <state-24chars-left-padded><command> <bg>
func JobLine(j *jobctl.Job, isCurrent bool) string {
	cur := "-"
	if isCurrent {
		cur = "+"
	}

	command := j.Command
	bg := " "
	if !j.Foreground {
		bg = "&"
		command = strings.TrimSuffix(command, " &")
	}

	return fmt.Sprintf("[%d]%s  %-24s%s %s", j.Index, cur, j.State.String(), command, bg)
}
