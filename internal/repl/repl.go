// Package repl sequences the shell's main loop: prompt, read, parse,
// dispatch, reap. It owns no job-control state itself — every mutation goes
// through internal/jobctl.Table via internal/builtin or a freshly built Job
// — so the single goroutine that calls Run is the only writer the job table
// ever sees.
package repl

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spenceryue/yash/internal/builtin"
	"github.com/spenceryue/yash/internal/jobctl"
	"github.com/spenceryue/yash/internal/reader"
	"github.com/spenceryue/yash/internal/terminal"
	"github.com/spenceryue/yash/internal/token"
	"go.uber.org/zap"
	"golang.org/x/sys/unix"
)

const prompt = "# "

// REPL wires every collaborator the loop needs. New sets Out/ErrOut to
// os.Stdout/os.Stderr.
type REPL struct {
	Table    *jobctl.Table
	Launcher *jobctl.Launcher
	Reaper   *jobctl.Reaper
	Term     *terminal.Manager
	Builtin  *builtin.Registry
	Reader   *reader.Reader
	Out      io.Writer
	ErrOut   io.Writer
	Log      *zap.Logger
}

// New assembles a REPL over an already-claimed terminal, reading lines from
// in and writing the prompt/job-listing protocol to stdout.
func New(term *terminal.Manager, in io.Reader, log *zap.Logger) *REPL {
	tbl := jobctl.NewTable()
	launcher := jobctl.NewLauncher(term)
	launcher.Log = log
	reaper := jobctl.NewReaper(term)
	reaper.Log = log

	return &REPL{
		Table:    tbl,
		Launcher: launcher,
		Reaper:   reaper,
		Term:     term,
		Builtin:  builtin.NewRegistry(tbl, reaper, term, os.Stdout),
		Reader:   reader.New(in),
		Out:      os.Stdout,
		ErrOut:   os.Stderr,
		Log:      log,
	}
}

// Run loops prompt/read/parse/dispatch/reap until EOF or the exit built-in
// fires, then performs the shutdown sequence: SIGHUP every live job, print
// "exit".
func (r *REPL) Run() {
	for {
		// Step 1: non-blocking sweep; print newly finished background jobs.
		r.printFinishedBackgroundJobs()

		// Step 2: reclaim the terminal for the shell.
		_ = r.Term.Restore()
		_ = r.Term.SetForeground(r.Term.ShellPgid)

		// Step 3: prompt.
		fmt.Fprint(r.Out, prompt)

		// Step 4: read a line; EOF ends the loop.
		line, err := r.Reader.ReadLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			r.logger().Warn("read failed", zap.Error(err))
			break
		}

		// Step 5: tokenize; empty line, loop again.
		tokens := token.Tokenize(line)
		if len(tokens) == 0 {
			continue
		}

		// Step 6: dispatch built-ins before any fork. The exit builtin
		// already performs the full shutdown sequence (SIGHUP every job,
		// print "exit") itself, so a true dispatch just ends the loop.
		if len(tokens) == 1 && builtin.Names[tokens[0]] {
			if tokens[0] == "exit" {
				if r.Builtin.Dispatch("exit") {
					return
				}
				continue
			}
			r.Builtin.NoteOtherCommand()
			r.Builtin.Dispatch(tokens[0])
			continue
		}
		r.Builtin.NoteOtherCommand()

		// Step 7: build the job; a build failure (redirection error,
		// oversized pipeline) aborts just this line.
		job, err := jobctl.BuildJob(tokens)
		if err != nil {
			r.reportBuildError(err)
			continue
		}

		// Step 8: insert into the table, then launch.
		r.Table.Insert(job)
		if err := r.Launcher.Launch(job); err != nil {
			fmt.Fprintln(r.ErrOut, err)
			// Launch failed before any child was forked (e.g. pipe(2)
			// failure): job.Pgid is still 0 and job.State is still
			// JobRunning, so Prune would never drop it — remove it
			// outright instead of leaving a permanently-stuck entry.
			r.Table.Remove(job)
			continue
		}
		if !job.Foreground {
			current, _ := r.Table.Current()
			fmt.Fprintln(r.Out, builtin.JobLine(job, job == current))
		}

		// Step 9: foreground jobs block; background jobs return immediately.
		if job.Foreground {
			r.Reaper.Wait(r.Table, job)
		}
	}

	r.shutdown()
}

// shutdown runs on the EOF path (the explicit exit builtin performs its own
// equivalent sequence and never reaches here): SIGHUP every live job's
// process group,
// print "exit".
func (r *REPL) shutdown() {
	for _, j := range r.Table.Jobs() {
		if j.Pgid > 0 {
			_ = unix.Kill(-j.Pgid, unix.SIGHUP)
		}
	}
	fmt.Fprintln(r.Out, "exit")
}

// printFinishedBackgroundJobs sweeps, then prints and prunes every job that
// finished since the last prompt and was not in the foreground — a
// foreground job's completion is silent because the user already watched it
// finish via the blocking Wait.
func (r *REPL) printFinishedBackgroundJobs() {
	r.Reaper.Update(r.Table)

	current, _ := r.Table.Current()
	for _, j := range r.Table.Jobs() {
		if (j.State == jobctl.JobDone || j.State == jobctl.JobError) && !j.Foreground {
			fmt.Fprintln(r.Out, builtin.JobLine(j, j == current))
		}
	}
	r.Table.Prune()
}

func (r *REPL) logger() *zap.Logger {
	if r.Log == nil {
		return zap.NewNop()
	}
	return r.Log
}

func (r *REPL) reportBuildError(err error) {
	var redirErr *jobctl.RedirectError
	if errors.As(err, &redirErr) {
		fmt.Fprintln(r.ErrOut, redirErr.Error())
		return
	}
	fmt.Fprintf(r.ErrOut, "yash: %s\n", err)
}
