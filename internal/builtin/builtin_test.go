package builtin

import (
	"bytes"
	"testing"

	"github.com/spenceryue/yash/internal/jobctl"
	"github.com/stretchr/testify/require"
)

func newTestRegistry() (*Registry, *bytes.Buffer) {
	var buf bytes.Buffer
	tbl := jobctl.NewTable()
	return &Registry{Table: tbl, Out: &buf}, &buf
}

func TestFgNoEligibleJob(t *testing.T) {
	r, out := newTestRegistry()
	r.Fg()
	require.Equal(t, "yash: fg: current: no such job\n", out.String())
}

func TestBgNoEligibleJob(t *testing.T) {
	r, out := newTestRegistry()
	r.Bg()
	require.Equal(t, "yash: bg: current: no such job\n", out.String())
}

func TestExitWarnsOnceThenProceeds(t *testing.T) {
	r, out := newTestRegistry()
	job := &jobctl.Job{Pgid: 123, State: jobctl.JobStopped, Command: "sleep 60"}
	r.Table.Insert(job)

	require.False(t, r.Exit())
	require.Contains(t, out.String(), "there are stopped jobs")

	out.Reset()
	require.True(t, r.Exit())
	require.Contains(t, out.String(), "exit")
}

func TestExitNoteOtherCommandResetsWarning(t *testing.T) {
	r, _ := newTestRegistry()
	job := &jobctl.Job{Pgid: 123, State: jobctl.JobStopped}
	r.Table.Insert(job)

	require.False(t, r.Exit())
	r.NoteOtherCommand()
	require.False(t, r.Exit(), "warning should reassert after an intervening command")
}

func TestJobLineFormat(t *testing.T) {
	j := &jobctl.Job{Index: 1, State: jobctl.JobRunning, Command: "sleep 30 &", Foreground: false}
	line := JobLine(j, true)
	require.Equal(t, "[1]+  Running                 sleep 30 &", line)
}

func TestJobLineForegroundHasNoAmpersand(t *testing.T) {
	j := &jobctl.Job{Index: 2, State: jobctl.JobDone, Command: "echo hi", Foreground: true}
	line := JobLine(j, false)
	require.Equal(t, "[2]-  Done                    echo hi  ", line)
	// (trailing two spaces: the foreground "bg" field is a single space,
	// plus the literal space separator before it)
}
