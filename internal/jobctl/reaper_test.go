package jobctl

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func chain(states ...ProcState) *Job {
	var first, prev *Process
	for _, s := range states {
		p := &Process{State: s}
		if first == nil {
			first = p
		} else {
			prev.Next = p
		}
		prev = p
	}
	return &Job{First: first}
}

func TestDeriveJobStateAllRunning(t *testing.T) {
	j := chain(ProcRunning, ProcRunning)
	require.Equal(t, JobRunning, deriveJobState(j))
}

func TestDeriveJobStateAllDone(t *testing.T) {
	j := chain(ProcDone, ProcDone)
	require.Equal(t, JobDone, deriveJobState(j))
}

func TestDeriveJobStateStoppedMixedWithDone(t *testing.T) {
	j := chain(ProcStopped, ProcDone)
	require.Equal(t, JobStopped, deriveJobState(j))
}

func TestDeriveJobStateAnyErrorWins(t *testing.T) {
	j := chain(ProcDone, ProcError, ProcRunning)
	require.Equal(t, JobError, deriveJobState(j))
}

func TestDeriveJobStateRunningMixedWithStoppedStaysRunning(t *testing.T) {
	// A pipeline where one stage is still Running and another Stopped is not
	// yet fully Stopped per spec.md §4.5's "every process is Stopped or
	// Done" rule — it stays Running until the last stage also leaves
	// Running.
	j := chain(ProcStopped, ProcRunning)
	require.Equal(t, JobRunning, deriveJobState(j))
}

// Reaper.reap now resolves a reaped pid via Table.FindByPid (see
// table_test.go's TestTableFindByPid) rather than a private per-job scan.

func TestMarkAllDone(t *testing.T) {
	j := chain(ProcRunning, ProcStopped, ProcDone)
	markAllDone(j)
	for p := j.First; p != nil; p = p.Next {
		require.Equal(t, ProcDone, p.State)
	}
}
