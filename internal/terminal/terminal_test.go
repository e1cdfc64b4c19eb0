package terminal

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func TestSetForegroundSucceedsOnFirstTry(t *testing.T) {
	m := &Manager{fd: 3}
	calls := 0
	m.setPgrp = func(fd, pgid int) error {
		calls++
		require.Equal(t, 3, fd)
		require.Equal(t, 42, pgid)
		return nil
	}

	require.NoError(t, m.SetForeground(42))
	require.Equal(t, 1, calls)
}

func TestSetForegroundToleratesRaceLoserEPERM(t *testing.T) {
	// spec.md §4.4 step 3 / §9: both sides of a fork race call SetForeground;
	// the loser's EPERM/ESRCH must not surface as an error.
	m := &Manager{fd: 3}
	m.setPgrp = func(fd, pgid int) error { return unix.EPERM }

	require.NoError(t, m.SetForeground(42))
}

func TestSetForegroundRetriesEINTR(t *testing.T) {
	m := &Manager{fd: 3}
	calls := 0
	m.setPgrp = func(fd, pgid int) error {
		calls++
		if calls < 3 {
			return unix.EINTR
		}
		return nil
	}

	require.NoError(t, m.SetForeground(42))
	require.Equal(t, 3, calls)
}

func TestSetForegroundGivesUpAfterBoundedRetries(t *testing.T) {
	m := &Manager{fd: 3}
	calls := 0
	m.setPgrp = func(fd, pgid int) error {
		calls++
		return unix.EINTR
	}

	err := m.SetForeground(42)
	require.Error(t, err)
	require.Equal(t, 40, calls, "spec.md §4.6 step 3: bounded retry, ~40 tries")
}

func TestSetForegroundStopsOnOtherError(t *testing.T) {
	m := &Manager{fd: 3}
	calls := 0
	m.setPgrp = func(fd, pgid int) error {
		calls++
		return unix.EIO
	}

	err := m.SetForeground(42)
	require.Error(t, err)
	require.Equal(t, 1, calls, "a non-EINTR, non-EPERM/ESRCH error is not retried")
}
