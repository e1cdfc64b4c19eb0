// Package terminal owns the controlling tty: its mode bits, its foreground
// process group, and the small set of signals the shell itself must not die
// from. Built on golang.org/x/sys/unix's typed ioctl wrappers rather than
// raw syscall.Syscall+unsafe.Pointer.
package terminal

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sys/unix"
)

// Modes is a saved termios snapshot, restored verbatim by Restore or when a
// backgrounded job is resumed to the foreground.
type Modes struct {
	termios unix.Termios
}

// Manager owns the shell's controlling terminal for the lifetime of the
// process.
type Manager struct {
	fd        int
	ShellPgid int
	Saved     Modes

	// Log receives startup/retry diagnostics (internal/diag), kept off the
	// shell's own stdout/stderr output. Nil is safe and logs nothing.
	Log *zap.Logger

	// setPgrp is the TIOCSPGRP seam: real code leaves it nil and gets
	// unix.IoctlSetPointerInt; tests substitute a fake so the retry/backoff
	// logic in SetForeground can be exercised without a real controlling tty.
	setPgrp func(fd, pgid int) error
}

// New runs the shell's terminal startup sequence: open the controlling
// terminal, put the shell in its own process group, and claim
// the foreground, looping through SIGTTIN while some other group still owns
// it (can happen if the shell itself was launched in the background of
// another job-control shell).
func New(log *zap.Logger) (*Manager, error) {
	if _, err := unix.IoctlGetTermios(0, unix.TCGETS); err != nil {
		return nil, fmt.Errorf("terminal: stdin is not a tty: %w", err)
	}

	fd, err := unix.Open("/dev/tty", unix.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("terminal: open /dev/tty: %w", err)
	}

	pgid := unix.Getpid()
	if err := unix.Setpgid(0, pgid); err != nil && err != unix.EPERM {
		unix.Close(fd)
		return nil, fmt.Errorf("terminal: setpgid: %w", err)
	}

	m := &Manager{fd: fd, ShellPgid: pgid, Log: log}
	m.logger().Debug("shell claiming own process group", zap.Int("pgid", pgid))
	m.waitForForeground()
	if err := m.ClaimForeground(); err != nil {
		unix.Close(fd)
		return nil, err
	}
	if err := m.SnapshotInto(&m.Saved); err != nil {
		unix.Close(fd)
		return nil, err
	}
	return m, nil
}

func (m *Manager) logger() *zap.Logger {
	if m.Log == nil {
		return zap.NewNop()
	}
	return m.Log
}

// waitForForeground blocks until the shell's own process group is already
// the terminal's foreground process group (spec.md §4.6 step 3), sending
// SIGTTIN to the shell's own group between attempts — the same idiom
// original_source/yash_submission.c:67-74 uses ("while (tcgetpgrp(...) !=
// getpgid(0)) kill(-getpgid(0), SIGTTIN)"). At this point in startup
// InstallHandlers has not run yet (see cmd/yash/main.go), so SIGTTIN is
// still at its default disposition: if some other group currently holds
// the terminal, the signal's default action actually stops the shell until
// that other group cedes control and it is SIGCONTed, exactly like a
// background job-control shell waiting its turn. Unlike the original's
// unbounded loop, spec.md §4.6 step 3 bounds this to ~40 tries with a short
// sleep between them and warns-and-proceeds instead of blocking forever.
func (m *Manager) waitForForeground() {
	for i := 0; i < 40; i++ {
		fg, err := m.Foreground()
		if err == nil && fg == m.ShellPgid {
			return
		}
		_ = unix.Kill(-m.ShellPgid, unix.SIGTTIN)
		time.Sleep(20 * time.Millisecond)
	}
	m.logger().Warn("gave up waiting to become the terminal's foreground process group; proceeding anyway",
		zap.Int("pgid", m.ShellPgid))
}

// ClaimForeground sets the terminal's foreground process group to the
// shell's own pgid (spec.md §4.6 step 4), tolerating EPERM/ESRCH from a
// losing race the same way SetForeground always does.
func (m *Manager) ClaimForeground() error {
	return m.SetForeground(m.ShellPgid)
}

// SetForeground makes pgid the terminal's foreground process group. Callers
// on both sides of a fork race to call this (spec.md §4.4 step 3); EPERM and
// ESRCH from the race loser are expected and silently dropped.
func (m *Manager) SetForeground(pgid int) error {
	setPgrp := m.setPgrp
	if setPgrp == nil {
		setPgrp = func(fd, pgid int) error {
			return unix.IoctlSetPointerInt(fd, unix.TIOCSPGRP, pgid)
		}
	}

	var lastErr error
	for i := 0; i < 40; i++ {
		err := setPgrp(m.fd, pgid)
		if err == nil {
			return nil
		}
		if err == unix.EPERM || err == unix.ESRCH {
			return nil
		}
		lastErr = err
		if err != unix.EINTR {
			break
		}
		time.Sleep(20 * time.Millisecond)
	}
	m.logger().Warn("tcsetpgrp retry exhausted", zap.Int("pgid", pgid), zap.Error(lastErr))
	return fmt.Errorf("terminal: tcsetpgrp(%d): %w", pgid, lastErr)
}

// Foreground reports the terminal's current foreground process group.
func (m *Manager) Foreground() (int, error) {
	return unix.IoctlGetInt(m.fd, unix.TIOCGPGRP)
}

// SnapshotInto captures the terminal's current mode bits into dst.
func (m *Manager) SnapshotInto(dst *Modes) error {
	t, err := unix.IoctlGetTermios(m.fd, unix.TCGETS)
	if err != nil {
		return fmt.Errorf("terminal: tcgetattr: %w", err)
	}
	dst.termios = *t
	return nil
}

// Apply restores a previously captured Modes snapshot, used when resuming a
// stopped job to the foreground (spec.md §4.7, fg).
func (m *Manager) Apply(mode *Modes) error {
	t := mode.termios
	if err := unix.IoctlSetTermios(m.fd, unix.TCSETS, &t); err != nil {
		return fmt.Errorf("terminal: tcsetattr: %w", err)
	}
	return nil
}

// Restore reinstates the shell's own startup terminal modes, e.g. after a
// foreground job exits or stops.
func (m *Manager) Restore() error {
	return m.Apply(&m.Saved)
}

// Close releases the controlling terminal fd.
func (m *Manager) Close() error {
	return unix.Close(m.fd)
}

// Fd returns the raw controlling-terminal file descriptor, for callers that
// need to hand it to a forked child (see jobctl.Launcher).
func (m *Manager) Fd() int {
	return m.fd
}
