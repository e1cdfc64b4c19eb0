package terminal

import (
	"os"
	"os/signal"

	"golang.org/x/sys/unix"
)

// InstallHandlers wires the shell process's own signal disposition: SIGINT
// and SIGTSTP get a handler that just asks the REPL to redraw its prompt
// (the shell itself is never interrupted or stopped by a key the user meant
// for the foreground job), SIGQUIT/SIGTTIN/SIGTTOU are ignored outright, and
// SIGCHLD is left at its default disposition — the reaper discovers child
// state changes by calling Update after every blocking read, not from a
// SIGCHLD handler.
func InstallHandlers(redraw func()) {
	signal.Ignore(unix.SIGQUIT, unix.SIGTTIN, unix.SIGTTOU)

	caught := make(chan os.Signal, 4)
	signal.Notify(caught, unix.SIGINT, unix.SIGTSTP)
	go func() {
		for range caught {
			redraw()
		}
	}()
}
