package jobctl

import "golang.org/x/sys/unix"

// closeRawFD closes a bare fd opened via golang.org/x/sys/unix.Open. These
// fds intentionally bypass *os.File so no GC finalizer can close them
// concurrently with the launcher's own bookkeeping; every such fd must be
// closed exactly once through this function instead.
func closeRawFD(fd int) error {
	return unix.Close(fd)
}
