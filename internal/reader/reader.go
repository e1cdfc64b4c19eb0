// Package reader reads command lines from the shell's controlling terminal.
// The tty stays in its normal cooked mode — line editing and echo are the
// driver's job, not the shell's — so this is a thin line-oriented reader,
// no history, no completion.
package reader

import (
	"bufio"
	"io"
	"strings"
)

// Reader reads newline-terminated lines from an underlying stream.
type Reader struct {
	br *bufio.Reader
}

func New(r io.Reader) *Reader {
	return &Reader{br: bufio.NewReader(r)}
}

// ReadLine returns the next line with its trailing newline stripped. It
// returns io.EOF once the stream is exhausted, per spec.md §4.8 step 4
// ("EOF -> leave the loop").
func (r *Reader) ReadLine() (string, error) {
	line, err := r.br.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimRight(line, "\n"), nil
}
