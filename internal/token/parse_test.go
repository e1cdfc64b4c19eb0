package token

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplitAtPipe(t *testing.T) {
	head, tail := Tokenize("ls | wc -l").SplitAtPipe()
	require.Equal(t, Tokens{"ls"}, head)
	require.Equal(t, Tokens{"wc", "-l"}, tail)
}

func TestSplitAtPipeNoPipe(t *testing.T) {
	head, tail := Tokenize("echo hello").SplitAtPipe()
	require.Equal(t, Tokens{"echo", "hello"}, head)
	require.Empty(t, tail)
}

func TestFindRedirect(t *testing.T) {
	tok := Tokenize("cat < in.txt > out.txt 2> err.txt")

	in, ok := tok.FindRedirect("<")
	require.True(t, ok)
	require.Equal(t, "in.txt", in)

	out, ok := tok.FindRedirect(">")
	require.True(t, ok)
	require.Equal(t, "out.txt", out)

	errp, ok := tok.FindRedirect("2>")
	require.True(t, ok)
	require.Equal(t, "err.txt", errp)
}

func TestFindRedirectMissing(t *testing.T) {
	_, ok := Tokenize("echo hi").FindRedirect("<")
	require.False(t, ok)
}

func TestFindRedirectDanglingHasNoFollowingToken(t *testing.T) {
	_, ok := Tokenize("cat <").FindRedirect("<")
	require.False(t, ok)
}

func TestHasBackground(t *testing.T) {
	require.True(t, Tokenize("sleep 30 &").HasBackground())
	require.False(t, Tokenize("sleep 30").HasBackground())
}

func TestTruncateArgv(t *testing.T) {
	require.Equal(t, []string{"cat"}, Tokenize("cat < in.txt > out.txt").TruncateArgv())
	require.Equal(t, []string{"sleep", "30"}, Tokenize("sleep 30 &").TruncateArgv())
	require.Equal(t, []string{"echo", "hi"}, Tokenize("echo hi").TruncateArgv())
}
