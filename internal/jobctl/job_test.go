package jobctl

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spenceryue/yash/internal/token"
	"github.com/stretchr/testify/require"
)

func TestBuildJobSimpleCommand(t *testing.T) {
	j, err := BuildJob(token.Tokenize("echo hello"))
	require.NoError(t, err)
	require.True(t, j.Foreground)
	require.Equal(t, "echo hello", j.Command)
	require.Len(t, j.Processes(), 1)
	require.Equal(t, []string{"echo", "hello"}, j.First.Argv)
}

func TestBuildJobBackground(t *testing.T) {
	j, err := BuildJob(token.Tokenize("sleep 30 &"))
	require.NoError(t, err)
	require.False(t, j.Foreground)
	require.Equal(t, []string{"sleep", "30"}, j.First.Argv)
}

func TestBuildJobPipeline(t *testing.T) {
	j, err := BuildJob(token.Tokenize("ls | wc -l"))
	require.NoError(t, err)
	procs := j.Processes()
	require.Len(t, procs, 2)
	require.Equal(t, []string{"ls"}, procs[0].Argv)
	require.Equal(t, []string{"wc", "-l"}, procs[1].Argv)
}

func TestBuildJobEmptyIsRejected(t *testing.T) {
	_, err := BuildJob(token.Tokenize(""))
	require.ErrorIs(t, err, ErrEmptyCommand)
}

func TestBuildJobLeadingPipeYieldsEmptyArgv(t *testing.T) {
	// "| wc" splits into a first segment with no tokens at all; BuildJob
	// itself does not reject this (the launcher reports "command not
	// found" for it without forking), it just produces a Process with an
	// empty Argv.
	j, err := BuildJob(token.Tokenize("| wc"))
	require.NoError(t, err)
	require.Empty(t, j.First.Argv)
}

func TestBuildJobRedirectInput(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "in.txt")
	require.NoError(t, os.WriteFile(path, []byte("abc\n"), 0644))

	j, err := BuildJob(token.Tokenize("cat < " + path))
	require.NoError(t, err)
	require.GreaterOrEqual(t, j.First.In, 0)
	require.True(t, j.First.CloseMe[0])
	require.Equal(t, []string{"cat"}, j.First.Argv)

	j.First.closeOwned(closeFD)
}

func TestBuildJobRedirectOutputCreateTruncate(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.txt")

	j, err := BuildJob(token.Tokenize("cat > " + path))
	require.NoError(t, err)
	require.GreaterOrEqual(t, j.First.Out, 0)
	require.True(t, j.First.CloseMe[1])

	j.First.closeOwned(closeFD)
	_, statErr := os.Stat(path)
	require.NoError(t, statErr, "'>' must create the file per spec.md §9's canonical 2>/create-truncate decision")
}

func TestBuildJobRedirectMissingInputFails(t *testing.T) {
	_, err := BuildJob(token.Tokenize("cat < /no/such/path/yash-test"))
	require.Error(t, err)
	var redirErr *RedirectError
	require.ErrorAs(t, err, &redirErr)
	require.Equal(t, "/no/such/path/yash-test", redirErr.Path)
}

func TestBuildJobPipelineTooLong(t *testing.T) {
	tokens := token.Tokens{"echo", "1"}
	for i := 0; i < maxPipelineMembers; i++ {
		tokens = append(tokens, "|", "echo", "1")
	}

	_, err := BuildJob(tokens)
	require.ErrorIs(t, err, ErrPipelineTooLong)
}
