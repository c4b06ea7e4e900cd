package catch

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOutputLinesTrailingNewline(t *testing.T) {
	out := &Output{Stdout: []byte("a\nb\n")}
	require.Equal(t, []string{"a", "b"}, out.StdoutLines())
}

func TestOutputLinesNoTrailingNewline(t *testing.T) {
	out := &Output{Stderr: []byte("a\nb")}
	require.Equal(t, []string{"a", "b"}, out.StderrLines())
}

func TestOutputLinesEmpty(t *testing.T) {
	out := &Output{}
	require.Nil(t, out.StdoutLines())
	require.Nil(t, out.StderrLines())
	require.Nil(t, out.CombinedLines())
}

func TestOutputLinesKeepsBlankLines(t *testing.T) {
	out := &Output{Stdout: []byte("a\n\nb\n")}
	require.Equal(t, []string{"a", "", "b"}, out.StdoutLines())
}

func TestOutputLinesNormalizesCRLF(t *testing.T) {
	// Pseudo-terminals translate \n to \r\n on output.
	out := &Output{Combined: []byte("a\r\nb\r\n")}
	require.Equal(t, []string{"a", "b"}, out.CombinedLines())
}
