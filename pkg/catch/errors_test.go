package catch

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLaunchErrorMessage(t *testing.T) {
	err := &LaunchError{Phase: PhaseFork, Path: "/bin/true", Err: errors.New("resource temporarily unavailable")}
	require.Contains(t, err.Error(), "fork")
	require.Contains(t, err.Error(), "/bin/true")
	require.Contains(t, err.Error(), "resource temporarily unavailable")
}

func TestLaunchErrorUnwrap(t *testing.T) {
	inner := errors.New("boom")
	err := &LaunchError{Phase: PhaseRead, Path: "prog", Err: inner}
	require.True(t, errors.Is(err, inner))
}

func TestLaunchErrorKeepsPartialOutput(t *testing.T) {
	out := &Output{Stdout: []byte("partial\n")}
	err := &LaunchError{Phase: PhaseReap, Path: "prog", Err: errors.New("waitid failed"), Output: out}
	require.Equal(t, []string{"partial"}, err.Output.StdoutLines())
}

func TestStrategyString(t *testing.T) {
	require.Equal(t, "separate", Separate.String())
	require.Equal(t, "combined", Combined.String())
	require.Equal(t, "terminal", Terminal.String())
	require.Equal(t, "Strategy(42)", Strategy(42).String())
}

func TestParseStrategy(t *testing.T) {
	for name, want := range map[string]Strategy{
		"separate": Separate,
		"combined": Combined,
		"terminal": Terminal,
	} {
		got, err := ParseStrategy(name)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}

	_, err := ParseStrategy("bogus")
	require.Error(t, err)
}
