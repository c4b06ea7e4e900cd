package catch

import "fmt"

// Strategy selects how the child's stdout and stderr are captured.
// Exactly one strategy applies per invocation; it decides which pipes
// are created and how the child's descriptors are wired.
type Strategy int

const (
	// Separate captures stdout and stderr into independent sequences.
	// No ordering relationship between the two streams is recorded.
	Separate Strategy = iota
	// Combined captures both streams through one pipe, preserving the
	// temporal interleaving of the child's writes.
	Combined
	// Terminal is Combined through a pseudo-terminal, so the child
	// believes it is talking to an interactive terminal.
	Terminal
)

func (s Strategy) String() string {
	switch s {
	case Separate:
		return "separate"
	case Combined:
		return "combined"
	case Terminal:
		return "terminal"
	}
	return fmt.Sprintf("Strategy(%d)", int(s))
}

// ParseStrategy maps the names accepted on a command line to a Strategy.
func ParseStrategy(name string) (Strategy, error) {
	switch name {
	case "separate":
		return Separate, nil
	case "combined":
		return Combined, nil
	case "terminal":
		return Terminal, nil
	}
	return 0, fmt.Errorf("unknown capture strategy %q (want separate, combined, or terminal)", name)
}
