package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/phip1611/unix-exec-output-catcher/pkg/catch"
	"github.com/phip1611/unix-exec-output-catcher/pkg/watchdog"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	strategyName string
	timeout      time.Duration
	grace        time.Duration
	verbose      bool
)

var rootCmd = &cobra.Command{
	Use:   "execatch [flags] -- program [args...]",
	Short: "Run a program and capture its stdout and stderr",
	Long: `execatch spawns a program, captures its stdout and stderr, and prints
the captured lines once the program exits. With the combined or terminal
strategy the printed lines preserve the temporal interleaving of both
streams; with the separate strategy each stream is printed on its own.`,
	Args:          cobra.MinimumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if verbose {
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
		}

		strategy, err := catch.ParseStrategy(strategyName)
		if err != nil {
			return err
		}

		var opts []catch.Option
		if timeout > 0 {
			var disarm func()
			opts = append(opts, catch.WithStarted(func(pid int) {
				disarm = watchdog.Arm(pid, timeout, grace)
			}))
			defer func() {
				if disarm != nil {
					disarm()
				}
			}()
		}

		out, err := catch.Run(args[0], args, strategy, opts...)
		if err != nil {
			return err
		}

		render(out, strategy)
		if out.Signal != "" {
			return fmt.Errorf("child terminated by signal %s", out.Signal)
		}
		if out.ExitCode != 0 {
			os.Exit(out.ExitCode)
		}
		return nil
	},
}

// render prints the captured lines. Under the separate strategy stderr
// lines get a label, colored when stdout is a terminal.
func render(out *catch.Output, strategy catch.Strategy) {
	if strategy != catch.Separate {
		for _, line := range out.CombinedLines() {
			fmt.Println(line)
		}
		return
	}

	colored := term.IsTerminal(int(os.Stdout.Fd()))
	for _, line := range out.StdoutLines() {
		fmt.Println(line)
	}
	for _, line := range out.StderrLines() {
		if colored {
			fmt.Printf("\x1b[31mstderr\x1b[0m %s\n", line)
		} else {
			fmt.Printf("stderr %s\n", line)
		}
	}
}

func init() {
	rootCmd.Flags().StringVarP(&strategyName, "strategy", "s", "separate", "Capture strategy: separate, combined, or terminal")
	rootCmd.Flags().DurationVarP(&timeout, "timeout", "t", 0, "Kill the child after this duration (0 disables the watchdog)")
	rootCmd.Flags().DurationVar(&grace, "grace", 2*time.Second, "Delay between SIGTERM and SIGKILL when the timeout fires")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
