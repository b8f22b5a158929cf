package framework

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

var (
	failedLabel     = color.New(color.FgRed, color.Bold).SprintFunc()
	skippedLabel    = color.New(color.FgYellow).SprintFunc()
	deselectedLabel = color.New(color.FgCyan).SprintFunc()
)

// ConsoleTestLogger writes test progress to Output, or to standard output if Output is nil.
type ConsoleTestLogger struct {
	Output               io.Writer
	DebugOutputOnFailure bool
	DebugOutputOnSuccess bool
}

func (c *ConsoleTestLogger) out() io.Writer {
	if c.Output == nil {
		return os.Stdout
	}
	return c.Output
}

func (c *ConsoleTestLogger) TestStarted(id TestID) {
	fmt.Fprintf(c.out(), "[%s]\n", id)
}

func (c *ConsoleTestLogger) TestError(id TestID, err error) {
	for _, line := range strings.Split(err.Error(), "\n") {
		fmt.Fprintf(c.out(), "  %s\n", line)
	}
}

func (c *ConsoleTestLogger) TestFinished(id TestID, failed bool, debugOutput CapturedOutput) {
	if failed {
		fmt.Fprintf(c.out(), "  %s %s\n", failedLabel("FAILED:"), id)
	}
	if len(debugOutput) > 0 &&
		((failed && c.DebugOutputOnFailure) || (!failed && c.DebugOutputOnSuccess)) {
		debugOutput.Dump(c.out(), "    DEBUG ")
	}
}

func (c *ConsoleTestLogger) TestSkipped(id TestID, reason string) {
	if reason == "" {
		fmt.Fprintf(c.out(), "  %s %s\n", skippedLabel("SKIPPED:"), id)
	} else {
		fmt.Fprintf(c.out(), "  %s %s (%s)\n", skippedLabel("SKIPPED:"), id, reason)
	}
}

func (c *ConsoleTestLogger) TestDeselected(id TestID) {
	fmt.Fprintf(c.out(), "  %s %s\n", deselectedLabel("DESELECTED:"), id)
}

// PrintResults writes a summary of the run.
func PrintResults(w io.Writer, results Results) {
	passed := 0
	skipped := 0
	for _, r := range results.Tests {
		switch r.Outcome() {
		case "passed":
			passed++
		case "skipped":
			skipped++
		}
	}
	if len(results.Failures) == 0 {
		fmt.Fprintln(w, color.GreenString("All tests passed"))
	} else {
		fmt.Fprintln(w, failedLabel("FAILED TESTS:"))
		for _, f := range results.Failures {
			fmt.Fprintf(w, "  %s\n", f.TestID)
		}
	}
	fmt.Fprintf(w, "%d passed, %d failed, %d skipped, %d deselected\n",
		passed, len(results.Failures), skipped, len(results.Deselected))
}
