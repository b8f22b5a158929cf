package framework

import (
	"fmt"
	"io"
	"log"
)

// RunSuite is the usual entry point for a test program: it parses the command line, registers
// the plugins, collects the suite declared by define, runs the selected tests, and prints a
// summary to out.
//
// A non-nil error means the run could not be completed at all, for instance because of an
// invalid option or malformed test metadata. Test failures are reported only in Results.
func RunSuite(args []string, out io.Writer, define func(*Collector), plugins ...Plugin) (Results, error) {
	var params Params
	var contributors []FlagContributor
	for _, p := range plugins {
		if c, ok := p.(FlagContributor); ok {
			contributors = append(contributors, c)
		}
	}
	if err := params.Read(args, out, contributors...); err != nil {
		return Results{}, fmt.Errorf("invalid parameters: %w", err)
	}

	debugLogger := NullLogger()
	if params.DebugAll {
		debugLogger = log.New(out, "", log.LstdFlags)
	}
	session := NewSession(SessionConfig{
		Logger: debugLogger,
		TestLogger: &ConsoleTestLogger{
			Output:               out,
			DebugOutputOnFailure: params.Debug || params.DebugAll,
			DebugOutputOnSuccess: params.DebugAll,
		},
		StrictMarkers: params.StrictMarkers,
	})
	for _, p := range append([]Plugin{&params.Filters}, plugins...) {
		if err := session.Register(p); err != nil {
			return Results{}, err
		}
	}

	fmt.Fprintln(out)
	session.PrintFilterDescription(out)

	items, err := session.Collect(define)
	if err != nil {
		return Results{}, err
	}

	fmt.Fprintln(out, "Running test suite")
	results := session.Run(items)
	if err := session.Finish(results); err != nil {
		return results, err
	}

	fmt.Fprintln(out)
	PrintResults(out, results)
	if cmd := RerunCommand(args[0], args[1:], results); cmd != "" {
		fmt.Fprintf(out, "To run only the failed tests:\n  %s\n", cmd)
	}
	return results, nil
}
