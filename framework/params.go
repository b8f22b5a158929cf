package framework

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/alessio/shellescape"
)

// Params are the command-line parameters understood by the harness itself. Plugins add their
// own options through FlagContributor.
type Params struct {
	Filters       RegexFilters
	ConfigFile    string
	StrictMarkers bool
	Debug         bool
	DebugAll      bool
}

// Read parses the command line; args[0] is the program name. Options from the config file, if
// one was specified, are applied afterward for any flag not given on the command line.
func (p *Params) Read(args []string, errOut io.Writer, contributors ...FlagContributor) error {
	if len(args) == 0 {
		return errors.New("missing program name in arguments")
	}
	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)
	fs.SetOutput(errOut)
	p.Filters.AddFlags(fs)
	fs.StringVar(&p.ConfigFile, "config", "", "YAML file containing default options")
	fs.BoolVar(&p.StrictMarkers, "strict-markers", false, "fail if a test uses an unregistered marker")
	fs.BoolVar(&p.Debug, "debug", false, "enable debug logging for failed tests")
	fs.BoolVar(&p.DebugAll, "debug-all", false, "enable debug logging for all tests")
	for _, c := range contributors {
		c.AddFlags(fs)
	}

	if err := fs.Parse(args[1:]); err != nil {
		return err
	}
	if fs.NArg() != 0 {
		fs.Usage()
		return fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}
	if p.ConfigFile != "" {
		config, err := LoadConfigFile(p.ConfigFile)
		if err != nil {
			return err
		}
		if err := config.Apply(fs); err != nil {
			return err
		}
		if config.StrictMarkers {
			p.StrictMarkers = true
		}
	}
	return nil
}

type commandBuilder []string

func (b *commandBuilder) add(args ...string) {
	for _, a := range args {
		*b = append(*b, shellescape.Quote(a))
	}
}

func (b commandBuilder) String() string {
	return strings.Join(b, " ")
}

// RerunCommand returns a shell command that repeats the original invocation but runs only the
// tests that failed. Any -run options in args are replaced. It returns "" if nothing failed.
func RerunCommand(program string, args []string, results Results) string {
	if len(results.Failures) == 0 {
		return ""
	}
	var b commandBuilder
	b.add(program)
	b.add(withoutRunOption(args)...)

	names := make([]string, 0, len(results.Failures))
	for _, f := range results.Failures {
		names = append(names, regexp.QuoteMeta(f.TestID.String()))
	}
	b.add("-run", "^("+strings.Join(names, "|")+")$")
	return b.String()
}

func withoutRunOption(args []string) []string {
	var ret []string
	for i := 0; i < len(args); i++ {
		a := args[i]
		switch {
		case a == "-run" || a == "--run":
			i++
		case strings.HasPrefix(a, "-run=") || strings.HasPrefix(a, "--run="):
		default:
			ret = append(ret, a)
		}
	}
	return ret
}
