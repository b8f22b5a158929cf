package framework

import (
	"flag"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// RegexFiltersPluginName is the name under which RegexFilters registers itself.
const RegexFiltersPluginName = "regex-filters"

// RegexFilters selects tests by matching their full IDs against regular expressions. As a
// plugin it deselects every collected item that does not pass AsFilter.
type RegexFilters struct {
	MustMatch    RegexList
	MustNotMatch RegexList
}

func (r RegexFilters) AsFilter(id TestID) bool {
	name := id.String()
	return (!r.MustMatch.IsDefined() || r.MustMatch.AnyMatch(name)) &&
		!r.MustNotMatch.AnyMatch(name)
}

func (r RegexFilters) IsDefined() bool {
	return r.MustMatch.IsDefined() || r.MustNotMatch.IsDefined()
}

func (r *RegexFilters) PluginName() string { return RegexFiltersPluginName }

func (r *RegexFilters) AddFlags(fs *flag.FlagSet) {
	fs.Var(&r.MustMatch, "run", "regex pattern(s) to select tests to run")
	fs.Var(&r.MustNotMatch, "skip", "regex pattern(s) to select tests not to run")
}

func (r *RegexFilters) ModifyItems(s *Session, items []*Item) ([]*Item, error) {
	if !r.IsDefined() {
		return items, nil
	}
	var selected, deselected []*Item
	for _, item := range items {
		if r.AsFilter(item.ID()) {
			selected = append(selected, item)
		} else {
			deselected = append(deselected, item)
		}
	}
	s.Deselect(deselected)
	return selected, nil
}

func (r *RegexFilters) DescribeFilter(w io.Writer) {
	if !r.IsDefined() {
		return
	}
	fmt.Fprintln(w, "Some tests will be deselected based on the filter criteria for this test run:")
	if r.MustMatch.IsDefined() {
		fmt.Fprintf(w, "  deselect any not matching %s\n", r.MustMatch)
	}
	if r.MustNotMatch.IsDefined() {
		fmt.Fprintf(w, "  deselect any matching %s\n", r.MustNotMatch)
	}
	fmt.Fprintln(w)
}

type RegexList struct {
	patterns []*regexp.Regexp
}

func (r RegexList) String() string {
	var ss []string
	for _, p := range r.patterns {
		ss = append(ss, `"`+p.String()+`"`)
	}
	return strings.Join(ss, " or ")
}

// Set is called by the command line parser
func (r *RegexList) Set(value string) error {
	rx, err := regexp.Compile(value)
	if err != nil {
		return fmt.Errorf("invalid regex: %w", err)
	}
	r.patterns = append(r.patterns, rx)
	return nil
}

func (r RegexList) IsDefined() bool {
	return len(r.patterns) != 0
}

func (r RegexList) AnyMatch(s string) bool {
	for _, p := range r.patterns {
		if p.MatchString(s) {
			return true
		}
	}
	return false
}
