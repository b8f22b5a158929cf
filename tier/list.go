package tier

import (
	"flag"
	"fmt"
	"strconv"
	"strings"
)

// List is an ordered list of requested tiers. It implements flag.Value, so that the option can
// be given any number of times.
type List []int

func (l List) String() string {
	return Join(l)
}

// Set is called by the command line parser
func (l *List) Set(value string) error {
	t, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidTier, value)
	}
	*l = append(*l, t)
	return nil
}

// IsDefined returns true if any tier was requested.
func (l List) IsDefined() bool {
	return len(l) != 0
}

// Contains returns true if t was requested.
func (l List) Contains(t int) bool {
	for _, x := range l {
		if x == t {
			return true
		}
	}
	return false
}

// ParseList converts option values to a List, failing on the first value that is not an
// integer.
func ParseList(values []string) (List, error) {
	var l List
	for _, v := range values {
		if err := l.Set(v); err != nil {
			return nil, err
		}
	}
	return l, nil
}

// AddFlags registers the -tier option on fs and returns the List it fills in.
func AddFlags(fs *flag.FlagSet) *List {
	var l List
	fs.Var(&l, OptionName, optionUsage)
	return &l
}

// Join formats tiers as a comma-separated list, such as "0, 1".
func Join(tiers []int) string {
	ss := make([]string, 0, len(tiers))
	for _, t := range tiers {
		ss = append(ss, strconv.Itoa(t))
	}
	return strings.Join(ss, ", ")
}
