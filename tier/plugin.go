package tier

import (
	"flag"
	"fmt"
	"io"
	"math"
	"reflect"
	"slices"

	"github.com/launchdarkly/test-tiers/framework"
)

const (
	// PluginName is the name the plugin registers under, and the namespace of the field it adds
	// to report records.
	PluginName = "tier"
	// MarkerName is the name of the marker that assigns a tier to a test or group.
	MarkerName = "tier"
	// OptionName is the command-line option that selects tiers.
	OptionName = "tier"
	// ReportField is the key of the report field listing a test's tiers.
	ReportField = "Tier"

	markerDescription = "tier(number): tier that the test belongs to, the value is integer"
	optionUsage       = "Filter tests by tier, can be set multiple times"
)

// Plugin deselects collected items whose tiers do not match the requested filter. It also
// remembers each item's tiers so that they can be added to report records.
type Plugin struct {
	filter List
	logger framework.Logger
	stash  map[*framework.Item][]int
}

// New creates a Plugin with an initial filter. More tiers can be added through the command
// line if the plugin is passed to framework.RunSuite.
func New(filter List) *Plugin {
	return &Plugin{
		filter: append(List(nil), filter...),
		logger: framework.NullLogger(),
		stash:  make(map[*framework.Item][]int),
	}
}

func (p *Plugin) PluginName() string { return PluginName }

func (p *Plugin) HookPriority() framework.Priority { return framework.PriorityFirst }

func (p *Plugin) AddFlags(fs *flag.FlagSet) {
	fs.Var(&p.filter, OptionName, optionUsage)
}

func (p *Plugin) ConfigureSession(s *framework.Session) error {
	s.RegisterMarker(MarkerName, markerDescription)
	p.logger = framework.PrefixedLogger(s.Logger(), "[tier] ")
	if p.filter.IsDefined() {
		p.logger.Printf("Selecting tiers: %s", p.filter)
	}
	return nil
}

// Filter returns the requested tiers.
func (p *Plugin) Filter() List {
	return append(List(nil), p.filter...)
}

func (p *Plugin) DescribeFilter(w io.Writer) {
	if !p.filter.IsDefined() {
		return
	}
	fmt.Fprintln(w, "Some tests will be deselected based on the tier filter for this test run:")
	fmt.Fprintf(w, "  deselect any not in tier %s, or without a tier\n", p.filter)
	fmt.Fprintln(w)
}

// ModifyItems sorts each item's tiers into the stash and deselects the items that the filter
// excludes. If any item has a malformed tier marker, it returns an error and changes nothing.
func (p *Plugin) ModifyItems(s *framework.Session, items []*framework.Item) ([]*framework.Item, error) {
	stash := make(map[*framework.Item][]int, len(items))
	var selected, deselected []*framework.Item

	for _, item := range items {
		tiers, err := collectTiers(item)
		if err != nil {
			return nil, err
		}
		stash[item] = tiers
		if p.selects(tiers) {
			selected = append(selected, item)
		} else {
			p.logger.Printf("Deselecting %s (tiers: [%s])", item.ID(), Join(tiers))
			deselected = append(deselected, item)
		}
	}

	for item, tiers := range stash {
		p.stash[item] = tiers
	}
	s.Deselect(deselected)
	return selected, nil
}

// selects applies the filter. The order of the checks matters: an untagged item runs only if
// there is no filter at all.
func (p *Plugin) selects(tiers []int) bool {
	if !p.filter.IsDefined() {
		return true
	}
	if len(tiers) == 0 {
		return false
	}
	for _, t := range tiers {
		if p.filter.Contains(t) {
			return true
		}
	}
	return false
}

// Tiers returns the sorted tiers recorded for an item by ModifyItems. The second return value
// is false if the item has not been seen.
func (p *Plugin) Tiers(item *framework.Item) ([]int, bool) {
	tiers, ok := p.stash[item]
	if !ok {
		return nil, false
	}
	return append([]int{}, tiers...), true
}

// ReportItemCollected adds a "Tier" field, such as "0, 1", to the report record of every item
// that has at least one tier.
func (p *Plugin) ReportItemCollected(record framework.ReportRecord) error {
	attacher, ok := record.(framework.ExtraFieldAttacher)
	if !ok {
		return fmt.Errorf("%w: %T cannot hold extra fields", ErrUnexpectedReportRecord, record)
	}
	tiers := p.stash[record.Item()]
	if len(tiers) == 0 {
		return nil
	}
	attacher.AttachExtra(PluginName, ReportField, Join(tiers))
	return nil
}

func collectTiers(item *framework.Item) ([]int, error) {
	tiers := []int{}
	for m := range item.IterMarkers(MarkerName) {
		if len(m.Args) != 1 {
			return nil, fmt.Errorf("%s: %w: %s", item.ID(), ErrMarkerArgCount, m)
		}
		t, ok := asInt(m.Args[0])
		if !ok {
			return nil, fmt.Errorf("%s: %w: %s", item.ID(), ErrMarkerArgType, m)
		}
		tiers = append(tiers, t)
	}
	slices.Sort(tiers)
	return tiers, nil
}

func asInt(v interface{}) (int, bool) {
	var wide int64
	switch n := v.(type) {
	case int:
		return n, true
	case int8:
		wide = int64(n)
	case int16:
		wide = int64(n)
	case int32:
		wide = int64(n)
	case int64:
		wide = n
	case uint, uint8, uint16, uint32, uint64:
		u := reflect.ValueOf(n).Uint()
		if u > math.MaxInt {
			return 0, false
		}
		return int(u), true
	default:
		return 0, false
	}
	if wide < math.MinInt || wide > math.MaxInt {
		return 0, false
	}
	return int(wide), true
}
