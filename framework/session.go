package framework

import (
	"errors"
	"fmt"
	"io"
	"sort"
)

// ErrUnknownMarker is returned by Session.Collect in strict mode when a test uses a marker
// that no plugin has registered.
var ErrUnknownMarker = errors.New("unknown marker")

// SessionConfig contains the parameters for NewSession. All fields are optional.
type SessionConfig struct {
	// Logger receives debug output from the session and its plugins.
	Logger Logger
	// TestLogger receives progress notifications for individual tests.
	TestLogger TestLogger
	// StrictMarkers causes collection to fail if a test uses an unregistered marker.
	StrictMarkers bool
}

// Session holds the plugins for a single test run and calls their hooks as tests are collected
// and run. It is not safe for concurrent use; hooks are always called from the goroutine that
// called Collect or Run.
type Session struct {
	logger        Logger
	testLogger    TestLogger
	strictMarkers bool
	plugins       []Plugin
	byName        map[string]Plugin
	markers       []MarkerInfo
	deselected    []*Item
	isDeselected  map[*Item]bool
}

func NewSession(config SessionConfig) *Session {
	s := &Session{
		logger:        config.Logger,
		testLogger:    config.TestLogger,
		strictMarkers: config.StrictMarkers,
		byName:        make(map[string]Plugin),
		isDeselected:  make(map[*Item]bool),
	}
	if s.logger == nil {
		s.logger = NullLogger()
	}
	if s.testLogger == nil {
		s.testLogger = nullTestLogger{}
	}
	return s
}

func (s *Session) Logger() Logger {
	return s.logger
}

// Register adds a plugin to the session and calls its ConfigureSession hook, if any. Plugin
// names must be unique within a session.
func (s *Session) Register(p Plugin) error {
	name := p.PluginName()
	if name == "" {
		return errors.New("plugin name must not be empty")
	}
	if _, ok := s.byName[name]; ok {
		return fmt.Errorf("plugin %q is already registered", name)
	}
	s.plugins = append(s.plugins, p)
	s.byName[name] = p
	if c, ok := p.(SessionConfigurer); ok {
		markers := s.Markers()
		if err := c.ConfigureSession(s); err != nil {
			s.plugins = s.plugins[:len(s.plugins)-1]
			delete(s.byName, name)
			s.markers = markers
			return fmt.Errorf("configuring plugin %q: %w", name, err)
		}
	}
	s.logger.Printf("Registered plugin %q", name)
	return nil
}

// Plugin returns the registered plugin with the given name, or nil if there is none.
func (s *Session) Plugin(name string) Plugin {
	return s.byName[name]
}

// RegisterMarker documents a marker name. In strict mode only registered markers may be used.
func (s *Session) RegisterMarker(name, description string) {
	for i, m := range s.markers {
		if m.Name == name {
			s.markers[i].Description = description
			return
		}
	}
	s.markers = append(s.markers, MarkerInfo{Name: name, Description: description})
}

func (s *Session) Markers() []MarkerInfo {
	return append([]MarkerInfo(nil), s.markers...)
}

func (s *Session) markerRegistered(name string) bool {
	for _, m := range s.markers {
		if m.Name == name {
			return true
		}
	}
	return false
}

// Deselect removes items from the run without counting them as failed or skipped. It is called
// by ItemsModifier hooks for the items they drop. Items that were already deselected are
// ignored, so listeners hear about each item once.
func (s *Session) Deselect(items []*Item) {
	var added []*Item
	for _, item := range items {
		if !s.isDeselected[item] {
			s.isDeselected[item] = true
			added = append(added, item)
		}
	}
	if len(added) == 0 {
		return
	}
	s.deselected = append(s.deselected, added...)
	for _, item := range added {
		s.testLogger.TestDeselected(item.ID())
	}
	for _, p := range s.pluginsByPriority() {
		if l, ok := p.(DeselectionListener); ok {
			l.ItemsDeselected(added)
		}
	}
}

// Deselected returns every item deselected so far, in the order it was reported.
func (s *Session) Deselected() []*Item {
	return append([]*Item(nil), s.deselected...)
}

// Collect calls define to declare the suite's tests, then lets each ItemsModifier narrow the
// list down. It returns the items that should run, in declaration order.
//
// An error from any hook aborts collection; no tests should be run in that case.
func (s *Session) Collect(define func(*Collector)) ([]*Item, error) {
	var items []*Item
	define(NewCollector(&items))
	s.logger.Printf("Collected %d item(s)", len(items))

	if s.strictMarkers {
		for _, item := range items {
			for m := range item.allMarkers() {
				if !s.markerRegistered(m.Name) {
					return nil, fmt.Errorf("%s: %w %q", item.ID(), ErrUnknownMarker, m.Name)
				}
			}
		}
	}

	for _, p := range s.pluginsByPriority() {
		m, ok := p.(ItemsModifier)
		if !ok {
			continue
		}
		selected, err := m.ModifyItems(s, items)
		if err != nil {
			return nil, fmt.Errorf("plugin %q failed to modify collected items: %w", p.PluginName(), err)
		}
		items = selected
	}

	for _, p := range s.pluginsByPriority() {
		if f, ok := p.(CollectionFinisher); ok {
			if err := f.CollectionFinished(s, items); err != nil {
				return nil, fmt.Errorf("plugin %q failed to finish collection: %w", p.PluginName(), err)
			}
		}
	}
	s.logger.Printf("Selected %d item(s), deselected %d", len(items), len(s.deselected))
	return items, nil
}

// ReportItemCollected passes a newly created report record to every ItemReportHook. Reporting
// plugins call this; it stops at the first error.
func (s *Session) ReportItemCollected(record ReportRecord) error {
	for _, p := range s.pluginsByPriority() {
		if h, ok := p.(ItemReportHook); ok {
			if err := h.ReportItemCollected(record); err != nil {
				return fmt.Errorf("plugin %q failed to annotate report for %s: %w",
					p.PluginName(), record.Item().ID(), err)
			}
		}
	}
	return nil
}

// Run runs the given items in order and returns the results, including every item that was
// deselected during collection.
func (s *Session) Run(items []*Item) Results {
	env := &environment{testLogger: s.testLogger}
	for _, item := range items {
		result := runItem(env, item)
		for _, p := range s.pluginsByPriority() {
			if f, ok := p.(ItemFinisher); ok {
				f.ItemFinished(item, result)
			}
		}
	}
	for _, item := range s.deselected {
		env.results.Deselected = append(env.results.Deselected, item.ID())
	}
	return env.results
}

func (s *Session) pluginsByPriority() []Plugin {
	ret := append([]Plugin(nil), s.plugins...)
	sort.SliceStable(ret, func(i, j int) bool {
		return priorityOf(ret[i]) < priorityOf(ret[j])
	})
	return ret
}

func priorityOf(p Plugin) Priority {
	if pr, ok := p.(Prioritized); ok {
		return pr.HookPriority()
	}
	return PriorityDefault
}

// PrintFilterDescription lets each FilterDescriber explain what it will deselect.
func (s *Session) PrintFilterDescription(w io.Writer) {
	for _, p := range s.pluginsByPriority() {
		if d, ok := p.(FilterDescriber); ok {
			d.DescribeFilter(w)
		}
	}
}

// Finish calls every SessionFinisher hook. All hooks are called even if one fails; the first
// error is returned.
func (s *Session) Finish(results Results) error {
	var firstErr error
	for _, p := range s.pluginsByPriority() {
		if f, ok := p.(SessionFinisher); ok {
			if err := f.SessionFinished(s, results); err != nil && firstErr == nil {
				firstErr = fmt.Errorf("plugin %q failed to finish session: %w", p.PluginName(), err)
			}
		}
	}
	return firstErr
}
