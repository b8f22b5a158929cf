package framework

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type namedPlugin string

func (p namedPlugin) PluginName() string { return string(p) }

// dropPlugin deselects items whose names contain one of its substrings and records the items
// it was given.
type dropPlugin struct {
	name     string
	priority Priority
	drop     []string
	seen     []string
	calls    *[]string
	fail     error
}

func (p *dropPlugin) PluginName() string     { return p.name }
func (p *dropPlugin) HookPriority() Priority { return p.priority }

func (p *dropPlugin) ModifyItems(s *Session, items []*Item) ([]*Item, error) {
	if p.calls != nil {
		*p.calls = append(*p.calls, p.name)
	}
	if p.fail != nil {
		return nil, p.fail
	}
	var selected, deselected []*Item
	for _, item := range items {
		p.seen = append(p.seen, item.ID().String())
		drop := false
		for _, d := range p.drop {
			if strings.Contains(item.ID().String(), d) {
				drop = true
			}
		}
		if drop {
			deselected = append(deselected, item)
		} else {
			selected = append(selected, item)
		}
	}
	s.Deselect(deselected)
	return selected, nil
}

type listenerPlugin struct {
	deselected []string
	finished   []string
	collected  []string
}

func (p *listenerPlugin) PluginName() string { return "listener" }

func (p *listenerPlugin) ItemsDeselected(items []*Item) {
	for _, item := range items {
		p.deselected = append(p.deselected, item.ID().String())
	}
}

func (p *listenerPlugin) CollectionFinished(s *Session, items []*Item) error {
	for _, item := range items {
		p.collected = append(p.collected, item.ID().String())
	}
	return nil
}

func (p *listenerPlugin) ItemFinished(item *Item, result TestResult) {
	p.finished = append(p.finished, fmt.Sprintf("%s:%s", item.ID(), result.Outcome()))
}

type configuringPlugin struct {
	err error
}

func (p *configuringPlugin) PluginName() string { return "configuring" }

func (p *configuringPlugin) ConfigureSession(s *Session) error {
	s.RegisterMarker("flaky", "flaky: test may fail intermittently")
	return p.err
}

func threeTests(c *Collector) {
	c.Test("one", nil)
	c.Test("two", nil)
	c.Test("three", nil)
}

func TestRegisterRejectsDuplicateNames(t *testing.T) {
	s := NewSession(SessionConfig{})
	require.NoError(t, s.Register(namedPlugin("a")))
	err := s.Register(namedPlugin("a"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"a" is already registered`)
	assert.Error(t, s.Register(namedPlugin("")))
}

func TestPluginLookup(t *testing.T) {
	s := NewSession(SessionConfig{})
	assert.Nil(t, s.Plugin("a"))
	require.NoError(t, s.Register(namedPlugin("a")))
	assert.Equal(t, namedPlugin("a"), s.Plugin("a"))
}

func TestRegisterCallsConfigureSession(t *testing.T) {
	s := NewSession(SessionConfig{})
	require.NoError(t, s.Register(&configuringPlugin{}))
	assert.Equal(t, []MarkerInfo{{Name: "flaky", Description: "flaky: test may fail intermittently"}}, s.Markers())
}

func TestRegisterUndoesFailedConfiguration(t *testing.T) {
	s := NewSession(SessionConfig{})
	err := s.Register(&configuringPlugin{err: errors.New("nope")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nope")
	assert.Nil(t, s.Plugin("configuring"))
	assert.Empty(t, s.Markers())

	s.RegisterMarker("flaky", "original")
	require.Error(t, s.Register(&configuringPlugin{err: errors.New("nope")}))
	assert.Equal(t, []MarkerInfo{{Name: "flaky", Description: "original"}}, s.Markers())
}

func TestRegisterMarkerReplacesDescription(t *testing.T) {
	s := NewSession(SessionConfig{})
	s.RegisterMarker("m", "first")
	s.RegisterMarker("m", "second")
	assert.Equal(t, []MarkerInfo{{Name: "m", Description: "second"}}, s.Markers())
}

func TestModifiersRunInPriorityOrder(t *testing.T) {
	var calls []string
	late := &dropPlugin{name: "late", priority: PriorityLast, calls: &calls}
	normal := &dropPlugin{name: "normal", drop: []string{"two"}, calls: &calls}
	first := &dropPlugin{name: "first", priority: PriorityFirst, drop: []string{"one"}, calls: &calls}

	s := NewSession(SessionConfig{})
	require.NoError(t, s.Register(late))
	require.NoError(t, s.Register(normal))
	require.NoError(t, s.Register(first))

	items, err := s.Collect(threeTests)
	require.NoError(t, err)

	assert.Equal(t, []string{"first", "normal", "late"}, calls)
	assert.Equal(t, []string{"one", "two", "three"}, first.seen)
	assert.Equal(t, []string{"two", "three"}, normal.seen)
	assert.Equal(t, []string{"three"}, late.seen)
	require.Len(t, items, 1)
	assert.Equal(t, "three", items[0].ID().String())
}

func TestDeselectionIsReported(t *testing.T) {
	logger := &recordingTestLogger{}
	listener := &listenerPlugin{}
	s := NewSession(SessionConfig{TestLogger: logger})
	require.NoError(t, s.Register(&dropPlugin{name: "drop", drop: []string{"o"}}))
	require.NoError(t, s.Register(listener))

	items, err := s.Collect(threeTests)
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two"}, listener.deselected)
	assert.Equal(t, []string{"three"}, listener.collected)
	assert.Equal(t, []string{"deselected one", "deselected two"}, logger.events)
	assert.Len(t, s.Deselected(), 2)

	results := s.Run(items)
	assert.Equal(t, []TestID{{Path: []string{"one"}}, {Path: []string{"two"}}}, results.Deselected)
	assert.Equal(t, []string{"three:passed"}, listener.finished)
}

func TestDeselectIgnoresRepeatedItems(t *testing.T) {
	logger := &recordingTestLogger{}
	listener := &listenerPlugin{}
	s := NewSession(SessionConfig{TestLogger: logger})
	require.NoError(t, s.Register(listener))

	var items []*Item
	threeTests(NewCollector(&items))
	s.Deselect(items[:2])
	s.Deselect(items[:2])
	s.Deselect(items[1:])

	assert.Equal(t, []string{"one", "two", "three"}, listener.deselected)
	assert.Equal(t, []string{"deselected one", "deselected two", "deselected three"}, logger.events)
	assert.Len(t, s.Deselected(), 3)
	assert.Len(t, s.Run(nil).Deselected, 3)
}

func TestCollectStopsAtModifierError(t *testing.T) {
	var calls []string
	s := NewSession(SessionConfig{})
	require.NoError(t, s.Register(&dropPlugin{name: "broken", priority: PriorityFirst, fail: errors.New("bad marker"), calls: &calls}))
	require.NoError(t, s.Register(&dropPlugin{name: "next", calls: &calls}))

	items, err := s.Collect(threeTests)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad marker")
	assert.Nil(t, items)
	assert.Equal(t, []string{"broken"}, calls)
	assert.Empty(t, s.Deselected())
}

func TestStrictMarkers(t *testing.T) {
	define := func(c *Collector) {
		c.Group("g", func(c *Collector) {
			c.Test("t", nil)
		}, Mark("flaky"))
	}

	s := NewSession(SessionConfig{StrictMarkers: true})
	_, err := s.Collect(define)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownMarker))

	s = NewSession(SessionConfig{StrictMarkers: true})
	require.NoError(t, s.Register(&configuringPlugin{}))
	items, err := s.Collect(define)
	require.NoError(t, err)
	assert.Len(t, items, 1)

	s = NewSession(SessionConfig{})
	items, err = s.Collect(define)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

type hookPlugin struct {
	name string
	err  error
	got  []ReportRecord
}

func (p *hookPlugin) PluginName() string { return p.name }

func (p *hookPlugin) ReportItemCollected(record ReportRecord) error {
	p.got = append(p.got, record)
	return p.err
}

type fakeRecord struct{ item *Item }

func (r fakeRecord) Item() *Item { return r.item }

func TestReportItemCollectedDispatch(t *testing.T) {
	h1 := &hookPlugin{name: "h1"}
	h2 := &hookPlugin{name: "h2", err: errors.New("mismatch")}
	h3 := &hookPlugin{name: "h3"}
	s := NewSession(SessionConfig{})
	require.NoError(t, s.Register(h1))
	require.NoError(t, s.Register(h2))
	require.NoError(t, s.Register(h3))

	items := collectItems(threeTests)
	err := s.ReportItemCollected(fakeRecord{items[0]})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `plugin "h2"`)
	assert.Contains(t, err.Error(), "mismatch")
	assert.Len(t, h1.got, 1)
	assert.Len(t, h2.got, 1)
	assert.Len(t, h3.got, 0)
}

type finishingPlugin struct {
	name string
	err  error
	ran  bool
}

func (p *finishingPlugin) PluginName() string { return p.name }

func (p *finishingPlugin) SessionFinished(s *Session, results Results) error {
	p.ran = true
	return p.err
}

func TestFinishCallsEveryHook(t *testing.T) {
	a := &finishingPlugin{name: "a", err: errors.New("disk full")}
	b := &finishingPlugin{name: "b"}
	s := NewSession(SessionConfig{})
	require.NoError(t, s.Register(a))
	require.NoError(t, s.Register(b))

	err := s.Finish(Results{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.True(t, a.ran)
	assert.True(t, b.ran)
}

func TestSessionLogsToDebugLogger(t *testing.T) {
	var logger CapturingLogger
	s := NewSession(SessionConfig{Logger: &logger})
	require.NoError(t, s.Register(namedPlugin("a")))
	_, err := s.Collect(threeTests)
	require.NoError(t, err)
	assert.Equal(t, []string{
		`Registered plugin "a"`,
		"Collected 3 item(s)",
		"Selected 3 item(s), deselected 0",
	}, logger.Output().Messages())
}
