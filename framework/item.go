package framework

import "iter"

// Group is a named container of tests, similar to a test class. Markers attached to a group
// apply to every item inside it, including items in nested groups.
type Group struct {
	id      TestID
	parent  *Group
	markers []Marker
}

func (g *Group) ID() TestID {
	if g == nil {
		return TestID{}
	}
	return g.id
}

// Item is a single collected test. Items are created by a Collector and are owned by the
// Session; plugins may read them and decide whether they are run, but never modify them.
type Item struct {
	id      TestID
	group   *Group
	markers []Marker
	action  func(*Context)
}

func (i *Item) ID() TestID {
	return i.id
}

func (i *Item) String() string {
	return i.id.String()
}

// Group returns the innermost group containing the item, or nil for a top-level test.
func (i *Item) Group() *Group {
	return i.group
}

// IterMarkers returns every marker with the given name that applies to this item: first the
// markers attached to the item itself, then those of its enclosing groups from the innermost
// outward. The sequence can be iterated any number of times.
func (i *Item) IterMarkers(name string) iter.Seq[Marker] {
	return func(yield func(Marker) bool) {
		for _, m := range i.markers {
			if m.Name == name && !yield(m) {
				return
			}
		}
		for g := i.group; g != nil; g = g.parent {
			for _, m := range g.markers {
				if m.Name == name && !yield(m) {
					return
				}
			}
		}
	}
}

// allMarkers visits every marker attached to the item or its groups, regardless of name.
func (i *Item) allMarkers() iter.Seq[Marker] {
	return func(yield func(Marker) bool) {
		for _, m := range i.markers {
			if !yield(m) {
				return
			}
		}
		for g := i.group; g != nil; g = g.parent {
			for _, m := range g.markers {
				if !yield(m) {
					return
				}
			}
		}
	}
}

// Collector is passed to a suite definition function to declare the tests in the suite.
// Declaration order is preserved in the collected item list.
type Collector struct {
	group *Group
	items *[]*Item
}

// NewCollector returns a Collector that appends declared tests to items.
func NewCollector(items *[]*Item) *Collector {
	return &Collector{items: items}
}

// Test declares a test.
func (c *Collector) Test(name string, action func(*Context), markers ...Marker) *Item {
	item := &Item{
		id:      c.group.ID().Plus(name),
		group:   c.group,
		markers: markers,
		action:  action,
	}
	*c.items = append(*c.items, item)
	return item
}

// Group declares a group of tests. The markers apply to every test declared within define.
func (c *Collector) Group(name string, define func(*Collector), markers ...Marker) {
	g := &Group{
		id:      c.group.ID().Plus(name),
		parent:  c.group,
		markers: markers,
	}
	define(&Collector{group: g, items: c.items})
}
