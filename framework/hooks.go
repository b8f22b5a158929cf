package framework

import (
	"flag"
	"io"
)

// Plugin is anything that can be registered with a Session. The name must be stable, since
// other plugins may look it up to find out whether a collaborator is present.
//
// A plugin takes part in the test run by implementing any of the hook interfaces below.
type Plugin interface {
	PluginName() string
}

// Priority controls the order in which hooks of the same kind are called.
type Priority int

const (
	// PriorityFirst hooks run before all others, so that their effects are visible to the rest.
	PriorityFirst Priority = -1
	// PriorityDefault is used for plugins that do not implement Prioritized.
	PriorityDefault Priority = 0
	// PriorityLast hooks run after all others.
	PriorityLast Priority = 1
)

// Prioritized is implemented by plugins that need their hooks to run in a particular order.
// Plugins of equal priority are called in registration order.
type Prioritized interface {
	HookPriority() Priority
}

// FlagContributor is implemented by plugins that add command-line options.
type FlagContributor interface {
	AddFlags(fs *flag.FlagSet)
}

// SessionConfigurer is called once when the plugin is registered.
type SessionConfigurer interface {
	ConfigureSession(s *Session) error
}

// ItemsModifier is called once after the tests have been collected and before any of them
// run. It returns the items that should remain selected, and reports the rest through
// Session.Deselect. It must not reorder the items it keeps.
type ItemsModifier interface {
	ModifyItems(s *Session, items []*Item) ([]*Item, error)
}

// DeselectionListener is notified whenever items are deselected.
type DeselectionListener interface {
	ItemsDeselected(items []*Item)
}

// CollectionFinisher is called with the final list of selected items.
type CollectionFinisher interface {
	CollectionFinished(s *Session, items []*Item) error
}

// ItemFinisher is called after each item has run.
type ItemFinisher interface {
	ItemFinished(item *Item, result TestResult)
}

// ReportRecord is the per-item record kept by a reporting plugin.
type ReportRecord interface {
	Item() *Item
}

// ExtraFieldAttacher is implemented by report records that accept extra fields from other
// plugins. The namespace is normally the name of the plugin supplying the field.
type ExtraFieldAttacher interface {
	AttachExtra(namespace, key, value string)
}

// ItemReportHook is called by a reporting plugin when it creates the record for an item.
type ItemReportHook interface {
	ReportItemCollected(record ReportRecord) error
}

// FilterDescriber is implemented by plugins that can explain, before the run starts, which
// tests they are going to deselect.
type FilterDescriber interface {
	DescribeFilter(w io.Writer)
}

// SessionFinisher is called once after all selected items have run.
type SessionFinisher interface {
	SessionFinished(s *Session, results Results) error
}
