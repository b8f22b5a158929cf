// Package framework contains a test runner that is similar to Go's testing package, but is run
// as regular Go application code rather than as Go tests, and can be extended with plugins.
//
// The general model is:
//
// 1. A suite definition function declares tests, optionally nested in groups, through a
// Collector. Tests and groups can carry markers: named metadata whose meaning is up to the
// plugins. Markers on a group apply to everything inside it.
//
// 2. A Session owns the plugins for a run. After collection, each plugin that implements
// ItemsModifier may deselect items; the remaining items run in declaration order.
//
// 3. There is a general notion of a test context which is similar to Go's *testing.T,
// allowing pieces of test logic to be associated with a test identifier and to accumulate
// success/failure results.
//
// Plugins cooperate only through the hook interfaces and the session's plugin registry, so a
// plugin can check whether an optional collaborator is present by looking up its name.
package framework
