// Package tier lets test authors label tests with integer tiers and lets a test run select
// only the tests belonging to one or more requested tiers.
//
// A test is labeled with the "tier" marker, which takes exactly one integer argument:
//
//	c.Test("login", testLogin, framework.Mark(tier.MarkerName, 0))
//
// The marker may be applied more than once, and markers on a group apply to every test in it.
// When the -tier option is given (it may be repeated), a test runs only if at least one of its
// tiers was requested; tests without any tier are deselected. Without -tier every test runs.
package tier
