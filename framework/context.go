package framework

import (
	"errors"
	"fmt"
	"runtime/debug"
)

type environment struct {
	results    Results
	testLogger TestLogger
}

// Context is used similarly to *testing.T while a collected item runs. It implements
// require.TestingT so that the standard assert/require packages can be used with it, and
// has a Run method for subtests.
type Context struct {
	env         *environment
	id          TestID
	item        *Item
	debugLogger CapturingLogger
	failed      bool
	skipped     bool
	skipReason  string
	errors      []error
}

func runItem(env *environment, item *Item) TestResult {
	env.testLogger.TestStarted(item.ID())
	c := &Context{
		env:  env,
		id:   item.ID(),
		item: item,
	}
	result := c.run(item.action)
	c.finish()
	return result
}

func (c *Context) run(action func(*Context)) (result TestResult) {
	defer func() {
		if r := recover(); r != nil {
			if !c.skipped {
				c.failed = true
				var addError error
				if _, ok := r.(*Context); ok {
					if len(c.errors) == 0 {
						addError = errors.New("test failed with no failure message")
					}
				} else {
					addError = fmt.Errorf("unexpected panic in test: %+v\n%s", r, string(debug.Stack()))
				}
				if addError != nil {
					c.errors = append(c.errors, addError)
					c.env.testLogger.TestError(c.id, addError)
				}
			}
		}
		if c.failed && len(c.errors) == 0 {
			c.errors = append(c.errors, errors.New("test failed with no failure message"))
		}
		result = TestResult{TestID: c.id, Errors: c.errors, Skipped: c.skipped}
		c.env.results.Tests = append(c.env.results.Tests, result)
		if c.failed && !c.skipped {
			c.env.results.Failures = append(c.env.results.Failures, result)
		}
	}()

	if action != nil {
		action(c)
	}
	return
}

func (c *Context) finish() {
	if c.skipped {
		c.env.testLogger.TestSkipped(c.id, c.skipReason)
	} else {
		c.env.testLogger.TestFinished(c.id, c.failed, c.debugLogger.Output())
	}
}

func (c *Context) ID() TestID {
	return c.id
}

// Item returns the collected item that this context, or its parent, is running.
func (c *Context) Item() *Item {
	return c.item
}

// Run runs a subtest. Its result is recorded separately from the parent's, but a failed
// subtest also marks the parent as failed.
func (c *Context) Run(name string, action func(*Context)) {
	id := c.id.Plus(name)

	c.env.testLogger.TestStarted(id)
	c1 := &Context{
		id:   id,
		item: c.item,
		env:  c.env,
	}
	c1.run(action)
	c1.finish()
	if c1.failed && !c1.skipped {
		c.failed = true
		c.errors = append(c.errors, fmt.Errorf("subtest %q failed", name))
	}
}

func (c *Context) Errorf(format string, args ...interface{}) {
	c.failed = true
	err := fmt.Errorf(format, args...)
	c.errors = append(c.errors, err)
	c.env.testLogger.TestError(c.id, err)
}

func (c *Context) FailNow() {
	c.failed = true
	panic(c)
}

func (c *Context) Skip() {
	c.skipped = true
	panic(c)
}

func (c *Context) SkipWithReason(reason string) {
	c.skipReason = reason
	c.Skip()
}

func (c *Context) Debug(message string, args ...interface{}) {
	c.debugLogger.Printf(message, args...)
}

func (c *Context) DebugLogger() Logger {
	return &c.debugLogger
}
