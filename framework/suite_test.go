package framework

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunSuite(t *testing.T) {
	withoutColor(func() {
		var out bytes.Buffer
		listener := &listenerPlugin{}
		results, err := RunSuite([]string{"prog", "-skip", "two"}, &out, func(c *Collector) {
			c.Test("one", nil)
			c.Test("two", nil)
			c.Test("three", func(c *Context) {
				c.Errorf("oops")
			})
		}, listener)
		require.NoError(t, err)

		assert.False(t, results.OK())
		assert.Equal(t, []TestID{{Path: []string{"two"}}}, results.Deselected)
		assert.Equal(t, []string{"one:passed", "three:failed"}, listener.finished)

		s := out.String()
		assert.Contains(t, s, `deselect any matching "two"`)
		assert.Contains(t, s, "DESELECTED: two")
		assert.Contains(t, s, "1 passed, 1 failed, 0 skipped, 1 deselected")
		assert.Contains(t, s, "prog -skip two -run '^(three)$'")
	})
}

func TestRunSuiteInvalidParameters(t *testing.T) {
	var out bytes.Buffer
	_, err := RunSuite([]string{"prog", "-run", "("}, &out, func(c *Collector) {})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid parameters")
}

func TestRunSuiteDuplicatePlugin(t *testing.T) {
	var out bytes.Buffer
	_, err := RunSuite([]string{"prog"}, &out, func(c *Collector) {}, namedPlugin(RegexFiltersPluginName))
	assert.Error(t, err)
}
