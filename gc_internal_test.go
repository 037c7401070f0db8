package gc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type leaf struct {
	Value int
}

func (l *leaf) Trace(v Visitor) {}

func TestScopeExitRestoresPoolCursor(t *testing.T) {
	c := New()

	err := c.Run(func(root *Scope) error {
		before := c.pool.Next()

		err := root.Nested(func(child *Scope) error {
			_, err := Alloc[leaf](child, leaf{Value: 1})
			require.NoError(t, err)
			_, err = Alloc[leaf](child, leaf{Value: 2})
			return err
		})
		require.NoError(t, err)

		assert.Equal(t, before, c.pool.Next())
		return nil
	})
	require.NoError(t, err)
}

func TestScopesMustExitInReverseOrder(t *testing.T) {
	c := New()

	err := c.Run(func(root *Scope) error {
		child := c.enterScope(root)
		// Exiting root while child is still active must be rejected.
		exitErr := c.exitScope(root)
		assert.ErrorIs(t, exitErr, ErrScopeNotActive)

		return c.exitScope(child)
	})
	require.NoError(t, err)
}

func TestDefaultConfigCollectsOnEveryAllocation(t *testing.T) {
	c := New()
	assert.Equal(t, 1, c.cfg.CollectThreshold)
	assert.Equal(t, defaultBlockCapacity, c.cfg.BlockCapacity)
}

func TestCollectThresholdDefaultsWhenNonPositive(t *testing.T) {
	c := NewWithConfig(Config{CollectThreshold: -1, BlockCapacity: -1})
	assert.Equal(t, 1, c.cfg.CollectThreshold)
	assert.Equal(t, defaultBlockCapacity, c.cfg.BlockCapacity)
}

func TestMarkSweepDestroysUnreachableAndKeepsReachable(t *testing.T) {
	c := New()

	err := c.Run(func(s *Scope) error {
		keepDestroyed := 0
		dropDestroyed := 0

		keep, err := Alloc[countedLeaf](s, countedLeaf{destroyed: &keepDestroyed})
		require.NoError(t, err)

		err = s.Nested(func(child *Scope) error {
			_, err := Alloc[countedLeaf](child, countedLeaf{destroyed: &dropDestroyed})
			return err
		})
		require.NoError(t, err)

		c.collectAll()

		assert.Equal(t, 0, keepDestroyed)
		assert.Equal(t, 1, dropDestroyed)

		_, err = keep.Deref()
		assert.NoError(t, err)
		return nil
	})
	require.NoError(t, err)
}

type countedLeaf struct {
	destroyed *int
}

func (c *countedLeaf) Trace(v Visitor) {}

func (c *countedLeaf) Destroy() {
	*c.destroyed++
}
