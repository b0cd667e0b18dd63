package pool

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/farmpool/poold/types"
)

func TestCooldowns(t *testing.T) {
	t.Parallel()
	c := newCooldowns()
	id := types.Bytes32{1}

	require.False(t, c.active(id))
	require.True(t, c.start(id, 20*time.Millisecond))
	require.True(t, c.active(id))
	require.False(t, c.start(id, time.Hour))

	require.Eventually(t, func() bool { return !c.active(id) }, time.Second, time.Millisecond)
	require.Zero(t, c.size())
}

func TestCooldownsCancel(t *testing.T) {
	t.Parallel()
	c := newCooldowns()
	require.True(t, c.start(types.Bytes32{1}, time.Hour))
	require.True(t, c.start(types.Bytes32{2}, time.Hour))

	c.cancel(types.Bytes32{1})
	require.False(t, c.active(types.Bytes32{1}))
	require.True(t, c.active(types.Bytes32{2}))

	c.stop()
	require.Zero(t, c.size())
}
