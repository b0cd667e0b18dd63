package registry

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/farmpool/poold/types"
)

func TestLockerSerializesSameKey(t *testing.T) {
	t.Parallel()
	locker := NewLocker()
	id := types.Bytes32{1}

	var inside atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := locker.Lock(id)
			defer unlock()
			require.Equal(t, int32(1), inside.Add(1))
			time.Sleep(time.Millisecond)
			inside.Add(-1)
		}()
	}
	wg.Wait()
	require.Zero(t, locker.size())
}

func TestLockerDifferentKeysDontBlock(t *testing.T) {
	t.Parallel()
	locker := NewLocker()
	unlock := locker.Lock(types.Bytes32{1})
	defer unlock()

	done := make(chan struct{})
	go func() {
		locker.Lock(types.Bytes32{2})()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		require.Fail(t, "lock of another key blocked")
	}
}

func TestUnlockIsIdempotent(t *testing.T) {
	t.Parallel()
	locker := NewLocker()
	unlock := locker.Lock(types.Bytes32{1})
	unlock()
	unlock()
	require.Zero(t, locker.size())
	locker.Lock(types.Bytes32{1})()
}
