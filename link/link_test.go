package link_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/farmpool/poold/link"
	"github.com/farmpool/poold/link/mocks"
	"github.com/farmpool/poold/types"
)

func newRedis(t *testing.T) (*miniredis.Miniredis, *link.Redis) {
	server := miniredis.RunT(t)
	linker := link.NewRedis(link.RedisConfig{Addr: server.Addr()})
	t.Cleanup(func() { require.NoError(t, linker.Close()) })
	return server, linker
}

func TestRedisLookup(t *testing.T) {
	t.Parallel()
	server, linker := newRedis(t)
	id := types.Bytes32{0xab, 0xcd}
	require.NoError(t, server.Set(id.String(), `{"puid":123,"timestamp":1700000000}`))

	puid, linked, err := linker.LookupAccount(context.Background(), id)
	require.NoError(t, err)
	require.True(t, linked)
	require.EqualValues(t, 123, puid)
}

func TestRedisNotLinked(t *testing.T) {
	t.Parallel()
	_, linker := newRedis(t)

	_, linked, err := linker.LookupAccount(context.Background(), types.Bytes32{1})
	require.NoError(t, err)
	require.False(t, linked)
}

func TestRedisMalformed(t *testing.T) {
	t.Parallel()
	server, linker := newRedis(t)
	id := types.Bytes32{2}
	require.NoError(t, server.Set(id.String(), "puid=1"))

	_, _, err := linker.LookupAccount(context.Background(), id)
	require.ErrorIs(t, err, link.ErrMalformedAccount)
}

func TestRedisLinkRoundTrip(t *testing.T) {
	t.Parallel()
	_, linker := newRedis(t)
	id := types.Bytes32{3}
	require.NoError(t, linker.Link(context.Background(), id, 77, time.Now()))

	puid, linked, err := linker.LookupAccount(context.Background(), id)
	require.NoError(t, err)
	require.True(t, linked)
	require.EqualValues(t, 77, puid)
}

func TestRedisUnavailable(t *testing.T) {
	t.Parallel()
	server, linker := newRedis(t)
	server.Close()

	_, _, err := linker.LookupAccount(context.Background(), types.Bytes32{4})
	require.Error(t, err)
}

func TestCachedRemembersLinkedAccounts(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	next := mocks.NewMockAccountLinker(ctrl)
	cached := link.NewCached(next, time.Minute)
	id := types.Bytes32{5}

	next.EXPECT().LookupAccount(gomock.Any(), id).Return(uint64(9), true, nil).Times(1)
	for i := 0; i < 3; i++ {
		puid, linked, err := cached.LookupAccount(context.Background(), id)
		require.NoError(t, err)
		require.True(t, linked)
		require.EqualValues(t, 9, puid)
	}

	cached.Forget(id)
	next.EXPECT().LookupAccount(gomock.Any(), id).Return(uint64(10), true, nil)
	puid, _, err := cached.LookupAccount(context.Background(), id)
	require.NoError(t, err)
	require.EqualValues(t, 10, puid)
}

func TestCachedDoesNotRememberUnlinked(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	next := mocks.NewMockAccountLinker(ctrl)
	cached := link.NewCached(next, time.Minute)
	id := types.Bytes32{6}

	next.EXPECT().LookupAccount(gomock.Any(), id).Return(uint64(0), false, nil).Times(2)
	for i := 0; i < 2; i++ {
		_, linked, err := cached.LookupAccount(context.Background(), id)
		require.NoError(t, err)
		require.False(t, linked)
	}
}
