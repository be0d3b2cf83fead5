package node

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestConnectionPoolStatsEmpty(t *testing.T) {
	p := NewConnectionPool(DefaultPoolConfig())
	stats := p.Stats()
	require.Equal(t, 0, stats.TotalEndpoints)
	require.Equal(t, uint64(0), stats.TotalInvokes)
}

func TestConnectionPoolStatsReflectsInjectedEntries(t *testing.T) {
	p := NewConnectionPool(DefaultPoolConfig())
	p.conns["node-a:9090"] = &pooledConn{lastUsed: time.Now(), numInvokes: 3}
	p.conns["node-b:9090"] = &pooledConn{lastUsed: time.Now(), numInvokes: 5}

	stats := p.Stats()
	require.Equal(t, 2, stats.TotalEndpoints)
	require.Equal(t, uint64(8), stats.TotalInvokes)
}

func TestConnectionPoolCleanupDropsOnlyIdleEntries(t *testing.T) {
	cfg := DefaultPoolConfig()
	cfg.IdleTimeout = 10 * time.Millisecond
	p := NewConnectionPool(cfg)

	p.conns["stale"] = &pooledConn{lastUsed: time.Now().Add(-time.Hour)}
	p.conns["fresh"] = &pooledConn{lastUsed: time.Now()}

	p.Cleanup()

	require.NotContains(t, p.conns, "stale")
	require.Contains(t, p.conns, "fresh")
}

func TestConnectionPoolCloseDropsEverything(t *testing.T) {
	p := NewConnectionPool(DefaultPoolConfig())
	p.conns["a"] = &pooledConn{lastUsed: time.Now()}
	p.conns["b"] = &pooledConn{lastUsed: time.Now()}

	require.NoError(t, p.Close())
	require.Empty(t, p.conns)
}

func TestConnectionPoolGetFailsOnUnreachableEndpoint(t *testing.T) {
	cfg := DefaultPoolConfig()
	cfg.DialTimeout = 50 * time.Millisecond
	p := NewConnectionPool(cfg)

	_, err := p.Get(context.Background(), "127.0.0.1:1")
	require.Error(t, err)

	var te TransportError
	require.ErrorAs(t, err, &te)
	require.Equal(t, ErrConnectFailed, te.ErrorCode)
}
