//go:build integration

package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"provider-registry/internal/platform/config"
	"provider-registry/pkg/testutil/containers"
)

func TestNewConnectsAndReportsHealth(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	rc := containers.GetManager().GetRedis(t)

	client, err := New(context.Background(), config.RedisConfig{
		URL:          rc.URL,
		PoolSize:     4,
		MinIdleConns: 1,
		DialTimeout:  2 * time.Second,
	})
	require.NoError(t, err)
	require.NotNil(t, client)
	defer client.Close()

	require.NoError(t, client.Health(context.Background()))
	require.Equal(t, 4, client.Options().PoolSize)
}
