package health

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_HealthCheckAll(t *testing.T) {
	r := NewRegistry()
	r.Register("repository", Func{Kind: "postgres", Probe: func(context.Context) error { return nil }})
	r.Register("cache", Func{Kind: "redis", Probe: func(context.Context) error { return errors.New("connection refused") }})

	assert.Equal(t, []string{"cache", "repository"}, r.List())
	assert.Equal(t, "redis", r.Get("cache").Type())

	results := r.HealthCheckAll(context.Background())
	require.Len(t, results, 2)
	assert.NoError(t, results["repository"])
	assert.EqualError(t, results["cache"], "connection refused")
	assert.False(t, Healthy(results))

	r.Unregister("cache")
	assert.Nil(t, r.Get("cache"))
	assert.True(t, Healthy(r.HealthCheckAll(context.Background())))
}

func TestHealthy_Empty(t *testing.T) {
	assert.True(t, Healthy(nil))
}

func TestRedisChecker_Unreachable(t *testing.T) {
	c := NewRedisChecker("127.0.0.1:1", "", 0)
	defer c.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Error(t, c.HealthCheck(ctx))
	assert.Equal(t, "redis", c.Type())
}
