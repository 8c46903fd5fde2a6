package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNilCacheAlwaysLoads(t *testing.T) {
	var c *Cache
	calls := 0
	load := func(context.Context) (*[]string, error) {
		calls++
		v := []string{"go", "gorm"}
		return &v, nil
	}

	for i := 0; i < 2; i++ {
		got, err := GetOrLoadJSON(c, context.Background(), "tag:list", time.Minute, load)
		require.NoError(t, err)
		assert.Equal(t, []string{"go", "gorm"}, *got)
	}
	assert.Equal(t, 2, calls)

	assert.NoError(t, c.Invalidate(context.Background(), "tag:list"))
	assert.NoError(t, c.Ping(context.Background()))
	assert.NoError(t, c.Close())
}

func TestNilCachePropagatesLoadError(t *testing.T) {
	var c *Cache
	boom := errors.New("boom")
	_, err := c.GetOrLoad(context.Background(), "k", time.Second, func(context.Context) ([]byte, error) {
		return nil, boom
	})
	assert.ErrorIs(t, err, boom)
}

func TestKeyPrefix(t *testing.T) {
	c := &Cache{Prefix: "blog:"}
	assert.Equal(t, "blog:category:list", c.key("category:list"))
}
