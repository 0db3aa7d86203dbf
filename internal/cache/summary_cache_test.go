package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rickyckwong/transfer-suggest/internal/config"
	"github.com/rickyckwong/transfer-suggest/internal/domain"
)

func TestNewSummaryCacheDisabled(t *testing.T) {
	c, err := NewSummaryCache(config.CacheConfig{Enabled: false})
	require.NoError(t, err)

	_, ok, err := c.Get(context.Background(), "abc", domain.ModeConservative)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(context.Background(), "abc", domain.ModeConservative, &domain.Summary{}))
	require.NoError(t, c.InvalidateAll(context.Background()))
}

func TestBuildSummaryKey(t *testing.T) {
	key := buildSummaryKey("deadbeef", domain.ModeEnhanced)
	assert.Equal(t, "transfer:summary:B:deadbeef", key)
}

func TestHashDataset(t *testing.T) {
	a := HashDataset([]byte("inventory v1"))
	b := HashDataset([]byte("inventory v1"))
	c := HashDataset([]byte("inventory v2"))

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 40)
}
