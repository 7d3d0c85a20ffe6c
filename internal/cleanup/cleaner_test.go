package cleanup

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pwpl/pds-engine/internal/models"
	"github.com/pwpl/pds-engine/internal/storage"
)

func TestCleaner_RunOnce(t *testing.T) {
	ctx := context.Background()
	repo := storage.NewMemoryRepository()
	now := time.Date(2026, time.October, 19, 12, 0, 0, 0, time.UTC)

	for id, age := range map[string]time.Duration{
		"old":    40 * 24 * time.Hour,
		"recent": 2 * time.Hour,
	} {
		require.NoError(t, repo.CreateReport(ctx, &models.ArchivedReport{
			ID:        id,
			Type:      models.ReportEnhanced,
			CreatedAt: now.Add(-age),
		}))
	}

	c := NewCleaner(repo, time.Minute, 30*24*time.Hour)
	c.now = func() time.Time { return now }

	assert.Equal(t, int64(1), c.RunOnce(ctx))
	assert.Equal(t, int64(0), c.RunOnce(ctx))

	left, err := repo.ListReports(ctx, models.ReportFilters{})
	require.NoError(t, err)
	require.Len(t, left, 1)
	assert.Equal(t, "recent", left[0].ID)
}

func TestNewCleaner_Defaults(t *testing.T) {
	c := NewCleaner(storage.NewMemoryRepository(), 0, 0)
	assert.Equal(t, time.Hour, c.interval)
	assert.Equal(t, 30*24*time.Hour, c.retention)
}
