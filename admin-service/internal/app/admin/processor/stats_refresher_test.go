package processor

import (
	"testing"

	"wayfarer/admin-service/internal/app/admin/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubStatsProvider struct {
	stats entity.DashboardStats
	calls int
}

func (s *stubStatsProvider) Stats() entity.DashboardStats {
	s.calls++
	return s.stats
}

func TestStatsRefresher_RefreshReadsProvider(t *testing.T) {
	provider := &stubStatsProvider{stats: entity.DashboardStats{
		TotalLocations:  2,
		TotalReviews:    3,
		PendingReviews:  1,
		ApprovedReviews: 1,
		RejectedReviews: 1,
	}}

	refresher := NewStatsRefresher(provider, "@every 1h")
	refresher.Refresh()

	assert.Equal(t, 1, provider.calls)
}

func TestStatsRefresher_StartRunsInitialRefresh(t *testing.T) {
	provider := &stubStatsProvider{}
	refresher := NewStatsRefresher(provider, "@every 1h")

	require.NoError(t, refresher.Start())
	defer refresher.Stop()

	// Первый пересчет выполняется сразу, до первого срабатывания расписания
	assert.Equal(t, 1, provider.calls)
}

func TestStatsRefresher_InvalidSchedule(t *testing.T) {
	refresher := NewStatsRefresher(&stubStatsProvider{}, "not a schedule")

	assert.Error(t, refresher.Start())
}
