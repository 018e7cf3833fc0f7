package processor

import (
	"fmt"

	"wayfarer/admin-service/internal/app/admin/entity"
	"wayfarer/pkg/logger"
	"wayfarer/pkg/metrics"

	"github.com/robfig/cron/v3"
)

// StatsProvider отдает текущую сводную статистику каталога
type StatsProvider interface {
	Stats() entity.DashboardStats
}

// StatsRefresher периодически пересчитывает Prometheus-метрики дашборда
// по расписанию cron. Коллекции живут в памяти, пересчет дешевый
type StatsRefresher struct {
	catalog  StatsProvider
	schedule string
	cron     *cron.Cron
}

// NewStatsRefresher создает планировщик обновления метрик
func NewStatsRefresher(catalog StatsProvider, schedule string) *StatsRefresher {
	return &StatsRefresher{
		catalog:  catalog,
		schedule: schedule,
		cron:     cron.New(),
	}
}

// Start запускает планировщик и сразу выполняет первый пересчет,
// чтобы метрики были актуальны до первого срабатывания расписания
func (s *StatsRefresher) Start() error {
	s.Refresh()

	if _, err := s.cron.AddFunc(s.schedule, s.Refresh); err != nil {
		return fmt.Errorf("failed to schedule stats refresh: %w", err)
	}

	s.cron.Start()

	logger.Info().
		Str("schedule", s.schedule).
		Msg("Stats refresher started")

	return nil
}

// Stop останавливает планировщик и дожидается завершения текущего запуска
func (s *StatsRefresher) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()

	logger.Info().Msg("Stats refresher stopped")
}

// Refresh пересчитывает gauge-метрики дашборда
func (s *StatsRefresher) Refresh() {
	stats := s.catalog.Stats()

	metrics.SetDashboardGauges(
		stats.TotalLocations,
		stats.PendingReviews,
		stats.ApprovedReviews,
		stats.RejectedReviews,
	)

	logger.Debug().
		Int("locations", stats.TotalLocations).
		Int("reviews", stats.TotalReviews).
		Msg("Dashboard metrics refreshed")
}
