package metrics

import "time"

type StoreOperation string

const (
	StoreOpLoad  StoreOperation = "load"
	StoreOpSave  StoreOperation = "save"
	StoreOpClear StoreOperation = "clear"
)

type StoreTimer struct {
	service   string
	operation StoreOperation
	start     time.Time
}

func NewStoreTimer(service string, op StoreOperation) *StoreTimer {
	return &StoreTimer{
		service:   service,
		operation: op,
		start:     time.Now(),
	}
}

func (st *StoreTimer) ObserveDuration() {
	duration := time.Since(st.start).Seconds()
	StoreOperationDuration.WithLabelValues(st.service, string(st.operation)).Observe(duration)
}

func RecordStoreError(service string, op StoreOperation) {
	StoreErrors.WithLabelValues(service, string(op)).Inc()
}

func RecordKafkaMessageProduced(service, topic string) {
	KafkaMessagesProduced.WithLabelValues(service, topic).Inc()
}

func RecordKafkaError(service, topic, operation string) {
	KafkaErrors.WithLabelValues(service, topic, operation).Inc()
}

func RecordAdminCommand(command, status string) {
	AdminCommandsTotal.WithLabelValues(command, status).Inc()
}

// SetDashboardGauges обновляет gauge-метрики дашборда
// Вызывается периодическим рефрешером статистики
func SetDashboardGauges(totalLocations, pending, approved, rejected int) {
	AdminLocationsTotal.Set(float64(totalLocations))
	AdminReviewsByStatus.WithLabelValues("pending").Set(float64(pending))
	AdminReviewsByStatus.WithLabelValues("approved").Set(float64(approved))
	AdminReviewsByStatus.WithLabelValues("rejected").Set(float64(rejected))
}
