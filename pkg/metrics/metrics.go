package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор метрик сервиса
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration  *prometheus.HistogramVec
	DBQueryErrors    *prometheus.CounterVec
	DBOpenConns      prometheus.Gauge
	DBInUseConns     prometheus.Gauge
	DBIdleConns      prometheus.Gauge
	DBWaitCountTotal prometheus.Gauge

	CronExecutionsTotal *prometheus.CounterVec
	CronExecutionTime   *prometheus.HistogramVec

	ReservationsTotal *prometheus.CounterVec
	OrdersTotal       *prometheus.CounterVec
}

// New регистрирует метрики в реестре по умолчанию
func New(serviceName string) *Metrics {
	return NewWithRegisterer(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegisterer регистрирует метрики в переданном реестре
func NewWithRegisterer(serviceName string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	constLabels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),

		DBQueryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency",
			ConstLabels: constLabels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),
		DBQueryErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_query_errors_total",
			Help:        "Database query errors",
			ConstLabels: constLabels,
		}, []string{"operation"}),
		DBOpenConns: factory.NewGauge(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Open connections in the pool",
			ConstLabels: constLabels,
		}),
		DBInUseConns: factory.NewGauge(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Connections currently in use",
			ConstLabels: constLabels,
		}),
		DBIdleConns: factory.NewGauge(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Idle connections in the pool",
			ConstLabels: constLabels,
		}),
		DBWaitCountTotal: factory.NewGauge(prometheus.GaugeOpts{
			Name:        "db_wait_count",
			Help:        "Total number of connections waited for",
			ConstLabels: constLabels,
		}),

		CronExecutionsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "cron_task_executions_total",
			Help:        "Cron task executions by result",
			ConstLabels: constLabels,
		}, []string{"result"}),
		CronExecutionTime: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "cron_task_execution_duration_seconds",
			Help:        "Cron task HTTP call latency",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"result"}),

		ReservationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "reservations_total",
			Help:        "Reservations created or cancelled",
			ConstLabels: constLabels,
		}, []string{"kind", "action"}),
		OrdersTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "orders_total",
			Help:        "Processed orders by result",
			ConstLabels: constLabels,
		}, []string{"result"}),
	}
}

// IncReservation учитывает бронирование/отмену. Безопасно для nil (метрики выключены)
func (m *Metrics) IncReservation(kind, action string) {
	if m == nil {
		return
	}
	m.ReservationsTotal.WithLabelValues(kind, action).Inc()
}

// IncOrder учитывает обработанный заказ
func (m *Metrics) IncOrder(result string) {
	if m == nil {
		return
	}
	m.OrdersTotal.WithLabelValues(result).Inc()
}

// ObserveCronExecution учитывает запуск cron-задачи
func (m *Metrics) ObserveCronExecution(result string, d time.Duration) {
	if m == nil {
		return
	}
	m.CronExecutionsTotal.WithLabelValues(result).Inc()
	m.CronExecutionTime.WithLabelValues(result).Observe(d.Seconds())
}
