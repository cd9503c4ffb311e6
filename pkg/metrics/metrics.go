package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HttpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "apunab_http_requests_total",
			Help: "Toplam HTTP istek sayısı",
		},
		[]string{"method", "endpoint", "status"},
	)

	HttpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "apunab_http_request_duration_seconds",
			Help:    "HTTP istek süresi (saniye)",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	BetsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "apunab_bets_created_total",
			Help: "Oluşturulan toplam bahis sayısı",
		},
	)

	BetsSettled = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "apunab_bets_settled_total",
			Help: "Sonuçlandırılan toplam bahis sayısı",
		},
		[]string{"result"},
	)

	BetsCancelled = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "apunab_bets_cancelled_total",
			Help: "İptal edilen toplam bahis sayısı",
		},
	)

	LedgerOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "apunab_ledger_operations_total",
			Help: "Toplam bakiye hareketi sayısı",
		},
		[]string{"reason", "status"},
	)

	CompensationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "apunab_compensations_total",
			Help: "Kalıcılık hatası sonrası geri alınan işlem sayısı",
		},
		[]string{"operation"},
	)

	SettlementQueueSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "apunab_settlement_queue_size",
			Help: "Sonuçlandırma kuyruğundaki iş sayısı",
		},
	)

	CacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "apunab_cache_hits_total",
			Help: "Önbellek isabet sayısı",
		},
	)

	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "apunab_cache_misses_total",
			Help: "Önbellek isabet etmeme sayısı",
		},
	)
)

func RecordHttpRequest(method, endpoint, status string, duration time.Duration) {
	HttpRequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	HttpRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

func RecordLedgerOperation(reason string, status string) {
	LedgerOperations.WithLabelValues(reason, status).Inc()
}

func RecordSettlement(won bool) {
	if won {
		BetsSettled.WithLabelValues("won").Inc()
	} else {
		BetsSettled.WithLabelValues("lost").Inc()
	}
}

func RecordCompensation(operation string) {
	CompensationsTotal.WithLabelValues(operation).Inc()
}

func RecordCacheHit() {
	CacheHits.Inc()
}

func RecordCacheMiss() {
	CacheMisses.Inc()
}
