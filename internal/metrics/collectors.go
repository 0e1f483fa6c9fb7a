package metrics

import (
	"context"
	"time"

	"finadvisor/pkg/logger"

	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
)

// CustomCollector collects archive and session gauges from storage
type CustomCollector struct {
	log      *logger.Logger
	postgres *sqlx.DB
	redis    *redis.Client

	// Descriptors
	archivedReports *prometheus.Desc
	archivedTickers *prometheus.Desc
	activeSessions  *prometheus.Desc
}

// NewCustomCollector creates a new custom metrics collector.
// Either storage handle may be nil; the matching gauges are skipped.
func NewCustomCollector(log *logger.Logger, postgres *sqlx.DB, redis *redis.Client) *CustomCollector {
	return &CustomCollector{
		log:      log,
		postgres: postgres,
		redis:    redis,

		archivedReports: prometheus.NewDesc(
			"finadvisor_archived_reports",
			"Total number of advice reports in the archive",
			nil, nil,
		),
		archivedTickers: prometheus.NewDesc(
			"finadvisor_archived_tickers",
			"Number of distinct tickers with archived reports",
			nil, nil,
		),
		activeSessions: prometheus.NewDesc(
			"finadvisor_active_sessions",
			"Number of advisory sessions currently stored in Redis",
			nil, nil,
		),
	}
}

// Describe implements prometheus.Collector
func (c *CustomCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.archivedReports
	ch <- c.archivedTickers
	ch <- c.activeSessions
}

// Collect implements prometheus.Collector
func (c *CustomCollector) Collect(ch chan<- prometheus.Metric) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if c.postgres != nil {
		c.collectArchiveMetrics(ctx, ch)
	}
	if c.redis != nil {
		c.collectSessionMetrics(ctx, ch)
	}
}

func (c *CustomCollector) collectArchiveMetrics(ctx context.Context, ch chan<- prometheus.Metric) {
	var reports int64
	if err := c.postgres.GetContext(ctx, &reports, "SELECT COUNT(*) FROM advice_reports"); err != nil {
		c.log.Warnf("Failed to collect archived report count: %v", err)
		return
	}
	ch <- prometheus.MustNewConstMetric(c.archivedReports, prometheus.GaugeValue, float64(reports))

	var tickers int64
	if err := c.postgres.GetContext(ctx, &tickers, "SELECT COUNT(DISTINCT ticker) FROM advice_reports"); err != nil {
		c.log.Warnf("Failed to collect archived ticker count: %v", err)
		return
	}
	ch <- prometheus.MustNewConstMetric(c.archivedTickers, prometheus.GaugeValue, float64(tickers))
}

func (c *CustomCollector) collectSessionMetrics(ctx context.Context, ch chan<- prometheus.Metric) {
	var count int64
	iter := c.redis.Scan(ctx, 0, "advisor:session:*", 1000).Iterator()
	for iter.Next(ctx) {
		count++
	}
	if err := iter.Err(); err != nil {
		c.log.Warnf("Failed to scan session keys: %v", err)
		return
	}
	ch <- prometheus.MustNewConstMetric(c.activeSessions, prometheus.GaugeValue, float64(count))
}
