package elemeta

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/bahrom04-lab/element-desktop-leveldb/store"
)

// ScanCollector exposes extraction progress plus the engine's read-path
// metrics. Register it when running extractions as a long-lived service.
type ScanCollector struct {
	st *store.Store
	ex *Extractor

	// Prometheus descriptors for scan metrics
	entriesScanned  *prometheus.Desc
	keysClassified  *prometheus.Desc
	keysForeign     *prometheus.Desc
	decodeAnomalies *prometheus.Desc

	// Prometheus descriptors for engine read-path metrics
	blockCacheSize   *prometheus.Desc
	blockCacheCount  *prometheus.Desc
	blockCacheHits   *prometheus.Desc
	blockCacheMisses *prometheus.Desc
	tableCount       *prometheus.Desc
	diskUsage        *prometheus.Desc
}

func NewScanCollector(st *store.Store, ex *Extractor) *ScanCollector {
	return &ScanCollector{
		st: st,
		ex: ex,

		// Scan metrics
		entriesScanned: prometheus.NewDesc(
			"elemeta_entries_scanned_total",
			"Total number of live store entries visited by the scan",
			nil, nil,
		),
		keysClassified: prometheus.NewDesc(
			"elemeta_keys_classified_total",
			"Total number of catalog rules fired during the scan",
			nil, nil,
		),
		keysForeign: prometheus.NewDesc(
			"elemeta_keys_foreign_total",
			"Total number of keys outside the expected namespace",
			nil, nil,
		),
		decodeAnomalies: prometheus.NewDesc(
			"elemeta_decode_anomalies_total",
			"Total number of values recorded as hex after failed text decoding",
			nil, nil,
		),

		// Engine metrics
		blockCacheSize: prometheus.NewDesc(
			"elemeta_pebble_block_cache_size_bytes",
			"Current size of the engine block cache in bytes",
			nil, nil,
		),
		blockCacheCount: prometheus.NewDesc(
			"elemeta_pebble_block_cache_count_total",
			"Current number of cached blocks",
			nil, nil,
		),
		blockCacheHits: prometheus.NewDesc(
			"elemeta_pebble_block_cache_hits_total",
			"Total block cache hits",
			nil, nil,
		),
		blockCacheMisses: prometheus.NewDesc(
			"elemeta_pebble_block_cache_misses_total",
			"Total block cache misses",
			nil, nil,
		),
		tableCount: prometheus.NewDesc(
			"elemeta_pebble_table_count_total",
			"Number of live sorted-table files across all levels",
			nil, nil,
		),
		diskUsage: prometheus.NewDesc(
			"elemeta_pebble_disk_usage_bytes",
			"Total disk space used by the store",
			nil, nil,
		),
	}
}

func (sc *ScanCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- sc.entriesScanned
	ch <- sc.keysClassified
	ch <- sc.keysForeign
	ch <- sc.decodeAnomalies

	ch <- sc.blockCacheSize
	ch <- sc.blockCacheCount
	ch <- sc.blockCacheHits
	ch <- sc.blockCacheMisses
	ch <- sc.tableCount
	ch <- sc.diskUsage
}

func (sc *ScanCollector) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.MustNewConstMetric(
		sc.entriesScanned,
		prometheus.CounterValue,
		float64(sc.ex.Entries()),
	)
	ch <- prometheus.MustNewConstMetric(
		sc.keysClassified,
		prometheus.CounterValue,
		float64(sc.ex.Classified()),
	)
	ch <- prometheus.MustNewConstMetric(
		sc.keysForeign,
		prometheus.CounterValue,
		float64(sc.ex.Foreign()),
	)
	ch <- prometheus.MustNewConstMetric(
		sc.decodeAnomalies,
		prometheus.CounterValue,
		float64(sc.ex.Anomalies()),
	)

	metrics := sc.st.Metrics()
	if metrics == nil {
		return // store closed
	}
	ch <- prometheus.MustNewConstMetric(
		sc.blockCacheSize,
		prometheus.GaugeValue,
		float64(metrics.BlockCache.Size),
	)
	ch <- prometheus.MustNewConstMetric(
		sc.blockCacheCount,
		prometheus.GaugeValue,
		float64(metrics.BlockCache.Count),
	)
	ch <- prometheus.MustNewConstMetric(
		sc.blockCacheHits,
		prometheus.CounterValue,
		float64(metrics.BlockCache.Hits),
	)
	ch <- prometheus.MustNewConstMetric(
		sc.blockCacheMisses,
		prometheus.CounterValue,
		float64(metrics.BlockCache.Misses),
	)
	var tables int64
	for i := range metrics.Levels {
		tables += metrics.Levels[i].NumFiles
	}
	ch <- prometheus.MustNewConstMetric(
		sc.tableCount,
		prometheus.GaugeValue,
		float64(tables),
	)
	ch <- prometheus.MustNewConstMetric(
		sc.diskUsage,
		prometheus.GaugeValue,
		float64(metrics.DiskSpaceUsage()),
	)
}
