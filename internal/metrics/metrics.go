package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gallery_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gallery_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "gallery_http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)
)

// Repository metrics
var (
	RepositoryScansTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gallery_repository_scans_total",
			Help: "Total number of album repository scans",
		},
		[]string{"operation", "status"},
	)

	RepositoryScanDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gallery_repository_scan_duration_seconds",
			Help:    "Album repository scan duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"operation"},
	)

	RepositoryAlbumsReturned = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "gallery_repository_albums_returned",
			Help:    "Number of albums returned per listing scan",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250},
		},
	)

	RepositoryAlbumWarningsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gallery_repository_album_warnings_total",
			Help: "Total number of albums skipped due to metadata errors",
		},
	)
)

// EXIF metrics
var (
	ExifReadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gallery_exif_reads_total",
			Help: "Total number of EXIF read attempts",
		},
		[]string{"status"}, // "date", "absent", "malformed"
	)
)

// Thumbnail metrics
var (
	ThumbnailRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gallery_thumbnail_requests_total",
			Help: "Total number of thumbnail cache requests",
		},
		[]string{"size", "outcome"}, // outcome: hit, miss, stale, error
	)

	ThumbnailGenerationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gallery_thumbnail_generation_duration_seconds",
			Help:    "Thumbnail generation duration (decode, resize, encode, publish) in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"size"},
	)

	ThumbnailBytesWritten = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gallery_thumbnail_bytes_written_total",
			Help: "Total bytes written to the thumbnail cache",
		},
	)

	ThumbnailWarmerEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gallery_thumbnail_warmer_events_total",
			Help: "Total filesystem events observed by the thumbnail warmer",
		},
		[]string{"type"}, // create, write, remove, rename, chmod, unknown
	)

	ThumbnailWarmerErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gallery_thumbnail_warmer_errors_total",
			Help: "Total thumbnail warmer watcher errors",
		},
	)
)
