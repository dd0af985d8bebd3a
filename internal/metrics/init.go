package metrics

// InitializeMetrics pre-populates expected label combinations so that every
// metric is exported from the first Prometheus scrape.
// Call this once at startup after metric registration.
func InitializeMetrics() {
	// --- Repository operations ---
	for _, op := range []string{"list_albums", "get_album"} {
		RepositoryScansTotal.WithLabelValues(op, "success")
		RepositoryScansTotal.WithLabelValues(op, "error")
		RepositoryScanDuration.WithLabelValues(op)
	}

	// --- EXIF read outcomes ---
	for _, status := range []string{"date", "absent", "malformed"} {
		ExifReadsTotal.WithLabelValues(status)
	}

	// --- Thumbnail request outcomes per size class ---
	for _, size := range []string{"small", "medium"} {
		for _, outcome := range []string{"hit", "miss", "stale", "error"} {
			ThumbnailRequestsTotal.WithLabelValues(size, outcome)
		}
		ThumbnailGenerationDuration.WithLabelValues(size)
	}

	// --- Warmer event types ---
	for _, ev := range []string{"create", "write", "remove", "rename", "chmod", "unknown"} {
		ThumbnailWarmerEventsTotal.WithLabelValues(ev)
	}
}
