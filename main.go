package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"photo-gallery/internal/gallery"
	"photo-gallery/internal/handlers"
	"photo-gallery/internal/logging"
	"photo-gallery/internal/metrics"
	"photo-gallery/internal/middleware"
	"photo-gallery/internal/startup"
	"photo-gallery/internal/thumbs"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	startTime := time.Now()

	// Load configuration
	config, err := startup.LoadConfig()
	if err != nil {
		startup.LogFatal("Configuration error: %v", err)
	}

	// Load site configuration from the data root
	site, err := gallery.LoadSite(config.DataDir)
	if err != nil {
		startup.LogFatal("Site configuration error: %v", err)
	}
	logging.Info("Site title: %q", site.Title)

	// Optional libvips fast path for thumbnail decoding
	if config.VipsEnabled {
		if err := thumbs.InitVips(); err != nil {
			logging.Warn("libvips unavailable, using pure-Go decoding: %v", err)
		}
	}

	// Initialize the album repository and thumbnail cache
	repo := gallery.NewRepository(config.PhotosDir)
	cache := thumbs.New(config.CacheDir, config.PhotosDir, config.ThumbnailsEnabled)

	// Pre-warm grid thumbnails for newly added photos
	var warmer *thumbs.Warmer
	if config.WatchEnabled && config.ThumbnailsEnabled {
		warmer = thumbs.NewWarmer(cache)
		warmer.Start()
	}

	if config.MetricsEnabled {
		metrics.InitializeMetrics()
	}

	// Initialize handlers and router
	h := handlers.New(site, repo, cache)
	router := setupRouter(h, config)

	startup.LogHTTPRoutes(router)

	// Apply logging middleware
	loggingConfig := middleware.DefaultLoggingConfig()
	loggingConfig.LogStaticFiles = config.LogStaticFiles
	handler := middleware.Logger(loggingConfig)(router)

	// Apply metrics middleware
	if config.MetricsEnabled {
		handler = middleware.Metrics(middleware.DefaultMetricsConfig())(handler)
	}

	// Apply compression middleware
	handler = middleware.Compression(middleware.DefaultCompressionConfig())(handler)

	srv := &http.Server{
		Addr:         ":" + config.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0,
		IdleTimeout:  60 * time.Second,
	}

	go handleShutdown(srv, warmer, config)

	startup.LogServerStarted(config.Port, time.Since(startTime))
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		startup.LogFatal("Server error: %v", err)
	}
}

func setupRouter(h *handlers.Handlers, config *startup.Config) *mux.Router {
	r := mux.NewRouter()

	// Health check and version routes
	r.HandleFunc("/health", h.HealthCheck).Methods("GET")
	r.HandleFunc("/healthz", h.HealthCheck).Methods("GET")
	r.HandleFunc("/livez", h.LivenessCheck).Methods("GET", "HEAD")
	r.HandleFunc("/readyz", h.ReadinessCheck).Methods("GET")
	r.HandleFunc("/version", h.GetVersion).Methods("GET")

	// Catalog API
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/albums", h.ListAlbums).Methods("GET")
	api.HandleFunc("/albums/{slug}", h.GetAlbum).Methods("GET")
	api.HandleFunc("/albums/{slug}/photos/{filename}", h.GetPhotoDetail).Methods("GET")

	// Image serving
	r.HandleFunc("/photos/{album}/{filename}", h.GetPhoto).Methods("GET")
	r.HandleFunc("/thumbs/{album}/{size}/{filename}", h.GetThumbnail).Methods("GET")

	// Metrics
	if config.MetricsEnabled {
		r.Handle("/metrics", promhttp.Handler()).Methods("GET")
	}

	// Static files (the rendering frontend)
	r.PathPrefix("/").Handler(http.FileServer(http.Dir("./static")))

	return r
}

func handleShutdown(srv *http.Server, warmer *thumbs.Warmer, config *startup.Config) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan

	startup.LogShutdownInitiated(sig.String())

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if warmer != nil {
		warmer.Stop()
	}

	if err := srv.Shutdown(ctx); err != nil {
		logging.Warn("Server shutdown error: %v", err)
	}

	if config.VipsEnabled {
		thumbs.ShutdownVips()
	}

	startup.LogShutdownComplete()
}
