package startup

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"photo-gallery/internal/logging"

	"github.com/gorilla/mux"
)

// Build-time variables (injected via -ldflags)
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
	GoVersion = runtime.Version()
)

// BuildInfo contains version and build information
type BuildInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"buildTime"`
	GoVersion string `json:"goVersion"`
	OS        string `json:"os"`
	Arch      string `json:"arch"`
}

// GetBuildInfo returns the current build information
func GetBuildInfo() BuildInfo {
	return BuildInfo{
		Version:   Version,
		Commit:    Commit,
		BuildTime: BuildTime,
		GoVersion: GoVersion,
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
	}
}

// Config holds all application configuration. The data root is read-only
// input and may be on a read-only mount; the cache root is the only
// writable location the server needs.
type Config struct {
	DataDir  string
	CacheDir string
	Port     string

	LogStaticFiles bool
	MetricsEnabled bool
	WatchEnabled   bool
	VipsEnabled    bool

	// Derived paths
	PhotosDir string

	// Cache root was writable at startup; when false, thumbnail routes
	// answer 503 instead of generating.
	ThumbnailsEnabled bool
}

// LoadConfig loads and validates configuration from environment variables.
// A missing or unreadable data root is a fatal error; an unwritable cache
// root only disables thumbnails.
func LoadConfig() (*Config, error) {
	logging.Info("------------------------------------------------------------")
	logging.Info("CONFIGURATION")
	logging.Info("------------------------------------------------------------")

	dataDir := getEnv("DATA_DIR", "./data")
	cacheDir := getEnv("CACHE_DIR", "./cache")
	port := getEnv("PORT", "8080")
	logStaticFiles := getEnvBool("LOG_STATIC_FILES", false)
	metricsEnabled := getEnvBool("METRICS_ENABLED", true)
	watchEnabled := getEnvBool("WATCH_ENABLED", true)
	vipsEnabled := getEnvBool("VIPS_ENABLED", false)

	logging.Info("  DATA_DIR:         %s", dataDir)
	logging.Info("  CACHE_DIR:        %s", cacheDir)
	logging.Info("  PORT:             %s", port)
	logging.Info("  METRICS_ENABLED:  %v", metricsEnabled)
	logging.Info("  WATCH_ENABLED:    %v", watchEnabled)
	logging.Info("  VIPS_ENABLED:     %v", vipsEnabled)
	logging.Info("  LOG_STATIC_FILES: %v", logStaticFiles)
	logging.Info("  LOG_LEVEL:        %s", logging.GetLevel())

	logging.Info("")
	logging.Info("------------------------------------------------------------")
	logging.Info("DIRECTORY SETUP")
	logging.Info("------------------------------------------------------------")

	dataDir, err := filepath.Abs(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve data directory path: %w", err)
	}
	logging.Info("  Data directory (absolute): %s", dataDir)

	cacheDir, err = filepath.Abs(cacheDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve cache directory path: %w", err)
	}
	logging.Info("  Cache directory (absolute): %s", cacheDir)

	// The data root is required; the server cannot run without its photos.
	info, err := os.Stat(dataDir)
	if err != nil {
		return nil, fmt.Errorf("data directory is not accessible: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("data directory is not a directory: %s", dataDir)
	}
	logging.Info("  [OK] Data directory is readable")

	config := &Config{
		DataDir:        dataDir,
		CacheDir:       cacheDir,
		Port:           port,
		LogStaticFiles: logStaticFiles,
		MetricsEnabled: metricsEnabled,
		WatchEnabled:   watchEnabled,
		VipsEnabled:    vipsEnabled,
		PhotosDir:      filepath.Join(dataDir, "photos"),
	}

	if _, err := os.Stat(config.PhotosDir); err != nil {
		logging.Warn("  Photos directory issue: %v", err)
		logging.Warn("  Album listings will be empty until it exists")
	}

	config.ThumbnailsEnabled = setupCacheDir(cacheDir)

	logging.Info("")
	logging.Info("  Feature availability:")
	logging.Info("    Catalog:    ENABLED (required)")
	logging.Info("    Thumbnails: %s", enabledString(config.ThumbnailsEnabled))
	logging.Info("    Metrics:    %s", enabledString(config.MetricsEnabled))
	logging.Info("    Watcher:    %s", enabledString(config.WatchEnabled && config.ThumbnailsEnabled))

	return config, nil
}

// setupCacheDir creates the cache root and probes write access. Failures
// disable thumbnails instead of aborting startup.
func setupCacheDir(path string) bool {
	logging.Debug("  Setting up cache directory: %s", path)

	if err := os.MkdirAll(path, 0o755); err != nil {
		logging.Warn("    Failed to create cache directory: %v", err)
		logging.Warn("    Thumbnails will be disabled")
		return false
	}

	testFile := filepath.Join(path, ".write-test")
	if err := os.WriteFile(testFile, []byte("test"), 0o644); err != nil {
		logging.Warn("    Cache directory is not writable: %v", err)
		logging.Warn("    Thumbnails will be disabled")
		return false
	}
	if err := os.Remove(testFile); err != nil {
		logging.Warn("    failed to remove test file %s: %v", testFile, err)
		// Still writable; keep thumbnails on
	}

	logging.Debug("    [OK] Cache directory ready")
	return true
}

func enabledString(enabled bool) string {
	if enabled {
		return "ENABLED"
	}
	return "DISABLED"
}

// LogHTTPRoutes logs all registered HTTP routes at debug level
func LogHTTPRoutes(router *mux.Router) {
	logging.Info("")
	logging.Info("------------------------------------------------------------")
	logging.Info("HTTP SERVER SETUP")
	logging.Info("------------------------------------------------------------")

	if !logging.IsDebugEnabled() {
		return
	}

	err := router.Walk(func(route *mux.Route, _ *mux.Router, _ []*mux.Route) error {
		pathTemplate, err := route.GetPathTemplate()
		if err != nil {
			return nil
		}
		methods, err := route.GetMethods()
		if err != nil {
			methods = []string{"*"}
		}
		logging.Debug("  %-7s %s", strings.Join(methods, ","), pathTemplate)
		return nil
	})
	if err != nil {
		logging.Warn("error walking routes: %v", err)
	}
}

// LogServerStarted logs the final startup summary
func LogServerStarted(port string, elapsed time.Duration) {
	logging.Info("")
	logging.Info("------------------------------------------------------------")
	logging.Info("READY")
	logging.Info("------------------------------------------------------------")
	logging.Info("  Listening on :%s (started in %v)", port, elapsed)
}

// LogShutdownInitiated logs the beginning of graceful shutdown
func LogShutdownInitiated(signal string) {
	logging.Info("")
	logging.Info("Received %s, shutting down gracefully...", signal)
}

// LogShutdownComplete logs the end of graceful shutdown
func LogShutdownComplete() {
	logging.Info("Shutdown complete")
}

// LogFatal logs a fatal error and exits
func LogFatal(format string, args ...interface{}) {
	logging.Fatal(format, args...)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	switch strings.ToLower(value) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return defaultValue
	}
}
