package thumbs

import (
	"bytes"
	"errors"
	"fmt"
	"image/jpeg"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"photo-gallery/internal/logging"
	"photo-gallery/internal/metrics"
	"photo-gallery/internal/workers"

	"github.com/disintegration/imaging"

	_ "image/png"

	_ "golang.org/x/image/webp"
)

// jpegQuality is the encode quality for all generated thumbnails.
const jpegQuality = 85

var (
	// ErrDisabled indicates the cache directory was not writable at
	// startup and thumbnail generation is switched off.
	ErrDisabled = errors.New("thumbnails disabled")

	// ErrSourceNotFound indicates the source photo does not exist under
	// the given album.
	ErrSourceNotFound = errors.New("source photo not found")

	// ErrDecode indicates the source file exists but could not be decoded.
	ErrDecode = errors.New("image decode failed")

	// ErrCacheWrite indicates the generated thumbnail could not be
	// persisted (disk full, permissions). The original image is never
	// served as a silent substitute.
	ErrCacheWrite = errors.New("cache write failed")

	// ErrUnknownSize indicates a size class outside the fixed set.
	ErrUnknownSize = errors.New("unknown size class")
)

// Cache generates and serves resized image variants, keyed by
// (album, filename, size class).
type Cache struct {
	cacheDir  string
	photosDir string
	enabled   bool

	mu       sync.Mutex
	inflight map[string]*sync.Mutex

	// sem bounds concurrent decode/resize/encode work so a burst of cold
	// requests cannot starve the process.
	sem chan struct{}
}

// New creates a Cache writing under cacheDir for photos under photosDir.
// When enabled is false every Get fails with ErrDisabled.
func New(cacheDir, photosDir string, enabled bool) *Cache {
	if enabled {
		logging.Debug("thumbnail cache: enabled, cache dir: %s", cacheDir)
		if err := os.MkdirAll(cacheDir, 0o755); err != nil {
			logging.Warn("thumbnail cache: failed to create cache dir: %v", err)
		}
	} else {
		logging.Debug("thumbnail cache: disabled")
	}
	return &Cache{
		cacheDir:  cacheDir,
		photosDir: photosDir,
		enabled:   enabled,
		inflight:  make(map[string]*sync.Mutex),
		sem:       make(chan struct{}, workers.ForCPU(8)),
	}
}

// IsEnabled reports whether the cache can generate thumbnails.
func (c *Cache) IsEnabled() bool {
	return c.enabled
}

// Get returns the resized variant of a photo, generating and persisting it
// on first request and reusing it afterwards. A cached entry is served only
// while it is at least as new as the source file; otherwise it is
// regenerated and replaced.
func (c *Cache) Get(slug, filename string, size SizeClass) ([]byte, error) {
	if !c.enabled {
		return nil, ErrDisabled
	}
	if size.MaxDimension() == 0 {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSize, size)
	}
	if !safeSegment(slug) || !safeSegment(filename) {
		return nil, ErrSourceNotFound
	}

	src := filepath.Join(c.photosDir, slug, filename)
	srcInfo, err := os.Stat(src)
	if err != nil || srcInfo.IsDir() {
		return nil, fmt.Errorf("%w: %s/%s", ErrSourceNotFound, slug, filename)
	}

	entry := c.entryPath(slug, filename, size)

	if data, ok := readFresh(entry, srcInfo.ModTime()); ok {
		metrics.ThumbnailRequestsTotal.WithLabelValues(string(size), "hit").Inc()
		logging.Debug("thumbnail cache hit: %s/%s %s", slug, filename, size)
		return data, nil
	}

	lock := c.keyLock(slug, filename, size)
	lock.Lock()
	defer lock.Unlock()

	// A concurrent request may have finished the same generation while we
	// waited on the key lock.
	if data, ok := readFresh(entry, srcInfo.ModTime()); ok {
		metrics.ThumbnailRequestsTotal.WithLabelValues(string(size), "hit").Inc()
		return data, nil
	}

	outcome := "miss"
	if _, statErr := os.Stat(entry); statErr == nil {
		outcome = "stale"
	}

	data, err := c.generate(src, entry, size)
	if err != nil {
		metrics.ThumbnailRequestsTotal.WithLabelValues(string(size), "error").Inc()
		return nil, err
	}

	metrics.ThumbnailRequestsTotal.WithLabelValues(string(size), outcome).Inc()
	return data, nil
}

// EntryPath returns the cache file path for a key. The mapping is
// injective: the fixed output extension is appended to the full source
// filename, so "a.png" and "a.jpg" never collide.
func (c *Cache) entryPath(slug, filename string, size SizeClass) string {
	return filepath.Join(c.cacheDir, slug, string(size), filename+".jpg")
}

// keyLock returns the in-flight lock for one cache key, creating it on
// first use. The map is bounded by the key space (albums x photos x sizes).
func (c *Cache) keyLock(slug, filename string, size SizeClass) *sync.Mutex {
	key := slug + "/" + filename + "/" + string(size)
	c.mu.Lock()
	defer c.mu.Unlock()
	m, ok := c.inflight[key]
	if !ok {
		m = &sync.Mutex{}
		c.inflight[key] = m
	}
	return m
}

// readFresh returns the cached bytes if the entry exists and is not older
// than the source. Read errors fall through to regeneration.
func readFresh(entry string, srcMod time.Time) ([]byte, bool) {
	info, err := os.Stat(entry)
	if err != nil {
		return nil, false
	}
	if info.ModTime().Before(srcMod) {
		return nil, false
	}
	data, err := os.ReadFile(entry)
	if err != nil {
		return nil, false
	}
	return data, true
}

// generate decodes the source, resizes it preserving aspect ratio, encodes
// JPEG, and atomically publishes the result to the cache path. On any
// failure no partial entry is left behind.
func (c *Cache) generate(src, entry string, size SizeClass) ([]byte, error) {
	c.sem <- struct{}{}
	defer func() { <-c.sem }()

	start := time.Now()
	logging.Debug("thumbnail generating: %s -> %s", src, entry)

	img, err := loadImage(src, size.MaxDimension())
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDecode, filepath.Base(src), err)
	}

	dim := size.MaxDimension()
	thumb := imaging.Fit(img, dim, dim, imaging.Lanczos)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, thumb, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("%w: encoding: %v", ErrCacheWrite, err)
	}

	if err := publish(entry, buf.Bytes()); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCacheWrite, err)
	}

	metrics.ThumbnailGenerationDuration.WithLabelValues(string(size)).Observe(time.Since(start).Seconds())
	metrics.ThumbnailBytesWritten.Add(float64(buf.Len()))
	logging.Debug("thumbnail cached: %s (%d bytes in %v)", entry, buf.Len(), time.Since(start))

	return buf.Bytes(), nil
}

// publish writes data to a temp file in the entry's directory and renames
// it into place. Rename within one directory is atomic, so concurrent
// readers see either the old complete entry or the new one.
func publish(entry string, data []byte) error {
	dir := filepath.Dir(entry)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating cache dir: %v", err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %v", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("writing temp file: %v", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("closing temp file: %v", err)
	}

	if err := os.Rename(tmp.Name(), entry); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("publishing entry: %v", err)
	}
	return nil
}

func safeSegment(segment string) bool {
	if segment == "" || segment == "." || segment == ".." {
		return false
	}
	return !strings.ContainsAny(segment, `/\`)
}
