package thumbs

import (
	"os"
	"path/filepath"
	"strings"

	"photo-gallery/internal/gallery"
	"photo-gallery/internal/logging"
	"photo-gallery/internal/metrics"
	"photo-gallery/internal/workers"

	"github.com/fsnotify/fsnotify"
)

// Warmer watches the photos directory and pre-generates grid thumbnails
// for newly added photos, so the first page view after an upload does not
// pay the resize cost. It is purely an optimization: correctness rests on
// the lazy Get path, and any watcher failure is logged and ignored.
type Warmer struct {
	cache *Cache
	jobs  chan warmJob
	done  chan struct{}
}

type warmJob struct {
	slug     string
	filename string
}

// NewWarmer creates a Warmer feeding pre-generation jobs to cache.
func NewWarmer(cache *Cache) *Warmer {
	return &Warmer{
		cache: cache,
		jobs:  make(chan warmJob, 64),
		done:  make(chan struct{}),
	}
}

// Start launches the watcher and worker goroutines. It returns immediately;
// call Stop to shut down.
func (w *Warmer) Start() {
	n := workers.ForMixed(4)
	logging.Debug("thumbnail warmer: starting %d workers", n)
	for i := 0; i < n; i++ {
		go w.worker()
	}
	go w.watch()
}

// Stop shuts down the watcher and workers.
func (w *Warmer) Stop() {
	close(w.done)
}

func (w *Warmer) worker() {
	for {
		select {
		case <-w.done:
			return
		case job := <-w.jobs:
			if _, err := w.cache.Get(job.slug, job.filename, SizeSmall); err != nil {
				logging.Debug("warmer: pre-generation for %s/%s failed: %v", job.slug, job.filename, err)
			}
		}
	}
}

func (w *Warmer) watch() {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		logging.Error("warmer: failed to create file watcher: %v", err)
		metrics.ThumbnailWarmerErrors.Inc()
		return
	}
	defer func() {
		if err := watcher.Close(); err != nil {
			logging.Error("warmer: failed to close file watcher: %v", err)
		}
	}()

	count := w.addWatches(watcher)
	logging.Debug("thumbnail warmer: watching %d directories", count)

	for {
		select {
		case <-w.done:
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(watcher, event)
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logging.Error("warmer: watcher error: %v", err)
			metrics.ThumbnailWarmerErrors.Inc()
		}
	}
}

// addWatches registers the photos root and every album directory.
func (w *Warmer) addWatches(watcher *fsnotify.Watcher) int {
	count := 0
	if err := watcher.Add(w.cache.photosDir); err != nil {
		logging.Warn("warmer: failed to watch %s: %v", w.cache.photosDir, err)
		metrics.ThumbnailWarmerErrors.Inc()
		return 0
	}
	count++

	entries, err := os.ReadDir(w.cache.photosDir)
	if err != nil {
		logging.Warn("warmer: failed to read photos directory: %v", err)
		return count
	}
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		path := filepath.Join(w.cache.photosDir, entry.Name())
		if err := watcher.Add(path); err != nil {
			logging.Warn("warmer: failed to watch %s: %v", path, err)
			metrics.ThumbnailWarmerErrors.Inc()
			continue
		}
		count++
	}
	return count
}

func (w *Warmer) handleEvent(watcher *fsnotify.Watcher, event fsnotify.Event) {
	// Skip hidden files and anything inside hidden directories.
	if strings.Contains(event.Name, string(filepath.Separator)+".") {
		return
	}

	metrics.ThumbnailWarmerEventsTotal.WithLabelValues(eventType(event.Op)).Inc()

	if event.Op&fsnotify.Create == 0 {
		return
	}

	info, err := os.Stat(event.Name)
	if err != nil {
		return
	}

	// A new album directory gets added to the watch set.
	if info.IsDir() {
		if filepath.Dir(event.Name) == w.cache.photosDir {
			if err := watcher.Add(event.Name); err != nil {
				logging.Warn("warmer: failed to watch new album %s: %v", event.Name, err)
				metrics.ThumbnailWarmerErrors.Inc()
			} else {
				logging.Debug("warmer: watching new album: %s", event.Name)
			}
		}
		return
	}

	filename := filepath.Base(event.Name)
	if !gallery.IsPhotoFilename(filename) {
		return
	}
	slug := filepath.Base(filepath.Dir(event.Name))
	if filepath.Dir(filepath.Dir(event.Name)) != filepath.Clean(w.cache.photosDir) {
		return
	}

	select {
	case w.jobs <- warmJob{slug: slug, filename: filename}:
		logging.Debug("warmer: queued %s/%s", slug, filename)
	default:
		// Queue full; the lazy path will cover it.
	}
}

func eventType(op fsnotify.Op) string {
	switch {
	case op&fsnotify.Create != 0:
		return "create"
	case op&fsnotify.Write != 0:
		return "write"
	case op&fsnotify.Remove != 0:
		return "remove"
	case op&fsnotify.Rename != 0:
		return "rename"
	case op&fsnotify.Chmod != 0:
		return "chmod"
	default:
		return "unknown"
	}
}
