package gallery

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"photo-gallery/internal/logging"
	"photo-gallery/internal/metrics"
)

// Repository is the catalog read model over the photos directory. It holds
// no mutable state beyond its configured root: every call performs a fresh
// filesystem scan, so concurrent reads need no locking.
type Repository struct {
	photosDir string
}

// NewRepository creates a Repository rooted at photosDir. The directory is
// treated as read-only input; it may live on a read-only mount.
func NewRepository(photosDir string) *Repository {
	return &Repository{photosDir: photosDir}
}

// PhotosDir returns the configured photos root.
func (r *Repository) PhotosDir() string {
	return r.photosDir
}

// ListAlbums scans the photos directory and returns all resolvable albums,
// ordered lexicographically by slug. Albums whose metadata cannot be
// resolved are omitted and reported in the warnings slice; they never fail
// the listing as a whole.
func (r *Repository) ListAlbums() ([]Album, []Warning, error) {
	start := time.Now()
	var err error
	defer func() {
		status := "success"
		if err != nil {
			status = "error"
		}
		metrics.RepositoryScansTotal.WithLabelValues("list_albums", status).Inc()
		metrics.RepositoryScanDuration.WithLabelValues("list_albums").Observe(time.Since(start).Seconds())
	}()

	entries, err := os.ReadDir(r.photosDir)
	if err != nil {
		return nil, nil, fmt.Errorf("reading photos directory: %w", err)
	}

	var albums []Album
	var warnings []Warning

	// os.ReadDir sorts entries by name, which gives the stable album order.
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		slug := entry.Name()

		album, loadErr := r.loadAlbum(slug)
		if loadErr != nil {
			logging.Warn("skipping album %q: %v", slug, loadErr)
			metrics.RepositoryAlbumWarningsTotal.Inc()
			warnings = append(warnings, Warning{Slug: slug, Message: loadErr.Error()})
			continue
		}
		albums = append(albums, *album)
	}

	metrics.RepositoryAlbumsReturned.Observe(float64(len(albums)))
	return albums, warnings, nil
}

// GetAlbum resolves a single album by slug. Unknown or path-unsafe slugs
// return ErrAlbumNotFound; a directory with broken metadata returns an
// error wrapping ErrInvalidMetadata.
func (r *Repository) GetAlbum(slug string) (*Album, error) {
	start := time.Now()
	var err error
	defer func() {
		status := "success"
		if err != nil {
			status = "error"
		}
		metrics.RepositoryScansTotal.WithLabelValues("get_album", status).Inc()
		metrics.RepositoryScanDuration.WithLabelValues("get_album").Observe(time.Since(start).Seconds())
	}()

	if !IsSafeSegment(slug) {
		err = ErrAlbumNotFound
		return nil, err
	}

	info, statErr := os.Stat(filepath.Join(r.photosDir, slug))
	if statErr != nil || !info.IsDir() {
		err = ErrAlbumNotFound
		return nil, err
	}

	album, err := r.loadAlbum(slug)
	if err != nil {
		return nil, err
	}
	return album, nil
}

// loadAlbum runs discovery and metadata resolution for one album directory.
func (r *Repository) loadAlbum(slug string) (*Album, error) {
	dir := filepath.Join(r.photosDir, slug)

	photos, err := ListPhotos(dir)
	if err != nil {
		return nil, fmt.Errorf("listing photos: %w", err)
	}

	meta, err := loadMeta(dir)
	if err != nil {
		return nil, err
	}

	album := &Album{
		Slug:        slug,
		Title:       meta.Title,
		Description: meta.Description,
		Timespan:    resolveTimespan(meta, dir, photos),
		Photos:      make([]Photo, 0, len(photos)),
	}
	for _, name := range photos {
		album.Photos = append(album.Photos, Photo{Filename: name, Album: slug})
	}
	if len(photos) > 0 {
		album.Cover = photos[0]
	}
	return album, nil
}

// PhotoPath resolves an (album, filename) pair to an absolute source path,
// rejecting traversal attempts and files that are not eligible photos.
func (r *Repository) PhotoPath(slug, filename string) (string, error) {
	if !IsSafeSegment(slug) {
		return "", ErrAlbumNotFound
	}
	if !IsSafeSegment(filename) || !IsPhotoFilename(filename) {
		return "", ErrPhotoNotFound
	}

	dir := filepath.Join(r.photosDir, slug)
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return "", ErrAlbumNotFound
	}

	path := filepath.Join(dir, filename)
	if info, err := os.Stat(path); err != nil || info.IsDir() {
		return "", ErrPhotoNotFound
	}
	return path, nil
}

// IsSafeSegment reports whether a user-supplied path segment is a plain
// name with no directory traversal components (`..`, `/`, `\`).
func IsSafeSegment(segment string) bool {
	if segment == "" || segment == "." || segment == ".." {
		return false
	}
	return !strings.ContainsAny(segment, `/\`)
}
