package thumbs

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// writeSourcePNG writes a width x height PNG into the album directory.
func writeSourcePNG(t *testing.T, photosDir, slug, filename string, width, height int) string {
	t.Helper()
	dir := filepath.Join(photosDir, slug)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("creating album dir: %v", err)
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}

	path := filepath.Join(dir, filename)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating source image: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encoding source image: %v", err)
	}
	return path
}

func newTestCache(t *testing.T) (*Cache, string, string) {
	t.Helper()
	cacheDir := t.TempDir()
	photosDir := t.TempDir()
	return New(cacheDir, photosDir, true), cacheDir, photosDir
}

func decodeJPEG(t *testing.T, data []byte) image.Image {
	t.Helper()
	img, err := jpeg.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decoding generated thumbnail: %v", err)
	}
	return img
}

func TestCacheGetGenerates(t *testing.T) {
	cache, cacheDir, photosDir := newTestCache(t)
	writeSourcePNG(t, photosDir, "trip", "a.png", 800, 600)

	data, err := cache.Get("trip", "a.png", SizeSmall)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}

	img := decodeJPEG(t, data)
	bounds := img.Bounds()
	if bounds.Dx() != 400 || bounds.Dy() != 300 {
		t.Errorf("Thumbnail dimensions = %dx%d, want 400x300", bounds.Dx(), bounds.Dy())
	}

	// The entry lives under the cache root, never beside the source.
	entry := filepath.Join(cacheDir, "trip", "small", "a.png.jpg")
	cached, err := os.ReadFile(entry)
	if err != nil {
		t.Fatalf("Expected cache entry at %s: %v", entry, err)
	}
	if !bytes.Equal(cached, data) {
		t.Error("Cache entry differs from returned bytes")
	}

	albumEntries, err := os.ReadDir(filepath.Join(photosDir, "trip"))
	if err != nil {
		t.Fatalf("reading album dir: %v", err)
	}
	if len(albumEntries) != 1 {
		t.Errorf("Album directory was written to: %v", albumEntries)
	}
}

func TestCacheGetHitIsByteIdentical(t *testing.T) {
	cache, _, photosDir := newTestCache(t)
	writeSourcePNG(t, photosDir, "trip", "a.png", 800, 600)

	first, err := cache.Get("trip", "a.png", SizeSmall)
	if err != nil {
		t.Fatalf("first Get failed: %v", err)
	}
	second, err := cache.Get("trip", "a.png", SizeSmall)
	if err != nil {
		t.Fatalf("second Get failed: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Error("Repeated Get returned different bytes")
	}
}

func TestCacheGetRegeneratesStaleEntry(t *testing.T) {
	cache, _, photosDir := newTestCache(t)
	src := writeSourcePNG(t, photosDir, "trip", "a.png", 800, 600)

	if _, err := cache.Get("trip", "a.png", SizeSmall); err != nil {
		t.Fatalf("first Get failed: %v", err)
	}

	// Replace the source with a smaller image and push its mtime past the
	// cache entry's.
	writeSourcePNG(t, photosDir, "trip", "a.png", 100, 80)
	future := time.Now().Add(time.Hour)
	if err := os.Chtimes(src, future, future); err != nil {
		t.Fatalf("setting source mtime: %v", err)
	}

	data, err := cache.Get("trip", "a.png", SizeSmall)
	if err != nil {
		t.Fatalf("Get after modification failed: %v", err)
	}
	bounds := decodeJPEG(t, data).Bounds()
	if bounds.Dx() != 100 || bounds.Dy() != 80 {
		t.Errorf("Regenerated dimensions = %dx%d, want 100x80", bounds.Dx(), bounds.Dy())
	}
}

func TestCacheGetDoesNotUpscale(t *testing.T) {
	cache, _, photosDir := newTestCache(t)
	writeSourcePNG(t, photosDir, "trip", "tiny.png", 100, 80)

	data, err := cache.Get("trip", "tiny.png", SizeMedium)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	bounds := decodeJPEG(t, data).Bounds()
	if bounds.Dx() != 100 || bounds.Dy() != 80 {
		t.Errorf("Dimensions = %dx%d, want original 100x80", bounds.Dx(), bounds.Dy())
	}
}

func TestCacheGetSizeClasses(t *testing.T) {
	cache, _, photosDir := newTestCache(t)
	writeSourcePNG(t, photosDir, "trip", "a.png", 2400, 2400)

	tests := []struct {
		size SizeClass
		want int
	}{
		{SizeSmall, 400},
		{SizeMedium, 1200},
	}

	for _, tt := range tests {
		t.Run(string(tt.size), func(t *testing.T) {
			data, err := cache.Get("trip", "a.png", tt.size)
			if err != nil {
				t.Fatalf("Get failed: %v", err)
			}
			bounds := decodeJPEG(t, data).Bounds()
			if bounds.Dx() != tt.want || bounds.Dy() != tt.want {
				t.Errorf("Dimensions = %dx%d, want %dx%d", bounds.Dx(), bounds.Dy(), tt.want, tt.want)
			}
		})
	}
}

func TestCacheGetDisabled(t *testing.T) {
	cache := New(t.TempDir(), t.TempDir(), false)
	if _, err := cache.Get("trip", "a.png", SizeSmall); !errors.Is(err, ErrDisabled) {
		t.Errorf("Expected ErrDisabled, got %v", err)
	}
	if cache.IsEnabled() {
		t.Error("Expected IsEnabled to be false")
	}
}

func TestCacheGetErrors(t *testing.T) {
	cache, _, photosDir := newTestCache(t)
	writeSourcePNG(t, photosDir, "trip", "a.png", 100, 100)

	tests := []struct {
		name     string
		slug     string
		filename string
		size     SizeClass
		want     error
	}{
		{"Unknown size", "trip", "a.png", SizeClass("huge"), ErrUnknownSize},
		{"Missing source", "trip", "b.png", SizeSmall, ErrSourceNotFound},
		{"Missing album", "nope", "a.png", SizeSmall, ErrSourceNotFound},
		{"Traversal slug", "../trip", "a.png", SizeSmall, ErrSourceNotFound},
		{"Traversal filename", "trip", "../a.png", SizeSmall, ErrSourceNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := cache.Get(tt.slug, tt.filename, tt.size)
			if !errors.Is(err, tt.want) {
				t.Errorf("Get error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestCacheGetDecodeFailureLeavesNoEntry(t *testing.T) {
	cache, cacheDir, photosDir := newTestCache(t)
	dir := filepath.Join(photosDir, "trip")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("creating album dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "broken.jpg"), []byte("not an image"), 0o644); err != nil {
		t.Fatalf("writing broken file: %v", err)
	}

	if _, err := cache.Get("trip", "broken.jpg", SizeSmall); !errors.Is(err, ErrDecode) {
		t.Fatalf("Expected ErrDecode, got %v", err)
	}

	// No partial entry and no leftover temp files anywhere under the root.
	err := filepath.WalkDir(cacheDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			t.Errorf("Unexpected file in cache root: %s", path)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("walking cache root: %v", err)
	}
}

func TestCacheGetConcurrent(t *testing.T) {
	cache, _, photosDir := newTestCache(t)
	writeSourcePNG(t, photosDir, "trip", "a.png", 800, 600)

	const n = 8
	results := make(chan []byte, n)
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		go func() {
			data, err := cache.Get("trip", "a.png", SizeSmall)
			if err != nil {
				errs <- err
				return
			}
			results <- data
		}()
	}

	var first []byte
	for i := 0; i < n; i++ {
		select {
		case err := <-errs:
			t.Fatalf("concurrent Get failed: %v", err)
		case data := <-results:
			if first == nil {
				first = data
			} else if !bytes.Equal(first, data) {
				t.Error("Concurrent Gets returned different bytes")
			}
		case <-time.After(30 * time.Second):
			t.Fatal("Timed out waiting for concurrent Gets")
		}
	}
}

func TestEntryPathInjective(t *testing.T) {
	cache, _, _ := newTestCache(t)

	a := cache.entryPath("trip", "a.png", SizeSmall)
	b := cache.entryPath("trip", "a.jpg", SizeSmall)
	if a == b {
		t.Errorf("Entry paths collide: %s", a)
	}
	if !strings.HasSuffix(a, filepath.Join("trip", "small", "a.png.jpg")) {
		t.Errorf("Unexpected entry path: %s", a)
	}
}
