package handlers

import (
	"errors"
	"net/http"
	"path/filepath"
	"strings"

	"photo-gallery/internal/gallery"
	"photo-gallery/internal/logging"
	"photo-gallery/internal/thumbs"

	"github.com/gorilla/mux"
)

// immutableCacheControl is used for source photos and thumbnails; both
// only change when the underlying file changes, and staleness is handled
// server-side.
const immutableCacheControl = "public, max-age=86400"

// GetPhoto serves the original photo bytes.
func (h *Handlers) GetPhoto(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	slug := vars["album"]
	filename := vars["filename"]

	path, err := h.repo.PhotoPath(slug, filename)
	if err != nil {
		if errors.Is(err, gallery.ErrAlbumNotFound) || errors.Is(err, gallery.ErrPhotoNotFound) {
			http.Error(w, "Not found", http.StatusNotFound)
			return
		}
		logging.Error("resolving photo %s/%s: %v", slug, filename, err)
		http.Error(w, "Failed to access photo", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", contentTypeForExt(filename))
	w.Header().Set("Cache-Control", immutableCacheControl)
	http.ServeFile(w, r, path)
}

// GetThumbnail serves a resized variant, generating it on first request.
func (h *Handlers) GetThumbnail(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	slug := vars["album"]
	sizeName := vars["size"]
	filename := vars["filename"]

	size, ok := thumbs.ParseSizeClass(sizeName)
	if !ok {
		http.Error(w, "Unknown size class", http.StatusBadRequest)
		return
	}

	data, err := h.cache.Get(slug, filename, size)
	if err != nil {
		switch {
		case errors.Is(err, thumbs.ErrDisabled):
			logging.Warn("thumbnail request with thumbnails disabled")
			http.Error(w, "Thumbnails disabled", http.StatusServiceUnavailable)
		case errors.Is(err, thumbs.ErrSourceNotFound):
			http.Error(w, "Not found", http.StatusNotFound)
		case errors.Is(err, thumbs.ErrUnknownSize):
			http.Error(w, "Unknown size class", http.StatusBadRequest)
		case errors.Is(err, thumbs.ErrDecode):
			logging.Error("thumbnail decode failed for %s/%s: %v", slug, filename, err)
			http.Error(w, "Failed to decode image", http.StatusInternalServerError)
		default:
			logging.Error("thumbnail generation failed for %s/%s: %v", slug, filename, err)
			http.Error(w, "Failed to generate thumbnail", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Cache-Control", immutableCacheControl)
	if _, err := w.Write(data); err != nil {
		logging.Debug("writing thumbnail response: %v", err)
	}
}

func contentTypeForExt(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".webp":
		return "image/webp"
	default:
		return "application/octet-stream"
	}
}
