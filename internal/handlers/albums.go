package handlers

import (
	"errors"
	"net/http"
	"path/filepath"

	"photo-gallery/internal/gallery"
	"photo-gallery/internal/logging"

	"github.com/gorilla/mux"
)

// AlbumSummary is the listing view of an album: everything the index page
// needs without per-photo detail.
type AlbumSummary struct {
	Slug       string `json:"slug"`
	Title      string `json:"title"`
	Timespan   string `json:"timespan,omitempty"`
	Cover      string `json:"cover,omitempty"`
	PhotoCount int    `json:"photoCount"`
}

// AlbumListResponse is the body of GET /api/albums.
type AlbumListResponse struct {
	Site     gallery.Site      `json:"site"`
	Albums   []AlbumSummary    `json:"albums"`
	Warnings []gallery.Warning `json:"warnings,omitempty"`
}

// PhotoDetailResponse is the body of GET /api/albums/{slug}/photos/{filename}.
type PhotoDetailResponse struct {
	Photo   gallery.Photo      `json:"photo"`
	Exif    gallery.CameraInfo `json:"exif"`
	Summary string             `json:"summary,omitempty"`
	Prev    *gallery.Photo     `json:"prev,omitempty"`
	Next    *gallery.Photo     `json:"next,omitempty"`
}

// ListAlbums returns the site configuration and all resolvable albums.
// Albums with broken metadata appear in the warnings list, never as an
// overall failure.
func (h *Handlers) ListAlbums(w http.ResponseWriter, _ *http.Request) {
	albums, warnings, err := h.repo.ListAlbums()
	if err != nil {
		logging.Error("listing albums: %v", err)
		writeJSONError(w, "Failed to list albums", http.StatusInternalServerError)
		return
	}

	summaries := make([]AlbumSummary, 0, len(albums))
	for _, a := range albums {
		summaries = append(summaries, AlbumSummary{
			Slug:       a.Slug,
			Title:      a.Title,
			Timespan:   a.Timespan,
			Cover:      a.Cover,
			PhotoCount: len(a.Photos),
		})
	}

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, AlbumListResponse{
		Site:     h.site,
		Albums:   summaries,
		Warnings: warnings,
	})
}

// GetAlbum returns one album with its ordered photos.
func (h *Handlers) GetAlbum(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	album, err := h.repo.GetAlbum(slug)
	if err != nil {
		h.writeAlbumError(w, slug, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, album)
}

// GetPhotoDetail returns one photo with its EXIF capture settings and
// prev/next neighbors for lightbox navigation.
func (h *Handlers) GetPhotoDetail(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	slug := vars["slug"]
	filename := vars["filename"]

	album, err := h.repo.GetAlbum(slug)
	if err != nil {
		h.writeAlbumError(w, slug, err)
		return
	}

	index := -1
	for i, p := range album.Photos {
		if p.Filename == filename {
			index = i
			break
		}
	}
	if index == -1 {
		writeJSONError(w, "Photo not found", http.StatusNotFound)
		return
	}

	path, err := h.repo.PhotoPath(slug, filename)
	if err != nil {
		writeJSONError(w, "Photo not found", http.StatusNotFound)
		return
	}

	info := gallery.ReadCameraInfo(path)
	resp := PhotoDetailResponse{
		Photo:   album.Photos[index],
		Exif:    info,
		Summary: info.Summary(),
	}
	if index > 0 {
		resp.Prev = &album.Photos[index-1]
	}
	if index+1 < len(album.Photos) {
		resp.Next = &album.Photos[index+1]
	}

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, resp)
}

func (h *Handlers) writeAlbumError(w http.ResponseWriter, slug string, err error) {
	switch {
	case errors.Is(err, gallery.ErrAlbumNotFound):
		writeJSONError(w, "Album not found", http.StatusNotFound)
	case errors.Is(err, gallery.ErrInvalidMetadata):
		logging.Warn("album %q has invalid metadata: %v", filepath.Base(slug), err)
		writeJSONError(w, "Album unavailable", http.StatusNotFound)
	default:
		logging.Error("loading album %q: %v", slug, err)
		writeJSONError(w, "Failed to load album", http.StatusInternalServerError)
	}
}
