package handlers

import (
	"time"

	"photo-gallery/internal/gallery"
	"photo-gallery/internal/thumbs"
)

// Handlers bundles the album repository and thumbnail cache behind the
// HTTP surface consumed by the rendering layer.
type Handlers struct {
	site    gallery.Site
	repo    *gallery.Repository
	cache   *thumbs.Cache
	started time.Time
}

// New creates the handler set for the given site configuration,
// repository, and thumbnail cache.
func New(site gallery.Site, repo *gallery.Repository, cache *thumbs.Cache) *Handlers {
	return &Handlers{
		site:    site,
		repo:    repo,
		cache:   cache,
		started: time.Now(),
	}
}
