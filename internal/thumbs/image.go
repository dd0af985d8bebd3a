package thumbs

import (
	"image"

	"photo-gallery/internal/logging"

	"github.com/disintegration/imaging"
)

// loadImage decodes the source photo, honoring the EXIF orientation tag.
// When libvips is available it is tried first for decode-time shrinking,
// which avoids holding the full-resolution pixels in memory; any vips
// failure falls back to the pure-Go path.
func loadImage(path string, maxDim int) (image.Image, error) {
	if IsVipsAvailable() {
		img, err := loadImageWithVips(path, maxDim, maxDim)
		if err == nil {
			return img, nil
		}
		logging.Debug("vips load failed for %s: %v, falling back to imaging", path, err)
	}

	return imaging.Open(path, imaging.AutoOrientation(true))
}
