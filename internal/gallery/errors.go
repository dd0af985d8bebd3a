package gallery

import "errors"

var (
	// ErrAlbumNotFound indicates the requested slug does not name an
	// album directory under the photos root.
	ErrAlbumNotFound = errors.New("album not found")

	// ErrPhotoNotFound indicates the requested filename does not exist
	// (or is not an eligible image) within the given album.
	ErrPhotoNotFound = errors.New("photo not found")

	// ErrInvalidMetadata indicates an album's metadata file is missing,
	// unparseable, or lacks the required title. Per-album only: listing
	// scans report it as a warning and continue.
	ErrInvalidMetadata = errors.New("invalid album metadata")
)
