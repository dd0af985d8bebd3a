package gallery

import (
	"os"
	"path/filepath"
	"strings"
)

// photoExtensions maps file extensions to whether they are eligible photo
// formats. Matching is case-insensitive on the extension.
var photoExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// ListPhotos returns the photo filenames in an album directory, ordered
// lexicographically so presentation order is stable regardless of how the
// filesystem iterates. Subdirectories, hidden files, and files without an
// eligible image extension (the metadata file included) are skipped.
func ListPhotos(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var photos []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		if !photoExtensions[strings.ToLower(filepath.Ext(name))] {
			continue
		}
		photos = append(photos, name)
	}

	// os.ReadDir already sorts by filename; photos inherits that order.
	return photos, nil
}

// IsPhotoFilename reports whether name has an eligible image extension.
func IsPhotoFilename(name string) bool {
	return photoExtensions[strings.ToLower(filepath.Ext(name))]
}
