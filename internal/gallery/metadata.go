package gallery

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// MetaFilename is the per-album metadata file name.
const MetaFilename = "album.toml"

type albumMeta struct {
	Title       string `toml:"title"`
	Description string `toml:"description"`
	Timespan    string `toml:"timespan"`
}

// loadMeta reads and validates the album metadata file in dir. A missing
// file, unparseable TOML, or an empty title all wrap ErrInvalidMetadata so
// the caller can treat them uniformly as a skippable per-album failure.
func loadMeta(dir string) (albumMeta, error) {
	var meta albumMeta

	path := filepath.Join(dir, MetaFilename)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return meta, fmt.Errorf("%w: %s missing", ErrInvalidMetadata, MetaFilename)
		}
		return meta, fmt.Errorf("%w: reading %s: %v", ErrInvalidMetadata, MetaFilename, err)
	}

	if err := toml.Unmarshal(data, &meta); err != nil {
		return meta, fmt.Errorf("%w: parsing %s: %v", ErrInvalidMetadata, MetaFilename, err)
	}

	if meta.Title == "" {
		return meta, fmt.Errorf("%w: %s has no title", ErrInvalidMetadata, MetaFilename)
	}

	return meta, nil
}

// resolveTimespan returns the album's effective timespan: the declared
// value verbatim when present, otherwise a span derived from the EXIF
// capture dates of the album's photos. An empty result means no photo
// carried a date, which is fine.
func resolveTimespan(meta albumMeta, dir string, photos []string) string {
	if meta.Timespan != "" {
		return meta.Timespan
	}
	return deriveTimespan(dir, photos)
}

// deriveTimespan scans the album's photos for EXIF capture dates and
// formats the min/max range as a human-readable span.
func deriveTimespan(dir string, photos []string) string {
	var first, last time.Time
	found := false

	for _, name := range photos {
		t, ok := CaptureDate(filepath.Join(dir, name))
		if !ok {
			continue
		}
		if !found {
			first, last = t, t
			found = true
			continue
		}
		if t.Before(first) {
			first = t
		}
		if t.After(last) {
			last = t
		}
	}

	if !found {
		return ""
	}
	return formatSpan(first, last)
}

// formatSpan renders a date range at month granularity: "March 2024" when
// both ends fall in the same month, otherwise "March 2024 – May 2024".
// Both endpoints always carry the full month and year, so spans crossing a
// year boundary need no special casing.
func formatSpan(first, last time.Time) string {
	a := first.Format("January 2006")
	b := last.Format("January 2006")
	if a == b {
		return a
	}
	return a + " – " + b
}
