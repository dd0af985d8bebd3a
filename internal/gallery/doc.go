// Package gallery implements the album read model: discovering albums and
// photos from the data directory, parsing album metadata, and deriving
// album timespans from embedded EXIF capture dates.
//
// The filesystem is the source of truth. Every catalog read performs a
// fresh scan of the photos directory, so concurrent reads are naturally
// safe and no invalidation state is held in memory. Albums whose metadata
// is missing or malformed are skipped and reported as warnings rather than
// failing the whole listing.
package gallery
