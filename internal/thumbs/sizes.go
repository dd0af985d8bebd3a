package thumbs

// SizeClass identifies one of the fixed thumbnail sizes. The set is closed:
// sizes are chosen by the rendering layer, never by the requester, which
// keeps the cache key space bounded.
type SizeClass string

const (
	// SizeSmall is the grid thumbnail, fitted into a 400px bounding box.
	SizeSmall SizeClass = "small"
	// SizeMedium is the detail view image, fitted into a 1200px bounding box.
	SizeMedium SizeClass = "medium"
)

var sizeDimensions = map[SizeClass]int{
	SizeSmall:  400,
	SizeMedium: 1200,
}

// ParseSizeClass validates a size name from a request path.
func ParseSizeClass(s string) (SizeClass, bool) {
	size := SizeClass(s)
	_, ok := sizeDimensions[size]
	return size, ok
}

// MaxDimension returns the bounding-box side length for the size class,
// or 0 for an unknown class.
func (s SizeClass) MaxDimension() int {
	return sizeDimensions[s]
}

// SizeClasses returns all known size classes.
func SizeClasses() []SizeClass {
	return []SizeClass{SizeSmall, SizeMedium}
}
