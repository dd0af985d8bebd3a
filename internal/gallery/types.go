package gallery

// Photo represents a single image file within an album. Photos have no
// identity beyond their filename; they are rediscovered on every scan.
type Photo struct {
	Filename string `json:"filename"`
	Album    string `json:"album"`
}

// Album represents a directory of photos plus its resolved metadata.
// The slug is exactly the directory's base name and doubles as the URL
// path segment.
type Album struct {
	Slug        string  `json:"slug"`
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Timespan    string  `json:"timespan,omitempty"`
	Cover       string  `json:"cover,omitempty"`
	Photos      []Photo `json:"photos"`
}

// Warning records an album that was skipped during a listing scan,
// typically because its metadata file was missing or malformed.
type Warning struct {
	Slug    string `json:"slug"`
	Message string `json:"message"`
}

// Site holds the site-wide configuration read from site.toml at the
// data root.
type Site struct {
	Title         string `toml:"title" json:"title"`
	FooterSnippet string `toml:"footer_snippet" json:"footerSnippet,omitempty"`
}
