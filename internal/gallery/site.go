package gallery

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// SiteFilename is the site configuration file name at the data root.
const SiteFilename = "site.toml"

// DefaultSiteTitle is used when site.toml omits a title.
const DefaultSiteTitle = "Photo Gallery"

// LoadSite reads site.toml from the data root. An absent file is fine and
// yields defaults; a file that exists but cannot be read or parsed is an
// error, since it indicates a broken data root rather than a bare one.
func LoadSite(dataDir string) (Site, error) {
	site := Site{Title: DefaultSiteTitle}

	data, err := os.ReadFile(filepath.Join(dataDir, SiteFilename))
	if err != nil {
		if os.IsNotExist(err) {
			return site, nil
		}
		return site, fmt.Errorf("reading %s: %w", SiteFilename, err)
	}

	if err := toml.Unmarshal(data, &site); err != nil {
		return site, fmt.Errorf("parsing %s: %w", SiteFilename, err)
	}
	if site.Title == "" {
		site.Title = DefaultSiteTitle
	}
	return site, nil
}
