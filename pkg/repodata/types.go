package repodata

// Document is a single repodata.json as published by a channel
// and cached by rattler.
type Document struct {
	Info Info `json:"info"`
	// Packages holds the legacy .tar.bz2 archives
	Packages map[string]Record `json:"packages"`
	// PackagesConda holds the .conda archives
	PackagesConda map[string]Record `json:"packages.conda"`
	// Source is a custom attribute that contains the
	// path the document was read from
	Source string `json:"-"`
}

type Info struct {
	Subdir string `json:"subdir"`
}

type Record struct {
	Name        string   `json:"name"`
	Version     string   `json:"version"`
	Build       string   `json:"build"`
	BuildNumber int64    `json:"build_number"`
	Depends     []string `json:"depends"`
	MD5         string   `json:"md5"`
	SHA256      string   `json:"sha256"`
	Subdir      string   `json:"subdir"`
}

type Index struct {
	records map[string]Record
	sources []string
}
