package v1

import "github.com/basnijholt/pixi-to-conda-lock/pkg/depspec"

// LockVersion is the conda-lock file format version
// that we produce.
const LockVersion = 1

type Manager string

const (
	ManagerConda Manager = "conda"
	ManagerPip   Manager = "pip"
)

const CategoryMain = "main"

// Lock is a conda-lock.yml document.
type Lock struct {
	Version  int       `yaml:"version"`
	Metadata Metadata  `yaml:"metadata"`
	Package  []Package `yaml:"package"`
}

type Metadata struct {
	// ContentHash maps each platform to a digest of the
	// inputs that produced it.
	ContentHash map[string]string `yaml:"content_hash"`
	Channels    []Channel         `yaml:"channels"`
	Platforms   []string          `yaml:"platforms"`
	Sources     []string          `yaml:"sources"`
}

type Channel struct {
	URL         string   `yaml:"url" json:"url"`
	UsedEnvVars []string `yaml:"used_env_vars" json:"used_env_vars"`
}

type Package struct {
	Name         string                `yaml:"name"`
	Version      string                `yaml:"version"`
	Manager      Manager               `yaml:"manager"`
	Platform     string                `yaml:"platform"`
	Dependencies *depspec.Dependencies `yaml:"dependencies"`
	URL          string                `yaml:"url"`
	Hash         Hash                  `yaml:"hash"`
	Category     string                `yaml:"category"`
	Optional     bool                  `yaml:"optional"`
}

type Hash struct {
	MD5    string `yaml:"md5,omitempty"`
	SHA256 string `yaml:"sha256,omitempty"`
}
