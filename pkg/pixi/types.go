package pixi

import (
	"github.com/basnijholt/pixi-to-conda-lock/pkg/depspec"
	"go.trai.ch/zerr"
)

const (
	minVersion = 4
	maxVersion = 6
)

var (
	// ErrSourceFileNotFound is returned when the pixi lockfile does not exist.
	ErrSourceFileNotFound = zerr.New("source lockfile not found")

	// ErrUnsupportedVersion is returned for lockfile format versions we cannot read.
	ErrUnsupportedVersion = zerr.New("unsupported lockfile version")

	// ErrMalformedPackage is returned when a package or package reference is neither conda nor pypi.
	ErrMalformedPackage = zerr.New("malformed package")
)

type Kind string

const (
	KindConda Kind = "conda"
	KindPypi  Kind = "pypi"
)

// Lock is a pixi.lock that has been checked for shape.
type Lock struct {
	Version      int
	Environments map[string]*Environment
	Packages     []Package

	conda map[string]*CondaPackage
	pypi  map[string]*PypiPackage
}

type Environment struct {
	Name     string
	Channels []Channel
	Indexes  []string
	// Packages maps a platform to the packages locked for it
	// in the order pixi wrote them.
	Packages map[string][]PackageRef
}

type Channel struct {
	URL         string
	UsedEnvVars []string
}

type PackageRef struct {
	Kind     Kind
	Location string
}

// Package is either a *CondaPackage or a *PypiPackage.
type Package interface {
	Kind() Kind
	Location() string
}

type CondaPackage struct {
	URL     string
	SHA256  string
	MD5     string
	Depends *depspec.Dependencies

	// Name, Version and Build are only written by
	// older lockfile versions.
	Name    string
	Version string
	Build   string
}

func (*CondaPackage) Kind() Kind {
	return KindConda
}

func (p *CondaPackage) Location() string {
	return p.URL
}

type PypiPackage struct {
	URL            string
	Name           string
	Version        string
	SHA256         string
	RequiresDist   []string
	RequiresPython string
}

func (*PypiPackage) Kind() Kind {
	return KindPypi
}

func (p *PypiPackage) Location() string {
	return p.URL
}

// the types below mirror the on-disk format

type rawLock struct {
	Version      int                       `json:"version"`
	Environments map[string]rawEnvironment `json:"environments"`
	Packages     []rawPackage              `json:"packages"`
}

type rawEnvironment struct {
	Channels []rawChannel        `json:"channels"`
	Indexes  []string            `json:"indexes"`
	Packages map[string][]rawRef `json:"packages"`
}

type rawChannel struct {
	URL         string   `json:"url"`
	UsedEnvVars []string `json:"used_env_vars"`
}

type rawRef struct {
	Conda string `json:"conda"`
	Pypi  string `json:"pypi"`
}

type rawPackage struct {
	// Kind and URL are used by version 4
	Kind string `json:"kind"`
	URL  string `json:"url"`

	Conda string `json:"conda"`
	Pypi  string `json:"pypi"`

	Name           string   `json:"name"`
	Version        string   `json:"version"`
	Build          string   `json:"build"`
	SHA256         string   `json:"sha256"`
	MD5            string   `json:"md5"`
	Depends        []string `json:"depends"`
	RequiresDist   []string `json:"requires_dist"`
	RequiresPython string   `json:"requires_python"`
}
