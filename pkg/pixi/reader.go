package pixi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/basnijholt/pixi-to-conda-lock/pkg/depspec"
	"github.com/go-logr/logr"
	"go.trai.ch/zerr"
	"k8s.io/apimachinery/pkg/util/yaml"
)

// Read opens and decodes a pixi.lock file.
func Read(ctx context.Context, path string) (*Lock, error) {
	log := logr.FromContextOrDiscard(ctx).WithValues("path", path)
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, zerr.With(fmt.Errorf("%w: %s", ErrSourceFileNotFound, path), "path", path)
		}
		log.Error(err, "failed to open lockfile")
		return nil, err
	}
	defer f.Close()

	lock, err := Decode(ctx, f)
	if err != nil {
		log.Error(err, "failed to read lockfile")
		return nil, err
	}
	return lock, nil
}

// Decode reads a pixi.lock document and validates its shape so
// that consumers never need to check it again.
func Decode(ctx context.Context, r io.Reader) (*Lock, error) {
	log := logr.FromContextOrDiscard(ctx)

	var raw rawLock
	if err := yaml.NewYAMLOrJSONDecoder(r, 4096).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decoding lockfile: %w", err)
	}
	if raw.Version < minVersion || raw.Version > maxVersion {
		return nil, zerr.With(fmt.Errorf("%w: %d (supported: %d-%d)", ErrUnsupportedVersion, raw.Version, minVersion, maxVersion), "version", raw.Version)
	}

	lock := &Lock{
		Version:      raw.Version,
		Environments: make(map[string]*Environment, len(raw.Environments)),
		conda:        map[string]*CondaPackage{},
		pypi:         map[string]*PypiPackage{},
	}

	for i, rp := range raw.Packages {
		pkg, err := rp.toPackage()
		if err != nil {
			return nil, zerr.With(fmt.Errorf("packages[%d]: %w", i, err), "index", i)
		}
		lock.Packages = append(lock.Packages, pkg)
		switch p := pkg.(type) {
		case *CondaPackage:
			lock.conda[p.URL] = p
		case *PypiPackage:
			lock.pypi[p.URL] = p
		}
	}

	for name, re := range raw.Environments {
		env := &Environment{
			Name:     name,
			Indexes:  re.Indexes,
			Packages: make(map[string][]PackageRef, len(re.Packages)),
		}
		for _, c := range re.Channels {
			env.Channels = append(env.Channels, Channel{
				URL:         c.URL,
				UsedEnvVars: c.UsedEnvVars,
			})
		}
		for platform, refs := range re.Packages {
			for i, ref := range refs {
				pr, err := ref.toRef()
				if err != nil {
					return nil, zerr.With(fmt.Errorf("environments.%s.packages.%s[%d]: %w", name, platform, i, err), "environment", name)
				}
				env.Packages[platform] = append(env.Packages[platform], pr)
			}
		}
		lock.Environments[name] = env
	}

	log.V(1).Info("decoded lockfile", "version", lock.Version, "environments", len(lock.Environments), "packages", len(lock.Packages))
	return lock, nil
}

// Environment returns the named environment.
func (l *Lock) Environment(name string) (*Environment, bool) {
	env, ok := l.Environments[name]
	return env, ok
}

// Conda returns the conda package record for a location.
func (l *Lock) Conda(location string) (*CondaPackage, bool) {
	p, ok := l.conda[location]
	return p, ok
}

// Pypi returns the pypi package record for a location.
func (l *Lock) Pypi(location string) (*PypiPackage, bool) {
	p, ok := l.pypi[location]
	return p, ok
}

// HasPypi reports whether any platform of the
// environment contains a pypi package.
func (e *Environment) HasPypi() bool {
	for _, refs := range e.Packages {
		for _, r := range refs {
			if r.Kind == KindPypi {
				return true
			}
		}
	}
	return false
}

func (r rawRef) toRef() (PackageRef, error) {
	switch {
	case r.Conda != "" && r.Pypi != "":
		return PackageRef{}, fmt.Errorf("%w: reference has both conda and pypi locations", ErrMalformedPackage)
	case r.Conda != "":
		return PackageRef{Kind: KindConda, Location: r.Conda}, nil
	case r.Pypi != "":
		return PackageRef{Kind: KindPypi, Location: r.Pypi}, nil
	default:
		return PackageRef{}, fmt.Errorf("%w: reference has no location", ErrMalformedPackage)
	}
}

func (p rawPackage) toPackage() (Package, error) {
	kind, location := Kind(p.Kind), p.URL
	switch {
	case p.Conda != "" && p.Pypi != "":
		return nil, fmt.Errorf("%w: package has both conda and pypi locations", ErrMalformedPackage)
	case p.Conda != "":
		kind, location = KindConda, p.Conda
	case p.Pypi != "":
		kind, location = KindPypi, p.Pypi
	}
	if location == "" {
		return nil, fmt.Errorf("%w: package has no location", ErrMalformedPackage)
	}

	switch kind {
	case KindConda:
		return &CondaPackage{
			URL:     location,
			SHA256:  p.SHA256,
			MD5:     p.MD5,
			Depends: depspec.ParseRepodata(p.Depends),
			Name:    p.Name,
			Version: p.Version,
			Build:   p.Build,
		}, nil
	case KindPypi:
		return &PypiPackage{
			URL:            location,
			Name:           p.Name,
			Version:        p.Version,
			SHA256:         p.SHA256,
			RequiresDist:   p.RequiresDist,
			RequiresPython: p.RequiresPython,
		}, nil
	default:
		return nil, fmt.Errorf("%w: unknown package kind '%s' for %s", ErrMalformedPackage, p.Kind, location)
	}
}
