package converter

import (
	"context"
	"fmt"

	v1 "github.com/basnijholt/pixi-to-conda-lock/pkg/api/v1"
	"github.com/basnijholt/pixi-to-conda-lock/pkg/conda"
	"github.com/basnijholt/pixi-to-conda-lock/pkg/depspec"
	"github.com/basnijholt/pixi-to-conda-lock/pkg/pixi"
	"github.com/basnijholt/pixi-to-conda-lock/pkg/repodata"
	"github.com/go-logr/logr"
	"go.trai.ch/zerr"
)

// Builder turns individual pixi packages into conda-lock
// package entries.
type Builder struct {
	Index *repodata.Index
}

func NewBuilder(idx *repodata.Index) *Builder {
	return &Builder{Index: idx}
}

// CondaEntry builds the entry for a conda package. Metadata comes
// from the repodata index when the package is known to it, otherwise
// from the package URL and the lockfile record. The record may be nil.
func (b *Builder) CondaEntry(ctx context.Context, location string, pkg *pixi.CondaPackage, platform string) (v1.Package, error) {
	log := logr.FromContextOrDiscard(ctx).WithValues("url", location, "platform", platform)

	if pkg == nil {
		pkg = &pixi.CondaPackage{URL: location}
	}

	entry := v1.Package{
		Manager:  v1.ManagerConda,
		Platform: platform,
		URL:      location,
		Category: v1.CategoryMain,
	}

	loc, err := conda.ParseLocation(location)
	if err != nil {
		return v1.Package{}, err
	}

	if r, ok := b.Index.Lookup(loc.Filename); ok {
		log.V(3).Info("using repodata record")
		entry.Name = r.Name
		entry.Version = r.Version
		entry.Dependencies = depspec.ParseRepodata(r.Depends)
		entry.Hash = v1.Hash{
			MD5:    firstNonEmpty(r.MD5, pkg.MD5),
			SHA256: firstNonEmpty(r.SHA256, pkg.SHA256),
		}
		return entry, nil
	}

	log.V(1).Info("package is not in the repodata index, using lockfile metadata")
	entry.Name = loc.Name
	entry.Version = loc.Version
	entry.Dependencies = pkg.Depends.Clone()
	entry.Hash = v1.Hash{
		MD5:    pkg.MD5,
		SHA256: pkg.SHA256,
	}
	return entry, nil
}

// PypiEntry builds the entry for a pypi package.
func (*Builder) PypiEntry(ctx context.Context, location string, pkg *pixi.PypiPackage, platform string) (v1.Package, error) {
	log := logr.FromContextOrDiscard(ctx).WithValues("url", location, "platform", platform)
	if pkg == nil {
		return v1.Package{}, zerr.With(fmt.Errorf("%w: %s", ErrPackageNotFound, location), "url", location)
	}
	log.V(3).Info("using pypi record", "name", pkg.Name)

	return v1.Package{
		Name:         pkg.Name,
		Version:      pkg.Version,
		Manager:      v1.ManagerPip,
		Platform:     platform,
		Dependencies: depspec.ParseRequiresDist(pkg.RequiresDist),
		URL:          location,
		Hash: v1.Hash{
			SHA256: pkg.SHA256,
		},
		Category: v1.CategoryMain,
	}, nil
}

func firstNonEmpty(s ...string) string {
	for _, v := range s {
		if v != "" {
			return v
		}
	}
	return ""
}
