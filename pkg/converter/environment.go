package converter

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/basnijholt/pixi-to-conda-lock/pkg/airutil"
	v1 "github.com/basnijholt/pixi-to-conda-lock/pkg/api/v1"
	"github.com/basnijholt/pixi-to-conda-lock/pkg/lockfile"
	"github.com/basnijholt/pixi-to-conda-lock/pkg/pixi"
	"github.com/go-logr/logr"
	"go.trai.ch/zerr"
	"golang.org/x/exp/maps"
)

// DefaultChannelAlias is the prefix that conda drops when
// naming channels.
const DefaultChannelAlias = "https://conda.anaconda.org/"

const pipPackage = "pip"

// Converter turns a single pixi environment into a
// conda-lock document.
type Converter struct {
	Builder *Builder
	// ChannelAlias is stripped from channel URLs. Defaults
	// to DefaultChannelAlias.
	ChannelAlias string
	// Source is recorded in metadata.sources, normally the
	// base name of the pixi lockfile.
	Source string
}

// Convert builds the conda-lock document for the named environment.
func (c *Converter) Convert(ctx context.Context, lock *pixi.Lock, name string) (*v1.Lock, error) {
	log := logr.FromContextOrDiscard(ctx).WithValues("environment", name)

	env, ok := lock.Environment(name)
	if !ok {
		return nil, zerr.With(fmt.Errorf("%w: %q", ErrEnvironmentNotFound, name), "environment", name)
	}

	platforms := maps.Keys(env.Packages)
	sort.Strings(platforms)
	log.V(1).Info("converting environment", "platforms", platforms)

	var packages []v1.Package
	var hasPip bool
	for _, platform := range platforms {
		for _, ref := range env.Packages[platform] {
			var entry v1.Package
			var err error
			switch ref.Kind {
			case pixi.KindConda:
				pkg, _ := lock.Conda(ref.Location)
				entry, err = c.Builder.CondaEntry(ctx, ref.Location, pkg, platform)
				if entry.Name == pipPackage {
					hasPip = true
				}
			case pixi.KindPypi:
				pkg, _ := lock.Pypi(ref.Location)
				entry, err = c.Builder.PypiEntry(ctx, ref.Location, pkg, platform)
			default:
				err = fmt.Errorf("%w: unknown reference kind '%s'", pixi.ErrMalformedPackage, ref.Kind)
			}
			if err != nil {
				return nil, zerr.With(err, "environment", name)
			}
			packages = append(packages, entry)
		}
	}

	if env.HasPypi() && !hasPip {
		return nil, zerr.With(fmt.Errorf("%w: environment %q", ErrMissingPipDependency, name), "environment", name)
	}

	channels := c.channels(env.Channels)
	hash, err := lockfile.ContentHash(channels, platforms)
	if err != nil {
		return nil, err
	}

	sources := []string{}
	if c.Source != "" {
		sources = append(sources, c.Source)
	}

	log.V(1).Info("converted environment", "packages", len(packages))
	return &v1.Lock{
		Version: v1.LockVersion,
		Metadata: v1.Metadata{
			ContentHash: hash,
			Channels:    channels,
			Platforms:   platforms,
			Sources:     sources,
		},
		Package: packages,
	}, nil
}

func (c *Converter) channels(in []pixi.Channel) []v1.Channel {
	out := make([]v1.Channel, 0, len(in))
	for _, ch := range in {
		out = append(out, v1.Channel{
			URL:         ChannelName(ch.URL, c.ChannelAlias),
			UsedEnvVars: usedEnvVars(ch),
		})
	}
	return out
}

// ChannelName shortens a channel URL the way conda names it:
// the alias prefix and any trailing slash are removed.
//
//	https://conda.anaconda.org/conda-forge/ -> conda-forge
func ChannelName(url, alias string) string {
	if alias == "" {
		alias = DefaultChannelAlias
	}
	if !strings.HasSuffix(alias, "/") {
		alias += "/"
	}
	return strings.TrimSuffix(strings.TrimPrefix(url, alias), "/")
}

// usedEnvVars merges the variables pixi recorded with
// any that the channel URL refers to.
func usedEnvVars(ch pixi.Channel) []string {
	seen := map[string]struct{}{}
	for _, v := range ch.UsedEnvVars {
		seen[v] = struct{}{}
	}
	for _, v := range airutil.UsedEnvVars(ch.URL) {
		seen[v] = struct{}{}
	}
	out := maps.Keys(seen)
	sort.Strings(out)
	return out
}
