package converter

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/basnijholt/pixi-to-conda-lock/pkg/lockfile"
	"github.com/basnijholt/pixi-to-conda-lock/pkg/pixi"
	"github.com/basnijholt/pixi-to-conda-lock/pkg/repodata"
	"github.com/go-logr/logr"
	"golang.org/x/exp/maps"
)

type Options struct {
	// LockPath is the pixi.lock to read.
	LockPath string
	// OutputDir receives the conda-lock files. It is
	// created if it does not exist.
	OutputDir string
	// Environment limits the conversion to a single
	// environment. All environments are converted when empty.
	Environment string
	Index       *repodata.Index
	// ChannelAlias is stripped from channel URLs.
	ChannelAlias string
}

// Assemble converts the requested environments of a pixi lockfile
// and writes one conda-lock file per environment. The first failure
// stops the run, files written before it are kept.
func Assemble(ctx context.Context, opts Options) ([]string, error) {
	log := logr.FromContextOrDiscard(ctx).WithValues("lockfile", opts.LockPath)

	lock, err := pixi.Read(ctx, opts.LockPath)
	if err != nil {
		return nil, err
	}

	envs := []string{opts.Environment}
	if opts.Environment == "" {
		envs = maps.Keys(lock.Environments)
		sort.Strings(envs)
	}
	log.V(1).Info("converting environments", "environments", envs)

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	c := &Converter{
		Builder:      NewBuilder(opts.Index),
		ChannelAlias: opts.ChannelAlias,
		Source:       filepath.Base(opts.LockPath),
	}

	var written []string
	for _, env := range envs {
		out, err := c.Convert(ctx, lock, env)
		if err != nil {
			log.Error(err, "failed to convert environment", "environment", env)
			return written, err
		}
		if err := lockfile.Validate(out); err != nil {
			log.Error(err, "generated an invalid lockfile", "environment", env)
			return written, err
		}
		path := lockfile.Name(opts.OutputDir, env)
		if err := lockfile.Write(ctx, path, out); err != nil {
			return written, err
		}
		log.Info("wrote lockfile", "environment", env, "path", path, "packages", len(out.Package))
		written = append(written, path)
	}
	return written, nil
}
