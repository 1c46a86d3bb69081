package repodata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"

	"github.com/go-logr/logr"
)

const (
	EnvRattlerCacheDir = "RATTLER_CACHE_DIR"
	EnvPixiCacheDir    = "PIXI_CACHE_DIR"

	subdirRepodata = "repodata"
)

// CacheDir works out where the repodata cache lives. An explicit
// directory always wins, then the rattler and pixi environment variables,
// then whatever pixi reports and lastly the default user cache.
func CacheDir(ctx context.Context, d string) string {
	log := logr.FromContextOrDiscard(ctx)
	if d != "" {
		return filepath.Clean(d)
	}
	for _, env := range []string{EnvRattlerCacheDir, EnvPixiCacheDir} {
		if v := os.Getenv(env); v != "" {
			log.V(1).Info("using cache directory from environment", "env", env, "dir", v)
			return filepath.Join(v, subdirRepodata)
		}
	}
	if v, err := pixiCacheDir(ctx); err == nil && v != "" {
		log.V(1).Info("using cache directory reported by pixi", "dir", v)
		return filepath.Join(v, subdirRepodata)
	} else if err != nil {
		log.V(2).Info("unable to query pixi for its cache directory", "error", err.Error())
	}
	d, _ = os.UserCacheDir()
	return filepath.Join(d, "rattler", "cache", subdirRepodata)
}

func pixiCacheDir(ctx context.Context) (string, error) {
	bin, err := exec.LookPath("pixi")
	if err != nil {
		return "", err
	}
	out, err := exec.CommandContext(ctx, bin, "info", "--json").Output()
	if err != nil {
		return "", fmt.Errorf("running pixi info: %w", err)
	}
	var info struct {
		CacheDir string `json:"cache_dir"`
	}
	if err := json.Unmarshal(out, &info); err != nil {
		return "", fmt.Errorf("decoding pixi info: %w", err)
	}
	return info.CacheDir, nil
}

// ListDocuments returns the repodata documents in a cache
// directory, sorted by name. A missing directory is not an error.
func ListDocuments(ctx context.Context, dir string) ([]string, error) {
	log := logr.FromContextOrDiscard(ctx).WithValues("dir", dir)

	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Info("repodata cache directory does not exist, all conda packages will use lockfile metadata")
			return nil, nil
		}
		return nil, fmt.Errorf("reading cache directory: %w", err)
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() || !IsDocument(e.Name()) {
			continue
		}
		out = append(out, filepath.Join(dir, e.Name()))
	}
	sort.Strings(out)
	log.V(1).Info("located repodata documents", "count", len(out))
	return out, nil
}

// LoadIndex reads every document in the cache directory and
// builds an Index from them.
func LoadIndex(ctx context.Context, dir string) (*Index, error) {
	paths, err := ListDocuments(ctx, dir)
	if err != nil {
		return nil, err
	}
	docs := make(map[string]*Document, len(paths))
	for _, path := range paths {
		doc, err := ReadDocument(ctx, path)
		if err != nil {
			return nil, err
		}
		docs[documentKey(filepath.Base(path))] = doc
	}
	return NewIndex(ctx, docs), nil
}
