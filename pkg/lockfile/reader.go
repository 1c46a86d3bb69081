package lockfile

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	v1 "github.com/basnijholt/pixi-to-conda-lock/pkg/api/v1"
	"github.com/go-logr/logr"
	"gopkg.in/yaml.v3"
)

// Read loads a conda-lock file written by Write.
func Read(ctx context.Context, path string) (*v1.Lock, error) {
	log := logr.FromContextOrDiscard(ctx)
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("missing lockfile")
		}
		log.Error(err, "failed to open lockfile")
		return nil, err
	}
	defer f.Close()

	var l v1.Lock
	if err := yaml.NewDecoder(f).Decode(&l); err != nil {
		log.Error(err, "failed to read lockfile")
		return nil, fmt.Errorf("decoding lockfile: %w", err)
	}
	return &l, nil
}
