package lockfile

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	v1 "github.com/basnijholt/pixi-to-conda-lock/pkg/api/v1"
	"github.com/go-logr/logr"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Marshal renders a document as YAML.
func Marshal(l *v1.Lock) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(l); err != nil {
		return nil, fmt.Errorf("encoding lockfile: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding lockfile: %w", err)
	}
	return buf.Bytes(), nil
}

// Write saves a document to path. The file is written to a
// temporary name first so that a failure never leaves a partial
// lockfile behind.
func Write(ctx context.Context, path string, l *v1.Lock) error {
	log := logr.FromContextOrDiscard(ctx).WithValues("path", path)

	data, err := Marshal(l)
	if err != nil {
		return err
	}

	tmp := filepath.Join(filepath.Dir(path), fmt.Sprintf(".%s-%s.tmp", filepath.Base(path), uuid.NewString()))
	log.V(2).Info("writing temporary lockfile", "tmp", tmp)
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("writing temp lockfile %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("renaming temp lockfile to %s: %w", path, err)
	}
	log.V(1).Info("wrote lockfile", "packages", len(l.Package))
	return nil
}
