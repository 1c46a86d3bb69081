package lockfile

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	v1 "github.com/basnijholt/pixi-to-conda-lock/pkg/api/v1"
	"go.trai.ch/zerr"
)

const (
	DefaultEnvironment = "default"
	FileSuffix         = "conda-lock.yml"
)

// ErrInvalidLock is returned when a document does not
// satisfy the conda-lock schema.
var ErrInvalidLock = zerr.New("invalid conda-lock document")

// ValidationError holds every problem found in a document.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s:\n  - %s", ErrInvalidLock.Error(), strings.Join(e.Errors, "\n  - "))
}

func (*ValidationError) Unwrap() error {
	return ErrInvalidLock
}

// Name returns the path of the conda-lock file for an
// environment inside dir.
func Name(dir, env string) string {
	if env == DefaultEnvironment {
		return filepath.Join(dir, FileSuffix)
	}
	return filepath.Join(dir, env+"."+FileSuffix)
}

// Validate checks that a document is something conda-lock
// will be able to read.
func Validate(l *v1.Lock) error {
	var errs []string

	if l.Version != v1.LockVersion {
		errs = append(errs, fmt.Sprintf("unsupported version %d, only version %d is supported", l.Version, v1.LockVersion))
	}
	for _, p := range l.Metadata.Platforms {
		if _, ok := l.Metadata.ContentHash[p]; !ok {
			errs = append(errs, fmt.Sprintf("metadata.content_hash is missing platform '%s'", p))
		}
	}

	for i, p := range l.Package {
		prefix := fmt.Sprintf("package[%d]", i)
		if p.Name != "" {
			prefix = fmt.Sprintf("package '%s' (%s)", p.Name, p.Platform)
		}
		if p.Name == "" {
			errs = append(errs, fmt.Sprintf("%s: 'name' is required", prefix))
		}
		if p.URL == "" {
			errs = append(errs, fmt.Sprintf("%s: 'url' is required", prefix))
		}
		if p.Manager != v1.ManagerConda && p.Manager != v1.ManagerPip {
			errs = append(errs, fmt.Sprintf("%s: unknown manager '%s'", prefix, p.Manager))
		}
		if !slices.Contains(l.Metadata.Platforms, p.Platform) {
			errs = append(errs, fmt.Sprintf("%s: platform '%s' is not declared in metadata.platforms", prefix, p.Platform))
		}
	}

	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}
