package converter

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/basnijholt/pixi-to-conda-lock/pkg/lockfile"
	"github.com/basnijholt/pixi-to-conda-lock/pkg/pixi"
	"github.com/go-logr/logr"
	"github.com/go-logr/logr/testr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssemble(t *testing.T) {
	ctx := logr.NewContext(context.TODO(), testr.NewWithOptions(t, testr.Options{Verbosity: 10}))
	idx := newIndex(t, ctx)

	t.Run("all environments", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "out")
		written, err := Assemble(ctx, Options{
			LockPath:  "./testdata/pixi.lock",
			OutputDir: dir,
			Index:     idx,
		})
		require.NoError(t, err)
		assert.EqualValues(t, []string{
			filepath.Join(dir, "conda-lock.yml"),
			filepath.Join(dir, "pypi.conda-lock.yml"),
		}, written)

		out, err := lockfile.Read(ctx, filepath.Join(dir, "conda-lock.yml"))
		require.NoError(t, err)
		assert.Len(t, out.Package, 5)
		assert.EqualValues(t, []string{"pixi.lock"}, out.Metadata.Sources)

		out, err = lockfile.Read(ctx, filepath.Join(dir, "pypi.conda-lock.yml"))
		require.NoError(t, err)
		assert.Len(t, out.Package, 2)
	})

	t.Run("single environment", func(t *testing.T) {
		dir := t.TempDir()
		written, err := Assemble(ctx, Options{
			LockPath:    "./testdata/pixi.lock",
			OutputDir:   dir,
			Environment: "pypi",
			Index:       idx,
		})
		require.NoError(t, err)
		assert.EqualValues(t, []string{filepath.Join(dir, "pypi.conda-lock.yml")}, written)

		_, err = os.Stat(filepath.Join(dir, "conda-lock.yml"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("repeated runs are identical", func(t *testing.T) {
		dirOne, dirTwo := t.TempDir(), t.TempDir()
		for _, dir := range []string{dirOne, dirTwo} {
			_, err := Assemble(ctx, Options{
				LockPath:  "./testdata/pixi.lock",
				OutputDir: dir,
				Index:     idx,
			})
			require.NoError(t, err)
		}
		for _, name := range []string{"conda-lock.yml", "pypi.conda-lock.yml"} {
			one, err := os.ReadFile(filepath.Join(dirOne, name))
			require.NoError(t, err)
			two, err := os.ReadFile(filepath.Join(dirTwo, name))
			require.NoError(t, err)
			assert.EqualValues(t, string(one), string(two))
		}
	})

	t.Run("missing environment writes nothing", func(t *testing.T) {
		dir := t.TempDir()
		written, err := Assemble(ctx, Options{
			LockPath:    "./testdata/pixi.lock",
			OutputDir:   dir,
			Environment: "missing",
			Index:       idx,
		})
		assert.ErrorIs(t, err, ErrEnvironmentNotFound)
		assert.Empty(t, written)

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("missing source", func(t *testing.T) {
		_, err := Assemble(ctx, Options{
			LockPath:  "./testdata/missing.lock",
			OutputDir: t.TempDir(),
			Index:     idx,
		})
		assert.ErrorIs(t, err, pixi.ErrSourceFileNotFound)
	})
}
