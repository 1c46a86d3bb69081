package repodata

import (
	"context"
	"testing"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/testr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIndex(t *testing.T) {
	ctx := logr.NewContext(context.TODO(), testr.NewWithOptions(t, testr.Options{Verbosity: 10}))

	idx := NewIndex(ctx, map[string]*Document{
		"a": {
			Info: Info{Subdir: "linux-64"},
			Packages: map[string]Record{
				"_libgcc_mutex-0.1-conda_forge.tar.bz2": {Name: "_libgcc_mutex", Version: "0.1"},
			},
			PackagesConda: map[string]Record{
				"libzlib-1.3.1-hb9d3cd8_2.conda": {Name: "libzlib", Version: "1.3.1", Depends: []string{"__glibc >=2.17,<3.0.a0"}},
			},
		},
		"b": {
			Info: Info{Subdir: "noarch"},
			PackagesConda: map[string]Record{
				"libzlib-1.3.1-hb9d3cd8_2.conda": {Name: "libzlib", Version: "1.3.1", MD5: "overwritten", Subdir: "linux-64"},
			},
		},
		"c": nil,
	})

	assert.EqualValues(t, 2, idx.Count())
	assert.EqualValues(t, []string{"a", "b"}, idx.Sources())

	t.Run("legacy packages are indexed", func(t *testing.T) {
		r, ok := idx.Lookup("_libgcc_mutex-0.1-conda_forge.tar.bz2")
		require.True(t, ok)
		assert.EqualValues(t, "_libgcc_mutex", r.Name)
		// subdir is inherited from the document
		assert.EqualValues(t, "linux-64", r.Subdir)
	})
	t.Run("last document wins", func(t *testing.T) {
		r, ok := idx.Lookup("libzlib-1.3.1-hb9d3cd8_2.conda")
		require.True(t, ok)
		assert.EqualValues(t, "overwritten", r.MD5)
		assert.EqualValues(t, "linux-64", r.Subdir)
	})
	t.Run("lookups are exact", func(t *testing.T) {
		_, ok := idx.Lookup("libzlib-1.3.1-hb9d3cd8_2")
		assert.False(t, ok)
		_, ok = idx.Lookup("https://conda.anaconda.org/conda-forge/linux-64/libzlib-1.3.1-hb9d3cd8_2.conda")
		assert.False(t, ok)
	})
}

func TestIndex_Nil(t *testing.T) {
	var idx *Index
	_, ok := idx.Lookup("foo-1.0-0.conda")
	assert.False(t, ok)
	assert.Zero(t, idx.Count())
	assert.Empty(t, idx.Sources())
}
