package repodata

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-logr/logr"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/mholt/archives"
	"github.com/ulikunitz/xz"
	"k8s.io/apimachinery/pkg/util/yaml"
)

const (
	ExtJSON     = ".json"
	ExtJSONGzip = ".json.gz"
	ExtJSONZstd = ".json.zst"
	ExtJSONXZ   = ".json.xz"
	ExtJSONBz2  = ".json.bz2"

	// extInfo is the suffix of the state files rattler
	// writes next to each cached document
	extInfo = ".info.json"
)

var documentExtensions = []string{
	ExtJSON,
	ExtJSONGzip,
	ExtJSONZstd,
	ExtJSONXZ,
	ExtJSONBz2,
}

// ReadDocument reads a repodata document from disk, decompressing
// it based on the file extension.
func ReadDocument(ctx context.Context, path string) (*Document, error) {
	log := logr.FromContextOrDiscard(ctx).WithValues("path", path)
	log.V(3).Info("reading repodata document")

	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("opening repodata: %w", err)
	}
	defer f.Close()

	r, err := decompress(path, f)
	if err != nil {
		return nil, fmt.Errorf("decompressing repodata '%s': %w", path, err)
	}
	defer r.Close()

	var doc Document
	if err := yaml.NewYAMLOrJSONDecoder(r, 4096).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding repodata '%s': %w", path, err)
	}
	doc.Source = path
	log.V(3).Info("successfully decoded repodata", "subdir", doc.Info.Subdir, "count", len(doc.Packages)+len(doc.PackagesConda))
	return &doc, nil
}

func decompress(path string, r io.Reader) (io.ReadCloser, error) {
	switch {
	case strings.HasSuffix(path, ExtJSONGzip):
		return gzip.NewReader(r)
	case strings.HasSuffix(path, ExtJSONZstd):
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		return dec.IOReadCloser(), nil
	case strings.HasSuffix(path, ExtJSONXZ):
		reader, err := xz.NewReader(r)
		if err != nil {
			return nil, err
		}
		return io.NopCloser(reader), nil
	case strings.HasSuffix(path, ExtJSONBz2):
		return archives.Bz2{}.OpenReader(r)
	default:
		return io.NopCloser(r), nil
	}
}

// IsDocument reports whether a filename looks like a cached
// repodata document.
func IsDocument(name string) bool {
	if strings.HasSuffix(name, extInfo) {
		return false
	}
	for _, ext := range documentExtensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

// documentKey strips the document extension so that the same
// cache entry stored with different compression shares a key.
func documentKey(name string) string {
	for _, ext := range documentExtensions[1:] {
		if strings.HasSuffix(name, ext) {
			return strings.TrimSuffix(name, ext)
		}
	}
	return strings.TrimSuffix(name, ExtJSON)
}
