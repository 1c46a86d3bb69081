package repodata

import (
	"context"
	"sort"

	"github.com/go-logr/logr"
	"golang.org/x/exp/maps"
)

// NewIndex merges the packages of every document into a single
// filename lookup. Documents are applied in key order and later
// documents overwrite earlier ones for the same filename.
func NewIndex(ctx context.Context, docs map[string]*Document) *Index {
	log := logr.FromContextOrDiscard(ctx)

	keys := maps.Keys(docs)
	sort.Strings(keys)

	idx := &Index{
		records: map[string]Record{},
	}
	for _, k := range keys {
		doc := docs[k]
		if doc == nil {
			continue
		}
		idx.add(doc.Info.Subdir, doc.Packages)
		idx.add(doc.Info.Subdir, doc.PackagesConda)
		idx.sources = append(idx.sources, k)
		log.V(2).Info("added index", "key", k, "subdir", doc.Info.Subdir, "count", len(doc.Packages)+len(doc.PackagesConda))
	}
	log.V(1).Info("built repodata index", "documents", len(idx.sources), "count", len(idx.records))
	return idx
}

func (idx *Index) add(subdir string, records map[string]Record) {
	for filename, r := range records {
		if r.Subdir == "" {
			r.Subdir = subdir
		}
		idx.records[filename] = r
	}
}

// Lookup finds the record for an exact package filename.
// A miss is normal and is not an error.
func (idx *Index) Lookup(filename string) (Record, bool) {
	if idx == nil {
		return Record{}, false
	}
	r, ok := idx.records[filename]
	return r, ok
}

func (idx *Index) Count() int {
	if idx == nil {
		return 0
	}
	return len(idx.records)
}

// Sources returns the keys of the documents that
// make up the index.
func (idx *Index) Sources() []string {
	if idx == nil {
		return nil
	}
	return idx.sources
}
