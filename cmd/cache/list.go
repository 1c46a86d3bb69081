package cache

import (
	"fmt"
	"path/filepath"

	"github.com/basnijholt/pixi-to-conda-lock/pkg/airutil"
	"github.com/basnijholt/pixi-to-conda-lock/pkg/repodata"
	"github.com/go-logr/logr"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Lists the cached repodata documents",
	Args:  cobra.NoArgs,
	RunE:  list,
}

const flagRepodataDir = "repodata-dir"

func list(cmd *cobra.Command, _ []string) error {
	log := logr.FromContextOrDiscard(cmd.Context())

	repodataDir, _ := cmd.Flags().GetString(flagRepodataDir)
	dir := repodata.CacheDir(cmd.Context(), airutil.ExpandEnv(repodataDir))

	log.Info("reading cache dir", "dir", dir)
	paths, err := repodata.ListDocuments(cmd.Context(), dir)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	var total int
	for _, path := range paths {
		doc, err := repodata.ReadDocument(cmd.Context(), path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		count := len(doc.Packages) + len(doc.PackagesConda)
		total += count
		_, _ = fmt.Fprintf(out, "%s\t%s\t%d\n", filepath.Base(path), doc.Info.Subdir, count)
	}
	_, _ = fmt.Fprintf(out, "%d documents, %d packages\n", len(paths), total)
	return nil
}
