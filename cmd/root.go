package cmd

import (
	"context"
	"errors"
	"os"

	"github.com/basnijholt/pixi-to-conda-lock/cmd/cache"
	"github.com/basnijholt/pixi-to-conda-lock/pkg/airutil"
	"github.com/basnijholt/pixi-to-conda-lock/pkg/converter"
	"github.com/basnijholt/pixi-to-conda-lock/pkg/repodata"
	"github.com/djcass44/go-utils/logging"
	"github.com/go-logr/logr"
	"github.com/spf13/cobra"
	"go.trai.ch/zerr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var command = &cobra.Command{
	Use:          "pixi-to-conda-lock <pixi.lock>",
	Short:        "convert a pixi.lock into conda-lock.yml files",
	SilenceUsage: true,
	Args:         cobra.ExactArgs(1),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logLevel, _ := cmd.Flags().GetInt(flagLogLevel)

		zc := zap.NewProductionConfig()
		zc.Level = zap.NewAtomicLevelAt(zapcore.Level(logLevel * -1))

		_, ctx := logging.NewZap(cmd.Context(), zc)
		cmd.SetContext(ctx)
	},
	RunE: convert,
}

const (
	flagLogLevel     = "v"
	flagOutput       = "output"
	flagEnvironment  = "environment"
	flagRepodataDir  = "repodata-dir"
	flagChannelAlias = "channel-alias"
)

func init() {
	command.PersistentFlags().Int(flagLogLevel, 0, "log level. Higher is more")
	command.PersistentFlags().String(flagRepodataDir, "", "repodata cache directory (defaults to the rattler cache)")

	command.Flags().StringP(flagOutput, "o", ".", "directory to write conda-lock files to")
	command.Flags().StringP(flagEnvironment, "e", "", "environment to convert (defaults to all)")
	command.Flags().String(flagChannelAlias, converter.DefaultChannelAlias, "channel alias stripped from channel URLs")

	_ = command.MarkFlagDirname(flagOutput)
	_ = command.MarkPersistentFlagDirname(flagRepodataDir)

	command.AddCommand(cache.Command)
}

func convert(cmd *cobra.Command, args []string) error {
	log := logr.FromContextOrDiscard(cmd.Context())

	outputDir, _ := cmd.Flags().GetString(flagOutput)
	env, _ := cmd.Flags().GetString(flagEnvironment)
	repodataDir, _ := cmd.Flags().GetString(flagRepodataDir)
	channelAlias, _ := cmd.Flags().GetString(flagChannelAlias)

	dir := repodata.CacheDir(cmd.Context(), airutil.ExpandEnv(repodataDir))
	log.Info("loading repodata", "dir", dir)
	idx, err := repodata.LoadIndex(cmd.Context(), dir)
	if err != nil {
		logError(log, err, "failed to load repodata")
		return err
	}

	written, err := converter.Assemble(cmd.Context(), converter.Options{
		LockPath:     args[0],
		OutputDir:    airutil.ExpandEnv(outputDir),
		Environment:  env,
		Index:        idx,
		ChannelAlias: channelAlias,
	})
	if err != nil {
		logError(log, err, "conversion failed")
		return err
	}
	log.Info("conversion complete", "files", written)
	return nil
}

// logError logs err along with any metadata attached
// anywhere in its chain.
func logError(log logr.Logger, err error, msg string) {
	var kv []any
	for e := err; e != nil; e = errors.Unwrap(e) {
		z, ok := e.(*zerr.Error)
		if !ok {
			continue
		}
		for k, v := range z.Metadata() {
			kv = append(kv, k, v)
		}
	}
	log.Error(err, msg, kv...)
}

// run executes the command and returns the process exit code.
func run(ctx context.Context) int {
	if err := command.ExecuteContext(ctx); err != nil {
		return 1
	}
	return 0
}

func Execute(version string) {
	command.Version = version
	os.Exit(run(context.Background()))
}
