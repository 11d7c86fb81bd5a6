package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/bstardust/tadpoles-exif-tagger/internal/archive"
	"github.com/bstardust/tadpoles-exif-tagger/internal/config"
	"github.com/bstardust/tadpoles-exif-tagger/internal/geo"
	"github.com/bstardust/tadpoles-exif-tagger/internal/journal"
	"github.com/bstardust/tadpoles-exif-tagger/internal/logger"
	"github.com/bstardust/tadpoles-exif-tagger/internal/progress"
	"github.com/bstardust/tadpoles-exif-tagger/internal/tagger"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

func newTagCommand(ctx context.Context, cfg *config.Config) *cobra.Command {
	var (
		geoFlag  string
		altFlag  float64
		tagsFlag string
	)

	cmd := &cobra.Command{
		Use:   "tag [flags]",
		Short: "Tag JPEG copies with metadata from a report log",
		RunE: func(cmd *cobra.Command, args []string) error {
			bindFlags(cmd)
			if geoFlag != "" {
				coord, err := geo.ParseCoordinates(geoFlag)
				if err != nil {
					return err
				}
				cfg.Tag.Geo = &coord
			}
			if cmd.Flags().Changed("alt") {
				cfg.Tag.Altitude = &altFlag
			}
			if tagsFlag != "" {
				cfg.Tag.Tags = geo.ParseTags(tagsFlag)
			}
			return runTag(cmd.Context(), cfg)
		},
	}

	// Source and output flags
	cmd.Flags().StringVar(&cfg.Tag.Source, "src", "", "Directory containing the source JPEG files (required)")
	cmd.Flags().StringVar(&cfg.Tag.Dest, "dest", "", "Directory the tagged copies are written to (required)")
	cmd.Flags().StringVar(&cfg.Tag.LogFile, "logfile", "", "Path to the JSON report log (required)")

	// Metadata flags
	cmd.Flags().StringVar(&geoFlag, "geo", "", "GPS coordinates as decimal \"lat,lng\"")
	cmd.Flags().Float64Var(&altFlag, "alt", 0, "GPS altitude in meters")
	cmd.Flags().StringVar(&tagsFlag, "tags", "", "Comma-separated keywords written to XPKeywords")

	// Batch options
	cmd.Flags().BoolVar(&cfg.Tag.All, "all", false, "Process every log record instead of only the first")
	cmd.Flags().StringVar(&cfg.Tag.JournalPath, "journal", "", "Path to journal file for resumable batch runs")
	cmd.Flags().BoolVar(&cfg.Tag.Resume, "resume", false, "Skip outputs recorded in the journal")

	// Archive flags
	cmd.Flags().StringVar(&cfg.Archive.Endpoint, "archive-endpoint", "", "S3 endpoint URL for archiving tagged copies")
	cmd.Flags().StringVar(&cfg.Archive.Region, "archive-region", "us-east-1", "S3 region")
	cmd.Flags().StringVar(&cfg.Archive.Bucket, "archive-bucket", "", "S3 bucket name")
	cmd.Flags().StringVar(&cfg.Archive.AccessKey, "archive-access-key", "", "S3 access key")
	cmd.Flags().StringVar(&cfg.Archive.SecretKey, "archive-secret-key", "", "S3 secret key")
	cmd.Flags().BoolVar(&cfg.Archive.UseSSL, "archive-use-ssl", true, "Use SSL for the S3 connection")
	cmd.Flags().StringVar(&cfg.Archive.Prefix, "archive-prefix", "", "Prefix for archived object keys")

	return cmd
}

// bindFlags gives every flag an environment fallback: --archive-access-key can
// come from TADPOLES_TAGGER_ARCHIVE_ACCESS_KEY, keeping credentials out of
// shell history.
func bindFlags(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		key := strings.ReplaceAll(f.Name, "-", "_")
		viper.BindPFlag(key, f)

		if !f.Changed && viper.IsSet(key) {
			cmd.Flags().Set(f.Name, viper.GetString(key))
		}
	})
}

func runTag(ctx context.Context, cfg *config.Config) error {
	// Initialize logger
	logger.SetLevel(cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		return err
	}

	// Initialize journal for resumable batch runs
	var jnl *journal.Journal
	if cfg.Tag.All {
		jnl = journal.New(cfg.Tag.JournalPath)
		if cfg.Tag.Resume {
			if err := jnl.Load(); err != nil {
				logger.Warn("Could not load journal: %v", err)
			}
		}
	}

	// Initialize archive client when an endpoint was given
	var archiver tagger.Archiver
	if cfg.Archive.Enabled() {
		client, err := archive.New(ctx, cfg.Archive)
		if err != nil {
			return fmt.Errorf("failed to initialize archive client: %w", err)
		}
		archiver = client
	}

	// Initialize progress reporter
	progressReporter := progress.New()

	// Start tagging
	run := tagger.New(ctx, cfg, jnl, progressReporter, archiver)
	if err := run.Run(); err != nil {
		return fmt.Errorf("tagging failed: %w", err)
	}

	return nil
}
