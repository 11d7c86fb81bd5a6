package config

import (
	"os"

	"github.com/bstardust/tadpoles-exif-tagger/internal/archive"
	"github.com/bstardust/tadpoles-exif-tagger/pkg/common"
	"github.com/bstardust/tadpoles-exif-tagger/pkg/models"
)

// Config represents the application configuration
type Config struct {
	LogLevel string
	Tag      TagConfig
	Archive  archive.Config
}

// TagConfig represents the configuration for one tagging run. Source, Dest and
// LogFile are required paths; the metadata fields are optional and nil when
// not provided.
type TagConfig struct {
	Source  string
	Dest    string
	LogFile string

	Geo      *models.GeoCoordinate
	Altitude *float64
	Tags     []string

	// Batch options. The default run processes only the first valid log
	// record; All processes every record.
	All         bool
	JournalPath string
	Resume      bool
}

// New creates a new configuration with default values
func New() *Config {
	return &Config{
		LogLevel: "info",
		Archive: archive.Config{
			Region: "us-east-1",
			UseSSL: true,
		},
	}
}

// Validate checks that every required path exists. It runs before any image
// I/O so configuration mistakes fail the run immediately.
func (c *Config) Validate() error {
	if c.Tag.Source == "" || c.Tag.Dest == "" || c.Tag.LogFile == "" {
		return common.NewConfigError("--src, --dest and --logfile are required")
	}
	if _, err := os.Stat(c.Tag.Source); err != nil {
		return common.NewConfigError("source path %q not found", c.Tag.Source)
	}
	if _, err := os.Stat(c.Tag.Dest); err != nil {
		return common.NewConfigError("destination path %q not found", c.Tag.Dest)
	}
	if _, err := os.Stat(c.Tag.LogFile); err != nil {
		return common.NewConfigError("json log file %q not found", c.Tag.LogFile)
	}
	return c.Archive.Validate()
}
