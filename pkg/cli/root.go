// pkg/cli/root.go
package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/bstardust/tadpoles-exif-tagger/internal/config"
	"github.com/bstardust/tadpoles-exif-tagger/internal/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func Execute() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interruption signals
	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-signalCh
		logger.Info("Received interrupt signal, shutting down gracefully...")
		cancel()
	}()

	// Flags fall back to TADPOLES_TAGGER_* environment variables, so
	// credentials can stay out of shell history.
	viper.SetEnvPrefix("TADPOLES_TAGGER")
	viper.AutomaticEnv()

	rootCmd := &cobra.Command{
		Use:   "tadpoles-tagger",
		Short: "Embed EXIF metadata into daycare photo exports",
		Long:  `A tool for batch-embedding EXIF metadata (capture time, GPS location, description, keywords) into JPEG photos exported from a daycare report log.`,
	}

	// Global flags
	config := config.New()
	rootCmd.PersistentFlags().StringVar(&config.LogLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	// Add commands
	rootCmd.AddCommand(newTagCommand(ctx, config))
	rootCmd.AddCommand(newInspectCommand(config))

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logger.Error("Error executing command: %v", err)
		os.Exit(1)
	}
}
