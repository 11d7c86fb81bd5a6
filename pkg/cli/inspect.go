package cli

import (
	"encoding/json"
	"fmt"
	"os"

	dsoexif "github.com/dsoprea/go-exif/v3"
	"github.com/spf13/cobra"

	"github.com/bstardust/tadpoles-exif-tagger/internal/config"
	"github.com/bstardust/tadpoles-exif-tagger/internal/exifread"
	"github.com/bstardust/tadpoles-exif-tagger/internal/fileinfo"
	"github.com/bstardust/tadpoles-exif-tagger/internal/logger"
	"github.com/bstardust/tadpoles-exif-tagger/pkg/common"
)

func newInspectCommand(cfg *config.Config) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "inspect <image-file>",
		Short: "Print the EXIF metadata embedded in an image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger.SetLevel(cfg.LogLevel)
			return runInspect(args[0], asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Dump every tag as JSON instead of a summary")

	return cmd
}

func runInspect(path string, asJSON bool) error {
	if !fileinfo.IsImageFile(path) {
		return common.NewParseError("%s does not have a recognized image extension", path)
	}

	if asJSON {
		return dumpAllTags(path)
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	summary, err := exifread.Extract(f)
	if err != nil {
		return fmt.Errorf("failed to read metadata from %s: %w", path, err)
	}

	printSummary(summary)
	return nil
}

func printSummary(s *exifread.Summary) {
	if s.Description != "" {
		fmt.Printf("Description: %s\n", s.Description)
	}
	if s.DateTime != nil {
		fmt.Printf("Date/time:   %s\n", s.DateTime.Format("2006-01-02 15:04:05"))
	}
	if s.GPS != nil {
		fmt.Printf("Location:    %.6f, %.6f\n", s.GPS.Latitude, s.GPS.Longitude)
		if s.GPS.Altitude != nil {
			fmt.Printf("Altitude:    %.1f m\n", *s.GPS.Altitude)
		}
	}
	if s.Make != "" {
		fmt.Printf("Make:        %s\n", s.Make)
	}
	if s.Model != "" {
		fmt.Printf("Model:       %s\n", s.Model)
	}
}

// dumpAllTags prints every EXIF tag in the file, including maker-specific and
// thumbnail tags the summary leaves out.
func dumpAllTags(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	rawExif, err := dsoexif.SearchAndExtractExif(data)
	if err != nil {
		return fmt.Errorf("no EXIF data found in %s: %w", path, err)
	}

	entries, _, err := dsoexif.GetFlatExifData(rawExif, nil)
	if err != nil {
		return fmt.Errorf("failed to parse EXIF data: %w", err)
	}

	type tagDump struct {
		IfdPath string `json:"ifd_path"`
		TagId   uint16 `json:"tag_id"`
		TagName string `json:"tag_name"`
		Type    string `json:"type"`
		Value   string `json:"value"`
	}

	dump := make([]tagDump, 0, len(entries))
	for _, entry := range entries {
		dump = append(dump, tagDump{
			IfdPath: entry.IfdPath,
			TagId:   entry.TagId,
			TagName: entry.TagName,
			Type:    entry.TagTypeName,
			Value:   entry.Formatted,
		})
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(dump)
}
