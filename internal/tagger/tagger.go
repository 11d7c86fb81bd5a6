// Package tagger drives the tagging pipeline: scan the log, build a request
// per record, assemble the metadata container, and write the tagged copy.
package tagger

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bstardust/tadpoles-exif-tagger/internal/config"
	"github.com/bstardust/tadpoles-exif-tagger/internal/exifmeta"
	"github.com/bstardust/tadpoles-exif-tagger/internal/fileinfo"
	"github.com/bstardust/tadpoles-exif-tagger/internal/journal"
	"github.com/bstardust/tadpoles-exif-tagger/internal/logger"
	"github.com/bstardust/tadpoles-exif-tagger/internal/progress"
	"github.com/bstardust/tadpoles-exif-tagger/internal/taglog"
	"github.com/bstardust/tadpoles-exif-tagger/pkg/models"
)

// Archiver uploads a tagged copy to object storage.
type Archiver interface {
	ObjectExists(ctx context.Context, objectKey string) (bool, error)
	UploadFile(ctx context.Context, reader io.Reader, objectKey string, size int64, metadata map[string]string, contentType string) error
}

// Runner executes one tagging run. Processing is sequential: one record at a
// time, one image per record.
type Runner struct {
	ctx      context.Context
	cfg      *config.Config
	journal  *journal.Journal
	progress *progress.Reporter
	archiver Archiver
}

// New creates a Runner. journal and archiver may be nil when journaling or
// archiving is not requested.
func New(ctx context.Context, cfg *config.Config, jnl *journal.Journal, prog *progress.Reporter, archiver Archiver) *Runner {
	return &Runner{
		ctx:      ctx,
		cfg:      cfg,
		journal:  jnl,
		progress: prog,
		archiver: archiver,
	}
}

// Run scans the log and tags images. The default run reproduces the legacy
// tool's behavior of processing only the first valid record, then stopping;
// All processes every record, skipping journaled outputs when resuming.
func (r *Runner) Run() error {
	logFile, err := os.Open(r.cfg.Tag.LogFile)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer logFile.Close()

	r.progress.Start()

	scanErr := taglog.Scan(logFile, func(entry taglog.Entry) (bool, error) {
		if r.ctx.Err() != nil {
			return false, r.ctx.Err()
		}

		req := r.buildRequest(entry)

		if r.cfg.Tag.All && r.cfg.Tag.Resume && r.journal != nil && r.journal.IsTagged(req.DestPath) {
			logger.Debug("Skipping already-tagged %s", req.DestPath)
			r.progress.Skip(req.DestPath)
			return true, nil
		}

		if err := r.tagOne(req); err != nil {
			if !r.cfg.Tag.All {
				return false, err
			}
			logger.Error("Failed to tag %s: %v", req.SourcePath, err)
			r.progress.Error(req.SourcePath, err)
			return true, nil
		}

		if r.journal != nil {
			r.journal.MarkTagged(req.DestPath)
			if err := r.journal.Save(); err != nil {
				logger.Warn("Failed to save journal: %v", err)
			}
		}
		r.progress.Tagged(req.DestPath)

		if r.archiver != nil {
			if err := r.archiveOne(entry, req); err != nil {
				if !r.cfg.Tag.All {
					return false, err
				}
				logger.Error("Failed to archive %s: %v", req.DestPath, err)
				r.progress.Error(req.DestPath, err)
			}
		}

		// One record per run unless a full batch was requested.
		return r.cfg.Tag.All, nil
	})

	r.progress.Finish()
	return scanErr
}

// buildRequest combines one log entry with the run-level flags into an
// immutable request.
func (r *Runner) buildRequest(entry taglog.Entry) *models.Request {
	return &models.Request{
		SourcePath:  filepath.Join(r.cfg.Tag.Source, entry.OutFile),
		DestPath:    filepath.Join(r.cfg.Tag.Dest, entry.OutFile),
		Description: entry.Description,
		Timestamp:   entry.Timestamp,
		Geo:         r.cfg.Tag.Geo,
		Altitude:    r.cfg.Tag.Altitude,
		Tags:        r.cfg.Tag.Tags,
	}
}

// tagOne runs the pipeline for a single image: load, assemble, write.
func (r *Runner) tagOne(req *models.Request) error {
	container, err := exifmeta.LoadContainer(req.SourcePath)
	if err != nil {
		return err
	}

	if err := exifmeta.Assemble(container, req); err != nil {
		return err
	}

	return exifmeta.WriteTagged(req, container)
}

// archiveOne uploads the tagged copy with its metadata as object metadata.
// Already-archived objects are left alone.
func (r *Runner) archiveOne(entry taglog.Entry, req *models.Request) error {
	exists, err := r.archiver.ObjectExists(r.ctx, entry.OutFile)
	if err != nil {
		return fmt.Errorf("failed to check archive for %s: %w", entry.OutFile, err)
	}
	if exists {
		logger.Debug("Skipping archive of %s, object already present", entry.OutFile)
		return nil
	}

	f, err := os.Open(req.DestPath)
	if err != nil {
		return fmt.Errorf("failed to open tagged copy: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat tagged copy: %w", err)
	}

	metadata := map[string]string{
		"original-filename": entry.OutFile,
	}
	if req.Description != "" {
		metadata["description"] = req.Description
	}
	if req.Timestamp != nil {
		metadata["capture-time"] = req.Timestamp.Time.Format("2006-01-02T15:04:05")
	}
	if len(req.Tags) > 0 {
		metadata["tags"] = strings.Join(req.Tags, ",")
	}

	contentType := fileinfo.DetectContentType(req.DestPath)

	return r.archiver.UploadFile(r.ctx, f, entry.OutFile, info.Size(), metadata, contentType)
}
