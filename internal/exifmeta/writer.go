package exifmeta

import (
	"io"
	"os"
	"time"

	"github.com/bstardust/tadpoles-exif-tagger/internal/logger"
	"github.com/bstardust/tadpoles-exif-tagger/pkg/common"
	"github.com/bstardust/tadpoles-exif-tagger/pkg/models"
)

// WriteTagged copies the source image to the destination path, then
// serializes the container's tag block and embeds it into the destination in
// place. The destination is byte-identical to the source except for the
// embedded tag block.
func WriteTagged(req *models.Request, c *Container) error {
	if err := copyFile(req.SourcePath, req.DestPath); err != nil {
		return err
	}

	if err := c.segments.SetExif(c.rootIb); err != nil {
		return common.NewTagWriteError("failed to serialize tag block for %s: %v", req.DestPath, err)
	}

	dest, err := os.OpenFile(req.DestPath, os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return common.NewTagWriteError("failed to open destination %s: %v", req.DestPath, err)
	}

	if err := c.segments.Write(dest); err != nil {
		dest.Close()
		return common.NewTagWriteError("failed to embed tag block into %s: %v", req.DestPath, err)
	}
	if err := dest.Close(); err != nil {
		return common.NewTagWriteError("failed to finalize %s: %v", req.DestPath, err)
	}

	logger.Debug("Wrote tagged copy %s", req.DestPath)
	return nil
}

// copyFile copies src to dest, preserving the file mode and modification
// time of the source.
func copyFile(src, dest string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return common.NewTagWriteError("failed to open source %s: %v", src, err)
	}
	defer srcFile.Close()

	info, err := srcFile.Stat()
	if err != nil {
		return common.NewTagWriteError("failed to stat source %s: %v", src, err)
	}

	destFile, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return common.NewTagWriteError("failed to create destination %s: %v", dest, err)
	}

	if _, err := io.Copy(destFile, srcFile); err != nil {
		destFile.Close()
		return common.NewTagWriteError("failed to copy %s to %s: %v", src, dest, err)
	}
	if err := destFile.Close(); err != nil {
		return common.NewTagWriteError("failed to finalize %s: %v", dest, err)
	}

	if err := os.Chtimes(dest, time.Now(), info.ModTime()); err != nil {
		logger.Warn("Failed to preserve modification time on %s: %v", dest, err)
	}

	return nil
}
