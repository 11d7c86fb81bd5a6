package fileinfo

import (
	"mime"
	"path/filepath"
	"strings"
)

var imageMimeTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".jpe":  "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
	".tiff": "image/tiff",
	".tif":  "image/tiff",
	".heic": "image/heic",
	".heif": "image/heif",
}

// IsJPEGFile reports whether the filename looks like a JPEG. Only JPEG
// supports the tag embedding this tool performs.
func IsJPEGFile(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg", ".jpe":
		return true
	default:
		return false
	}
}

// IsImageFile reports whether the filename has a known image extension.
func IsImageFile(filename string) bool {
	_, ok := imageMimeTypes[strings.ToLower(filepath.Ext(filename))]
	return ok
}

// DetectContentType determines a content type from the file extension,
// defaulting to binary data.
func DetectContentType(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))

	if mimeType, ok := imageMimeTypes[ext]; ok {
		return mimeType
	}

	if mimeType := mime.TypeByExtension(ext); mimeType != "" {
		return mimeType
	}

	return "application/octet-stream"
}
