package fileinfo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsJPEGFile(t *testing.T) {
	assert.True(t, IsJPEGFile("photo.jpg"))
	assert.True(t, IsJPEGFile("photo.JPEG"))
	assert.True(t, IsJPEGFile("photo.jpe"))
	assert.False(t, IsJPEGFile("photo.png"))
	assert.False(t, IsJPEGFile("photo"))
}

func TestIsImageFile(t *testing.T) {
	assert.True(t, IsImageFile("photo.jpg"))
	assert.True(t, IsImageFile("photo.PNG"))
	assert.True(t, IsImageFile("photo.heic"))
	assert.False(t, IsImageFile("notes.txt"))
	assert.False(t, IsImageFile("photo"))
}

func TestDetectContentType(t *testing.T) {
	assert.Equal(t, "image/jpeg", DetectContentType("photo.jpg"))
	assert.Equal(t, "image/png", DetectContentType("photo.png"))
	assert.Equal(t, "application/octet-stream", DetectContentType("data.bin"))
}
