package exifread

import (
	"image"
	"image/jpeg"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bstardust/tadpoles-exif-tagger/internal/exifmeta"
	"github.com/bstardust/tadpoles-exif-tagger/pkg/models"
)

func TestExtractReadsBackWrittenTags(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.jpg")
	dest := filepath.Join(dir, "tagged.jpg")

	f, err := os.Create(src)
	require.NoError(t, err)
	require.NoError(t, jpeg.Encode(f, image.NewGray(image.Rect(0, 0, 8, 8)), nil))
	require.NoError(t, f.Close())

	req := &models.Request{
		SourcePath:  src,
		DestPath:    dest,
		Description: "Park",
		Geo:         &models.GeoCoordinate{Latitude: 45.0, Longitude: -93.0},
	}

	c, err := exifmeta.LoadContainer(src)
	require.NoError(t, err)
	require.NoError(t, exifmeta.Assemble(c, req))
	require.NoError(t, exifmeta.WriteTagged(req, c))

	tagged, err := os.Open(dest)
	require.NoError(t, err)
	defer tagged.Close()

	summary, err := Extract(tagged)
	require.NoError(t, err)

	assert.Equal(t, "Park", summary.Description)
	require.NotNil(t, summary.GPS)
	assert.InDelta(t, 45.0, summary.GPS.Latitude, 1e-6)
	assert.InDelta(t, -93.0, summary.GPS.Longitude, 1e-6)
	assert.Nil(t, summary.GPS.Altitude)
}
