// Package exifread extracts a human-oriented summary of the tags already
// embedded in an image. It is the read side of the tagger, used by the
// inspect command.
package exifread

import (
	"io"
	"time"

	"github.com/rwcarlsen/goexif/exif"
)

// Summary represents the commonly inspected EXIF fields.
type Summary struct {
	Description string
	DateTime    *time.Time
	GPS         *GPSInfo
	Make        string
	Model       string
}

// GPSInfo represents decoded GPS information.
type GPSInfo struct {
	Latitude  float64
	Longitude float64
	Altitude  *float64
}

// Extract reads the EXIF summary from a reader.
func Extract(r io.Reader) (*Summary, error) {
	x, err := exif.Decode(r)
	if err != nil {
		return nil, err
	}

	summary := &Summary{}

	if desc, err := x.Get(exif.ImageDescription); err == nil {
		if str, err := desc.StringVal(); err == nil {
			summary.Description = str
		}
	}

	if dt, err := x.DateTime(); err == nil {
		summary.DateTime = &dt
	}

	if lat, long, err := x.LatLong(); err == nil {
		summary.GPS = &GPSInfo{
			Latitude:  lat,
			Longitude: long,
		}

		if alt, err := x.Get(exif.GPSAltitude); err == nil {
			if rational, err := alt.Rat(0); err == nil && rational.Denom().Int64() != 0 {
				v := float64(rational.Num().Int64()) / float64(rational.Denom().Int64())
				summary.GPS.Altitude = &v
			}
		}
	}

	if mk, err := x.Get(exif.Make); err == nil {
		if str, err := mk.StringVal(); err == nil {
			summary.Make = str
		}
	}

	if model, err := x.Get(exif.Model); err == nil {
		if str, err := model.StringVal(); err == nil {
			summary.Model = str
		}
	}

	return summary, nil
}
