package exifmeta

import (
	"math"

	exifcommon "github.com/dsoprea/go-exif/v3/common"

	"github.com/bstardust/tadpoles-exif-tagger/internal/geo"
	"github.com/bstardust/tadpoles-exif-tagger/pkg/common"
)

// GPSBlock holds the values for the EXIF GPS tag group. It is built fresh per
// image and discarded after serialization.
type GPSBlock struct {
	Version      [4]byte
	AltitudeRef  byte
	LatitudeRef  string
	Latitude     [3]exifcommon.Rational
	LongitudeRef string
	Longitude    [3]exifcommon.Rational
	Altitude     *exifcommon.Rational
}

// BuildGPSBlock assembles a GPS block from decimal coordinates. The caller is
// responsible for range-validating lat and lng beforehand. Altitude is in
// meters above sea level and rounded to the nearest integer.
//
// An altitude of exactly zero is treated as not provided and omitted. Likely
// a latent bug, but downstream tooling expects the field to be absent.
func BuildGPSBlock(lat, lng float64, altitude *float64) (GPSBlock, error) {
	latDMS := geo.ToDegreesMinutesSeconds(lat, "S", "N")
	lngDMS := geo.ToDegreesMinutesSeconds(lng, "W", "E")

	latRationals, err := dmsRationals(latDMS)
	if err != nil {
		return GPSBlock{}, err
	}
	lngRationals, err := dmsRationals(lngDMS)
	if err != nil {
		return GPSBlock{}, err
	}

	block := GPSBlock{
		Version:      [4]byte{2, 0, 0, 0},
		AltitudeRef:  0, // above sea level
		LatitudeRef:  latDMS.Hemisphere,
		Latitude:     latRationals,
		LongitudeRef: lngDMS.Hemisphere,
		Longitude:    lngRationals,
	}

	if altitude != nil && *altitude != 0 {
		alt, err := toExifRational(math.Round(*altitude))
		if err != nil {
			return GPSBlock{}, err
		}
		block.Altitude = &alt
	}

	return block, nil
}

// dmsRationals converts the three DMS components into EXIF rationals.
func dmsRationals(dms geo.DMS) ([3]exifcommon.Rational, error) {
	var out [3]exifcommon.Rational

	for i, component := range []float64{float64(dms.Degrees), float64(dms.Minutes), dms.Seconds} {
		r, err := toExifRational(component)
		if err != nil {
			return out, err
		}
		out[i] = r
	}

	return out, nil
}

// toExifRational converts a non-negative decimal into the unsigned rational
// the GPS tags require.
func toExifRational(value float64) (exifcommon.Rational, error) {
	r, err := geo.ToRational(value)
	if err != nil {
		return exifcommon.Rational{}, err
	}
	if r.Numerator < 0 || r.Numerator > math.MaxUint32 || r.Denominator > math.MaxUint32 {
		return exifcommon.Rational{}, common.NewParseError("%v does not fit an unsigned EXIF rational", value)
	}

	return exifcommon.Rational{
		Numerator:   uint32(r.Numerator),
		Denominator: uint32(r.Denominator),
	}, nil
}
