// Package geo converts decimal coordinates into the sexagesimal and rational
// encodings the EXIF GPS tag group requires.
package geo

import (
	"math"
	"strconv"
	"strings"

	"github.com/bstardust/tadpoles-exif-tagger/pkg/common"
	"github.com/bstardust/tadpoles-exif-tagger/pkg/models"
)

// DMS is a decimal degree value broken into degrees, minutes and seconds plus
// a hemisphere label. Hemisphere is empty only when the source value is
// exactly zero.
type DMS struct {
	Degrees    int
	Minutes    int
	Seconds    float64
	Hemisphere string
}

// Rational is an exact numerator/denominator pair. EXIF numeric tags are
// rational-typed, not floating point.
type Rational struct {
	Numerator   int64
	Denominator int64
}

// ToDegreesMinutesSeconds converts a signed decimal degree value into a DMS
// tuple. negLabel is used for negative values, posLabel for positive ones,
// e.g. ("S", "N") for latitude. Seconds are rounded to five decimal places.
func ToDegreesMinutesSeconds(value float64, negLabel, posLabel string) DMS {
	var hemisphere string
	switch {
	case value < 0:
		hemisphere = negLabel
	case value > 0:
		hemisphere = posLabel
	}

	abs := math.Abs(value)
	degrees := int(abs)
	fracMinutes := (abs - float64(degrees)) * 60
	minutes := int(fracMinutes)
	seconds := math.Round((fracMinutes-float64(minutes))*60*1e5) / 1e5

	// Rounding can land on exactly 60 seconds; carry so seconds stay in
	// [0, 60) and minutes in [0, 60).
	if seconds >= 60 {
		seconds = 0
		minutes++
	}
	if minutes == 60 {
		minutes = 0
		degrees++
	}

	return DMS{
		Degrees:    degrees,
		Minutes:    minutes,
		Seconds:    seconds,
		Hemisphere: hemisphere,
	}
}

// ToRational converts a decimal number to its minimal exact fraction. The
// conversion goes through the shortest decimal string that round-trips the
// value, so 0.1 becomes 1/10 rather than the binary-float approximation
// 3602879701896397/36028797018963968.
func ToRational(number float64) (Rational, error) {
	s := strconv.FormatFloat(number, 'f', -1, 64)

	negative := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	intPart, fracPart, _ := strings.Cut(s, ".")

	numerator, err := strconv.ParseInt(intPart+fracPart, 10, 64)
	if err != nil {
		return Rational{}, common.NewParseError("cannot express %q as a rational: %v", s, err)
	}

	denominator := int64(1)
	for range fracPart {
		denominator *= 10
	}

	if d := gcd(numerator, denominator); d > 1 {
		numerator /= d
		denominator /= d
	}
	if negative {
		numerator = -numerator
	}

	return Rational{Numerator: numerator, Denominator: denominator}, nil
}

func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// ParseCoordinates parses a "lat,lng" string such as "45.123,-123.12" into a
// range-validated coordinate pair.
func ParseCoordinates(geo string) (models.GeoCoordinate, error) {
	parts := strings.Split(geo, ",")
	if len(parts) != 2 {
		return models.GeoCoordinate{}, common.NewConfigError("geo %q must be a \"lat,lng\" pair", geo)
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return models.GeoCoordinate{}, common.NewConfigError("invalid latitude %q", parts[0])
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return models.GeoCoordinate{}, common.NewConfigError("invalid longitude %q", parts[1])
	}

	if lat < -90 || lat > 90 {
		return models.GeoCoordinate{}, common.NewConfigError("latitude %v does not fall in the range [-90, 90]", lat)
	}
	if lng < -180 || lng > 180 {
		return models.GeoCoordinate{}, common.NewConfigError("longitude %v does not fall in the range [-180, 180]", lng)
	}

	return models.GeoCoordinate{Latitude: lat, Longitude: lng}, nil
}

// ParseTags splits a comma-separated tag string into an ordered list, trimming
// whitespace around each entry. An empty input yields nil.
func ParseTags(tags string) []string {
	if tags == "" {
		return nil
	}

	parts := strings.Split(tags, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, strings.TrimSpace(p))
	}
	return out
}
