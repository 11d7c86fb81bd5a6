package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDegreesMinutesSeconds(t *testing.T) {
	tests := []struct {
		name       string
		value      float64
		degrees    int
		minutes    int
		seconds    float64
		hemisphere string
	}{
		{"positive latitude", 45.0, 45, 0, 0, "N"},
		{"fractional latitude", 45.123, 45, 7, 22.8, "N"},
		{"negative latitude", -45.123, 45, 7, 22.8, "S"},
		{"zero maps to empty hemisphere", 0.0, 0, 0, 0, ""},
		{"just under a degree", 44.9999, 44, 59, 59.64, "N"},
		{"negative longitude", -93.0, 93, 0, 0, "S"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dms := ToDegreesMinutesSeconds(tt.value, "S", "N")
			assert.Equal(t, tt.degrees, dms.Degrees)
			assert.Equal(t, tt.minutes, dms.Minutes)
			assert.InDelta(t, tt.seconds, dms.Seconds, 1e-9)
			assert.Equal(t, tt.hemisphere, dms.Hemisphere)
		})
	}
}

func TestToDegreesMinutesSecondsCarriesRoundedSeconds(t *testing.T) {
	// 178.15 computes to 8 minutes and 59.99999999999949 seconds; the
	// 5-decimal rounding lands on exactly 60, which must carry into minutes
	// rather than escape the [0, 60) range.
	dms := ToDegreesMinutesSeconds(-178.15, "W", "E")
	assert.Equal(t, DMS{Degrees: 178, Minutes: 9, Seconds: 0, Hemisphere: "W"}, dms)
}

func TestToDegreesMinutesSecondsBounds(t *testing.T) {
	// Minutes stay in [0,59] and seconds in [0,60) across the whole range.
	for v := -180.0; v <= 180.0; v += 0.37 {
		dms := ToDegreesMinutesSeconds(v, "W", "E")
		assert.GreaterOrEqual(t, dms.Minutes, 0)
		assert.LessOrEqual(t, dms.Minutes, 59)
		assert.GreaterOrEqual(t, dms.Seconds, 0.0)
		assert.Less(t, dms.Seconds, 60.0)
		switch {
		case v < 0:
			assert.Equal(t, "W", dms.Hemisphere)
		case v > 0:
			assert.Equal(t, "E", dms.Hemisphere)
		default:
			assert.Equal(t, "", dms.Hemisphere)
		}
	}
}

func TestToRational(t *testing.T) {
	tests := []struct {
		value       float64
		numerator   int64
		denominator int64
	}{
		{0.1, 1, 10},
		{22.8, 114, 5},
		{250, 250, 1},
		{0, 0, 1},
		{-0.5, -1, 2},
		{45.123, 45123, 1000},
	}

	for _, tt := range tests {
		r, err := ToRational(tt.value)
		require.NoError(t, err)
		assert.Equal(t, tt.numerator, r.Numerator, "numerator of %v", tt.value)
		assert.Equal(t, tt.denominator, r.Denominator, "denominator of %v", tt.value)
	}
}

func TestToRationalRoundTrip(t *testing.T) {
	// The fraction must reconstruct the decimal exactly, with no binary drift.
	for _, v := range []float64{0.1, 0.2, 0.3, 7.38, 22.79999, 59.99999, 123.456} {
		r, err := ToRational(v)
		require.NoError(t, err)
		assert.Equal(t, v, float64(r.Numerator)/float64(r.Denominator), "round-trip of %v", v)
	}
}

func TestParseCoordinates(t *testing.T) {
	coord, err := ParseCoordinates("45.123,-123.12")
	require.NoError(t, err)
	assert.Equal(t, 45.123, coord.Latitude)
	assert.Equal(t, -123.12, coord.Longitude)

	// Whitespace around components is tolerated.
	coord, err = ParseCoordinates(" 45.0 , -93.0 ")
	require.NoError(t, err)
	assert.Equal(t, 45.0, coord.Latitude)
	assert.Equal(t, -93.0, coord.Longitude)
}

func TestParseCoordinatesRange(t *testing.T) {
	_, err := ParseCoordinates("91,0")
	assert.ErrorContains(t, err, "latitude")

	_, err = ParseCoordinates("0,181")
	assert.ErrorContains(t, err, "longitude")

	_, err = ParseCoordinates("-91,0")
	assert.ErrorContains(t, err, "latitude")

	_, err = ParseCoordinates("0,-181")
	assert.ErrorContains(t, err, "longitude")
}

func TestParseCoordinatesMalformed(t *testing.T) {
	for _, s := range []string{"", "45.0", "a,b", "1,2,3"} {
		_, err := ParseCoordinates(s)
		assert.Error(t, err, "input %q", s)
	}
}

func TestParseTags(t *testing.T) {
	assert.Nil(t, ParseTags(""))
	assert.Equal(t, []string{"school", "daycare"}, ParseTags("school, daycare"))
	assert.Equal(t, []string{"one"}, ParseTags("one"))
	assert.Equal(t, []string{"a", "b", "c"}, ParseTags(" a ,b, c"))
}
