package models

import "time"

// GeoCoordinate is a validated latitude/longitude pair in decimal degrees.
// Latitude is in [-90, 90], longitude in [-180, 180]; values are range-checked
// at parse time, never here.
type GeoCoordinate struct {
	Latitude  float64
	Longitude float64
}

// Timestamp is a capture time plus an optional UTC offset. OffsetSeconds is nil
// when the source value carried no timezone, so "no zone" and "+00:00" stay
// distinguishable.
type Timestamp struct {
	Time          time.Time
	OffsetSeconds *int
}

// Request describes one tagging operation: where the image comes from, where
// the tagged copy goes, and which metadata to overlay. Optional fields are
// pointers (or nil slices) rather than zero-value sentinels. A Request is
// built once per log record and not mutated afterwards.
type Request struct {
	SourcePath  string
	DestPath    string
	Description string
	Timestamp   *Timestamp
	Geo         *GeoCoordinate
	Altitude    *float64
	Tags        []string
}
