// Package exifmeta builds EXIF tag blocks and embeds them into image files.
package exifmeta

import (
	"encoding/binary"
	"strings"

	"github.com/dsoprea/go-exif/v3"
	exifcommon "github.com/dsoprea/go-exif/v3/common"
	jpegstructure "github.com/dsoprea/go-jpeg-image-structure/v2"
	"golang.org/x/text/encoding/unicode"

	"github.com/bstardust/tadpoles-exif-tagger/internal/fileinfo"
	"github.com/bstardust/tadpoles-exif-tagger/pkg/common"
	"github.com/bstardust/tadpoles-exif-tagger/pkg/models"
)

const (
	// IFD0 pointer to the GPS child IFD.
	gpsPointerTagId = 0x8825

	// XPKeywords, the Windows keyword field in IFD0. Its defined encoding is
	// UTF-16 little-endian.
	xpKeywordsTagId = 0x9c9e

	// TimeZoneOffset. EXIF has no per-field timezone, so the UTC offset in
	// whole seconds is kept in the thumbnail IFD as a practical compromise.
	timeZoneOffsetTagId = 0x882a

	// EXIF's fixed-width timestamp layout, no timezone suffix.
	exifTimeLayout = "2006:01:02 15:04:05"
)

// Container is the full metadata structure of one image: the parsed JPEG
// segments plus the EXIF IFD chain being edited. It is mutated in place by
// Assemble and serialized exactly once by WriteTagged.
type Container struct {
	segments *jpegstructure.SegmentList
	rootIb   *exif.IfdBuilder

	// The builder does not expose its encode order, so it is carried here.
	// Both the jpegstructure builder and the fresh-builder path encode with
	// the default order.
	byteOrder binary.ByteOrder
}

// LoadContainer parses the image at path and returns its metadata container.
// Existing tags are preserved; an image without an EXIF block gets a fresh
// standard one.
func LoadContainer(path string) (*Container, error) {
	if !fileinfo.IsJPEGFile(path) {
		return nil, common.NewTagWriteError("%s: format does not support tag embedding", path)
	}

	jmp := jpegstructure.NewJpegMediaParser()
	intfc, err := jmp.ParseFile(path)
	if err != nil {
		return nil, common.NewTagWriteError("failed to parse %s: %v", path, err)
	}
	segments := intfc.(*jpegstructure.SegmentList)

	rootIb, err := segments.ConstructExifBuilder()
	if err != nil {
		rootIb, err = newRootBuilder()
		if err != nil {
			return nil, err
		}
	}

	return &Container{
		segments:  segments,
		rootIb:    rootIb,
		byteOrder: exifcommon.EncodeDefaultByteOrder,
	}, nil
}

// newRootBuilder creates an empty root IFD builder with the standard tag
// index, for images carrying no EXIF block yet.
func newRootBuilder() (*exif.IfdBuilder, error) {
	im, err := exifcommon.NewIfdMappingWithStandard()
	if err != nil {
		return nil, common.NewTagWriteError("failed to build IFD mapping: %v", err)
	}

	ti := exif.NewTagIndex()
	if err := exif.LoadStandardTags(ti); err != nil {
		return nil, common.NewTagWriteError("failed to load standard tags: %v", err)
	}

	ib := exif.NewIfdBuilder(im, ti, exifcommon.IfdStandardIfdIdentity, exifcommon.EncodeDefaultByteOrder)
	return ib, nil
}

// Assemble overlays the request's metadata onto the container. Only present
// inputs are written; absent inputs never clear existing fields. The GPS
// group is the exception: when geo is present it replaces any prior GPS
// group wholesale.
//
// Description and keywords land in fields some consumers ignore in favor of
// an XMP representation; that gap is documented, not worked around here.
func Assemble(c *Container, req *models.Request) error {
	if req.Geo != nil {
		block, err := BuildGPSBlock(req.Geo.Latitude, req.Geo.Longitude, req.Altitude)
		if err != nil {
			return err
		}
		if err := c.setGPS(block); err != nil {
			return err
		}
	}

	if req.Description != "" {
		if err := c.rootIb.SetStandardWithName("ImageDescription", req.Description); err != nil {
			return common.NewTagWriteError("failed to set description: %v", err)
		}
	}

	if req.Timestamp != nil {
		if err := c.setTimestamp(req.Timestamp); err != nil {
			return err
		}
	}

	if len(req.Tags) > 0 {
		if err := c.setKeywords(strings.Join(req.Tags, ",")); err != nil {
			return err
		}
	}

	return nil
}

// setGPS replaces the GPS child IFD with the given block.
func (c *Container) setGPS(block GPSBlock) error {
	// Drop any existing GPS pointer so stale fields cannot survive.
	if _, err := c.rootIb.DeleteAll(gpsPointerTagId); err != nil {
		return common.NewTagWriteError("failed to drop existing GPS group: %v", err)
	}

	gpsIb, err := exif.GetOrCreateIbFromRootIb(c.rootIb, exifcommon.IfdGpsInfoStandardIfdIdentity.String())
	if err != nil {
		return common.NewTagWriteError("failed to create GPS group: %v", err)
	}

	if err := gpsIb.SetStandardWithName("GPSVersionID", block.Version[:]); err != nil {
		return common.NewTagWriteError("failed to set GPS version: %v", err)
	}
	if err := gpsIb.SetStandardWithName("GPSAltitudeRef", []byte{block.AltitudeRef}); err != nil {
		return common.NewTagWriteError("failed to set altitude reference: %v", err)
	}
	if err := gpsIb.SetStandardWithName("GPSLatitudeRef", block.LatitudeRef); err != nil {
		return common.NewTagWriteError("failed to set latitude reference: %v", err)
	}
	if err := gpsIb.SetStandardWithName("GPSLatitude", block.Latitude[:]); err != nil {
		return common.NewTagWriteError("failed to set latitude: %v", err)
	}
	if err := gpsIb.SetStandardWithName("GPSLongitudeRef", block.LongitudeRef); err != nil {
		return common.NewTagWriteError("failed to set longitude reference: %v", err)
	}
	if err := gpsIb.SetStandardWithName("GPSLongitude", block.Longitude[:]); err != nil {
		return common.NewTagWriteError("failed to set longitude: %v", err)
	}

	if block.Altitude != nil {
		if err := gpsIb.SetStandardWithName("GPSAltitude", []exifcommon.Rational{*block.Altitude}); err != nil {
			return common.NewTagWriteError("failed to set altitude: %v", err)
		}
	}

	return nil
}

// setTimestamp writes the capture time into both the capture-time field and
// the primary-image modify-time field, and the UTC offset (when the source
// carried one) into the thumbnail IFD.
func (c *Container) setTimestamp(ts *models.Timestamp) error {
	formatted := ts.Time.Format(exifTimeLayout)

	exifIb, err := exif.GetOrCreateIbFromRootIb(c.rootIb, exifcommon.IfdExifStandardIfdIdentity.String())
	if err != nil {
		return common.NewTagWriteError("failed to create Exif group: %v", err)
	}
	if err := exifIb.SetStandardWithName("DateTimeOriginal", formatted); err != nil {
		return common.NewTagWriteError("failed to set capture time: %v", err)
	}
	if err := c.rootIb.SetStandardWithName("DateTime", formatted); err != nil {
		return common.NewTagWriteError("failed to set modify time: %v", err)
	}

	if ts.OffsetSeconds != nil {
		if err := c.setTimeZoneOffset(*ts.OffsetSeconds); err != nil {
			return err
		}
	}

	return nil
}

// setTimeZoneOffset stores the UTC offset in whole seconds as a signed long
// in the thumbnail IFD. The tag is written raw: it is not part of the
// standard thumbnail tag set.
func (c *Container) setTimeZoneOffset(offsetSeconds int) error {
	ifd1Ib, err := c.thumbnailIb()
	if err != nil {
		return err
	}

	encoded := make([]byte, 4)
	c.byteOrder.PutUint32(encoded, uint32(int32(offsetSeconds)))

	bt := exif.NewBuilderTag(
		exifcommon.Ifd1StandardIfdIdentity.UnindexedString(),
		timeZoneOffsetTagId,
		exifcommon.TypeSignedLong,
		exif.NewIfdBuilderTagValueFromBytes(encoded),
		c.byteOrder)

	if err := ifd1Ib.Set(bt); err != nil {
		return common.NewTagWriteError("failed to set timezone offset: %v", err)
	}
	return nil
}

// thumbnailIb returns the IFD1 builder, chaining a fresh one onto the root
// when the image has no thumbnail IFD yet.
func (c *Container) thumbnailIb() (*exif.IfdBuilder, error) {
	nextIb, err := c.rootIb.NextIb()
	if err != nil {
		return nil, common.NewTagWriteError("failed to read thumbnail group: %v", err)
	}
	if nextIb != nil {
		return nextIb, nil
	}

	im, err := exifcommon.NewIfdMappingWithStandard()
	if err != nil {
		return nil, common.NewTagWriteError("failed to build IFD mapping: %v", err)
	}
	ti := exif.NewTagIndex()
	if err := exif.LoadStandardTags(ti); err != nil {
		return nil, common.NewTagWriteError("failed to load standard tags: %v", err)
	}

	ifd1Ib := exif.NewIfdBuilder(im, ti, exifcommon.Ifd1StandardIfdIdentity, c.byteOrder)
	if err := c.rootIb.SetNextIb(ifd1Ib); err != nil {
		return nil, common.NewTagWriteError("failed to chain thumbnail group: %v", err)
	}

	return ifd1Ib, nil
}

// setKeywords writes the comma-joined tag list as UTF-16LE bytes into the
// Windows keywords field.
func (c *Container) setKeywords(keywords string) error {
	encoded, err := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewEncoder().Bytes([]byte(keywords))
	if err != nil {
		return common.NewTagWriteError("failed to encode keywords: %v", err)
	}

	bt := exif.NewBuilderTag(
		exifcommon.IfdStandardIfdIdentity.UnindexedString(),
		xpKeywordsTagId,
		exifcommon.TypeByte,
		exif.NewIfdBuilderTagValueFromBytes(encoded),
		c.byteOrder)

	if err := c.rootIb.Set(bt); err != nil {
		return common.NewTagWriteError("failed to set keywords: %v", err)
	}
	return nil
}
