// Package taglog reads the newline-delimited JSON log that drives tagging.
package taglog

import (
	"bufio"
	"encoding/json"
	"io"
	"strings"
	"time"

	"github.com/bstardust/tadpoles-exif-tagger/internal/logger"
	"github.com/bstardust/tadpoles-exif-tagger/pkg/common"
	"github.com/bstardust/tadpoles-exif-tagger/pkg/models"
)

// Record is one log line: when the image was captured, which file it landed
// in, and a free-form description.
type Record struct {
	Date        string `json:"date"`
	OutFile     string `json:"outfile"`
	Description string `json:"description"`
}

// Entry is a parsed record ready to drive one tagging operation.
type Entry struct {
	OutFile     string
	Description string
	Timestamp   *models.Timestamp
}

// dateLayouts are tried in order. RFC 3339 carries an explicit offset; the
// other layouts are offset-less local times.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// Scan reads log lines from r and yields an Entry per valid line. Lines that
// fail JSON parsing are skipped; a valid line with an unparseable date aborts
// the scan. The callback returns false to stop early.
func Scan(r io.Reader, fn func(Entry) (bool, error)) error {
	scanner := bufio.NewScanner(r)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var record Record
		if err := json.Unmarshal([]byte(line), &record); err != nil {
			logger.Debug("Skipping malformed log line %d: %v", lineNo, err)
			continue
		}

		entry, err := record.toEntry()
		if err != nil {
			return err
		}

		cont, err := fn(entry)
		if err != nil {
			return err
		}
		if !cont {
			return nil
		}
	}

	if err := scanner.Err(); err != nil {
		return common.NewParseError("failed to read log: %v", err)
	}
	return nil
}

// toEntry parses the record's date and builds an Entry. The UTC offset is
// recorded only when the date string carried one, so zero offsets stay
// distinguishable from missing zones.
func (r Record) toEntry() (Entry, error) {
	entry := Entry{
		OutFile:     r.OutFile,
		Description: r.Description,
	}

	if r.Date == "" {
		return entry, nil
	}

	ts, err := parseDate(r.Date)
	if err != nil {
		return Entry{}, err
	}
	entry.Timestamp = ts

	return entry, nil
}

func parseDate(s string) (*models.Timestamp, error) {
	for i, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}

		ts := &models.Timestamp{Time: t}
		if i == 0 {
			_, offset := t.Zone()
			ts.OffsetSeconds = &offset
		}
		return ts, nil
	}

	return nil, common.NewParseError("invalid date %q in log record", s)
}
