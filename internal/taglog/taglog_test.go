package taglog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanSkipsMalformedLines(t *testing.T) {
	log := strings.Join([]string{
		"this is not json",
		`{"date":"2023-06-01T10:00:00-05:00","outfile":"a.jpg","description":"Park"}`,
		"{truncated",
		`{"date":"2023-06-02T11:30:00-05:00","outfile":"b.jpg","description":"Zoo"}`,
	}, "\n")

	var entries []Entry
	err := Scan(strings.NewReader(log), func(e Entry) (bool, error) {
		entries = append(entries, e)
		return true, nil
	})
	require.NoError(t, err)

	require.Len(t, entries, 2)
	assert.Equal(t, "a.jpg", entries[0].OutFile)
	assert.Equal(t, "Park", entries[0].Description)
	assert.Equal(t, "b.jpg", entries[1].OutFile)
}

func TestScanStopsWhenCallbackReturnsFalse(t *testing.T) {
	log := strings.Join([]string{
		`{"date":"2023-06-01T10:00:00-05:00","outfile":"a.jpg","description":"Park"}`,
		`{"date":"2023-06-02T11:30:00-05:00","outfile":"b.jpg","description":"Zoo"}`,
	}, "\n")

	var count int
	err := Scan(strings.NewReader(log), func(e Entry) (bool, error) {
		count++
		return false, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestScanParsesOffset(t *testing.T) {
	log := `{"date":"2023-06-01T10:00:00-05:00","outfile":"a.jpg","description":"Park"}`

	var entry Entry
	err := Scan(strings.NewReader(log), func(e Entry) (bool, error) {
		entry = e
		return false, nil
	})
	require.NoError(t, err)

	require.NotNil(t, entry.Timestamp)
	assert.Equal(t, "2023:06:01 10:00:00", entry.Timestamp.Time.Format("2006:01:02 15:04:05"))
	require.NotNil(t, entry.Timestamp.OffsetSeconds)
	assert.Equal(t, -18000, *entry.Timestamp.OffsetSeconds)
}

func TestScanNaiveDateHasNoOffset(t *testing.T) {
	log := `{"date":"2023-06-01T10:00:00","outfile":"a.jpg","description":"Park"}`

	var entry Entry
	err := Scan(strings.NewReader(log), func(e Entry) (bool, error) {
		entry = e
		return false, nil
	})
	require.NoError(t, err)

	require.NotNil(t, entry.Timestamp)
	assert.Nil(t, entry.Timestamp.OffsetSeconds)
}

func TestScanZeroOffsetIsRecorded(t *testing.T) {
	// An explicit +00:00 is a real zone, not a missing one.
	log := `{"date":"2023-06-01T10:00:00+00:00","outfile":"a.jpg","description":"Park"}`

	var entry Entry
	err := Scan(strings.NewReader(log), func(e Entry) (bool, error) {
		entry = e
		return false, nil
	})
	require.NoError(t, err)

	require.NotNil(t, entry.Timestamp)
	require.NotNil(t, entry.Timestamp.OffsetSeconds)
	assert.Equal(t, 0, *entry.Timestamp.OffsetSeconds)
}

func TestScanBadDateAborts(t *testing.T) {
	log := `{"date":"June 1st","outfile":"a.jpg","description":"Park"}`

	err := Scan(strings.NewReader(log), func(e Entry) (bool, error) {
		t.Fatal("callback should not run")
		return false, nil
	})
	assert.ErrorContains(t, err, "invalid date")
}

func TestScanEmptyDate(t *testing.T) {
	log := `{"outfile":"a.jpg","description":"Park"}`

	var entry Entry
	err := Scan(strings.NewReader(log), func(e Entry) (bool, error) {
		entry = e
		return false, nil
	})
	require.NoError(t, err)
	assert.Nil(t, entry.Timestamp)
}
