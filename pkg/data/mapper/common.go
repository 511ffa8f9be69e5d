package mapper

import (
	"fmt"
	"time"

	"github.com/peter-kozarec/loadcast/pkg/common"
)

// BinaryLoadRecord is the on-disk layout of one dataset row. Fields
// are 8-byte aligned so the struct carries no padding.
type BinaryLoadRecord struct {
	TimeStamp int64 // unix nanoseconds
	Value     float64
	WeekNum   int64
}

func (b *BinaryLoadRecord) ToLoadRecord(record *common.LoadRecord) {
	ts := time.Unix(0, b.TimeStamp).UTC()
	record.DateTime = ts
	record.Date = ts.Truncate(24 * time.Hour)
	record.Value = b.Value
	record.WeekNum = int(b.WeekNum)
}

// FindStart binary-searches for the first record with a timestamp at
// or after from.
func FindStart(r *Reader[BinaryLoadRecord], from time.Time) (int64, error) {
	entryCount, err := r.EntryCount()
	if err != nil {
		return 0, fmt.Errorf("error getting entry count: %w", err)
	}
	if entryCount == 0 {
		return 0, fmt.Errorf("entry count is zero")
	}

	target := from.UnixNano()
	var entry BinaryLoadRecord

	low := int64(0)
	high := entryCount - 1

	for low <= high {
		mid := (low + high) / 2
		if err := r.Read(mid, &entry); err != nil {
			return 0, fmt.Errorf("error reading entry at index %d: %w", mid, err)
		}
		if entry.TimeStamp < target {
			low = mid + 1
		} else {
			high = mid - 1
		}
	}

	if low >= entryCount {
		return 0, fmt.Errorf("no entry found with timestamp >= %s", from)
	}
	return low, nil
}

// LoadSeries reads count records starting at the first timestamp at or
// after from and returns them as a validated series.
func LoadSeries(r *Reader[BinaryLoadRecord], from time.Time, count int) (common.Series, error) {
	start, err := FindStart(r, from)
	if err != nil {
		return common.Series{}, err
	}

	records := make([]common.LoadRecord, 0, count)
	var entry BinaryLoadRecord
	for i := int64(0); i < int64(count); i++ {
		if err := r.Read(start+i, &entry); err != nil {
			return common.Series{}, fmt.Errorf("error reading entry at index %d: %w", start+i, err)
		}
		var record common.LoadRecord
		entry.ToLoadRecord(&record)
		records = append(records, record)
	}
	return common.FromRecords(records)
}
