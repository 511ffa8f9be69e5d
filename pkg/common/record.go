package common

import "time"

// LoadRecord is one row of the half-hourly load dataset.
type LoadRecord struct {
	Date     time.Time `json:"date"`
	DateTime time.Time `json:"date_time"`
	Value    float64   `json:"value"`
	WeekNum  int       `json:"week_num"`
}
