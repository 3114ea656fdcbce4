package excel

import (
	"strconv"
	"strings"
	"time"
)

// Excel stores dates as day counts since 1899-12-30; the Unix epoch sits
// 25569 days after that.
const (
	epochOffsetDays = 25569
	millisPerDay    = 86_400_000
)

// dateLayouts are tried in order when a cell holds a textual date.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"02/01/2006",
	"01-02-2006",
	"2006/01/02",
}

// SerialToTime converts an Excel day-count serial to UTC time.
func SerialToTime(serial float64) time.Time {
	ms := int64((serial - epochOffsetDays) * millisPerDay)
	return time.UnixMilli(ms).UTC()
}

// ParseDate converts a heterogeneous date cell to a time. Empty cells and the
// literal placeholder "-" yield nil. Numeric cells are treated as day-count
// serials. Anything else is tried against the known layouts; unparseable
// values yield nil rather than an error, so a bad date never rejects a row.
func ParseDate(raw string) *time.Time {
	v := strings.TrimSpace(raw)
	if v == "" || v == "-" {
		return nil
	}

	if serial, err := strconv.ParseFloat(v, 64); err == nil {
		t := SerialToTime(serial)
		return &t
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			t = t.UTC()
			return &t
		}
	}
	return nil
}
