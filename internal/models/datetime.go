package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// Layouts accepted for zone-less timestamps. Fractional seconds are
// optional when parsing, so the seconds layout also covers "…:05.123".
var localDateTimeLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// DateTime is a timestamp on the wire. It reads RFC 3339 as well as the
// ISO-8601 local form without an offset, which is taken to be UTC.
// It is always written as RFC 3339.
type DateTime struct {
	time.Time
}

// NewDateTime wraps t. A nil t gives nil.
func NewDateTime(t *time.Time) *DateTime {
	if t == nil {
		return nil
	}
	return &DateTime{Time: *t}
}

// TimePtr returns the wrapped time, or nil for a nil DateTime.
func (d *DateTime) TimePtr() *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time
	return &t
}

// ParseDateTime parses an RFC 3339 or zone-less ISO-8601 timestamp.
func ParseDateTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	for _, layout := range localDateTimeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", s)
}

func (d *DateTime) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("timestamp must be a string: %w", err)
	}
	t, err := ParseDateTime(raw)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

func (d DateTime) MarshalJSON() ([]byte, error) {
	return d.Time.MarshalJSON()
}
