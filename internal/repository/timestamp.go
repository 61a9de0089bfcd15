package repository

import (
	"database/sql/driver"
	"fmt"
	"time"
)

const storedTimeLayout = "2006-01-02T15:04:05.000000Z"

var scanTimeLayouts = []string{
	storedTimeLayout,
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
}

// timestamp is a time column that reads the native values of lib/pq and the text
// values SQLite hands back, and is always written as a fixed-width UTC string so
// that SQLite orders and compares it correctly.
type timestamp struct {
	time.Time
}

func (t *timestamp) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		t.Time = v.UTC()
		return nil
	case string:
		return t.parse(v)
	case []byte:
		return t.parse(string(v))
	case nil:
		return fmt.Errorf("timestamp: unexpected NULL")
	}
	return fmt.Errorf("timestamp: unsupported type %T", src)
}

func (t *timestamp) parse(s string) error {
	for _, layout := range scanTimeLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed.UTC()
			return nil
		}
	}
	return fmt.Errorf("timestamp: cannot parse %q", s)
}

func (t timestamp) Value() (driver.Value, error) {
	return formatTime(t.Time), nil
}

func formatTime(v time.Time) string {
	return v.UTC().Truncate(time.Microsecond).Format(storedTimeLayout)
}
