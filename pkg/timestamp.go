package pkg

import (
	"encoding/json"
	"fmt"
	"time"
)

// TimestampLayout is the JSON form of a Timestamp: wall clock, no zone.
const TimestampLayout = "2006-01-02T15:04:05"

// Timestamp is a naive wall-clock time, as stored in TIMESTAMP WITHOUT TIME ZONE
// columns. Scan/encode the embedded time.Time when talking to the db.
type Timestamp struct {
	time.Time
}

func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC)}
}

// ParseTimestamp reads the zone-less layout, and RFC 3339 keeping its wall clock.
func ParseTimestamp(s string) (Timestamp, error) {
	if t, err := time.Parse(TimestampLayout, s); err == nil {
		return Timestamp{Time: t}, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return Timestamp{}, fmt.Errorf("invalid timestamp %q, expected YYYY-MM-DDTHH:MM:SS", s)
	}
	return NewTimestamp(t), nil
}

func (ts Timestamp) String() string {
	return ts.Format(TimestampLayout)
}

func (ts Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(ts.String())
}

func (ts *Timestamp) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseTimestamp(s)
	if err != nil {
		return err
	}
	*ts = parsed
	return nil
}
