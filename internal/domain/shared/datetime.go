package shared

import "time"

// Datetime is a fixed-offset timestamp, serialized as RFC 3339 with
// offset per spec §6 "JSON conventions". It is a thin wrapper rather than
// a bare time.Time so MarshalJSON always emits the offset form regardless
// of the zone the value was constructed in.
type Datetime struct {
	time.Time
}

// Now returns the current instant as a Datetime in UTC.
func Now() Datetime {
	return Datetime{Time: time.Now().UTC()}
}

// NewDatetime wraps t as a Datetime.
func NewDatetime(t time.Time) Datetime {
	return Datetime{Time: t}
}

// MarshalJSON renders the timestamp as RFC 3339 with its offset.
func (d Datetime) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Time.Format(time.RFC3339) + `"`), nil
}

// UnmarshalJSON parses an RFC 3339 (with offset) timestamp string.
func (d *Datetime) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}

	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return err
	}

	d.Time = t

	return nil
}
