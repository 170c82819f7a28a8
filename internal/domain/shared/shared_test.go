package shared

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstance_Valid(t *testing.T) {
	for _, i := range ValidInstances {
		assert.True(t, i.Valid(), i)
	}

	assert.False(t, Instance("xx").Valid())
}

func TestParseInstance(t *testing.T) {
	i, err := ParseInstance("en")
	require.NoError(t, err)
	assert.Equal(t, InstanceEN, i)

	_, err = ParseInstance("zz")
	assert.Error(t, err)
}

func TestDatetime_MarshalJSON_IncludesOffset(t *testing.T) {
	loc := time.FixedZone("", 2*60*60)
	d := NewDatetime(time.Date(2023, 6, 15, 10, 30, 0, 0, loc))

	raw, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2023-06-15T10:30:00+02:00"`, string(raw))
}

func TestDatetime_UnmarshalJSON_RoundTrips(t *testing.T) {
	var d Datetime
	err := json.Unmarshal([]byte(`"2023-06-15T10:30:00Z"`), &d)
	require.NoError(t, err)

	assert.Equal(t, 2023, d.Time.Year())
	assert.Equal(t, time.Month(6), d.Time.Month())
	assert.Equal(t, 15, d.Time.Day())
}

func TestDatetime_UnmarshalJSON_RejectsMalformed(t *testing.T) {
	var d Datetime
	err := json.Unmarshal([]byte(`"not-a-date"`), &d)
	assert.Error(t, err)
}
