package claims

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimestampOrdering(t *testing.T) {
	t1 := Timestamp{Seconds: 10, Nanos: 500}
	t2 := Timestamp{Seconds: 10, Nanos: 1000}
	t3 := Timestamp{Seconds: 11}

	assert.True(t, t1.Before(t2))
	assert.True(t, t2.Before(t3))
	assert.True(t, t1.Before(t3))
	assert.Equal(t, 0, t2.Cmp(Timestamp{Seconds: 10, Nanos: 1000}))
	assert.Equal(t, t3, t1.Max(t3))
	assert.Equal(t, t3, t3.Max(t1))
}

func TestTimestampTick(t *testing.T) {
	ts := Timestamp{Seconds: 12345, Nanos: 6789}
	assert.Equal(t, Timestamp{Seconds: 12345, Nanos: 6790}, ts.Tick())

	carry := Timestamp{Seconds: 12345, Nanos: 999_999_999}
	assert.Equal(t, Timestamp{Seconds: 12346}, carry.Tick())
}

func TestTimestampParse(t *testing.T) {
	ts, err := ParseTimestamp("12345.6789")
	require.NoError(t, err)
	assert.Equal(t, Timestamp{Seconds: 12345, Nanos: 6789}, ts)
	assert.Equal(t, "12345.6789", ts.String())

	for _, bad := range []string{"invalid", "12345", "12345.", ".6789", "12345.1000000000"} {
		_, err := ParseTimestamp(bad)
		assert.ErrorIs(t, err, ErrTimestampFormat, bad)
	}
}

func TestTimestampNow(t *testing.T) {
	ts := Now()
	assert.Greater(t, ts.Seconds, uint64(0))
	assert.Less(t, ts.Nanos, uint32(1_000_000_000))
}

func TestTimestampJSON(t *testing.T) {
	ts := Timestamp{Seconds: 10, Nanos: 500}

	b, err := json.Marshal(ts)
	require.NoError(t, err)

	var rt Timestamp
	require.NoError(t, json.Unmarshal(b, &rt))
	assert.Equal(t, ts, rt)
}
