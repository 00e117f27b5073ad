package claims

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

const maxNanos = 999_999_999

var ErrTimestampFormat = errors.New("timestamp must be seconds.nanos")

// Timestamp records time elapsed from the UNIX epoch with nanosecond
// precision. Timestamps are totally ordered by (Seconds, Nanos) and are
// used by the service as monotonic stream positions.
type Timestamp struct {
	Seconds uint64 `json:"seconds"`
	Nanos   uint32 `json:"nanos"`
}

func Now() Timestamp {
	now := time.Now()
	return Timestamp{
		Seconds: uint64(now.Unix()),
		Nanos:   uint32(now.Nanosecond()),
	}
}

func FromSeconds(seconds uint64) Timestamp {
	return Timestamp{Seconds: seconds}
}

// Tick returns the immediate successor of t, carrying nanos into seconds
// at the top of the range. Used to advance a stream cursor past an
// already-seen entry.
func (t Timestamp) Tick() Timestamp {
	if t.Nanos == maxNanos {
		return Timestamp{Seconds: t.Seconds + 1}
	}
	return Timestamp{Seconds: t.Seconds, Nanos: t.Nanos + 1}
}

func (t Timestamp) Cmp(other Timestamp) int {
	if t.Seconds != other.Seconds {
		if t.Seconds < other.Seconds {
			return -1
		}
		return 1
	}
	if t.Nanos != other.Nanos {
		if t.Nanos < other.Nanos {
			return -1
		}
		return 1
	}
	return 0
}

func (t Timestamp) Before(other Timestamp) bool {
	return t.Cmp(other) < 0
}

// Max returns the later of t and other.
func (t Timestamp) Max(other Timestamp) Timestamp {
	if t.Cmp(other) >= 0 {
		return t
	}
	return other
}

func (t Timestamp) String() string {
	return fmt.Sprintf("%d.%d", t.Seconds, t.Nanos)
}

func ParseTimestamp(s string) (Timestamp, error) {
	secs, nanos, ok := strings.Cut(s, ".")
	if !ok {
		return Timestamp{}, ErrTimestampFormat
	}

	seconds, err := strconv.ParseUint(secs, 10, 64)
	if err != nil {
		return Timestamp{}, ErrTimestampFormat
	}

	n, err := strconv.ParseUint(nanos, 10, 32)
	if err != nil || n > maxNanos {
		return Timestamp{}, ErrTimestampFormat
	}

	return Timestamp{Seconds: seconds, Nanos: uint32(n)}, nil
}
