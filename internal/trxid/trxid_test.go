package trxid

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	day := time.Date(2024, 5, 7, 23, 59, 0, 0, time.UTC)

	tests := []struct {
		name string
		t    time.Time
		seq  int64
		want string
	}{
		{name: "padded sequence", t: day, seq: 42, want: "TRX070524000042"},
		{name: "first value", t: day, seq: 1, want: "TRX070524000001"},
		{name: "six digits", t: day, seq: 999999, want: "TRX070524999999"},
		{name: "widens past six digits", t: day, seq: 1234567, want: "TRX0705241234567"},
		{name: "two digit year", t: time.Date(2031, 12, 1, 0, 0, 0, 0, time.UTC), seq: 7, want: "TRX011231000007"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.t, tt.seq))
		})
	}
}

func TestFormat_Pure(t *testing.T) {
	day := time.Date(2024, 5, 7, 8, 0, 0, 0, time.UTC)
	assert.Equal(t, Format(day, 42), Format(day, 42))
	assert.NotEqual(t, Format(day, 42), Format(day, 43))
	assert.Regexp(t, regexp.MustCompile(`^TRX\d{12}$`), Format(day, 42))
}
