package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-05-07")
	require.NoError(t, err)
	assert.Equal(t, 2024, d.Year())
	assert.Equal(t, time.May, d.Month())
	assert.Equal(t, 7, d.Day())
	assert.Equal(t, "2024-05-07", d.String())

	_, err = ParseDate("07/05/2024")
	assert.Error(t, err)
}

func TestDate_JSON(t *testing.T) {
	d, _ := ParseDate("2024-05-07")

	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2024-05-07"`, string(b))

	var back Date
	require.NoError(t, json.Unmarshal(b, &back))
	assert.True(t, d.Equal(back.Time))

	assert.Error(t, json.Unmarshal([]byte(`"not a date"`), &back))
}

func TestDate_Scan(t *testing.T) {
	tests := []struct {
		name    string
		src     any
		want    string
		wantErr bool
	}{
		{name: "time", src: time.Date(2024, 5, 7, 13, 0, 0, 0, time.Local), want: "2024-05-07"},
		{name: "string", src: "2024-05-07", want: "2024-05-07"},
		{name: "timestamp string", src: "2024-05-07T00:00:00Z", want: "2024-05-07"},
		{name: "bytes", src: []byte("2024-12-31"), want: "2024-12-31"},
		{name: "int", src: 42, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Date
			err := d.Scan(tt.src)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, d.String())
		})
	}
}

func TestDate_Value(t *testing.T) {
	d, _ := ParseDate("2024-05-07")
	v, err := d.Value()
	assert.NoError(t, err)
	assert.Equal(t, "2024-05-07", v)
}
