package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeLabel(t *testing.T) {
	tests := []struct {
		in      string
		minutes int
		out     string
		wantErr bool
	}{
		{in: "09:00 AM", minutes: 9 * 60, out: "09:00 AM"},
		{in: "12:00 PM", minutes: 12 * 60, out: "12:00 PM"},
		{in: "05:30 pm", minutes: 17*60 + 30, out: "05:30 PM"},
		{in: " 10:30 PM ", minutes: 22*60 + 30, out: "10:30 PM"},
		{in: "14:30", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			tl, err := ParseTimeLabel(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTimeLabel)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.minutes, tl.Minutes())
			assert.Equal(t, tt.out, tl.String())
		})
	}
}

func TestTimeLabel_On(t *testing.T) {
	loc := time.FixedZone("BDT", 6*60*60)
	date := time.Date(2025, 3, 14, 0, 0, 0, 0, loc)

	at := MustTimeLabel("02:30 PM").On(date)

	assert.Equal(t, time.Date(2025, 3, 14, 14, 30, 0, 0, loc), at)
}

func TestTimeLabel_AddMinutes(t *testing.T) {
	tl := MustTimeLabel("10:30 PM")

	next, err := tl.AddMinutes(60)
	require.NoError(t, err)
	assert.Equal(t, "11:30 PM", next.String())

	_, err = tl.AddMinutes(120)
	assert.ErrorIs(t, err, ErrTimeLabelOverflow)
}

func TestTimeLabel_JSONAndSQL(t *testing.T) {
	tl := MustTimeLabel("11:30 AM")

	data, err := json.Marshal(tl)
	require.NoError(t, err)
	assert.JSONEq(t, `"11:30 AM"`, string(data))

	var decoded TimeLabel
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, tl.Equal(decoded))

	v, err := tl.Value()
	require.NoError(t, err)
	assert.Equal(t, "11:30 AM", v)

	var scanned TimeLabel
	require.NoError(t, scanned.Scan([]byte("11:30 AM")))
	assert.True(t, tl.Equal(scanned))

	var zero TimeLabel
	assert.True(t, zero.IsZero())
	v, err = zero.Value()
	require.NoError(t, err)
	assert.Nil(t, v)
}
