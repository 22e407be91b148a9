package pagination

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursorRoundTrip(t *testing.T) {
	ts := time.Date(2026, 8, 12, 9, 30, 15, 123456789, time.UTC)

	cursor := EncodeCursor(ts, 42)

	gotTS, gotID, err := DecodeCursor(cursor)
	require.NoError(t, err)
	assert.True(t, gotTS.Equal(ts))
	assert.Equal(t, int64(42), gotID)
}

func TestEncodeCursorNormalizesToUTC(t *testing.T) {
	loc := time.FixedZone("AEST", 10*3600)
	local := time.Date(2026, 8, 12, 19, 30, 0, 0, loc)

	gotTS, _, err := DecodeCursor(EncodeCursor(local, 1))
	require.NoError(t, err)
	assert.Equal(t, time.UTC, gotTS.Location())
	assert.True(t, gotTS.Equal(local))
}

func TestDecodeCursorRejectsGarbage(t *testing.T) {
	cases := map[string]string{
		"not base64":        "%%%not-base64%%%",
		"missing separator": base64.URLEncoding.EncodeToString([]byte("2026-08-12T09:30:15Z")),
		"bad timestamp":     base64.URLEncoding.EncodeToString([]byte("yesterday,42")),
		"bad id":            base64.URLEncoding.EncodeToString([]byte("2026-08-12T09:30:15Z,forty-two")),
	}

	for name, cursor := range cases {
		t.Run(name, func(t *testing.T) {
			_, _, err := DecodeCursor(cursor)
			assert.Error(t, err)
		})
	}
}
