package journal

import (
	"testing"
	"time"

	jerrors "github.com/livp123/edjournal/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLine(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		wantErr bool
		event   string
	}{
		{"object", `{"event":"Music","MusicTrack":"NoTrack"}`, false, "Music"},
		{"crlf", "{\"event\":\"Shutdown\"}\r", false, "Shutdown"},
		{"no discriminant", `{"timestamp":"2024-05-01T12:00:00Z"}`, false, ""},
		{"non-string discriminant", `{"event":42}`, false, ""},
		{"empty", "", true, ""},
		{"blank", "   ", true, ""},
		{"truncated", `{"event":"FSD`, true, ""},
		{"array", `[1,2,3]`, true, ""},
		{"null", `null`, true, ""},
		{"trailing", `{"event":"A"} {"event":"B"}`, true, ""},
		{"stray closing brace", `{"event":"Shutdown"}}`, true, ""},
		{"stray closing bracket", `{"event":"Shutdown"}]`, true, ""},
		{"trailing whitespace", "{\"event\":\"Shutdown\"}  \t", false, "Shutdown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := ParseLine(tt.line)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, jerrors.ErrMalformedRecord)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.event, rec.Event())
		})
	}
}

func TestRecordAccessors(t *testing.T) {
	rec, err := ParseLine(`{"event":"Scan","timestamp":"2024-05-01T12:00:00Z","BodyID":7,"SystemAddress":10477373803,` +
		`"Name":"Sol","Mass":0.5,"Landable":true,"Pos":[1,2.5,-3],"Nothing":null,"Bad":"x","BadTime":"yesterday"}`)
	require.NoError(t, err)

	id, err := rec.Int("BodyID")
	require.NoError(t, err)
	assert.Equal(t, 7, id)

	addr, err := rec.Int64("SystemAddress")
	require.NoError(t, err)
	assert.Equal(t, int64(10477373803), addr)

	name, err := rec.String("Name")
	require.NoError(t, err)
	assert.Equal(t, "Sol", name)

	mass, err := rec.Float("Mass")
	require.NoError(t, err)
	assert.InDelta(t, 0.5, mass, 1e-9)

	landable, err := rec.Bool("Landable")
	require.NoError(t, err)
	assert.True(t, landable)

	pos, err := rec.Floats("Pos")
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2.5, -3}, pos)

	ts, err := rec.Time("timestamp")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC), ts)

	t.Run("missing", func(t *testing.T) {
		_, err := rec.String("Absent")
		assert.ErrorIs(t, err, jerrors.ErrMissingField)
		_, err = rec.Float("Nothing")
		assert.ErrorIs(t, err, jerrors.ErrMissingField, "null counts as absent")
		assert.False(t, rec.Has("Nothing"))
	})

	t.Run("mismatch", func(t *testing.T) {
		_, err := rec.Int("Mass")
		assert.ErrorIs(t, err, jerrors.ErrTypeMismatch, "fractional number is not an int")
		_, err = rec.Float("Bad")
		assert.ErrorIs(t, err, jerrors.ErrTypeMismatch)
		_, err = rec.String("BodyID")
		assert.ErrorIs(t, err, jerrors.ErrTypeMismatch)
		_, err = rec.Bool("Name")
		assert.ErrorIs(t, err, jerrors.ErrTypeMismatch)
		_, err = rec.Floats("Name")
		assert.ErrorIs(t, err, jerrors.ErrTypeMismatch)
		_, err = rec.Time("BadTime")
		assert.ErrorIs(t, err, jerrors.ErrTypeMismatch)
	})

	t.Run("optional", func(t *testing.T) {
		s, err := rec.OptString("Absent")
		require.NoError(t, err)
		assert.Empty(t, s)
		_, err = rec.OptString("BodyID")
		assert.ErrorIs(t, err, jerrors.ErrTypeMismatch, "present but mistyped is still an error")
	})
}

func TestRecordPlain(t *testing.T) {
	rec, err := ParseLine(`{"event":"Scan","BodyID":3,"MassEM":0.12,"Rings":[{"Mass":5}]}`)
	require.NoError(t, err)

	plain := rec.Plain()
	assert.Equal(t, int64(3), plain["BodyID"])
	assert.Equal(t, 0.12, plain["MassEM"])
	rings := plain["Rings"].([]any)
	assert.Equal(t, int64(5), rings[0].(map[string]any)["Mass"])
}

func TestRecordMarshalJSON(t *testing.T) {
	line := `{"BodyID":3,"event":"Scan"}`
	rec, err := ParseLine(line)
	require.NoError(t, err)

	data, err := rec.MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t, line, string(data))
}
