package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"":        Info,
		"debug":   Debug,
		" WARN ":  Warn,
		"warning": Warn,
		"error":   Error,
		"loud":    Info,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestParseFormat(t *testing.T) {
	assert.Equal(t, FormatJSON, ParseFormat("JSON"))
	assert.Equal(t, FormatText, ParseFormat(""))
	assert.Equal(t, FormatText, ParseFormat("logfmt"))
}

func TestJSONLoggerWritesFields(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Level: Info, Format: FormatJSON, App: "medication-tracker", Out: &buf})

	log.With(map[string]any{"user_id": "u1"}).Warn("alerta", map[string]any{
		"kind":  "out_of_stock",
		"error": errors.New("boom"),
		"":      "ignored",
	})

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "alerta", entry["message"])
	assert.Equal(t, "medication-tracker", entry["app"])
	assert.Equal(t, "u1", entry["user_id"])
	assert.Equal(t, "out_of_stock", entry["kind"])
	assert.Equal(t, "boom", entry["error"])
	assert.NotContains(t, entry, "")
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Level: Warn, Format: FormatJSON, Out: &buf})

	log.Debug("debug", nil)
	log.Info("info", nil)
	assert.Zero(t, buf.Len())

	log.Error("error", nil)
	assert.Equal(t, 1, strings.Count(buf.String(), "\n"))
}

func TestTextFormat(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Level: Debug, Format: FormatText, Out: &buf})

	log.Info("servidor iniciado", map[string]any{"addr": ":8080"})
	assert.Contains(t, buf.String(), "servidor iniciado")
	assert.Contains(t, buf.String(), "addr=:8080")
}
