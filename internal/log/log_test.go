package log_test

import (
	"bytes"
	"strings"
	"testing"

	"bennypowers.dev/wcaglint/internal/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogLevels(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(nil) // Reset after test

	t.Run("Info level logs Info, Warn, Error but not Debug", func(t *testing.T) {
		buf.Reset()
		log.SetLevel(log.LevelInfo)

		log.Debug("debug message")
		log.Info("info message")
		log.Warn("warn message")
		log.Error("error message")

		output := buf.String()
		assert.NotContains(t, output, "debug message", "Debug should not be logged at Info level")
		assert.Contains(t, output, "info message")
		assert.Contains(t, output, "warn message")
		assert.Contains(t, output, "error message")
	})

	t.Run("Error level only logs Error", func(t *testing.T) {
		buf.Reset()
		log.SetLevel(log.LevelError)

		log.Debug("debug message")
		log.Info("info message")
		log.Warn("warn message")
		log.Error("error message")

		output := buf.String()
		assert.NotContains(t, output, "debug message")
		assert.NotContains(t, output, "info message")
		assert.NotContains(t, output, "warn message")
		assert.Contains(t, output, "error message")
	})
}

func TestLogFormat(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	log.SetLevel(log.LevelDebug)
	defer log.SetOutput(nil)
	defer log.SetLevel(log.LevelInfo)

	t.Run("prefix and level label", func(t *testing.T) {
		buf.Reset()
		log.Warn("scanning %s", "index.html")

		assert.Equal(t, "[wcaglint] WARN: scanning index.html\n", buf.String())
	})

	t.Run("percent signs in arguments are not reinterpreted", func(t *testing.T) {
		buf.Reset()
		log.Info("%s", "100% <a href=\"#\"></a>")

		assert.Contains(t, buf.String(), "100% <a href=\"#\"></a>")
	})

	t.Run("one line per message", func(t *testing.T) {
		buf.Reset()
		log.Debug("message 1")
		log.Error("message 2")

		lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
		require.Len(t, lines, 2)
		assert.Contains(t, lines[0], "DEBUG: message 1")
		assert.Contains(t, lines[1], "ERROR: message 2")
	})
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    log.Level
		wantErr bool
	}{
		{in: "debug", want: log.LevelDebug},
		{in: "INFO", want: log.LevelInfo},
		{in: "", want: log.LevelInfo},
		{in: "warning", want: log.LevelWarn},
		{in: " error ", want: log.LevelError},
		{in: "loud", want: log.LevelInfo, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := log.ParseLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGetLevel(t *testing.T) {
	originalLevel := log.GetLevel()
	defer log.SetLevel(originalLevel)

	log.SetLevel(log.LevelDebug)
	assert.Equal(t, log.LevelDebug, log.GetLevel())

	log.SetLevel(log.LevelError)
	assert.Equal(t, log.LevelError, log.GetLevel())
	assert.Equal(t, "ERROR", log.GetLevel().String())
}
