package logging

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultLogger(t *testing.T) {
	buffer := bytes.Buffer{}
	logger := NewDefaultLogger(&buffer, slog.LevelInfo)
	logger.Debug("hidden")
	logger.Info("loaded", "records", 3)
	logger.Warn("skipped", "index", 1)

	output := buffer.String()
	assert.NotContains(t, output, "hidden")
	assert.Contains(t, output, `msg="[catalog] loaded" records=3`)
	assert.Contains(t, output, "level=WARN")
}

func TestParseLevel(t *testing.T) {
	testCases := map[string]slog.Level{
		"":        slog.LevelInfo,
		"debug":   slog.LevelDebug,
		" WARN ":  slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
	}
	for input, expected := range testCases {
		level, err := ParseLevel(input)
		require.NoError(t, err, input)
		assert.Equal(t, expected, level, input)
	}

	_, err := ParseLevel("loud")
	assert.ErrorIs(t, err, ErrUnknownLevel)
}

func TestOrNop(t *testing.T) {
	assert.Equal(t, Nop(), OrNop(nil))
	logger := NewDefaultLogger(&bytes.Buffer{}, slog.LevelInfo)
	assert.Same(t, logger, OrNop(logger))
}
