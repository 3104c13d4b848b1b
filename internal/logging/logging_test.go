package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/rgehrsitz/nestegg/internal/calculation"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"":        zapcore.InfoLevel,
		"INFO":    zapcore.InfoLevel,
		" warn ":  zapcore.WarnLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
	}
	for name, want := range tests {
		got, err := ParseLevel(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}

	_, err := ParseLevel("verbose")
	assert.ErrorContains(t, err, `unknown log level "verbose"`)
}

func TestNewLogger(t *testing.T) {
	for _, jsonOutput := range []bool{false, true} {
		logger, err := NewLogger(DEBUG, jsonOutput)
		require.NoError(t, err)
		assert.True(t, logger.Desugar().Core().Enabled(zapcore.DebugLevel))
	}

	logger, err := NewLogger(WARN, false)
	require.NoError(t, err)
	assert.False(t, logger.Desugar().Core().Enabled(zapcore.InfoLevel))

	_, err = NewLogger("loud", false)
	assert.Error(t, err)
}

func TestSugaredLoggerSatisfiesEngineLogger(t *testing.T) {
	var logger calculation.Logger = NewTestLogger()
	logger.Infof("retirement age %d", 65)
	assert.False(t, NewTestLogger().Desugar().Core().Enabled(zapcore.ErrorLevel))
}
