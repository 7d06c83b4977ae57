package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
	}
	for _, tt := range tests {
		got, err := parseLevel(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}

	_, err := parseLevel("loud")
	assert.Error(t, err)
}

func TestNew(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.log")
	cfg := DefaultConfig()
	cfg.Level = "warn"
	cfg.OutputPaths = []string{path}
	logger, err := New(cfg)
	require.NoError(t, err)

	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))

	logger.Component("catalog").Warn("units reloaded")
	require.NoError(t, logger.Sync())
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"service":"ucalc"`)
	assert.Contains(t, string(data), `"logger":"catalog"`)
	assert.Contains(t, string(data), `"message":"units reloaded"`)

	_, err = New(Config{Level: "loud"})
	assert.Error(t, err)
}

func TestSetLevel(t *testing.T) {
	logger, err := New(Config{Level: "info", OutputPaths: []string{filepath.Join(t.TempDir(), "out.log")}})
	require.NoError(t, err)
	child := logger.Component("session")

	require.NoError(t, logger.SetLevel("debug"))
	assert.Equal(t, zapcore.DebugLevel, logger.Level())
	assert.True(t, child.Core().Enabled(zapcore.DebugLevel))

	assert.Error(t, logger.SetLevel("loud"))
	assert.Equal(t, zapcore.DebugLevel, logger.Level())
}

func TestConfigs(t *testing.T) {
	assert.False(t, DefaultConfig().Development)
	assert.True(t, CLIConfig().Development)
	assert.Equal(t, []string{"stderr"}, CLIConfig().OutputPaths)
	assert.NotNil(t, NewNop().Logger)
}
