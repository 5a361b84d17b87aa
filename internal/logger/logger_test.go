package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestFlattenFieldsIsSorted(t *testing.T) {
	flat := flattenFields(map[string]interface{}{"width": 16, "chars": 4, "source": "a.txt"})
	assert.Equal(t, []interface{}{"chars", 4, "source", "a.txt", "width", 16}, flat)
	assert.Empty(t, flattenFields(nil))
}

func TestInitLoggerWritesLogFile(t *testing.T) {
	orig := Logger
	t.Cleanup(func() { Logger = orig })

	path := filepath.Join(t.TempDir(), "logs", "addsum.log")
	require.NoError(t, InitLogger(LoggerConfig{Debug: true, LogFormat: "json", LogFile: path}))

	LogDebug("checksum computed", map[string]interface{}{"width": 32})
	_ = Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"checksum computed"`)
	assert.Contains(t, string(data), `"width":32`)
}

func TestInitLoggerDefaultLevelIsWarn(t *testing.T) {
	orig := Logger
	t.Cleanup(func() { Logger = orig })

	require.NoError(t, InitLogger(DefaultConfig()))
	assert.False(t, Logger.Desugar().Core().Enabled(zap.InfoLevel))
	assert.True(t, Logger.Desugar().Core().Enabled(zap.WarnLevel))
}

func TestInitLoggerRejectsUnknownFormat(t *testing.T) {
	assert.Error(t, InitLogger(LoggerConfig{LogFormat: "xml"}))
}

func TestLogWithoutLoggerInit(t *testing.T) {
	assert.NotPanics(t, func() {
		LogWarn("nothing configured", map[string]interface{}{"error": assert.AnError})
		LogInfo("still fine", nil)
	})
}
