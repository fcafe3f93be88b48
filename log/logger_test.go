package log

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(WithOutput(&buf), WithLevel(DebugLevel))

	logger.Debug().Str("entity", "User").Int("includes", 2).Msg("debug message")

	var logMap map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &logMap))
	assert.Equal(t, "debug", logMap["level"])
	assert.Equal(t, "debug message", logMap["message"])
	assert.Equal(t, "User", logMap["entity"])
	assert.Equal(t, float64(2), logMap["includes"])
}

func TestLoggerLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(WithOutput(&buf), WithLevel(WarnLevel))

	logger.Info().Msg("ignored")
	assert.Empty(t, buf.String())

	logger.SetLevel(DebugLevel)
	logger.Debug().Msg("visible")
	assert.Contains(t, buf.String(), "visible")
}

func TestRotateLogger(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "test.log")

	logger := NewLogger(WithRotate(&Rotate{Filename: logFile, MaxSize: 1, MaxAge: 1, MaxBackups: 1}))
	for i := 0; i < 100; i++ {
		logger.Info().Msg("test rotate log message")
	}

	_, err := os.Stat(logFile)
	assert.NoError(t, err)
}

func TestGlobalLogger(t *testing.T) {
	old := GetDefault()
	defer SetDefault(old)

	var buf bytes.Buffer
	SetDefault(NewLogger(WithOutput(&buf), WithLevel(InfoLevel)))

	Info().Msg("global info message")
	var logMap map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &logMap))
	assert.Equal(t, "global info message", logMap["message"])

	buf.Reset()
	Debug().Msg("global debug message")
	assert.Empty(t, buf.String(), "Info级别下不应输出Debug日志")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Level
	}{
		{name: "调试级别", input: "debug", expected: DebugLevel},
		{name: "大写输入", input: "WARN", expected: WarnLevel},
		{name: "空字符串", input: "", expected: InfoLevel},
		{name: "无法识别", input: "verbose", expected: InfoLevel},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ParseLevel(tc.input))
		})
	}
}
