package otel

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
)

// captureLog ログ出力をキャプチャするテストヘルパー
func captureLog(t *testing.T, fn func()) string {
	t.Helper()
	var buf bytes.Buffer
	orig := log.Writer()
	origFlags := log.Flags()
	log.SetOutput(&buf)
	log.SetFlags(0)
	defer func() {
		log.SetOutput(orig)
		log.SetFlags(origFlags)
	}()
	fn()
	return buf.String()
}

func TestNewLogger(t *testing.T) {
	tracer := noop.NewTracerProvider().Tracer("test")
	logger := NewLogger(tracer)
	assert.NotNil(t, logger)
}

func TestLogger_Log(t *testing.T) {
	tracer := noop.NewTracerProvider().Tracer("test")
	logger := NewLogger(tracer)

	tests := []struct {
		name    string
		level   LogLevel
		message string
		fields  map[string]interface{}
	}{
		{
			name:    "Infoレベルのログ",
			level:   LogLevelInfo,
			message: "clicks applied",
			fields:  map[string]interface{}{"click_count": 3},
		},
		{
			name:    "Warnレベルのログ",
			level:   LogLevelWarn,
			message: "webhook rejected",
			fields:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := captureLog(t, func() {
				logger.Log(context.Background(), tt.level, tt.message, tt.fields)
			})

			var entry LogEntry
			require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(out)), &entry))
			assert.Equal(t, string(tt.level), entry.Level)
			assert.Equal(t, tt.message, entry.Message)
			assert.NotEmpty(t, entry.Timestamp)
		})
	}
}

func TestLogger_Error(t *testing.T) {
	tracer := noop.NewTracerProvider().Tracer("test")
	logger := NewLogger(tracer)

	out := captureLog(t, func() {
		logger.Error(context.Background(), "apply failed", assert.AnError, nil)
	})

	var entry LogEntry
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(out)), &entry))
	assert.Equal(t, "ERROR", entry.Level)
	assert.Equal(t, assert.AnError.Error(), entry.Fields["error"])
}
