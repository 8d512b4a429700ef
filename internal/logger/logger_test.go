package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestNewZapLogger(t *testing.T) {
	testCases := []struct {
		name          string
		cfg           ZapLoggerConfig
		expectedLevel zapcore.Level
	}{
		{
			name:          "Development console",
			cfg:           ZapLoggerConfig{IsDevelopment: true, Encoding: "console", Level: "debug"},
			expectedLevel: zapcore.DebugLevel,
		},
		{
			name:          "Production json",
			cfg:           ZapLoggerConfig{Encoding: "json", Level: "warn"},
			expectedLevel: zapcore.WarnLevel,
		},
		{
			name:          "Unknown level falls back to info",
			cfg:           ZapLoggerConfig{Encoding: "json", Level: "loud"},
			expectedLevel: zapcore.InfoLevel,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			log := NewZapLogger(&tc.cfg)

			assert.NotNil(t, log)
			assert.True(t, log.Core().Enabled(tc.expectedLevel))
			if tc.expectedLevel > zapcore.DebugLevel {
				assert.False(t, log.Core().Enabled(tc.expectedLevel-1))
			}
		})
	}
}
