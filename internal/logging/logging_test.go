package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"

	"showboard/internal/config"
)

func TestNew_Levels(t *testing.T) {
	t.Parallel()

	cases := []struct {
		cfg     config.LogConfig
		verbose bool
		want    zapcore.Level
	}{
		{config.LogConfig{}, false, zapcore.InfoLevel},
		{config.LogConfig{Level: "warn"}, false, zapcore.WarnLevel},
		{config.LogConfig{Level: "warn"}, true, zapcore.DebugLevel},
		{config.LogConfig{Development: true}, false, zapcore.DebugLevel},
	}
	for _, tc := range cases {
		logger, err := New(tc.cfg, tc.verbose)
		if err != nil {
			t.Fatalf("New(%+v): %v", tc.cfg, err)
		}
		if got := logger.Level(); got != tc.want {
			t.Fatalf("New(%+v, %v) level = %s, want %s", tc.cfg, tc.verbose, got, tc.want)
		}
	}
}

func TestNew_InvalidLevel(t *testing.T) {
	t.Parallel()

	if _, err := New(config.LogConfig{Level: "loud"}, false); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}
