package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestToZapLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{InfoLevel, zapcore.InfoLevel},
		{WarnLevel, zapcore.WarnLevel},
		{ErrorLevel, zapcore.ErrorLevel},
		{DebugLevel, zapcore.DebugLevel},
		{"verbose", defaultZapLevel},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := toZapLevel(tt.in); got != tt.want {
				t.Errorf("toZapLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestGetReturnsSingleton(t *testing.T) {
	a := Get(InfoLevel)
	b := Get(ErrorLevel)
	if a != b {
		t.Fatal("Get must return the same instance")
	}
	if Init(DebugLevel, EncodingJSON) != a {
		t.Fatal("Init after Get must not replace the singleton")
	}
}

func TestNopDiscards(t *testing.T) {
	l := Nop()
	l.Infow("ignored", "k", "v")
	if l.Desugar().Core().Enabled(zapcore.ErrorLevel) {
		t.Error("nop core should not be enabled")
	}
}
