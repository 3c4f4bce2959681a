package observability

import (
	"errors"
	"testing"
	"time"
)

func TestFields(t *testing.T) {
	err := errors.New("boom")
	tests := []struct {
		f    Field
		key  string
		want interface{}
	}{
		{String("a", "b"), "a", "b"},
		{Int("n", 7), "n", 7},
		{Bool("ok", true), "ok", true},
		{Duration("d", time.Second), "d", time.Second},
		{Error(err), "error", err},
	}
	for _, tt := range tests {
		if tt.f.Key() != tt.key {
			t.Fatalf("Key() = %q, want %q", tt.f.Key(), tt.key)
		}
		if tt.f.Value() != tt.want {
			t.Fatalf("Value() = %v, want %v", tt.f.Value(), tt.want)
		}
	}
}

func TestNopLogger(t *testing.T) {
	var log Logger = NopLogger{}
	log = log.With(String("run", "x"))
	log.Debug("a")
	log.Info("b")
	log.Warn("c")
	log.Error("d", Error(errors.New("e")))
}
