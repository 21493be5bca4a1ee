package logger

import (
	"net/http"
	"net/http/httptest"
	"testing"

	log "github.com/sirupsen/logrus"
)

func TestResponseLogger(t *testing.T) {
	rr := httptest.NewRecorder()
	lw := New(rr)

	if lw.Status() != http.StatusOK {
		t.Errorf("want default status %v, got %v", http.StatusOK, lw.Status())
	}

	lw.Header().Set("X-Test", "1")
	lw.WriteHeader(http.StatusUnprocessableEntity)
	lw.Write([]byte("hello"))

	if lw.Status() != http.StatusUnprocessableEntity {
		t.Errorf("want status %v, got %v", http.StatusUnprocessableEntity, lw.Status())
	}
	if lw.Bytes() != 5 {
		t.Errorf("want 5 bytes written, got %d", lw.Bytes())
	}
	if rr.Code != http.StatusUnprocessableEntity || rr.Body.String() != "hello" || rr.Header().Get("X-Test") != "1" {
		t.Errorf("want writes passed through, got %v %q", rr.Code, rr.Body.String())
	}
}

func TestSetLevel(t *testing.T) {
	defer log.SetLevel(log.InfoLevel)

	tests := []struct {
		name string
		want log.Level
		ok   bool
	}{
		{"debug", log.DebugLevel, true},
		{"WARN", log.WarnLevel, true},
		{"error", log.ErrorLevel, true},
		{"info", log.InfoLevel, true},
	}
	for _, tt := range tests {
		if ok := SetLevel(tt.name); ok != tt.ok {
			t.Errorf("SetLevel(%q) = %v; want %v", tt.name, ok, tt.ok)
		}
		if log.GetLevel() != tt.want {
			t.Errorf("SetLevel(%q): want level %v, got %v", tt.name, tt.want, log.GetLevel())
		}
	}

	if SetLevel("verbose") {
		t.Error("want unknown level rejected")
	}
	if log.GetLevel() != log.InfoLevel {
		t.Errorf("want level unchanged, got %v", log.GetLevel())
	}
}
