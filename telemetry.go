package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	eventScanLoaded       = "scan_loaded"
	eventScanFailed       = "scan_failed"
	eventStationCompleted = "station_completed"
	eventStationReopened  = "station_reopened"
	eventBundleFinalized  = "bundle_finalized"
	eventBundleKeptOpen   = "bundle_kept_open"
)

type telemetryEvent struct {
	SessionID string            `json:"session_id"`
	ScanID    string            `json:"scan_id,omitempty"`
	Operator  string            `json:"operator,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
	Event     string            `json:"event"`
	QRCodeID  int               `json:"qrcode_id,omitempty"`
	Station   string            `json:"station,omitempty"`
	Extra     map[string]string `json:"extra,omitempty"`
}

type telemetryLogger struct {
	path      string
	sessionID string
	operator  string
	now       func() time.Time
	mu        sync.Mutex
}

func newTelemetryLogger(path, operator string) *telemetryLogger {
	if strings.TrimSpace(path) == "" {
		return nil
	}
	_ = os.MkdirAll(filepath.Dir(path), 0o755)
	return &telemetryLogger{
		path:      path,
		sessionID: uuid.NewString(),
		operator:  strings.TrimSpace(operator),
		now:       time.Now,
	}
}

// Emit appends the event as one JSON line. Telemetry failures are dropped.
func (t *telemetryLogger) Emit(event telemetryEvent) {
	if t == nil || strings.TrimSpace(event.Event) == "" {
		return
	}
	if event.SessionID == "" {
		event.SessionID = t.sessionID
	}
	if strings.TrimSpace(event.Operator) == "" {
		event.Operator = t.operator
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = t.now().UTC()
	}
	if len(event.Extra) == 0 {
		event.Extra = nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	data, err := json.Marshal(event)
	if err != nil {
		return
	}
	data = append(data, '\n')
	f, err := os.OpenFile(t.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return
	}
	defer f.Close()
	_, _ = f.Write(data)
}

func (t *telemetryLogger) SessionID() string {
	if t == nil {
		return ""
	}
	return t.sessionID
}

func resolveOperator() string {
	candidates := []string{
		os.Getenv("PRENSA_OPERADOR"),
		os.Getenv("USER"),
		os.Getenv("USERNAME"),
	}
	for _, candidate := range candidates {
		if trimmed := strings.TrimSpace(candidate); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
