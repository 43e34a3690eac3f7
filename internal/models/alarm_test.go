package models

import (
	"encoding/json"
	"testing"
)

func TestActiveAlarm_SeverityJSON(t *testing.T) {
	in := ActiveAlarm{Signal: SignalPressure, Severity: SeverityHigh, Value: 210, Threshold: 200}
	b, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var out ActiveAlarm
	if err := json.Unmarshal(b, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.Severity != SeverityHigh || out.Signal != SignalPressure {
		t.Fatalf("got %+v from %s", out, b)
	}

	if err := json.Unmarshal([]byte(`{"severity":"LOUD"}`), &out); err == nil {
		t.Fatal("expected error for unknown severity")
	}
}
