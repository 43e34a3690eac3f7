package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"pyrolysis_sim/internal/models"
	"pyrolysis_sim/internal/service"
	"pyrolysis_sim/internal/simulation"
)

// doJSON sends an authenticated request with an optional JSON body.
func doJSON(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != "" {
		rd = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, vv := range authHeader("valid") {
		for _, v := range vv {
			req.Header.Add(k, v)
		}
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestReactorHandlers_StartStopAndState(t *testing.T) {
	auth := &mockAuth{parseID: 7}
	mon := &mockMonitoring{state: models.PlantState{
		Primary: models.SignalSnapshot{Status: models.StatusOff, ReactorTempC: 25},
	}}
	re := &mockReactor{}
	s := &service.Service{
		Authorization: auth,
		Monitoring:    mon,
		Reactor:       re,
	}
	r := newTestRouter(s)

	// GET state requires auth → 401 without header
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/reactor/state", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without auth, got %d", w.Code)
	}

	// With auth → 200 and state body
	w = doJSON(r, http.MethodGet, "/api/v1/reactor/state", "")
	if w.Code != http.StatusOK {
		t.Fatalf("state status=%d, body=%s", w.Code, w.Body.String())
	}
	var st models.PlantState
	if err := json.Unmarshal(w.Body.Bytes(), &st); err != nil {
		t.Fatalf("unmarshal state: %v", err)
	}
	if st.Primary.Status != models.StatusOff || st.Primary.ReactorTempC != 25 {
		t.Fatalf("unexpected state: %+v", st.Primary)
	}

	// POST /start → 200, calls Reactor.Start and includes state
	w = doJSON(r, http.MethodPost, "/api/v1/reactor/start", "")
	if w.Code != http.StatusOK {
		t.Fatalf("start status=%d, body=%s", w.Code, w.Body.String())
	}
	if re.startCalled != 1 {
		t.Fatalf("expected Start to be called once, got %d", re.startCalled)
	}
	var resp struct {
		Status string            `json:"status"`
		State  models.PlantState `json:"state"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Status != statusStarted {
		t.Fatalf("expected status %q, got %q", statusStarted, resp.Status)
	}
	if resp.State.Primary.Status != models.StatusOff {
		t.Fatalf("state missing/invalid in response: %+v", resp.State.Primary)
	}

	// invalid transition → 400 with message
	re.stopErr = fmt.Errorf("%w: reactor is OFF", simulation.ErrInvalidTransition)
	w = doJSON(r, http.MethodPost, "/api/v1/reactor/stop", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid stop, got %d", w.Code)
	}

	// unexpected error → 500 with a generic message
	re.startErr = fmt.Errorf("boom")
	w = doJSON(r, http.MethodPost, "/api/v1/reactor/start", "")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}

	// emergency stop always succeeds
	w = doJSON(r, http.MethodPost, "/api/v1/reactor/estop", "")
	if w.Code != http.StatusOK || re.estopCalled != 1 {
		t.Fatalf("estop status=%d calls=%d", w.Code, re.estopCalled)
	}
}

func TestReactorHandlers_Setpoints(t *testing.T) {
	re := &mockReactor{}
	s := &service.Service{
		Authorization: &mockAuth{parseID: 1},
		Monitoring:    &mockMonitoring{},
		Reactor:       re,
	}
	r := newTestRouter(s)

	w := doJSON(r, http.MethodPut, "/api/v1/reactor/setpoints", `{"target_temp_c":520,"mode":"BIO_OIL"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("setpoints status=%d body=%s", w.Code, w.Body.String())
	}
	p := re.lastSetpoints
	if p.TargetTempC == nil || *p.TargetTempC != 520 || p.Mode == nil || *p.Mode != "BIO_OIL" {
		t.Fatalf("unexpected params: %+v", p)
	}
	if p.OxygenPct != nil || p.FeedRateKgH != nil || p.ResidenceTimeS != nil {
		t.Fatalf("omitted fields must stay nil: %+v", p)
	}

	w = doJSON(r, http.MethodPut, "/api/v1/reactor/setpoints", `{"target_temp_c":"hot"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad body, got %d", w.Code)
	}

	re.setpointsErr = fmt.Errorf("%w: target too high", simulation.ErrInvalidSetpoint)
	w = doJSON(r, http.MethodPut, "/api/v1/reactor/setpoints", `{"target_temp_c":5000}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for rejected setpoint, got %d", w.Code)
	}
}

func TestReactorHandlers_PresetFaultDiagnostics(t *testing.T) {
	re := &mockReactor{diagStarted: true}
	mon := &mockMonitoring{}
	s := &service.Service{
		Authorization: &mockAuth{parseID: 1},
		Monitoring:    mon,
		Reactor:       re,
	}
	r := newTestRouter(s)

	w := doJSON(r, http.MethodPost, "/api/v1/reactor/preset", `{"name":"syngas"}`)
	if w.Code != http.StatusOK || re.lastPreset != "syngas" {
		t.Fatalf("preset status=%d preset=%q", w.Code, re.lastPreset)
	}
	re.presetErr = fmt.Errorf("%w: %q", simulation.ErrUnknownPreset, "x")
	if w = doJSON(r, http.MethodPost, "/api/v1/reactor/preset", `{"name":"x"}`); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown preset, got %d", w.Code)
	}

	w = doJSON(r, http.MethodPut, "/api/v1/reactor/faults/sensor_failure", `{"active":true}`)
	if w.Code != http.StatusOK || re.lastFault != "sensor_failure" || !re.lastActive {
		t.Fatalf("fault status=%d fault=%q active=%v", w.Code, re.lastFault, re.lastActive)
	}
	if w = doJSON(r, http.MethodPut, "/api/v1/reactor/faults/sensor_failure", `{}`); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 when active is missing, got %d", w.Code)
	}

	if w = doJSON(r, http.MethodPost, "/api/v1/reactor/diagnostics", ""); w.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d", w.Code)
	}
	re.diagStarted = false
	if w = doJSON(r, http.MethodPost, "/api/v1/reactor/diagnostics", ""); w.Code != http.StatusOK {
		t.Fatalf("expected 200 while pending, got %d", w.Code)
	}

	if w = doJSON(r, http.MethodGet, "/api/v1/reactor/diagnostics", ""); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 before any report, got %d", w.Code)
	}
	mon.report = &models.DiagnosticReport{Findings: []string{"all systems nominal"}}
	if w = doJSON(r, http.MethodGet, "/api/v1/reactor/diagnostics", ""); w.Code != http.StatusOK {
		t.Fatalf("expected 200 with report, got %d", w.Code)
	}

	w = doJSON(r, http.MethodGet, "/api/v1/presets", "")
	var presets []simulation.Preset
	_ = json.Unmarshal(w.Body.Bytes(), &presets)
	if w.Code != http.StatusOK || len(presets) == 0 {
		t.Fatalf("presets status=%d count=%d", w.Code, len(presets))
	}
}

func TestHealth(t *testing.T) {
	r := newTestRouter(&service.Service{})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("health status=%d", w.Code)
	}
}
