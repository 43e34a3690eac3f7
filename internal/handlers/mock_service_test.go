package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"pyrolysis_sim/internal/genai"
	"pyrolysis_sim/internal/models"
	"pyrolysis_sim/internal/service"
	"pyrolysis_sim/internal/simulation"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpID      int
	signUpErr     error
	genTokenToken string
	genTokenErr   error
	parseID       int
	parseErr      error

	lastSignUpUsername string
	lastSignUpPassword string
	lastGenUsername    string
	lastGenPassword    string
	lastParseToken     string
}

func (m *mockAuth) SignUp(username, password string) (int, error) {
	m.lastSignUpUsername = username
	m.lastSignUpPassword = password
	return m.signUpID, m.signUpErr
}
func (m *mockAuth) GenerateToken(username, password string) (string, error) {
	m.lastGenUsername = username
	m.lastGenPassword = password
	return m.genTokenToken, m.genTokenErr
}
func (m *mockAuth) ParseToken(token string) (int, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

type mockReactor struct {
	startErr     error
	stopErr      error
	setpointsErr error
	presetErr    error
	faultErr     error
	diagStarted  bool

	lastSetpoints service.SetpointParams
	lastPreset    string
	lastFault     string
	lastActive    bool
	startCalled   int
	stopCalled    int
	estopCalled   int
}

func (m *mockReactor) Start() error {
	m.startCalled++
	return m.startErr
}
func (m *mockReactor) Stop() error {
	m.stopCalled++
	return m.stopErr
}
func (m *mockReactor) EmergencyStop() { m.estopCalled++ }
func (m *mockReactor) UpdateSetpoints(p service.SetpointParams) error {
	m.lastSetpoints = p
	return m.setpointsErr
}
func (m *mockReactor) ApplyPreset(name string) error {
	m.lastPreset = name
	return m.presetErr
}
func (m *mockReactor) SetFault(name string, active bool) error {
	m.lastFault, m.lastActive = name, active
	return m.faultErr
}
func (m *mockReactor) RunDiagnostics() bool { return m.diagStarted }

type mockMonitoring struct {
	state   models.PlantState
	history []models.HistorySample
	logs    []models.LogLine
	report  *models.DiagnosticReport
	lastN   int
}

func (m *mockMonitoring) GetState() models.PlantState { return m.state }
func (m *mockMonitoring) History() []models.HistorySample { return m.history }
func (m *mockMonitoring) Diagnostics() *models.DiagnosticReport { return m.report }
func (m *mockMonitoring) Presets() []simulation.Preset { return simulation.Presets() }
func (m *mockMonitoring) RecentLogs(n int) []models.LogLine {
	m.lastN = n
	return m.logs
}

type mockFleet struct {
	err    error
	lastID string
}

func (m *mockFleet) ApplyFleetPreset(name string) error { return m.err }
func (m *mockFleet) StartIdleUnits() int { return 4 }
func (m *mockFleet) StopRunningUnits() int { return 1 }
func (m *mockFleet) StartUnit(id string) error {
	m.lastID = id
	return m.err
}
func (m *mockFleet) StopUnit(id string) error {
	m.lastID = id
	return m.err
}

type mockSupply struct {
	err          error
	lastID       string
	lastRunning  bool
	lastImpurity float64
	lastKg       float64
}

func (m *mockSupply) SetPlantRunning(id string, running bool) error {
	m.lastID, m.lastRunning = id, running
	return m.err
}
func (m *mockSupply) SetPlantImpurity(id string, pct float64) error {
	m.lastID, m.lastImpurity = id, pct
	return m.err
}
func (m *mockSupply) RestockPlant(id string, kg float64) (float64, error) {
	m.lastID, m.lastKg = id, kg
	return kg, m.err
}

type mockAlarms struct {
	active     []models.ActiveAlarm
	err        error
	lastSignal string
	lastCfg    models.AlarmConfig
}

func (m *mockAlarms) ActiveAlarms() []models.ActiveAlarm { return m.active }
func (m *mockAlarms) AlarmConfigs() map[models.SignalID]models.AlarmConfig {
	return simulation.DefaultAlarmConfigs()
}
func (m *mockAlarms) SetAlarmConfig(signal string, cfg models.AlarmConfig) error {
	m.lastSignal, m.lastCfg = signal, cfg
	return m.err
}

type mockSecurity struct {
	level  int
	events []models.SecurityEvent
}

func (m *mockSecurity) SecurityEvents() []models.SecurityEvent { return m.events }
func (m *mockSecurity) SecurityLevel() int { return m.level }
func (m *mockSecurity) ResetSecurityLevel() bool {
	changed := m.level != models.SecurityLevelNormal
	m.level = models.SecurityLevelNormal
	return changed
}

type mockEventLog struct {
	resp []models.JournalEvent
	err  error
	last service.LogFilter
}

func (m *mockEventLog) List(ctx context.Context, f service.LogFilter) ([]models.JournalEvent, error) {
	m.last = f
	return m.resp, m.err
}

type mockMedia struct {
	available bool
	image     *genai.Image
	video     *genai.Video
	err       error
}

func (m *mockMedia) MediaAvailable() bool { return m.available }
func (m *mockMedia) GenerateImage(ctx context.Context, prompt, aspectRatio string) (*genai.Image, error) {
	return m.image, m.err
}
func (m *mockMedia) GenerateVideo(ctx context.Context, prompt string) (*genai.Video, error) {
	return m.video, m.err
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}
