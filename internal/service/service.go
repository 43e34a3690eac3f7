package service

import (
	"context"

	"pyrolysis_sim/internal/genai"
	"pyrolysis_sim/internal/models"
	"pyrolysis_sim/internal/repository"
	"pyrolysis_sim/internal/simulation"
)

type Authorization interface {
	SignUp(username, password string) (int, error)
	GenerateToken(username, password string) (string, error)
	ParseToken(accessToken string) (int, error)
}

// Reactor exposes the primary reactor commands.
type Reactor interface {
	Start() error
	Stop() error
	EmergencyStop()
	UpdateSetpoints(p SetpointParams) error
	ApplyPreset(name string) error
	SetFault(name string, active bool) error
	RunDiagnostics() bool
}

// Monitoring exposes read-only plant state, history and recent log lines.
type Monitoring interface {
	GetState() models.PlantState
	History() []models.HistorySample
	RecentLogs(n int) []models.LogLine
	Diagnostics() *models.DiagnosticReport
	Presets() []simulation.Preset
}

// Fleet exposes the secondary reactor commands.
type Fleet interface {
	ApplyFleetPreset(name string) error
	StartIdleUnits() int
	StopRunningUnits() int
	StartUnit(id string) error
	StopUnit(id string) error
}

// Supply exposes the feed-preparation plant commands.
type Supply interface {
	SetPlantRunning(id string, running bool) error
	SetPlantImpurity(id string, pct float64) error
	RestockPlant(id string, kg float64) (float64, error)
}

type Alarms interface {
	ActiveAlarms() []models.ActiveAlarm
	AlarmConfigs() map[models.SignalID]models.AlarmConfig
	SetAlarmConfig(signal string, cfg models.AlarmConfig) error
}

type Security interface {
	SecurityEvents() []models.SecurityEvent
	SecurityLevel() int
	ResetSecurityLevel() bool
}

// EventLog exposes the session audit journal with filtering access.
type EventLog interface {
	List(ctx context.Context, f LogFilter) ([]models.JournalEvent, error)
}

// Simulator runs the engine tickers and the journal writer until ctx is cancelled.
type Simulator interface {
	Run(ctx context.Context) error
}

// Media generates illustrative content through the external service.
type Media interface {
	MediaAvailable() bool
	GenerateImage(ctx context.Context, prompt, aspectRatio string) (*genai.Image, error)
	GenerateVideo(ctx context.Context, prompt string) (*genai.Video, error)
}

// Service aggregates all sub-services.
type Service struct {
	Reactor
	Monitoring
	Fleet
	Supply
	Alarms
	Security
	EventLog
	Simulator
	Authorization
	Media
}

// Deps holds what NewService wires together.
type Deps struct {
	Repos   *repository.Repository
	Engine  *simulation.Engine
	Journal *JournalWriter
	Media   MediaClient
	Auth    AuthSettings
}

func NewService(d Deps) *Service {
	return &Service{
		Reactor:       NewReactorService(d.Engine),
		Monitoring:    NewMonitoringService(d.Engine),
		Fleet:         NewFleetService(d.Engine),
		Supply:        NewSupplyService(d.Engine),
		Alarms:        NewAlarmService(d.Engine),
		Security:      NewSecurityService(d.Engine),
		EventLog:      NewEventLogService(d.Repos.Journal),
		Simulator:     NewSimulatorService(d.Engine, d.Journal),
		Authorization: NewAuthService(d.Repos.Operators, d.Auth),
		Media:         NewMediaService(d.Media),
	}
}
