package simulation

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"pyrolysis_sim/internal/logger"
	"pyrolysis_sim/internal/models"
)

// Log sources.
const (
	sourceReactor     = "reactor"
	sourceFleet       = "fleet"
	sourceSupply      = "supply"
	sourceAlarms      = "alarms"
	sourceSecurity    = "security"
	sourceDiagnostics = "diagnostics"
)

// emitFunc appends one line to the event log.
type emitFunc func(source, typ, msg string)

// Config sizes the buffers and sets the starting point of a session.
type Config struct {
	PrimaryTick      time.Duration
	SupplyTick       time.Duration
	HistoryCapacity  int
	LogCapacity      int
	DiagnosticsDelay time.Duration
	Seed             uint64 // 0 seeds from the wall clock
	SeedHistory      bool

	Primary          models.ReactorConfig
	InitialHopperPct float64
	InitialBioOilPct float64
	InitialCharPct   float64

	Prices Prices
}

func DefaultConfig() Config {
	return Config{
		PrimaryTick:      time.Second,
		SupplyTick:       time.Second,
		HistoryCapacity:  100,
		LogCapacity:      100,
		DiagnosticsDelay: 3 * time.Second,
		SeedHistory:      true,
		Primary:          presets["biochar"].Primary,
		InitialHopperPct: 60,
		InitialBioOilPct: 35,
		InitialCharPct:   25,
		Prices: Prices{
			OutputPerTonne: map[models.FeedstockKind]float64{
				models.FeedstockPellet: 420,
				models.FeedstockRubber: 310,
			},
			FeedPerTonne: map[models.FeedstockKind]float64{
				models.FeedstockPellet: 95,
				models.FeedstockRubber: 60,
			},
		},
	}
}

type Option func(*Engine)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithRand replaces the random source used for noise and machine jams.
func WithRand(r *rand.Rand) Option {
	return func(e *Engine) { e.rng = r }
}

// WithScheduler replaces time.AfterFunc for delayed tasks.
func WithScheduler(fn func(d time.Duration, f func())) Option {
	return func(e *Engine) { e.schedule = fn }
}

// WithLogHook receives every log line. It runs under the engine lock and
// must not block or call back into the engine.
func WithLogHook(fn func(models.LogLine)) Option {
	return func(e *Engine) { e.onLog = fn }
}

// WithSecurityHook receives every new security event. Same rules as WithLogHook.
func WithSecurityHook(fn func(models.SecurityEvent)) Option {
	return func(e *Engine) { e.onSecurity = fn }
}

// Engine is the simulation context of one session. It owns every piece of
// plant state and serializes all access behind a single mutex.
type Engine struct {
	mu  sync.Mutex
	cfg Config
	log *logger.Logger

	now        func() time.Time
	rng        *rand.Rand
	noise      noiseFunc
	chance     func() float64
	schedule   scheduleFunc
	onLog      func(models.LogLine)
	onSecurity func(models.SecurityEvent)

	primary  *PrimaryReactor
	units    []*models.SecondaryUnit
	plants   []*models.SupplyPlant
	ledger   *ledger
	alarms   *AlarmEvaluator
	security *SecurityBus
	history  *Ring[models.HistorySample]
	logs     *Ring[models.LogLine]
	diag     diagnostics

	pendingDeliveryKg float64
	totalOutputKgH    float64
	updatedAt         time.Time
}

// NewEngine builds a cold plant: primary reactor OFF, fleet idle, supply
// plants running.
func NewEngine(cfg Config, log *logger.Logger, opts ...Option) (*Engine, error) {
	if err := validateConfig(cfg.Primary); err != nil {
		return nil, fmt.Errorf("engine config: %w", err)
	}
	if cfg.PrimaryTick <= 0 || cfg.SupplyTick <= 0 {
		return nil, fmt.Errorf("engine config: tick intervals must be positive")
	}
	if log == nil {
		log = logger.Nop()
	}

	e := &Engine{
		cfg:      cfg,
		log:      log,
		now:      time.Now,
		schedule: afterFunc,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		seed := cfg.Seed
		if seed == 0 {
			seed = uint64(time.Now().UnixNano())
		}
		e.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
	e.noise = func(a float64) float64 { return (e.rng.Float64()*2 - 1) * a }
	e.chance = e.rng.Float64

	now := e.now()
	initial := initialSnapshot(cfg.Primary, cfg.InitialHopperPct, cfg.InitialBioOilPct, cfg.InitialCharPct)
	initial.Timestamp = now
	e.primary = newPrimaryReactor(initial, cfg.Primary, e.sampleNoise, e.emit)
	e.units = defaultUnits()
	e.plants = defaultPlants()
	e.ledger = newLedger(cfg.Prices)
	e.alarms = NewAlarmEvaluator(nil)
	e.security = NewSecurityBus()
	e.history = NewRing[models.HistorySample](cfg.HistoryCapacity)
	e.logs = NewRing[models.LogLine](cfg.LogCapacity)
	e.updatedAt = now

	if cfg.SeedHistory {
		samples, err := parseSeedHistory(seedHistoryYAML, cfg.Primary, now)
		if err != nil {
			return nil, err
		}
		for _, s := range samples {
			e.history.Push(s)
		}
	}
	e.log.Infow("engine_created", "history_seeded", e.history.Len(), "units", len(e.units), "plants", len(e.plants))
	return e, nil
}

func (e *Engine) sampleNoise(a float64) float64 { return e.noise(a) }

func (e *Engine) emit(source, typ, msg string) {
	at := e.now()
	line := models.LogLine{
		At:     at,
		Source: source,
		Type:   typ,
		Text:   fmt.Sprintf("[%s] %s", at.Format("15:04:05"), msg),
	}
	e.logs.Push(line)
	e.log.Debugw("sim_event", "source", source, "type", typ, "msg", msg)
	if e.onLog != nil {
		e.onLog(line)
	}
}

// Run drives both periodic tasks until ctx is cancelled. Both tickers are
// served by one goroutine so the tasks never interleave.
func (e *Engine) Run(ctx context.Context) {
	primary := time.NewTicker(e.cfg.PrimaryTick)
	defer primary.Stop()
	supply := time.NewTicker(e.cfg.SupplyTick)
	defer supply.Stop()

	e.log.Infow("engine_started", "primary_tick", e.cfg.PrimaryTick, "supply_tick", e.cfg.SupplyTick)
	for {
		select {
		case <-ctx.Done():
			e.log.Infow("engine_stopped")
			return
		case <-primary.C:
			e.TickPrimary()
		case <-supply.C:
			e.TickSupply()
		}
	}
}

// TickPrimary advances the primary reactor by one second.
func (e *Engine) TickPrimary() {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.now()
	delivered := e.pendingDeliveryKg
	e.pendingDeliveryKg = 0
	snap := e.primary.tick(now, delivered)
	e.history.Push(models.HistorySample{At: now, Snapshot: snap})
	e.evaluateAlarms(now)
	e.updatedAt = now
}

// TickSupply advances supply plants, silos, the fleet and the security bus.
// It only sees the primary reactor through its committed snapshot.
func (e *Engine) TickSupply() {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.now()
	primary := e.primary.Committed()

	prevLevel := make(map[models.FeedstockKind]float64, len(e.plants))
	produced := make(map[models.FeedstockKind]float64, len(e.plants))
	quality := make(map[models.FeedstockKind]feedQuality, len(e.plants))
	for _, p := range e.plants {
		prevLevel[p.Feedstock] = p.Silo.LevelKg
		produced[p.Feedstock] += stepPlant(p, e.chance)
		quality[p.Feedstock] = feedQuality{purity: p.Purity, moisture: p.Moisture}
	}

	demand := make(map[string]float64, len(e.units))
	totalDemand := make(map[models.FeedstockKind]float64, len(e.plants))
	for _, u := range e.units {
		d := stepUnit(u, quality[u.Feedstock], e.noise)
		demand[u.ID] = d
		totalDemand[u.Feedstock] += d
	}
	conveyor := 0.0
	if primary.Status != models.StatusOff && primary.HopperLevelPct < hopperRefillAt {
		conveyor = conveyorKgH / 3600
		totalDemand[models.FeedstockPellet] += conveyor
	}

	share := make(map[models.FeedstockKind]float64, len(e.plants))
	for _, p := range e.plants {
		want := totalDemand[p.Feedstock]
		got := settleSilo(&p.Silo, prevLevel[p.Feedstock], produced[p.Feedstock], want)
		if want > 0 {
			share[p.Feedstock] = got / want
		}
	}
	e.pendingDeliveryKg += conveyor * share[models.FeedstockPellet]

	starved := make(map[string]bool)
	e.totalOutputKgH = 0
	for _, u := range e.units {
		silo := e.siloFor(u.Feedstock)
		if u.Drawing && silo != nil && (prevLevel[u.Feedstock] <= 0 || silo.LevelKg <= 0) {
			starve(u)
			starved[u.ID] = true
			// whatever the silo still held this tick was drawn before the unit stopped
			e.ledger.record(u.Feedstock, demand[u.ID]*share[u.Feedstock], 0)
			e.emit(sourceFleet, models.EventSupply, fmt.Sprintf("%s starved, %s silo empty, unit off", u.Name, u.Feedstock))
			continue
		}
		e.ledger.record(u.Feedstock, demand[u.ID]*share[u.Feedstock], u.OutputRateKgH/3600)
		e.totalOutputKgH += u.OutputRateKgH
	}

	fresh := e.security.observePlants(e.plants, now)
	fresh = append(fresh, e.security.observeUnits(starved, e.units, now)...)
	fresh = append(fresh, e.security.observeEmergencyStop(primary.EmergencyStop, now)...)
	e.security.publish(fresh)
	for _, ev := range fresh {
		// starvation already has its fleet log line
		if ev.Category != models.CategorySupply {
			e.emit(sourceSecurity, models.EventSecurity, fmt.Sprintf("%s %s: %s", ev.Severity, ev.Category, ev.Message))
		}
		if e.onSecurity != nil {
			e.onSecurity(ev)
		}
	}

	e.evaluateAlarms(now)
	e.updatedAt = now
}

func (e *Engine) evaluateAlarms(now time.Time) {
	for _, c := range e.alarms.Evaluate(e.primary.Committed(), now) {
		e.emit(sourceAlarms, models.EventAlarm, c.String())
	}
}

func (e *Engine) siloFor(kind models.FeedstockKind) *models.Silo {
	for _, p := range e.plants {
		if p.Feedstock == kind {
			return &p.Silo
		}
	}
	return nil
}

// ---- read surface ----

// State returns a deep copy of the committed plant state.
func (e *Engine) State() models.PlantState {
	e.mu.Lock()
	defer e.mu.Unlock()

	units := make([]models.SecondaryUnit, len(e.units))
	for i, u := range e.units {
		units[i] = *u
	}
	plants := make([]models.SupplyPlant, len(e.plants))
	for i, p := range e.plants {
		plants[i] = copyPlant(p)
	}
	return models.PlantState{
		Primary:        e.primary.Committed(),
		Config:         e.primary.Config(),
		Faults:         e.primary.Faults(),
		Units:          units,
		Plants:         plants,
		Economics:      e.ledger.snapshot(e.totalOutputKgH),
		Alarms:         e.alarms.Active(),
		SecurityLevel:  e.security.Level(),
		SecurityEvents: e.security.Events(),
		Diagnostics:    e.diag.report(),
		DiagnosticsRun: e.diag.pending,
		UpdatedAt:      e.updatedAt,
	}
}

// Snapshot returns the committed primary snapshot.
func (e *Engine) Snapshot() models.SignalSnapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.primary.Committed()
}

// History returns the buffered snapshots, oldest first.
func (e *Engine) History() []models.HistorySample {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.history.Items()
}

// Logs returns up to n most recent log lines, oldest first. n <= 0 returns all.
func (e *Engine) Logs(n int) []models.LogLine {
	e.mu.Lock()
	defer e.mu.Unlock()
	if n <= 0 {
		return e.logs.Items()
	}
	return e.logs.Last(n)
}

func (e *Engine) AlarmConfigs() map[models.SignalID]models.AlarmConfig {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.alarms.Configs()
}

// ---- primary reactor commands ----

func (e *Engine) Start() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.primary.RequestStart(); err != nil {
		return err
	}
	e.emit(sourceReactor, models.EventCommand, "Start command accepted")
	return nil
}

func (e *Engine) Stop() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.primary.RequestStop(); err != nil {
		return err
	}
	e.emit(sourceReactor, models.EventCommand, "Stop command accepted")
	return nil
}

// EmergencyStop takes effect immediately, without waiting for a tick.
func (e *Engine) EmergencyStop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	now := e.now()
	e.primary.EmergencyStop(now)
	e.evaluateAlarms(now)
}

func (e *Engine) SetTargetTemp(c float64) error {
	return e.updateConfig(func(cfg *models.ReactorConfig) { cfg.TargetTempC = c },
		func(cfg models.ReactorConfig) string {
			return fmt.Sprintf("Target temperature set to %.0f°C", cfg.TargetTempC)
		})
}

func (e *Engine) SetResidenceTime(s float64) error {
	return e.updateConfig(func(cfg *models.ReactorConfig) { cfg.ResidenceTimeS = s },
		func(cfg models.ReactorConfig) string {
			return fmt.Sprintf("Residence time set to %.1fs", cfg.ResidenceTimeS)
		})
}

func (e *Engine) SetOxygen(pct float64) error {
	return e.updateConfig(func(cfg *models.ReactorConfig) { cfg.OxygenPct = pct },
		func(cfg models.ReactorConfig) string {
			return fmt.Sprintf("Oxygen concentration set to %.1f%%", cfg.OxygenPct)
		})
}

func (e *Engine) SetMode(mode models.OperatingMode) error {
	return e.updateConfig(func(cfg *models.ReactorConfig) { cfg.Mode = mode },
		func(cfg models.ReactorConfig) string {
			return fmt.Sprintf("Operating mode set to %s", cfg.Mode)
		})
}

func (e *Engine) SetFeedRate(kgH float64) error {
	return e.updateConfig(func(cfg *models.ReactorConfig) { cfg.FeedRateKgH = kgH },
		func(cfg models.ReactorConfig) string {
			return fmt.Sprintf("Feed rate set to %.0f kg/h", cfg.FeedRateKgH)
		})
}

// UpdateConfig applies mutate to a copy of the primary configuration and
// commits the result only if it is valid as a whole. A rejected update
// leaves every setpoint as it was.
func (e *Engine) UpdateConfig(mutate func(*models.ReactorConfig)) error {
	return e.updateConfig(mutate, func(cfg models.ReactorConfig) string {
		return fmt.Sprintf("Setpoints updated: mode %s, target %.0f°C, residence %.1fs, O2 %.1f%%, feed %.0f kg/h",
			cfg.Mode, cfg.TargetTempC, cfg.ResidenceTimeS, cfg.OxygenPct, cfg.FeedRateKgH)
	})
}

// updateConfig logs describe(cfg) once the new config is committed.
// An unchanged config is a silent no-op.
func (e *Engine) updateConfig(mutate func(*models.ReactorConfig), describe func(models.ReactorConfig) string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	prev := e.primary.Config()
	cfg := prev
	mutate(&cfg)
	if cfg == prev {
		return nil
	}
	if err := e.primary.setConfig(cfg); err != nil {
		return err
	}
	e.emit(sourceReactor, models.EventCommand, describe(cfg))
	return nil
}

// ApplyPreset overwrites the primary configuration with a named preset.
func (e *Engine) ApplyPreset(name string) error {
	p, err := LookupPreset(name)
	if err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.primary.setConfig(p.Primary); err != nil {
		return err
	}
	e.emit(sourceReactor, models.EventCommand, fmt.Sprintf("Preset %q applied", name))
	return nil
}

// SetFault toggles one injected fault. Setting a fault to its current value
// is a silent no-op.
func (e *Engine) SetFault(name string, active bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	changed, err := setFault(&e.primary.faults, name, active)
	if err != nil || !changed {
		return err
	}
	verb := "cleared"
	if active {
		verb = "injected"
	}
	e.emit(sourceReactor, models.EventFault, fmt.Sprintf("Fault %s: %s", verb, name))
	return nil
}

// ---- fleet commands ----

// ApplyFleetPreset sets the target temperature and feed rate of every secondary unit.
func (e *Engine) ApplyFleetPreset(name string) error {
	p, err := LookupPreset(name)
	if err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, u := range e.units {
		u.TargetTempC = p.UnitTargetTempC
		u.FeedRateKgH = p.UnitFeedRateKgH
	}
	e.emit(sourceFleet, models.EventCommand, fmt.Sprintf("Fleet preset %q applied to %d units", name, len(e.units)))
	return nil
}

// StartIdleUnits starts every OFF unit and returns how many were started.
func (e *Engine) StartIdleUnits() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	n := 0
	for _, u := range e.units {
		if startUnit(u) {
			n++
		}
	}
	if n > 0 {
		e.emit(sourceFleet, models.EventCommand, fmt.Sprintf("Started %d idle units", n))
	}
	return n
}

// StopRunningUnits sends every running unit to COOLING.
func (e *Engine) StopRunningUnits() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	n := 0
	for _, u := range e.units {
		if stopUnit(u) {
			n++
		}
	}
	if n > 0 {
		e.emit(sourceFleet, models.EventCommand, fmt.Sprintf("Stopped %d running units", n))
	}
	return n
}

func (e *Engine) StartUnit(id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	u, err := findUnit(e.units, id)
	if err != nil {
		return err
	}
	if !startUnit(u) {
		return fmt.Errorf("%w: unit %s is %s", ErrInvalidTransition, id, u.Status)
	}
	e.emit(sourceFleet, models.EventCommand, fmt.Sprintf("%s starting", u.Name))
	return nil
}

func (e *Engine) StopUnit(id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	u, err := findUnit(e.units, id)
	if err != nil {
		return err
	}
	if !stopUnit(u) {
		return fmt.Errorf("%w: unit %s is %s", ErrInvalidTransition, id, u.Status)
	}
	e.emit(sourceFleet, models.EventCommand, fmt.Sprintf("%s cooling down", u.Name))
	return nil
}

// ---- supply commands ----

func (e *Engine) SetPlantRunning(id string, running bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	p, err := findPlant(e.plants, id)
	if err != nil {
		return err
	}
	if p.Running == running {
		return nil
	}
	p.Running = running
	verb := "stopped"
	if running {
		verb = "started"
	}
	e.emit(sourceSupply, models.EventCommand, fmt.Sprintf("%s %s", p.Name, verb))
	return nil
}

func (e *Engine) SetPlantImpurity(id string, pct float64) error {
	if pct < 0 || pct > 100 {
		return fmt.Errorf("%w: impurity %.1f%% must be in [0, 100]", ErrInvalidSetpoint, pct)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	p, err := findPlant(e.plants, id)
	if err != nil {
		return err
	}
	p.ImpurityPct = pct
	updateQuality(p)
	e.emit(sourceSupply, models.EventCommand, fmt.Sprintf("%s impurity set to %.1f%%", p.Name, pct))
	return nil
}

// RestockPlant adds raw material, clamped to the plant's raw capacity.
// It returns the kg actually accepted.
func (e *Engine) RestockPlant(id string, kg float64) (float64, error) {
	if kg <= 0 {
		return 0, fmt.Errorf("%w: restock amount %.1f must be positive", ErrInvalidSetpoint, kg)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	p, err := findPlant(e.plants, id)
	if err != nil {
		return 0, err
	}
	before := p.RawStockKg
	p.RawStockKg = clamp(p.RawStockKg+kg, 0, p.RawCapacityKg)
	accepted := p.RawStockKg - before
	e.emit(sourceSupply, models.EventSupply, fmt.Sprintf("%s restocked with %.0f kg", p.Name, accepted))
	return accepted, nil
}

// ---- alarms & security ----

func (e *Engine) SetAlarmConfig(id models.SignalID, cfg models.AlarmConfig) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.alarms.SetConfig(id, cfg); err != nil {
		return err
	}
	e.emit(sourceAlarms, models.EventCommand, fmt.Sprintf("Alarm config updated: %s", id))
	return nil
}

func (e *Engine) ResetSecurityLevel() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.security.ResetLevel() {
		return false
	}
	e.emit(sourceSecurity, models.EventCommand, "Security level reset to normal")
	return true
}

// ---- diagnostics ----

// RunDiagnostics starts a delayed diagnostic run. It returns false when one
// is already pending.
func (e *Engine) RunDiagnostics() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.diag.pending {
		return false
	}
	e.diag.pending = true
	e.diag.startedAt = e.now()
	e.emit(sourceDiagnostics, models.EventDiagnostic, "Diagnostics started")
	e.schedule(e.cfg.DiagnosticsDelay, e.completeDiagnostics)
	return true
}

func (e *Engine) completeDiagnostics() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.diag.pending {
		return
	}
	findings := inspect(e.primary.Faults(), e.plants, e.alarms.Active(), e.units)
	e.diag.last = &models.DiagnosticReport{
		StartedAt:   e.diag.startedAt,
		CompletedAt: e.now(),
		Findings:    findings,
	}
	e.diag.pending = false
	e.emit(sourceDiagnostics, models.EventDiagnostic,
		fmt.Sprintf("Diagnostics complete: %s", strings.Join(findings, "; ")))
}

// Diagnostics returns the last completed report, or nil.
func (e *Engine) Diagnostics() *models.DiagnosticReport {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.diag.report()
}

// ---- initial plant ----

func defaultUnits() []*models.SecondaryUnit {
	unit := func(id, name string, kind models.FeedstockKind, targetC, feedKgH float64) *models.SecondaryUnit {
		return &models.SecondaryUnit{
			ID:          id,
			Name:        name,
			Feedstock:   kind,
			Status:      models.StatusOff,
			TempC:       AmbientC,
			TargetTempC: targetC,
			PressureKPa: AmbientKPa,
			FeedRateKgH: feedKgH,
			Efficiency:  1,
		}
	}
	return []*models.SecondaryUnit{
		unit("R-02", "Reactor 2", models.FeedstockPellet, 450, 90),
		unit("R-03", "Reactor 3", models.FeedstockPellet, 450, 90),
		unit("R-04", "Reactor 4", models.FeedstockRubber, 480, 70),
		unit("R-05", "Reactor 5", models.FeedstockRubber, 480, 70),
	}
}

func defaultPlants() []*models.SupplyPlant {
	machines := func(names ...string) []models.Machine {
		out := make([]models.Machine, len(names))
		for i, n := range names {
			out[i] = models.Machine{Name: n, Health: models.MachineOK}
		}
		return out
	}
	plants := []*models.SupplyPlant{
		{
			ID:              "pellet",
			Name:            "Pellet Plant",
			Feedstock:       models.FeedstockPellet,
			Running:         true,
			Machines:        machines("chipper", "dryer", "hammer_mill", "pellet_press", "cooler"),
			CriticalMachine: "pellet_press",
			NominalRateKgH:  400,
			RawStockKg:      24000,
			RawCapacityKg:   30000,
			InputRatio:      1.15,
			Silo:            models.Silo{Feedstock: models.FeedstockPellet, LevelKg: 1500, CapacityKg: 5000},
			ImpurityPct:     2,
			TemperatureC:    plantNominalC,
		},
		{
			ID:              "rubber",
			Name:            "Granulate Plant",
			Feedstock:       models.FeedstockRubber,
			Running:         true,
			Machines:        machines("shredder", "magnetic_separator", "granulator", "fiber_screen"),
			CriticalMachine: "shredder",
			NominalRateKgH:  260,
			RawStockKg:      15000,
			RawCapacityKg:   20000,
			InputRatio:      1.25,
			Silo:            models.Silo{Feedstock: models.FeedstockRubber, LevelKg: 900, CapacityKg: 4000},
			ImpurityPct:     3,
			TemperatureC:    plantNominalC,
		},
	}
	for _, p := range plants {
		updateQuality(p)
	}
	return plants
}
