package models

import "time"

// ReactorStatus is the lifecycle status shared by the primary and secondary units.
type ReactorStatus string

const (
	StatusOff      ReactorStatus = "OFF"
	StatusStarting ReactorStatus = "STARTING" // secondary units only
	StatusHeating  ReactorStatus = "HEATING"
	StatusStable   ReactorStatus = "STABLE"
	StatusCooling  ReactorStatus = "COOLING"
)

// OperatingMode selects the product split of the primary reactor.
type OperatingMode string

const (
	ModeBiochar OperatingMode = "BIOCHAR"
	ModeBioOil  OperatingMode = "BIO_OIL"
	ModeSyngas  OperatingMode = "SYNGAS"
)

// Valid reports whether m is a known operating mode.
func (m OperatingMode) Valid() bool {
	switch m {
	case ModeBiochar, ModeBioOil, ModeSyngas:
		return true
	}
	return false
}

// ValveState is the position of a two-way valve or the run state of a drive.
type ValveState string

const (
	ValveOpen   ValveState = "OPEN"
	ValveClosed ValveState = "CLOSED"
	DriveOn     ValveState = "ON"
	DriveOff    ValveState = "OFF"
)

// ReactorConfig holds the operator setpoints of the primary reactor.
type ReactorConfig struct {
	TargetTempC    float64       `json:"target_temp_c"`
	ResidenceTimeS float64       `json:"residence_time_s"`
	OxygenPct      float64       `json:"oxygen_pct"`
	Mode           OperatingMode `json:"mode"`
	FeedRateKgH    float64       `json:"feed_rate_kg_h"`
}

// Faults is the set of injected faults on the primary reactor.
type Faults struct {
	CondenserBlockage bool `json:"condenser_blockage"`
	GasLineBlockage   bool `json:"gas_line_blockage"`
	SensorFailure     bool `json:"sensor_failure"`
	FeedContamination bool `json:"feed_contamination"`
}

// SignalSnapshot is one committed reading of every primary reactor signal.
type SignalSnapshot struct {
	Seq       uint64        `json:"seq"`
	Timestamp time.Time     `json:"timestamp"`
	Status    ReactorStatus `json:"status"`
	Mode      OperatingMode `json:"mode"`

	TargetTempC    float64 `json:"target_temp_c"`
	ResidenceTimeS float64 `json:"residence_time_s"`
	OxygenPct      float64 `json:"oxygen_pct"`

	ReactorTempC        float64 `json:"reactor_temp_c"`
	WallTempC           float64 `json:"wall_temp_c"`
	ThermocoupleTempC   float64 `json:"thermocouple_temp_c"` // reported reading, may diverge on sensor failure
	CondenserTempC      float64 `json:"condenser_temp_c"`
	CondenserInletTempC float64 `json:"condenser_inlet_temp_c"`

	PressureKPa        float64 `json:"pressure_kpa"`
	GasLinePressureKPa float64 `json:"gas_line_pressure_kpa"`

	FeedRateKgH       float64 `json:"feed_rate_kg_h"`
	AugerSpeedRPM     float64 `json:"auger_speed_rpm"`
	VaporFlowM3H      float64 `json:"vapor_flow_m3_h"`
	CondensateFlowLH  float64 `json:"condensate_flow_l_h"`
	SyngasFlowM3H     float64 `json:"syngas_flow_m3_h"`
	CoolantFlowLH     float64 `json:"coolant_flow_l_h"`
	CharOutputKgH     float64 `json:"char_output_kg_h"`
	HeaterPowerKW     float64 `json:"heater_power_kw"`
	FeedContamination float64 `json:"feed_contamination_pct"`

	GasCOPct    float64 `json:"gas_co_pct"`
	GasCO2Pct   float64 `json:"gas_co2_pct"`
	GasH2Pct    float64 `json:"gas_h2_pct"`
	GasCH4Pct   float64 `json:"gas_ch4_pct"`
	GasOtherPct float64 `json:"gas_other_pct"`

	CharYieldPct float64 `json:"char_yield_pct"`
	OilYieldPct  float64 `json:"oil_yield_pct"`
	GasYieldPct  float64 `json:"gas_yield_pct"`

	HopperLevelPct  float64 `json:"hopper_level_pct"`
	BioOilTankPct   float64 `json:"bio_oil_tank_pct"`
	CharBinLevelPct float64 `json:"char_bin_level_pct"`

	FeedValve  ValveState `json:"feed_valve"`
	VentValve  ValveState `json:"vent_valve"`
	FlareValve ValveState `json:"flare_valve"`
	Auger      ValveState `json:"auger"`
	Burner     ValveState `json:"burner"`

	NitrogenPurge       bool `json:"nitrogen_purge"`
	EmergencyStop       bool `json:"emergency_stop"`
	PressureReliefArmed bool `json:"pressure_relief_armed"`
	InterlockOK         bool `json:"interlock_ok"`

	HeatingElapsedS int `json:"heating_elapsed_s"`
	StableElapsedS  int `json:"stable_elapsed_s"`
	CoolingElapsedS int `json:"cooling_elapsed_s"`
}
