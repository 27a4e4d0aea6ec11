package types

// SerialUnknown is the serial number placeholder used until the first
// successful battery inventory parse.
const SerialUnknown = "--"

// Snapshot is one internally-consistent set of power telemetry readings.
// A new Snapshot is published wholesale after every sampling cycle;
// consumers hold read-only copies and never observe partial updates.
//
// Capacities are in mAh, voltages in V, amperages in A, power in W,
// temperature in degrees Celsius.
type Snapshot struct {
	DesignCapacity int     `json:"design_capacity"`
	MaxCapacity    int     `json:"max_capacity"`
	HealthPercent  float64 `json:"health_percent"`
	CycleCount     int     `json:"cycle_count"`
	ChargePercent  int     `json:"charge_percent"`
	Temperature    float64 `json:"temperature"`
	Serial         string  `json:"serial"`

	AdapterVoltage  float64 `json:"adapter_voltage"`
	AdapterPower    float64 `json:"adapter_power"`
	AdapterAmperage float64 `json:"adapter_amperage"`

	BatteryVoltage  float64 `json:"battery_voltage"`
	BatteryAmperage float64 `json:"battery_amperage"`
	BatteryPower    float64 `json:"battery_power"`

	Charging   bool    `json:"charging"`
	SystemLoad float64 `json:"system_load"`
}
