package smc

// Power telemetry SMC keys. Unlike the charging-control keys, these are
// the same on Apple Silicon and Intel Macs.
const (
	// SystemPowerKey holds total system power draw in watts (flt).
	SystemPowerKey = "PSTR"
	// DCInVoltageKey holds the power adapter input voltage in volts (flt).
	DCInVoltageKey = "VD0R"
	// DCInPowerKey holds the power adapter input power in watts (flt).
	DCInPowerKey = "PDTR"
	// BatteryVoltageKey holds the battery voltage in millivolts (ui16).
	BatteryVoltageKey = "B0AV"
	// BatteryAmperageKey holds the battery current in milliamps (si16).
	// Positive values mean the battery is being charged.
	BatteryAmperageKey = "B0AC"
)
