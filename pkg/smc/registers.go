package smc

import (
	"encoding/binary"
	"math"

	"github.com/pkg/errors"
)

// SystemPowerWatts returns the total system power draw.
func (c *AppleSMC) SystemPowerWatts() (float64, error) {
	v, err := c.Read(SystemPowerKey)
	if err != nil {
		return 0, errors.Wrap(err, "failed to read system power")
	}
	return decodeFloat(v.Bytes), nil
}

// AdapterVoltageVolts returns the power adapter input voltage.
// It reads 0 when no adapter is connected.
func (c *AppleSMC) AdapterVoltageVolts() (float64, error) {
	v, err := c.Read(DCInVoltageKey)
	if err != nil {
		return 0, errors.Wrap(err, "failed to read adapter voltage")
	}
	return decodeFloat(v.Bytes), nil
}

// AdapterPowerWatts returns the power delivered by the adapter.
func (c *AppleSMC) AdapterPowerWatts() (float64, error) {
	v, err := c.Read(DCInPowerKey)
	if err != nil {
		return 0, errors.Wrap(err, "failed to read adapter power")
	}
	return decodeFloat(v.Bytes), nil
}

// BatteryVoltageVolts returns the battery terminal voltage.
func (c *AppleSMC) BatteryVoltageVolts() (float64, error) {
	v, err := c.Read(BatteryVoltageKey)
	if err != nil {
		return 0, errors.Wrap(err, "failed to read battery voltage")
	}
	return float64(decodeUint(v.Bytes)) / 1000.0, nil
}

// BatteryAmperageAmps returns the battery current. Positive values mean
// current flowing into the battery (charging).
func (c *AppleSMC) BatteryAmperageAmps() (float64, error) {
	v, err := c.Read(BatteryAmperageKey)
	if err != nil {
		return 0, errors.Wrap(err, "failed to read battery amperage")
	}
	return float64(decodeInt(v.Bytes)) / 1000.0, nil
}

// decodeFloat decodes a 4-byte slice into a little-endian float32.
func decodeFloat(b []byte) float64 {
	if len(b) != 4 {
		return 0
	}
	return float64(math.Float32frombits(binary.LittleEndian.Uint32(b)))
}

// decodeInt decodes a 2-byte slice into a little-endian int16.
func decodeInt(b []byte) int16 {
	if len(b) != 2 {
		return 0
	}
	return int16(binary.LittleEndian.Uint16(b))
}

// decodeUint decodes a 2-byte slice into a little-endian uint16.
func decodeUint(b []byte) uint16 {
	if len(b) != 2 {
		return 0
	}
	return binary.LittleEndian.Uint16(b)
}
