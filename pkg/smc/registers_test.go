package smc

import (
	"encoding/binary"
	"math"
	"testing"
)

func fltBytes(f float32) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, math.Float32bits(f))
	return b
}

func si16Bytes(i int16) []byte {
	b := make([]byte, 2)
	binary.LittleEndian.PutUint16(b, uint16(i))
	return b
}

func ui16Bytes(u uint16) []byte {
	b := make([]byte, 2)
	binary.LittleEndian.PutUint16(b, u)
	return b
}

func TestRegisterReads(t *testing.T) {
	c := NewMock(map[string][]byte{
		SystemPowerKey:     fltBytes(12.5),
		DCInVoltageKey:     fltBytes(20.0),
		DCInPowerKey:       fltBytes(60.0),
		BatteryVoltageKey:  ui16Bytes(12600), // mV
		BatteryAmperageKey: si16Bytes(-1500), // mA, discharging
	})
	if err := c.Open(); err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer func() { _ = c.Close() }()

	tests := []struct {
		name string
		read func() (float64, error)
		want float64
	}{
		{"system power", c.SystemPowerWatts, 12.5},
		{"adapter voltage", c.AdapterVoltageVolts, 20.0},
		{"adapter power", c.AdapterPowerWatts, 60.0},
		{"battery voltage", c.BatteryVoltageVolts, 12.6},
		{"battery amperage", c.BatteryAmperageAmps, -1.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.read()
			if err != nil {
				t.Fatalf("read failed: %v", err)
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDecodeWrongLength(t *testing.T) {
	if got := decodeFloat([]byte{1, 2}); got != 0 {
		t.Errorf("decodeFloat on short slice = %v, want 0", got)
	}
	if got := decodeInt([]byte{1, 2, 3}); got != 0 {
		t.Errorf("decodeInt on long slice = %v, want 0", got)
	}
	if got := decodeUint(nil); got != 0 {
		t.Errorf("decodeUint on nil = %v, want 0", got)
	}
}
