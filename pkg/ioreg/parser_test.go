package ioreg

import (
	"testing"
)

const fullDump = `+-o AppleSmartBattery  <class AppleSmartBattery, id 0x100000265, registered, matched, active>
    {
      "Serial" = "F5D1234567890ABCDEF"
      "DesignCapacity" = 5103
      "AppleRawMaxCapacity" = 4661
      "AppleRawCurrentCapacity" = 3412
      "CurrentCapacity" = 73
      "CycleCount" = 209
      "Temperature" = 3742
      "ExternalConnected" = Yes
    }
`

func TestParseFullDump(t *testing.T) {
	r := Parse(fullDump)

	if r.DesignCapacity == nil || *r.DesignCapacity != 5103 {
		t.Errorf("DesignCapacity = %v, want 5103", r.DesignCapacity)
	}
	if r.MaxCapacity == nil || *r.MaxCapacity != 4661 {
		t.Errorf("MaxCapacity = %v, want 4661", r.MaxCapacity)
	}
	if r.CycleCount == nil || *r.CycleCount != 209 {
		t.Errorf("CycleCount = %v, want 209", r.CycleCount)
	}
	if r.ChargePercent == nil || *r.ChargePercent != 73 {
		t.Errorf("ChargePercent = %v, want 73", r.ChargePercent)
	}
	if r.Temperature == nil || *r.Temperature != 37.42 {
		t.Errorf("Temperature = %v, want 37.42", r.Temperature)
	}
	if r.Serial == nil || *r.Serial != "F5D1234567890ABCDEF" {
		t.Errorf("Serial = %v, want F5D1234567890ABCDEF", r.Serial)
	}
}

func TestParsePartialDump(t *testing.T) {
	tests := []struct {
		name string
		text string
		chk  func(t *testing.T, r Report)
	}{
		{
			name: "only cycle count",
			text: `"CycleCount" = 42`,
			chk: func(t *testing.T, r Report) {
				if r.CycleCount == nil || *r.CycleCount != 42 {
					t.Errorf("CycleCount = %v, want 42", r.CycleCount)
				}
				if r.DesignCapacity != nil || r.MaxCapacity != nil ||
					r.ChargePercent != nil || r.Temperature != nil || r.Serial != nil {
					t.Errorf("unexpected fields populated: %+v", r)
				}
			},
		},
		{
			name: "empty input",
			text: "",
			chk: func(t *testing.T, r Report) {
				if r != (Report{}) {
					t.Errorf("expected empty report, got %+v", r)
				}
			},
		},
		{
			name: "malformed value does not abort others",
			text: "\"DesignCapacity\" = Yes\n\"CycleCount\" = 17\n",
			chk: func(t *testing.T, r Report) {
				if r.DesignCapacity != nil {
					t.Errorf("DesignCapacity = %v, want nil", r.DesignCapacity)
				}
				if r.CycleCount == nil || *r.CycleCount != 17 {
					t.Errorf("CycleCount = %v, want 17", r.CycleCount)
				}
			},
		},
		{
			name: "overflowing number treated as absent",
			text: `"CycleCount" = 99999999999999999999999999`,
			chk: func(t *testing.T, r Report) {
				if r.CycleCount != nil {
					t.Errorf("CycleCount = %v, want nil", r.CycleCount)
				}
			},
		},
		{
			name: "raw current capacity is not charge percent",
			text: `"AppleRawCurrentCapacity" = 3412`,
			chk: func(t *testing.T, r Report) {
				if r.ChargePercent != nil {
					t.Errorf("ChargePercent = %v, want nil", r.ChargePercent)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.chk(t, Parse(tt.text))
		})
	}
}
