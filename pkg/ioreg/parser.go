package ioreg

import (
	"regexp"
	"strconv"
)

// Report holds the fields that could be located in one ioreg dump.
// Absent or malformed fields stay nil, so consumers can keep their
// previous values instead of overwriting them with zeros.
type Report struct {
	DesignCapacity *int // mAh
	MaxCapacity    *int // mAh
	CycleCount     *int
	ChargePercent  *int
	Temperature    *float64 // degrees Celsius
	Serial         *string
}

// ioreg prints registry properties as `"Key" = value` or `"Key" = "value"`.
// The leading quote anchors each key so e.g. "CurrentCapacity" does not
// match inside "AppleRawCurrentCapacity".
var (
	designCapacityRe = regexp.MustCompile(`"DesignCapacity"\s*=\s*(\d+)`)
	maxCapacityRe    = regexp.MustCompile(`"AppleRawMaxCapacity"\s*=\s*(\d+)`)
	cycleCountRe     = regexp.MustCompile(`"CycleCount"\s*=\s*(\d+)`)
	chargePercentRe  = regexp.MustCompile(`"CurrentCapacity"\s*=\s*(\d+)`)
	temperatureRe    = regexp.MustCompile(`"Temperature"\s*=\s*(\d+)`)
	serialRe         = regexp.MustCompile(`"Serial"\s*=\s*"([^"]*)"`)
)

// Parse extracts the recognized fields from a raw ioreg dump. Each
// extraction is independent: one missing or malformed field never
// aborts the others.
func Parse(text string) Report {
	r := Report{
		DesignCapacity: extractInt(designCapacityRe, text),
		MaxCapacity:    extractInt(maxCapacityRe, text),
		CycleCount:     extractInt(cycleCountRe, text),
		ChargePercent:  extractInt(chargePercentRe, text),
	}

	// Temperature is reported in hundredths of a degree Celsius.
	if raw := extractInt(temperatureRe, text); raw != nil {
		celsius := float64(*raw) / 100.0
		r.Temperature = &celsius
	}

	if m := serialRe.FindStringSubmatch(text); m != nil {
		serial := m[1]
		r.Serial = &serial
	}

	return r
}

func extractInt(re *regexp.Regexp, text string) *int {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		// Too large to fit or otherwise unusable; treat as absent.
		return nil
	}
	return &n
}
