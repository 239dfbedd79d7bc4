package domain

import "strings"

// ReadinessLevel is the coarse physiological-readiness classification.
type ReadinessLevel string

const (
	ReadinessLow    ReadinessLevel = "low"
	ReadinessMedium ReadinessLevel = "medium"
	ReadinessHigh   ReadinessLevel = "high"
)

// ParseReadinessLevel maps s onto a level. Unknown values read as medium.
func ParseReadinessLevel(s string) ReadinessLevel {
	switch l := ReadinessLevel(strings.ToLower(strings.TrimSpace(s))); l {
	case ReadinessLow, ReadinessHigh:
		return l
	default:
		return ReadinessMedium
	}
}

// ReadinessContext is the optional readiness signal supplied by the readiness provider.
type ReadinessContext struct {
	Level      ReadinessLevel `json:"level"`
	Descriptor string         `json:"descriptor"`
}

// ReadinessSignals are the raw 1-5 self-reported inputs a readiness level is derived from.
// Stress is inverted: 5 means very stressed.
type ReadinessSignals struct {
	Mood       int `json:"mood"`
	Energy     int `json:"energy"`
	Stress     int `json:"stress"`
	Sleep      int `json:"sleep"`
	Confidence int `json:"confidence"`
}

// ReadinessBand holds the adjustment ranges applied at a readiness level, in signed percent.
// The prompt states the ranges to the endpoint; the fallback path applies the midpoints.
type ReadinessBand struct {
	VolumeMinPct  int
	VolumeMaxPct  int
	CalorieMinPct int
	CalorieMaxPct int
	ExtraWaterMl  int
}

// VolumeFactor is the multiplicative training-volume adjustment at the band midpoint.
func (b ReadinessBand) VolumeFactor() float64 {
	return 1 + float64(b.VolumeMinPct+b.VolumeMaxPct)/200
}

// CalorieFactor is the multiplicative calorie adjustment at the band midpoint.
func (b ReadinessBand) CalorieFactor() float64 {
	return 1 + float64(b.CalorieMinPct+b.CalorieMaxPct)/200
}

// ReadinessBands is shared by the prompt composer and the fallback computer so both paths
// move in the same direction.
//
//nolint:gochecknoglobals // Read-only lookup table
var ReadinessBands = map[ReadinessLevel]ReadinessBand{
	ReadinessLow: {
		VolumeMinPct:  -40,
		VolumeMaxPct:  -20,
		CalorieMinPct: -15,
		CalorieMaxPct: -5,
		ExtraWaterMl:  250,
	},
	ReadinessMedium: {},
	ReadinessHigh: {
		VolumeMinPct:  10,
		VolumeMaxPct:  20,
		CalorieMinPct: 5,
		CalorieMaxPct: 15,
	},
}

// BandFor returns the band for rc, treating a nil context as medium.
func BandFor(rc *ReadinessContext) ReadinessBand {
	if rc == nil {
		return ReadinessBands[ReadinessMedium]
	}
	return ReadinessBands[ParseReadinessLevel(string(rc.Level))]
}

// BandTag names the band in effect for analytics; nil context reads as "unknown".
func BandTag(rc *ReadinessContext) string {
	if rc == nil {
		return "unknown"
	}
	return string(ParseReadinessLevel(string(rc.Level)))
}
