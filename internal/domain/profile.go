package domain

import "strings"

// Sex selects the Mifflin-St Jeor constant. Anything else uses the midpoint.
type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
)

// ActivityLevel is the habitual activity multiplier applied to the resting energy estimate.
type ActivityLevel string

const (
	ActivitySedentary  ActivityLevel = "sedentary"
	ActivityLight      ActivityLevel = "light"
	ActivityModerate   ActivityLevel = "moderate"
	ActivityActive     ActivityLevel = "active"
	ActivityVeryActive ActivityLevel = "very_active"
)

// ActivityFactor returns the multiplier for a, defaulting to light activity.
func (a ActivityLevel) ActivityFactor() float64 {
	switch ActivityLevel(strings.ToLower(strings.TrimSpace(string(a)))) {
	case ActivitySedentary:
		return 1.2
	case ActivityModerate:
		return 1.55
	case ActivityActive:
		return 1.725
	case ActivityVeryActive:
		return 1.9
	default:
		return 1.375
	}
}

// BodyStats are optional anthropometrics used to personalize calorie targets.
type BodyStats struct {
	WeightKg float64       `json:"weightKg"`
	HeightCm float64       `json:"heightCm"`
	Age      int           `json:"age"`
	Sex      Sex           `json:"sex,omitempty"`
	Activity ActivityLevel `json:"activity,omitempty"`
}

// Complete reports whether the stats carry enough data for an energy estimate.
func (b *BodyStats) Complete() bool {
	return b != nil && b.WeightKg > 0 && b.HeightCm > 0 && b.Age > 0
}
