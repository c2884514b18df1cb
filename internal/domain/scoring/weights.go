package scoring

import (
	"errors"
	"fmt"
)

// ErrInvalidWeights is returned by Weights.Validate.
var ErrInvalidWeights = errors.New("invalid scoring weights")

// Weights combine the five sub-scores into a total.
type Weights struct {
	Experience   float64 `koanf:"experience"`
	Diversity    float64 `koanf:"diversity"`
	Demographic  float64 `koanf:"demographic"`
	Availability float64 `koanf:"availability"`
	Preference   float64 `koanf:"preference"`
}

// DefaultWeights returns the standard 40/20/15/15/10 split.
func DefaultWeights() Weights {
	return Weights{
		Experience:   0.40,
		Diversity:    0.20,
		Demographic:  0.15,
		Availability: 0.15,
		Preference:   0.10,
	}
}

// Validate rejects negative weights and an all-zero set.
func (w Weights) Validate() error {
	for name, v := range map[string]float64{
		"experience":   w.Experience,
		"diversity":    w.Diversity,
		"demographic":  w.Demographic,
		"availability": w.Availability,
		"preference":   w.Preference,
	} {
		if v < 0 {
			return fmt.Errorf("%w: %s weight is negative", ErrInvalidWeights, name)
		}
	}
	if w.Experience+w.Diversity+w.Demographic+w.Availability+w.Preference == 0 {
		return fmt.Errorf("%w: all weights are zero", ErrInvalidWeights)
	}
	return nil
}

// Combine returns the weighted sum of b's sub-scores.
func (w Weights) Combine(b Breakdown) float64 {
	return w.Experience*b.Experience +
		w.Diversity*b.Diversity +
		w.Demographic*b.Demographic +
		w.Availability*b.Availability +
		w.Preference*b.Preference
}
