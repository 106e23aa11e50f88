package srs

import (
	"fmt"
	"time"
)

// Params is the full parameter vector driving the memory model. It is
// explicit configuration, never derived state: alternate or refit vectors
// can be substituted without changing the engine contract, and historical
// review events stay reproducible against the vector that produced them.
type Params struct {
	// Weights are the 21 FSRS-6 model weights. w[0..3] set initial
	// stability per first rating, w[4..7] drive difficulty, w[8..10]
	// recall stability growth, w[11..14] post-lapse stability,
	// w[15..16] hard penalty / easy bonus, w[17..19] same-day reviews,
	// w[20] the forgetting-curve decay exponent.
	Weights [21]float64

	// DesiredRetention is the target recall probability at the moment a
	// card comes due. Intervals are solved so predicted recall decays to
	// exactly this value.
	DesiredRetention float64

	// MaximumInterval caps scheduled intervals, in days.
	MaximumInterval int

	// LearningSteps are the sub-day intervals a new card repeats before
	// graduating to Review. RelearningSteps play the same role after a
	// lapse.
	LearningSteps   []time.Duration
	RelearningSteps []time.Duration
}

// defaultWeights are the published FSRS-6 defaults.
var defaultWeights = [21]float64{
	0.212, 1.2931, 2.3065, 8.2956,
	6.4133, 0.8334, 3.0194, 0.001,
	1.8722, 0.1666, 0.796, 1.4835,
	0.0614, 0.2629, 1.6483, 0.6014,
	1.8729, 0.5425, 0.0912, 0.0658,
	0.1542,
}

var weightLowerBounds = [21]float64{
	0.001, 0.001, 0.001, 0.001,
	1.0, 0.001, 0.001, 0.001,
	0.0, 0.0, 0.001, 0.001,
	0.001, 0.001, 0.0, 0.0,
	1.0, 0.0, 0.0, 0.0,
	0.1,
}

var weightUpperBounds = [21]float64{
	100.0, 100.0, 100.0, 100.0,
	10.0, 4.0, 4.0, 0.75,
	4.5, 0.8, 3.5, 5.0,
	0.25, 0.9, 4.0, 1.0,
	6.0, 2.0, 2.0, 0.8,
	0.8,
}

// DefaultParams returns the stock parameter vector: FSRS-6 default
// weights, 90% target retention, 100-year interval cap, 1m/10m learning
// steps and a single 10m relearning step.
func DefaultParams() Params {
	return Params{
		Weights:          defaultWeights,
		DesiredRetention: 0.9,
		MaximumInterval:  36500,
		LearningSteps:    []time.Duration{time.Minute, 10 * time.Minute},
		RelearningSteps:  []time.Duration{10 * time.Minute},
	}
}

// Validate checks that every weight is within its trainable bounds and
// that retention and interval settings are usable.
func (p Params) Validate() error {
	for i, w := range p.Weights {
		if w < weightLowerBounds[i] || w > weightUpperBounds[i] {
			return fmt.Errorf("weight w[%d] = %v out of bounds [%v, %v]",
				i, w, weightLowerBounds[i], weightUpperBounds[i])
		}
	}
	if p.DesiredRetention <= 0 || p.DesiredRetention > 1 {
		return fmt.Errorf("desired retention %v out of range (0, 1]", p.DesiredRetention)
	}
	if p.MaximumInterval < 1 {
		return fmt.Errorf("maximum interval %d must be at least 1 day", p.MaximumInterval)
	}
	return nil
}
