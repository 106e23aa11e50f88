package srs

import (
	"math"
	"time"
)

const (
	minStability  = 0.001
	minDifficulty = 1.0
	maxDifficulty = 10.0
)

// Engine turns a rating into the next memory state and due date. It is a
// pure function of (state, rating, now) and the configured parameter
// vector; two engines built from the same Params always agree.
type Engine struct {
	params Params
	decay  float64 // -w[20]
	factor float64 // 0.9^(1/decay) - 1, so R(scheduledDays, S) = retention target
}

// NewEngine validates the parameter vector and precomputes the
// forgetting-curve constants.
func NewEngine(p Params) (*Engine, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	decay := -p.Weights[20]
	return &Engine{
		params: p,
		decay:  decay,
		factor: math.Pow(0.9, 1.0/decay) - 1.0,
	}, nil
}

// Params returns the vector the engine was built from.
func (e *Engine) Params() Params {
	return e.params
}

// Retrievability estimates the probability of successful recall at the
// given time: R(t, S) = (1 + factor*t/S)^decay. It decreases
// monotonically with elapsed time and increases with stability.
// Never-reviewed cards report 0.
func (e *Engine) Retrievability(s MemoryState, now time.Time) float64 {
	if s.LastReview == nil || s.Stability <= 0 {
		return 0
	}
	elapsed := now.Sub(*s.LastReview).Hours() / 24.0
	return e.forgettingCurve(elapsed, s.Stability)
}

// Next computes the memory state that results from rating the card at
// the given time. The input state is not mutated.
func (e *Engine) Next(s MemoryState, rating Rating, now time.Time) MemoryState {
	next := s

	var elapsed float64
	if s.LastReview != nil {
		elapsed = now.Sub(*s.LastReview).Hours() / 24.0
		if elapsed < 0 {
			elapsed = 0
		}
	}

	next.Reps++
	if rating == Again {
		next.Lapses++
	}
	e.updateMemory(&next, s, rating, elapsed)

	interval := e.transition(&next, rating)

	next.ElapsedDays = int(elapsed)
	next.ScheduledDays = int(interval.Hours() / 24.0)
	next.Due = now.Add(interval)
	reviewed := now
	next.LastReview = &reviewed
	return next
}

// updateMemory advances stability and difficulty. The first review seeds
// both from the rating; later reviews distinguish same-day repetitions
// from cross-day recalls, where the reinforcement is scaled by how close
// the card was to being forgotten.
func (e *Engine) updateMemory(next *MemoryState, prev MemoryState, rating Rating, elapsed float64) {
	if prev.State == StateNew || prev.Stability <= 0 {
		next.Stability = e.initialStability(rating)
		next.Difficulty = clampDifficulty(e.initialDifficulty(rating))
		return
	}

	if elapsed < 1 {
		next.Stability = e.shortTermStability(prev.Stability, rating)
	} else {
		r := e.forgettingCurve(elapsed, prev.Stability)
		if rating == Again {
			next.Stability = e.stabilityAfterLapse(prev.Difficulty, prev.Stability, r)
		} else {
			next.Stability = e.stabilityAfterRecall(prev.Difficulty, prev.Stability, r, rating)
		}
	}
	next.Difficulty = e.nextDifficulty(prev.Difficulty, rating)
}

// transition applies the state machine and returns the raw interval.
func (e *Engine) transition(next *MemoryState, rating Rating) time.Duration {
	switch next.State {
	case StateNew:
		next.State = StateLearning
		next.LearningSteps = 0
		return e.stepThrough(next, rating, e.params.LearningSteps)
	case StateLearning:
		return e.stepThrough(next, rating, e.params.LearningSteps)
	case StateRelearning:
		return e.stepThrough(next, rating, e.params.RelearningSteps)
	default:
		return e.reviewTransition(next, rating)
	}
}

// stepThrough handles Learning and Relearning: Again restarts the steps,
// Good advances one, Easy (or exhausting the steps) graduates to Review.
func (e *Engine) stepThrough(next *MemoryState, rating Rating, steps []time.Duration) time.Duration {
	step := next.LearningSteps

	if len(steps) == 0 || (step >= len(steps) && rating != Again) {
		return e.graduate(next)
	}

	switch rating {
	case Again:
		next.LearningSteps = 0
		return steps[0]

	case Hard:
		// Hard repeats the current step; at step 0 the interval sits
		// between the first two steps so it still feels like progress.
		if step == 0 && len(steps) == 1 {
			return time.Duration(float64(steps[0]) * 1.5)
		}
		if step == 0 && len(steps) >= 2 {
			return (steps[0] + steps[1]) / 2
		}
		return steps[step]

	case Good:
		if step+1 >= len(steps) {
			return e.graduate(next)
		}
		next.LearningSteps = step + 1
		return steps[step+1]

	default: // Easy
		return e.graduate(next)
	}
}

// reviewTransition handles a card already in long-term review. A lapse
// drops it into Relearning with a short step; anything else reschedules
// at day granularity from the updated stability.
func (e *Engine) reviewTransition(next *MemoryState, rating Rating) time.Duration {
	if rating == Again && len(e.params.RelearningSteps) > 0 {
		next.State = StateRelearning
		next.LearningSteps = 0
		return e.params.RelearningSteps[0]
	}
	next.LearningSteps = 0
	return e.dayInterval(next.Stability)
}

func (e *Engine) graduate(next *MemoryState) time.Duration {
	next.State = StateReview
	next.LearningSteps = 0
	return e.dayInterval(next.Stability)
}

// dayInterval solves the forgetting curve for the interval at which
// predicted recall falls to the desired retention, clamped to
// [1, MaximumInterval] days.
func (e *Engine) dayInterval(stability float64) time.Duration {
	raw := stability / e.factor * (math.Pow(e.params.DesiredRetention, 1.0/e.decay) - 1)
	days := int(math.Round(raw))
	if days < 1 {
		days = 1
	}
	if days > e.params.MaximumInterval {
		days = e.params.MaximumInterval
	}
	return time.Duration(days) * 24 * time.Hour
}

func (e *Engine) forgettingCurve(elapsed, stability float64) float64 {
	return math.Pow(1+e.factor*elapsed/stability, e.decay)
}

// initialStability is S0(G) = w[G-1].
func (e *Engine) initialStability(rating Rating) float64 {
	return clampStability(e.params.Weights[rating-1])
}

// initialDifficulty is D0(G) = w[4] - e^(w[5]*(G-1)) + 1, unclamped so it
// can also serve as the mean-reversion target.
func (e *Engine) initialDifficulty(rating Rating) float64 {
	return e.params.Weights[4] - math.Exp(e.params.Weights[5]*float64(rating-1)) + 1
}

// stabilityAfterRecall grows stability after Hard/Good/Easy. Growth is
// largest when retrievability was low (the card was almost forgotten and
// still recalled) and shrinks as retrievability approaches 1.
func (e *Engine) stabilityAfterRecall(d, s, r float64, rating Rating) float64 {
	w := &e.params.Weights
	hardPenalty := 1.0
	if rating == Hard {
		hardPenalty = w[15]
	}
	easyBonus := 1.0
	if rating == Easy {
		easyBonus = w[16]
	}
	return s * (1 + math.Exp(w[8])*
		(11-d)*
		math.Pow(s, -w[9])*
		(math.Exp((1-r)*w[10])-1)*
		hardPenalty*easyBonus)
}

// stabilityAfterLapse drops stability after Again, bounded above by the
// same-day shrink so a lapse never leaves more stability than a failed
// same-day repetition would.
func (e *Engine) stabilityAfterLapse(d, s, r float64) float64 {
	w := &e.params.Weights
	long := w[11] *
		math.Pow(d, -w[12]) *
		(math.Pow(s+1, w[13]) - 1) *
		math.Exp((1-r)*w[14])
	short := s / math.Exp(w[17]*w[18])
	return math.Min(long, short)
}

// shortTermStability handles same-day reviews, where no meaningful
// forgetting has happened yet.
func (e *Engine) shortTermStability(s float64, rating Rating) float64 {
	w := &e.params.Weights
	inc := math.Exp(w[17]*(float64(rating)-3+w[18])) * math.Pow(s, -w[19])
	if rating == Good || rating == Easy {
		inc = math.Max(inc, 1.0)
	}
	return clampStability(s * inc)
}

// nextDifficulty nudges difficulty down for Easy and up for Hard/Again,
// with linear damping near the bounds and mean reversion toward D0(Easy).
func (e *Engine) nextDifficulty(d float64, rating Rating) float64 {
	w := &e.params.Weights
	delta := -w[6] * (float64(rating) - 3)
	damped := d + (10-d)*delta/9
	reverted := w[7]*e.initialDifficulty(Easy) + (1-w[7])*damped
	return clampDifficulty(reverted)
}

func clampStability(s float64) float64 {
	return math.Max(s, minStability)
}

func clampDifficulty(d float64) float64 {
	return math.Min(math.Max(d, minDifficulty), maxDifficulty)
}
