package srs

import "fmt"

// Rating is the learner's self-assessment of a recall attempt.
type Rating int

const (
	Again Rating = iota + 1 // forgot the card
	Hard
	Good
	Easy
)

var ratingNames = [...]string{Again: "again", Hard: "hard", Good: "good", Easy: "easy"}

var ratingByName = map[string]Rating{
	"again": Again,
	"hard":  Hard,
	"good":  Good,
	"easy":  Easy,
}

// ParseRating converts a wire-level rating string into a Rating.
// Unknown values return an error; callers reject these before the
// engine is ever invoked.
func ParseRating(s string) (Rating, error) {
	r, ok := ratingByName[s]
	if !ok {
		return 0, fmt.Errorf("invalid rating %q (want again, hard, good, or easy)", s)
	}
	return r, nil
}

func (r Rating) IsValid() bool {
	return r >= Again && r <= Easy
}

func (r Rating) String() string {
	if r.IsValid() {
		return ratingNames[r]
	}
	return fmt.Sprintf("rating(%d)", int(r))
}
