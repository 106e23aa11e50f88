package srs

import "fmt"

// CardState is the learning stage of a card.
type CardState int

const (
	StateNew        CardState = iota // never reviewed
	StateLearning                    // in initial sub-day learning steps
	StateReview                      // graduated to day-granularity scheduling
	StateRelearning                  // lapsed, repeating short steps
)

var stateNames = [...]string{
	StateNew:        "new",
	StateLearning:   "learning",
	StateReview:     "review",
	StateRelearning: "relearning",
}

var stateByName = map[string]CardState{
	"new":        StateNew,
	"learning":   StateLearning,
	"review":     StateReview,
	"relearning": StateRelearning,
}

// ParseCardState converts a stored state string into a CardState.
// A malformed value indicates corrupted review history, not user error.
func ParseCardState(s string) (CardState, error) {
	st, ok := stateByName[s]
	if !ok {
		return 0, fmt.Errorf("invalid card state %q", s)
	}
	return st, nil
}

func (s CardState) IsValid() bool {
	return s >= StateNew && s <= StateRelearning
}

func (s CardState) String() string {
	if s.IsValid() {
		return stateNames[s]
	}
	return fmt.Sprintf("state(%d)", int(s))
}
