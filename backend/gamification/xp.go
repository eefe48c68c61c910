package gamification

import (
	"errors"
	"math"
	"time"
)

const (
	// BaseXP is awarded for any completion inside the grace window.
	BaseXP = 100
	// MinXP is the floor no completion can fall below.
	MinXP = 10
	// GraceSeconds is how long a learner can take before the penalty starts.
	GraceSeconds = 30
)

var ErrInvalidInterval = errors.New("completion time is before start time")

// ActivityXP computes the reward for finishing an activity. Completions within
// the grace window earn BaseXP; after that one point is lost per whole second,
// down to MinXP. The result is always in [MinXP, BaseXP].
func ActivityXP(startedAt, completedAt time.Time) (int, error) {
	if completedAt.Before(startedAt) {
		return 0, ErrInvalidInterval
	}

	elapsed := completedAt.Sub(startedAt).Seconds()
	xp := BaseXP
	if elapsed > GraceSeconds {
		xp = BaseXP - int(math.Floor(elapsed-GraceSeconds))
	}
	if xp < MinXP {
		xp = MinXP
	}
	return xp, nil
}
