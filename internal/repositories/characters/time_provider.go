package characters

import "time"

// TimeProvider abstracts the clock for record timestamps
type TimeProvider interface {
	Now() time.Time
}

type realTime struct{}

func (realTime) Now() time.Time { return time.Now() }
