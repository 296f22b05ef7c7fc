package wizardsessions

import "time"

//go:generate mockgen -destination=mock/mock_time_provider.go -package=mockwizardsessions github.com/ExoCode33/bp-idolls-guild-manager/internal/repositories/wizardsessions TimeProvider

// TimeProvider abstracts the clock so TTL behavior is testable
type TimeProvider interface {
	Now() time.Time
}

type realTime struct{}

func (realTime) Now() time.Time { return time.Now() }

// RealTime returns a TimeProvider backed by time.Now
func RealTime() TimeProvider { return realTime{} }
