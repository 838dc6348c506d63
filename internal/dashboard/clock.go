package dashboard

import "time"

//go:generate mockgen -source=clock.go -destination=clock_mock.go -package=dashboard
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock reads the wall clock.
var SystemClock Clock = systemClock{}
