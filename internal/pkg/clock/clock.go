package clock

import "time"

// Clock abstracts the wall clock so cutoff and rollover logic stays
// deterministic under test. Production code injects System().
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

func System() Clock {
	return systemClock{}
}

// Fake is a manually-advanced clock for tests.
type Fake struct {
	Current time.Time
}

func NewFake(t time.Time) *Fake {
	return &Fake{Current: t}
}

func (f *Fake) Now() time.Time {
	return f.Current
}

func (f *Fake) Advance(d time.Duration) {
	f.Current = f.Current.Add(d)
}

func (f *Fake) Set(t time.Time) {
	f.Current = t
}
