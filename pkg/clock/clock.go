// Package clock abstracts timers and tickers so background loops can be driven
// by a fake clock in tests.
package clock

import "time"

// Timer is a one-shot scheduled callback.
type Timer interface {
	// Stop prevents the callback from firing. It reports whether the timer was pending.
	Stop() bool
}

// Ticker delivers ticks on C at a fixed period.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// Clock is the scheduling surface used by long-running tasks.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
	NewTicker(d time.Duration) Ticker
}

// Real returns a Clock backed by the time package.
func Real() Clock {
	return realClock{}
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

func (realClock) NewTicker(d time.Duration) Ticker {
	return realTicker{t: time.NewTicker(d)}
}

type realTicker struct {
	t *time.Ticker
}

func (r realTicker) C() <-chan time.Time { return r.t.C }
func (r realTicker) Stop()               { r.t.Stop() }
