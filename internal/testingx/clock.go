package testingx

import (
	"sync"
	"time"
)

// SteppingClock is a deterministic clock for fake servers: each call
// to Now returns the previous moment plus Step.
//
// It's safe to use this struct from multiple goroutine contexts.
type SteppingClock struct {
	// Start is the moment returned by the first call to Now. When zero,
	// we use the wall clock time of the first call.
	Start time.Time

	// Step is the OPTIONAL interval between subsequent calls. When zero,
	// we use one second.
	Step time.Duration

	// calls counts the calls to Now.
	calls int64

	// mu protects the fields of this struct.
	mu sync.Mutex
}

// Now is like [time.Now] but deterministic.
func (sc *SteppingClock) Now() time.Time {
	defer sc.mu.Unlock()
	sc.mu.Lock()
	if sc.Start.IsZero() {
		sc.Start = time.Now()
	}
	step := sc.Step
	if step <= 0 {
		step = time.Second
	}
	moment := sc.Start.Add(time.Duration(sc.calls) * step)
	sc.calls++
	return moment
}
