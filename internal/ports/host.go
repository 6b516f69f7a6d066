package ports

import "time"

// Cancel releases a timer or listener registration. Calling it more than once
// must be safe.
type Cancel func()

// Scheduler registers timers on the host's single cooperative loop. Callbacks
// never run concurrently with each other or with other host callbacks.
//
// Every component that registers a timer keeps the returned Cancel and invokes
// it from its own Stop/Close.
type Scheduler interface {
	// Every invokes fn each interval until cancelled.
	Every(interval time.Duration, fn func()) (Cancel, error)
	// After invokes fn once after delay unless cancelled first.
	After(delay time.Duration, fn func()) (Cancel, error)
	// Now reports the loop's notion of the current time.
	Now() time.Time
}

// Point is a position in viewport pixels.
type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// PointerSource delivers pointer-move events in viewport pixels.
type PointerSource interface {
	OnPointerMove(fn func(Point)) (Cancel, error)
}
