package main

import "time"

type stepDirection int

const (
	stepDown stepDirection = -1
	stepUp   stepDirection = 1
)

const (
	stepMediumAfter = 3 * time.Second
	stepLargeAfter  = 5 * time.Second

	// Key repeats closer together than this belong to the same hold.
	holdRepeatWindow = 600 * time.Millisecond
)

// stepSize is the increment for a key held for elapsed.
func stepSize(elapsed time.Duration) int {
	switch {
	case elapsed >= stepLargeAfter:
		return 100
	case elapsed >= stepMediumAfter:
		return 10
	default:
		return 1
	}
}

// nextStepValue moves current one step in dir, sized by how long the key has
// been held. Values never go below zero.
func nextStepValue(current int, dir stepDirection, elapsed time.Duration) int {
	next := current + int(dir)*stepSize(elapsed)
	if next < 0 {
		return 0
	}
	return next
}

// holdTracker turns a stream of key repeats into a hold duration.
type holdTracker struct {
	dir   stepDirection
	start time.Time
	last  time.Time
}

// Press records a key event at now and returns how long the key has been held.
func (h *holdTracker) Press(dir stepDirection, now time.Time) time.Duration {
	if h.dir != dir || h.last.IsZero() || now.Sub(h.last) > holdRepeatWindow {
		h.dir = dir
		h.start = now
	}
	h.last = now
	return now.Sub(h.start)
}

func (h *holdTracker) Release() {
	*h = holdTracker{}
}
