// Copyright 2026 The Coldfire Project Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"time"
)

// ArrivalDecayDuration is how long a row glows after polling brings in
// a new ticket or message. Intensity starts at 1.0 and decays linearly
// to 0.0 over this duration.
const ArrivalDecayDuration = 5 * time.Second

// ArrivalTickInterval is the re-render interval while any rows are
// still glowing. 100ms gives ~10fps for a smooth fade.
const ArrivalTickInterval = 100 * time.Millisecond

// ArrivalTracker maps item IDs to arrival timestamps for animated
// new-item highlighting. Each arrival "ignites" a row, which then
// fades from full intensity to zero over [ArrivalDecayDuration].
type ArrivalTracker struct {
	arrivals map[int]time.Time
}

// NewArrivalTracker creates an empty tracker.
func NewArrivalTracker() *ArrivalTracker {
	return &ArrivalTracker{
		arrivals: make(map[int]time.Time),
	}
}

// Ignite records an arrival for an item. Resets the fade timer if the
// item was already glowing.
func (tracker *ArrivalTracker) Ignite(itemID int, now time.Time) {
	tracker.arrivals[itemID] = now
}

// Heat returns the current intensity for an item: 1.0 at arrival,
// linearly decaying to 0.0 over [ArrivalDecayDuration]. Returns 0.0
// for items that never arrived through polling or have fully faded.
func (tracker *ArrivalTracker) Heat(itemID int, now time.Time) float64 {
	arrived, exists := tracker.arrivals[itemID]
	if !exists {
		return 0.0
	}
	elapsed := now.Sub(arrived)
	if elapsed >= ArrivalDecayDuration {
		return 0.0
	}
	return 1.0 - float64(elapsed)/float64(ArrivalDecayDuration)
}

// HasHot returns true if any tracked item still has heat > 0, meaning
// the tick timer should keep running for the fade animation.
func (tracker *ArrivalTracker) HasHot(now time.Time) bool {
	for itemID, arrived := range tracker.arrivals {
		if now.Sub(arrived) < ArrivalDecayDuration {
			return true
		}
		// Garbage-collect fully faded entries.
		delete(tracker.arrivals, itemID)
	}
	return false
}
