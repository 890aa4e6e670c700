// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package network

// Time contains all the timing state and parameter information for running a network
type Time struct {

	// accumulated amount of time the network has been running,
	// in simulation-time (not real world time), in seconds.
	Time float32

	// cycle counter: number of integration steps in the current run,
	// from [Time.RunStart].
	Cycle int

	// total cycle count. this increments continuously from whenever
	// it was last reset.
	CycleTot int

	// amount of time to increment per cycle, in seconds:
	// the integration step dt of every neuron.
	Dt float32 `def:"0.0001" min:"0"`
}

// NewTime returns a new Time struct with default parameters
func NewTime() *Time {
	tm := &Time{}
	tm.Defaults()
	return tm
}

// Defaults sets default values
func (tm *Time) Defaults() {
	tm.Dt = 0.0001
}

// Reset resets the counters all back to zero
func (tm *Time) Reset() {
	tm.Time = 0
	tm.Cycle = 0
	tm.CycleTot = 0
	if tm.Dt == 0 {
		tm.Defaults()
	}
}

// RunStart starts a new run of cycles, without resetting the total time.
func (tm *Time) RunStart() {
	tm.Cycle = 0
}

// CycleInc increments at the cycle level
func (tm *Time) CycleInc() {
	tm.Cycle++
	tm.CycleTot++
	tm.Time += tm.Dt
}
