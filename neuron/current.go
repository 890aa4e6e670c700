// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package neuron

// CurrentSource is anything that contributes a current to a neuron.
// Current is evaluated once per integration step, and is in amperes,
// with positive values depolarizing the membrane.
type CurrentSource interface {

	// IsEnabled returns false if the source should be skipped.
	IsEnabled() bool

	// Current returns the current contribution for the present instant.
	Current() float32
}

// Stepper is implemented by current sources with their own dynamics,
// which are advanced by dt seconds after each integration step of
// the neuron they are attached to.
type Stepper interface {
	StepEvent(dt float32)
}

// FireObserver is implemented by current sources that respond to
// their neuron firing (e.g., spike-triggered adaptation).
type FireObserver interface {
	FireEvent()
}

// Resetter is implemented by current sources holding dynamic state
// that must be cleared when the simulation restarts.
type Resetter interface {
	ResetDynamicsEvent()
}
