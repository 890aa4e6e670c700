// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package neuron

//go:generate core generate

// Props are the observable properties of a neuron [Engine].
type Props int32 //enums:enum -trim-prefix Prop

// The neuron properties
const (
	// PropVoltage is the membrane potential.
	PropVoltage Props = iota

	// PropRestingPotential is the resting membrane potential.
	PropRestingPotential

	// PropThreshold is the firing threshold.
	PropThreshold

	// PropCapacitance is the membrane capacitance.
	PropCapacitance

	// PropInitialPotential is the potential after firing and at reset.
	PropInitialPotential

	// PropMinimumVoltage is the lower clamp bound.
	PropMinimumVoltage

	// PropMaximumVoltage is the upper clamp bound.
	PropMaximumVoltage

	// PropVoltageClamped is whether the voltage is clamped.
	PropVoltageClamped

	// PropEnabled is whether the neuron accepts synaptic input.
	PropEnabled
)
