// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package neuron

// Params are the biophysical parameters of a neuron, in SI units.
// This is the form used to configure neurons in bulk, e.g., from a
// config file -- see [Engine.SetParams].
type Params struct {

	// resting membrane potential, in volts
	RestingPotential float32 `def:"-0.07"`

	// firing threshold: the neuron fires when Vm is strictly above this value
	Threshold float32 `def:"-0.055"`

	// membrane capacitance, in farads -- must be positive
	Capacitance float32 `def:"2e-10" min:"0"`

	// membrane potential after firing and at the start of the simulation
	InitialPotential float32 `def:"-0.08"`

	// lower bound on Vm when VoltageClamped
	MinimumVoltage float32 `def:"-0.09"`

	// upper bound on Vm when VoltageClamped
	MaximumVoltage float32 `def:"0.06"`

	// clamp Vm into [MinimumVoltage, MaximumVoltage] after each step
	VoltageClamped bool `def:"true"`
}

// Defaults sets the default parameters, which are also what
// [Engine.ResetProperties] restores for the biophysical constants.
func (pr *Params) Defaults() {
	pr.RestingPotential = -70.0e-3
	pr.Threshold = -55.0e-3
	pr.Capacitance = 0.2e-9
	pr.InitialPotential = -80.0e-3
	pr.MinimumVoltage = -90.0e-3
	pr.MaximumVoltage = 60.0e-3
	pr.VoltageClamped = true
}
