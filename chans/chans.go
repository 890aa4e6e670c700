// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package chans provides standard neural conductance channels for computing
a point-neuron approximation based on the standard equivalent RC circuit
model of a neuron (i.e., basic Ohms law equations).
Includes excitatory, leak, inhibition, and dynamic potassium channels.

Values are in SI units: conductances in siemens, reversal potentials in volts.
*/
package chans

// Chans are ion channels used in computing point-neuron currents
type Chans struct {

	// excitatory sodium (Na) AMPA channels activated by synaptic glutamate
	E float32

	// constant leak (potassium, K+) channels -- determines resting potential
	L float32

	// inhibitory chloride (Cl-) channels activated by synaptic GABA
	I float32

	// gated / active potassium channels -- typically hyperpolarizing relative to leak / rest
	K float32
}

// SetAll sets all the values
func (ch *Chans) SetAll(e, l, i, k float32) {
	ch.E, ch.L, ch.I, ch.K = e, l, i, k
}

// SetFromOtherMinus sets all the values from other Chans minus given value
func (ch *Chans) SetFromOtherMinus(oth Chans, minus float32) {
	ch.E, ch.L, ch.I, ch.K = oth.E-minus, oth.L-minus, oth.I-minus, oth.K-minus
}

// Mul returns the element-wise product of the two sets of channels,
// e.g., maximal conductance Gbar times the fraction of open channels G.
func (ch Chans) Mul(oth Chans) Chans {
	return Chans{E: ch.E * oth.E, L: ch.L * oth.L, I: ch.I * oth.I, K: ch.K * oth.K}
}

// Dot returns the sum of the element-wise products of the two sets
// of channels.
func (ch Chans) Dot(oth Chans) float32 {
	return ch.E*oth.E + ch.L*oth.L + ch.I*oth.I + ch.K*oth.K
}

// Inet returns the net current (amperes) flowing through channels with
// total conductances g and reversal potentials erev at membrane potential vm.
// Positive values depolarize the membrane.
func Inet(g, erev Chans, vm float32) float32 {
	var drive Chans
	drive.SetFromOtherMinus(erev, vm)
	return g.Dot(drive)
}
