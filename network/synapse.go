// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package network

import (
	"github.com/chewxy/math32"
	"github.com/emer/neuronify/neuron"
)

// Synapse translates spikes of a sending neuron into current injected
// into a receiving neuron.  Each spike adds Weight to a trace current
// that is delivered to the receiver after every cycle and decays
// exponentially with time constant Tau.
type Synapse struct {

	// sending neuron
	Send *neuron.Engine

	// receiving neuron
	Recv *neuron.Engine

	// current added to the trace on each spike, in amperes --
	// negative for inhibitory synapses
	Weight float32

	// decay time constant of the trace, in seconds --
	// 0 delivers each spike for a single cycle
	Tau float32 `min:"0"`

	// current trace, in amperes
	Trace float32 `edit:"-"`

	// index of the receiving node
	recv int
}

// Spike adds a spike of the sender to the trace.
func (sy *Synapse) Spike() {
	sy.Trace += sy.Weight
}

// Deliver injects the trace into the receiver, to be integrated on
// its next step, and then decays the trace over dt.
func (sy *Synapse) Deliver(dt float32) {
	if sy.Trace == 0 {
		return
	}
	sy.Recv.ReceiveCurrent(sy.Trace, sy.Send)
	sy.Decay(dt)
}

// Decay decays the trace over dt without delivering it, as for a
// receiver that is paused.
func (sy *Synapse) Decay(dt float32) {
	if sy.Tau > 0 {
		sy.Trace *= math32.Exp(-dt / sy.Tau)
	} else {
		sy.Trace = 0
	}
}

// Reset clears the trace.
func (sy *Synapse) Reset() {
	sy.Trace = 0
}
