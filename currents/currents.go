// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package currents provides the standard current sources that can be
attached to a neuron [neuron.Engine]: passive leak, spike-triggered
adaptation, current clamps, and fixed conductance channels.

All currents are in amperes, positive values depolarizing, and are
computed from the state of the membrane they are attached to.
*/
package currents

import (
	"github.com/chewxy/math32"
	"github.com/emer/neuronify/chans"
	"github.com/emer/neuronify/neuron"
)

// Membrane is the membrane state read by currents.
// It is implemented by [neuron.Engine].
type Membrane interface {
	Voltage() float32
	RestingPotential() float32
}

var (
	_ neuron.CurrentSource = (*Leak)(nil)
	_ neuron.Stepper       = (*Adaptation)(nil)
	_ neuron.FireObserver  = (*Adaptation)(nil)
	_ neuron.Resetter      = (*Adaptation)(nil)
	_ neuron.CurrentSource = (*Clamp)(nil)
	_ neuron.Stepper       = (*Pulse)(nil)
	_ neuron.Resetter      = (*Pulse)(nil)
	_ neuron.CurrentSource = (*Conductance)(nil)
)

// Leak is the passive leak current that pulls the membrane potential
// back towards rest: I = -(Vm - Erest) / R
type Leak struct {

	// membrane to read Vm and Erest from
	Membrane Membrane

	// include this current
	Enabled bool

	// membrane resistance, in ohms
	Resistance float32 `def:"1e8" min:"0"`
}

// NewLeak returns a new enabled leak with default parameters.
func NewLeak(mem Membrane) *Leak {
	lk := &Leak{Membrane: mem}
	lk.Defaults()
	return lk
}

func (lk *Leak) Defaults() {
	lk.Enabled = true
	lk.Resistance = 100e6
}

func (lk *Leak) IsEnabled() bool { return lk.Enabled }

func (lk *Leak) Current() float32 {
	return -(lk.Membrane.Voltage() - lk.Membrane.RestingPotential()) / lk.Resistance
}

// Adaptation is a spike-triggered potassium-like conductance: each
// spike increments the conductance, which then decays exponentially
// with time constant Tau, so that sustained firing slows down.
// I = -G (Vm - Erest)
type Adaptation struct {

	// membrane to read Vm and Erest from
	Membrane Membrane

	// include this current
	Enabled bool

	// conductance increment on each spike, in siemens
	Increment float32 `def:"1e-8" min:"0"`

	// decay time constant, in seconds
	Tau float32 `def:"0.5" min:"0"`

	// current conductance, in siemens
	G float32 `edit:"-"`
}

// NewAdaptation returns a new enabled adaptation with default parameters.
func NewAdaptation(mem Membrane) *Adaptation {
	ad := &Adaptation{Membrane: mem}
	ad.Defaults()
	return ad
}

func (ad *Adaptation) Defaults() {
	ad.Enabled = true
	ad.Increment = 10e-9
	ad.Tau = 0.5
}

func (ad *Adaptation) IsEnabled() bool { return ad.Enabled }

func (ad *Adaptation) Current() float32 {
	return -ad.G * (ad.Membrane.Voltage() - ad.Membrane.RestingPotential())
}

// StepEvent decays the conductance over dt.
// A Tau that is not positive means no memory at all.
func (ad *Adaptation) StepEvent(dt float32) {
	if !(ad.Tau > 0) {
		ad.G = 0
		return
	}
	ad.G -= ad.G * dt / ad.Tau
	ad.G = math32.Max(ad.G, 0)
}

func (ad *Adaptation) FireEvent() { ad.G += ad.Increment }

func (ad *Adaptation) ResetDynamicsEvent() { ad.G = 0 }

// Clamp injects a constant current, as an electrode would.
type Clamp struct {

	// include this current
	Enabled bool

	// injected current, in amperes
	Amplitude float32 `def:"3e-10"`
}

// NewClamp returns a new enabled clamp with default parameters.
func NewClamp() *Clamp {
	cl := &Clamp{}
	cl.Defaults()
	return cl
}

func (cl *Clamp) Defaults() {
	cl.Enabled = true
	cl.Amplitude = 300e-12
}

func (cl *Clamp) IsEnabled() bool { return cl.Enabled }

func (cl *Clamp) Current() float32 { return cl.Amplitude }

// Pulse injects a constant current only within a window of its own
// stepped time: On <= T < Off.  T advances only on steps where both
// the pulse and its neuron are enabled, so pausing either one holds
// the window, and it restarts at 0 when the dynamics are reset.
type Pulse struct {

	// include this current
	Enabled bool

	// injected current within the window, in amperes
	Amplitude float32 `def:"3e-10"`

	// start of the window, in seconds
	On float32 `def:"0.01"`

	// end of the window, in seconds
	Off float32 `def:"0.16"`

	// time the pulse has been stepped since the last reset, in seconds
	T float32 `edit:"-"`
}

// NewPulse returns a new enabled pulse with default parameters.
func NewPulse() *Pulse {
	pl := &Pulse{}
	pl.Defaults()
	return pl
}

func (pl *Pulse) Defaults() {
	pl.Enabled = true
	pl.Amplitude = 300e-12
	pl.On = 0.01
	pl.Off = 0.16
}

func (pl *Pulse) IsEnabled() bool { return pl.Enabled }

func (pl *Pulse) Current() float32 {
	if pl.T >= pl.On && pl.T < pl.Off {
		return pl.Amplitude
	}
	return 0
}

func (pl *Pulse) StepEvent(dt float32) { pl.T += dt }

func (pl *Pulse) ResetDynamicsEvent() { pl.T = 0 }

// Conductance is a set of fixed (tonic) channel conductances, each
// driving the membrane towards its own reversal potential.
// I = sum_c Gbar_c G_c (Erev_c - Vm)
type Conductance struct {

	// membrane to read Vm from
	Membrane Membrane

	// include this current
	Enabled bool

	// maximal conductance of each channel, in siemens
	Gbar chans.Chans

	// reversal potential of each channel, in volts
	Erev chans.Chans

	// fraction of open channels, 0-1
	G chans.Chans
}

// NewConductance returns a new enabled conductance with default parameters.
func NewConductance(mem Membrane) *Conductance {
	cd := &Conductance{Membrane: mem}
	cd.Defaults()
	return cd
}

func (cd *Conductance) Defaults() {
	cd.Enabled = true
	cd.Gbar.SetAll(10e-9, 10e-9, 10e-9, 10e-9)
	cd.Erev.SetAll(0, -70e-3, -75e-3, -90e-3)
	cd.G.SetAll(0, 0, 0, 0)
}

func (cd *Conductance) IsEnabled() bool { return cd.Enabled }

func (cd *Conductance) Current() float32 {
	return chans.Inet(cd.Gbar.Mul(cd.G), cd.Erev, cd.Membrane.Voltage())
}
