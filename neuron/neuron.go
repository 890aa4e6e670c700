// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package neuron provides the common engine used by all point neurons:
the membrane potential integrator and the threshold / fire / reset
state machine.

Each neuron has a membrane potential (Vm) that is driven by the sum of
the currents from all of its enabled [CurrentSource]s, plus synaptic
currents delivered by other neurons since the last step.  The
voltage is updated by explicit (forward) Euler integration:

	Vm += (Itot / C) * dt

When Vm is strictly above threshold at the start of a step, the neuron
fires and Vm is reset to the initial potential, after which the
currents for that same step are still integrated on top of the reset
value.

Synaptic input accumulates in a buffer that is consumed by the next
step, so any current delivered between two steps affects only the
second one, regardless of delivery order.
*/
package neuron

import (
	"errors"
	"fmt"

	"cogentcore.org/core/math32/minmax"
	"github.com/chewxy/math32"
	"github.com/emer/neuronify/observe"
)

// ErrCapacitance is returned when setting a capacitance that is
// not strictly positive and finite.
var ErrCapacitance = errors.New("neuron: capacitance must be positive and finite")

// Engine is the membrane potential integrator and fire / reset state
// machine for one neuron.  Use [NewEngine] to create one with
// valid defaults: the zero value has zero capacitance.
//
// All configuration setters are change-guarded: observers registered
// with [Engine.OnChange] are only called when the new value differs
// from the old one.  The voltage is in addition published
// unconditionally at the end of every [Engine.Step].
//
// An Engine is not safe for concurrent use, but different Engines can
// be stepped in parallel as long as their current sources do not share
// mutable state.
type Engine struct {

	// Name of the neuron, for logs and lookup
	Name string

	// membrane potential, in volts
	voltage float32

	// resting membrane potential, in volts
	restingPotential float32

	// firing threshold, in volts
	threshold float32

	// membrane capacitance, in farads
	capacitance float32

	// post-fire and reset membrane potential, in volts
	initialPotential float32

	// clamp range for voltage, applied if voltageClamped
	vmRange minmax.F32

	// whether voltage is clamped into vmRange after each step
	voltageClamped bool

	// whether the neuron accepts synaptic input
	enabled bool

	// synaptic current received since the last step
	receivedCurrents float32

	// attached current sources
	currents []CurrentSource

	// observers for each property
	changed [PropsN]observe.Funcs[*Engine]

	// observers for firing
	fired observe.Funcs[*Engine]
}

// NewEngine returns a new neuron with default parameters
// (see [Params.Defaults]), enabled, with the voltage at
// the initial potential.
func NewEngine(name string) *Engine {
	nr := &Engine{Name: name, enabled: true}
	var pr Params
	pr.Defaults()
	nr.restingPotential = pr.RestingPotential
	nr.threshold = pr.Threshold
	nr.capacitance = pr.Capacitance
	nr.initialPotential = pr.InitialPotential
	nr.vmRange.Min = pr.MinimumVoltage
	nr.vmRange.Max = pr.MaximumVoltage
	nr.voltageClamped = pr.VoltageClamped
	nr.voltage = nr.initialPotential
	return nr
}

//////// Current sources

// AddCurrent attaches a current source to the neuron.
func (nr *Engine) AddCurrent(src CurrentSource) {
	nr.currents = append(nr.currents, src)
}

// RemoveCurrent detaches the given current source,
// returning false if it was not attached.
func (nr *Engine) RemoveCurrent(src CurrentSource) bool {
	for i, cur := range nr.currents {
		if cur == src {
			nr.currents = append(nr.currents[:i], nr.currents[i+1:]...)
			return true
		}
	}
	return false
}

// Currents returns the attached current sources.
func (nr *Engine) Currents() []CurrentSource {
	return nr.currents
}

//////// Observers

// OnChange adds a named function called whenever the given property
// changes.  Adding again with the same name replaces the function.
func (nr *Engine) OnChange(prop Props, name string, fun func(nr *Engine)) {
	nr.changed[prop].Add(name, fun)
}

// RemoveOnChange removes the named observer for the given property.
func (nr *Engine) RemoveOnChange(prop Props, name string) bool {
	return nr.changed[prop].Delete(name)
}

// OnFire adds a named function called every time the neuron fires.
func (nr *Engine) OnFire(name string, fun func(nr *Engine)) {
	nr.fired.Add(name, fun)
}

// RemoveOnFire removes the named fire observer.
func (nr *Engine) RemoveOnFire(name string) bool {
	return nr.fired.Delete(name)
}

func (nr *Engine) setFloat(fld *float32, v float32, prop Props) {
	if *fld == v {
		return
	}
	*fld = v
	nr.changed[prop].Run(nr)
}

func (nr *Engine) setBool(fld *bool, v bool, prop Props) {
	if *fld == v {
		return
	}
	*fld = v
	nr.changed[prop].Run(nr)
}

//////// Properties

// Voltage returns the membrane potential, in volts.
func (nr *Engine) Voltage() float32 { return nr.voltage }

// SetVoltage sets the membrane potential, in volts.
func (nr *Engine) SetVoltage(v float32) { nr.setFloat(&nr.voltage, v, PropVoltage) }

// RestingPotential returns the resting membrane potential, in volts.
func (nr *Engine) RestingPotential() float32 { return nr.restingPotential }

// SetRestingPotential sets the resting membrane potential, in volts.
func (nr *Engine) SetRestingPotential(v float32) {
	nr.setFloat(&nr.restingPotential, v, PropRestingPotential)
}

// Threshold returns the firing threshold, in volts.
func (nr *Engine) Threshold() float32 { return nr.threshold }

// SetThreshold sets the firing threshold, in volts.
func (nr *Engine) SetThreshold(v float32) { nr.setFloat(&nr.threshold, v, PropThreshold) }

// Capacitance returns the membrane capacitance, in farads.
func (nr *Engine) Capacitance() float32 { return nr.capacitance }

// SetCapacitance sets the membrane capacitance, in farads.
// Values that are not strictly positive and finite are rejected
// with [ErrCapacitance], leaving the capacitance unchanged.
func (nr *Engine) SetCapacitance(v float32) error {
	if err := validCapacitance(v); err != nil {
		return err
	}
	nr.setFloat(&nr.capacitance, v, PropCapacitance)
	return nil
}

func validCapacitance(v float32) error {
	if !(v > 0) || math32.IsInf(v, 1) {
		return fmt.Errorf("%w: %g", ErrCapacitance, v)
	}
	return nil
}

// InitialPotential returns the potential set on firing and on reset, in volts.
func (nr *Engine) InitialPotential() float32 { return nr.initialPotential }

// SetInitialPotential sets the potential set on firing and on reset, in volts.
func (nr *Engine) SetInitialPotential(v float32) {
	nr.setFloat(&nr.initialPotential, v, PropInitialPotential)
}

// MinimumVoltage returns the lower clamp bound, in volts.
func (nr *Engine) MinimumVoltage() float32 { return nr.vmRange.Min }

// SetMinimumVoltage sets the lower clamp bound, in volts.
func (nr *Engine) SetMinimumVoltage(v float32) {
	nr.setFloat(&nr.vmRange.Min, v, PropMinimumVoltage)
}

// MaximumVoltage returns the upper clamp bound, in volts.
func (nr *Engine) MaximumVoltage() float32 { return nr.vmRange.Max }

// SetMaximumVoltage sets the upper clamp bound, in volts.
func (nr *Engine) SetMaximumVoltage(v float32) {
	nr.setFloat(&nr.vmRange.Max, v, PropMaximumVoltage)
}

// IsVoltageClamped returns whether the voltage is clamped after each step.
func (nr *Engine) IsVoltageClamped() bool { return nr.voltageClamped }

// SetVoltageClamped sets whether the voltage is clamped after each step.
func (nr *Engine) SetVoltageClamped(on bool) {
	nr.setBool(&nr.voltageClamped, on, PropVoltageClamped)
}

// IsEnabled returns whether the neuron accepts synaptic input.
func (nr *Engine) IsEnabled() bool { return nr.enabled }

// SetEnabled sets whether the neuron accepts synaptic input.
func (nr *Engine) SetEnabled(on bool) { nr.setBool(&nr.enabled, on, PropEnabled) }

// ReceivedCurrents returns the synaptic current buffered for the next step.
func (nr *Engine) ReceivedCurrents() float32 { return nr.receivedCurrents }

// Params returns the current biophysical parameters.
func (nr *Engine) Params() Params {
	return Params{
		RestingPotential: nr.restingPotential,
		Threshold:        nr.threshold,
		Capacitance:      nr.capacitance,
		InitialPotential: nr.initialPotential,
		MinimumVoltage:   nr.vmRange.Min,
		MaximumVoltage:   nr.vmRange.Max,
		VoltageClamped:   nr.voltageClamped,
	}
}

// SetParams sets all the parameters through their setters, so observers
// are notified of each value that changes.  If the capacitance is
// invalid, nothing is changed and the error is returned.
func (nr *Engine) SetParams(pr Params) error {
	if err := validCapacitance(pr.Capacitance); err != nil {
		return err
	}
	nr.SetRestingPotential(pr.RestingPotential)
	nr.SetThreshold(pr.Threshold)
	nr.setFloat(&nr.capacitance, pr.Capacitance, PropCapacitance)
	nr.SetInitialPotential(pr.InitialPotential)
	nr.SetMinimumVoltage(pr.MinimumVoltage)
	nr.SetMaximumVoltage(pr.MaximumVoltage)
	nr.SetVoltageClamped(pr.VoltageClamped)
	return nil
}

//////// Dynamics

// Step integrates the membrane potential over dt seconds.
// If parentEnabled is false, or dt is not positive, the neuron is
// paused: nothing changes, no observers are called, and buffered
// synaptic current is kept for the next step.
//
// Otherwise the neuron first fires if the voltage is strictly above
// threshold, then the currents from all enabled sources plus the
// buffered synaptic current are integrated, the voltage is clamped
// if enabled, and the new voltage is published.  The synaptic buffer
// is always cleared.  Returns true if the neuron fired.
func (nr *Engine) Step(dt float32, parentEnabled bool) bool {
	if !parentEnabled || !(dt > 0) {
		return false
	}
	fired := nr.checkFire()

	var other float32
	for _, cur := range nr.currents {
		if cur.IsEnabled() {
			other += cur.Current()
		}
	}
	inet := other + nr.receivedCurrents
	nr.voltage += inet / nr.capacitance * dt

	if nr.voltageClamped {
		nr.voltage = math32.Max(nr.vmRange.Min, math32.Min(nr.vmRange.Max, nr.voltage))
	}
	nr.changed[PropVoltage].Run(nr)

	for _, cur := range nr.currents {
		if st, ok := cur.(Stepper); ok && cur.IsEnabled() {
			st.StepEvent(dt)
		}
	}
	nr.receivedCurrents = 0
	return fired
}

// checkFire fires if the voltage is strictly above threshold.
func (nr *Engine) checkFire() bool {
	if nr.voltage > nr.threshold {
		nr.Fire()
		return true
	}
	return false
}

// Fire resets the voltage to the initial potential and notifies the
// attached sources and fire observers.  Unlike [Engine.ResetDynamics],
// buffered synaptic current is kept.
func (nr *Engine) Fire() {
	nr.SetVoltage(nr.initialPotential)
	for _, cur := range nr.currents {
		if fo, ok := cur.(FireObserver); ok && cur.IsEnabled() {
			fo.FireEvent()
		}
	}
	nr.fired.Run(nr)
}

// ReceiveCurrent adds synaptic current (amperes) from the sender
// to the buffer consumed by the next step.  This is a no-op if the
// neuron is disabled.  The sender is informational and may be nil.
func (nr *Engine) ReceiveCurrent(amount float32, sender *Engine) {
	if !nr.enabled {
		return
	}
	nr.receivedCurrents += amount
}

// ResetDynamics restarts the dynamics: the voltage is set to the
// initial potential, buffered synaptic current is cleared, and all
// attached sources with state of their own are reset.
func (nr *Engine) ResetDynamics() {
	nr.SetVoltage(nr.initialPotential)
	nr.receivedCurrents = 0
	for _, cur := range nr.currents {
		if rs, ok := cur.(Resetter); ok {
			rs.ResetDynamicsEvent()
		}
	}
}

// ResetProperties restores the default biophysical constants:
// resting potential, initial potential, threshold and capacitance.
// This does not touch the dynamic state; see [Engine.ResetDynamics].
func (nr *Engine) ResetProperties() {
	var pr Params
	pr.Defaults()
	nr.SetRestingPotential(pr.RestingPotential)
	nr.SetInitialPotential(pr.InitialPotential)
	nr.SetThreshold(pr.Threshold)
	nr.setFloat(&nr.capacitance, pr.Capacitance, PropCapacitance)
}
