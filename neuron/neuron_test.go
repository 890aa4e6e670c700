// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package neuron

import (
	"errors"
	"testing"

	"github.com/chewxy/math32"
)

// difTol is the numerical difference tolerance for comparing vs. target values
const difTol = float32(1.0e-7)

// testSource is a constant current source that counts its lifecycle events.
type testSource struct {
	on     bool
	cur    float32
	steps  int
	fires  int
	resets int
	lastDt float32
}

func (ts *testSource) IsEnabled() bool      { return ts.on }
func (ts *testSource) Current() float32     { return ts.cur }
func (ts *testSource) StepEvent(dt float32) { ts.steps++; ts.lastDt = dt }
func (ts *testSource) FireEvent()           { ts.fires++ }
func (ts *testSource) ResetDynamicsEvent()  { ts.resets++ }

// plainSource only implements CurrentSource.
type plainSource float32

func (ps plainSource) IsEnabled() bool  { return true }
func (ps plainSource) Current() float32 { return float32(ps) }

// countChanges registers an observer on every property and returns the counts.
func countChanges(nr *Engine) *[PropsN]int {
	var counts [PropsN]int
	for p := Props(0); p < PropsN; p++ {
		prop := p
		nr.OnChange(prop, "count", func(nr *Engine) { counts[prop]++ })
	}
	return &counts
}

func TestStepEuler(t *testing.T) {
	// relative tolerance on the voltage change: the smallest change here
	// is 2e-5 V, about 3000 float32 ulps at -65 mV
	const relTol = float32(1.0e-3)
	dts := []float32{1e-5, 1e-4, 1e-3}
	curs := []float32{0, 400e-12, -600e-12, 2e-9}
	for _, dt := range dts {
		for _, cur := range curs {
			nr := NewEngine("n")
			nr.SetVoltageClamped(false)
			nr.SetVoltage(-65e-3)
			nr.AddCurrent(&testSource{on: true, cur: cur})
			vm0 := nr.Voltage()
			nr.Step(dt, true)
			dv := nr.Voltage() - vm0
			cor := cur / nr.Capacitance() * dt
			if dif := math32.Abs(dv - cor); dif > relTol*math32.Abs(cor) {
				t.Errorf("dt: %v cur: %v dv: %v cor: %v dif: %v", dt, cur, dv, cor, dif)
			}
		}
	}
}

func TestSumEnabledSources(t *testing.T) {
	nr := NewEngine("n")
	nr.SetVoltageClamped(false)
	nr.SetVoltage(-70e-3)
	a := &testSource{on: true, cur: 100e-12}
	b := &testSource{on: false, cur: 1e-6}
	nr.AddCurrent(a)
	nr.AddCurrent(b)
	nr.AddCurrent(plainSource(-40e-12))
	dt := float32(1e-4)
	nr.Step(dt, true)
	cor := float32(-70e-3) + (100e-12-40e-12)/nr.Capacitance()*dt
	if dif := math32.Abs(nr.Voltage() - cor); dif > difTol {
		t.Errorf("vm: %v cor: %v", nr.Voltage(), cor)
	}
	if a.steps != 1 || b.steps != 0 {
		t.Errorf("only enabled sources should be stepped: a %d b %d", a.steps, b.steps)
	}
	if a.lastDt != dt {
		t.Errorf("step dt: %v", a.lastDt)
	}
	if !nr.RemoveCurrent(b) || nr.RemoveCurrent(b) {
		t.Error("RemoveCurrent should succeed exactly once")
	}
	if len(nr.Currents()) != 2 {
		t.Errorf("currents: %d", len(nr.Currents()))
	}
}

func TestResetDynamicsIdempotent(t *testing.T) {
	nr := NewEngine("n")
	src := &testSource{on: true}
	nr.AddCurrent(src)
	nr.SetVoltage(-40e-3)
	nr.ReceiveCurrent(5e-12, nil)

	nr.ResetDynamics()
	vm1, rc1 := nr.Voltage(), nr.ReceivedCurrents()
	nr.ResetDynamics()
	if nr.Voltage() != vm1 || nr.ReceivedCurrents() != rc1 {
		t.Errorf("second reset changed state: %v %v vs %v %v", nr.Voltage(), nr.ReceivedCurrents(), vm1, rc1)
	}
	if vm1 != nr.InitialPotential() || rc1 != 0 {
		t.Errorf("reset state: vm %v received %v", vm1, rc1)
	}
	if src.resets != 2 {
		t.Errorf("source resets: %d", src.resets)
	}
}

func TestThresholdBoundary(t *testing.T) {
	nr := NewEngine("n")
	nr.SetVoltage(nr.Threshold())
	if nr.Step(1e-3, true) {
		t.Error("neuron exactly at threshold must not fire")
	}
	if nr.Voltage() != nr.Threshold() {
		t.Errorf("vm moved without current: %v", nr.Voltage())
	}

	cur := float32(100e-12)
	dt := float32(1e-3)
	nr = NewEngine("n")
	src := &testSource{on: true, cur: cur}
	nr.AddCurrent(src)
	nr.SetVoltage(nr.Threshold() + 1e-6)
	if !nr.Step(dt, true) {
		t.Fatal("neuron above threshold must fire")
	}
	// fire resets first, then this step's current is integrated on top
	cor := nr.InitialPotential() + cur/nr.Capacitance()*dt
	if dif := math32.Abs(nr.Voltage() - cor); dif > difTol {
		t.Errorf("vm after fire: %v cor: %v", nr.Voltage(), cor)
	}
	if src.fires != 1 {
		t.Errorf("source fire events: %d", src.fires)
	}
}

func TestOneTickLatency(t *testing.T) {
	nr := NewEngine("n")
	nr.SetVoltageClamped(false)
	nr.SetVoltage(-70e-3)
	dt := float32(1e-3)
	x := float32(20e-12)

	nr.Step(dt, true) // tick t
	vmt := nr.Voltage()
	if vmt != -70e-3 {
		t.Errorf("tick t vm: %v", vmt)
	}
	nr.ReceiveCurrent(x/2, nil)
	nr.ReceiveCurrent(x/2, nil)
	if nr.Voltage() != vmt {
		t.Error("received current must not act before the next step")
	}
	nr.Step(dt, true) // tick t+1
	cor := vmt + x/nr.Capacitance()*dt
	if dif := math32.Abs(nr.Voltage() - cor); dif > difTol {
		t.Errorf("tick t+1 vm: %v cor: %v", nr.Voltage(), cor)
	}
	if nr.ReceivedCurrents() != 0 {
		t.Errorf("buffer not cleared: %v", nr.ReceivedCurrents())
	}
	vm2 := nr.Voltage()
	nr.Step(dt, true) // consumed only once
	if nr.Voltage() != vm2 {
		t.Errorf("received current applied twice: %v vs %v", nr.Voltage(), vm2)
	}
}

func TestDisabled(t *testing.T) {
	nr := NewEngine("n")
	nr.ReceiveCurrent(1e-12, nil)
	nr.SetEnabled(false)
	nr.ReceiveCurrent(5e-12, nil)
	if nr.ReceivedCurrents() != 1e-12 {
		t.Errorf("disabled neuron accepted current: %v", nr.ReceivedCurrents())
	}

	nr.SetEnabled(true)
	src := &testSource{on: true, cur: 1e-9}
	nr.AddCurrent(src)
	nr.SetVoltage(-50e-3) // above threshold
	counts := countChanges(nr)
	fires := 0
	nr.OnFire("count", func(nr *Engine) { fires++ })
	pr := nr.Params()
	if nr.Step(1e-3, false) {
		t.Error("paused neuron fired")
	}
	for p, n := range counts {
		if n != 0 {
			t.Errorf("paused step notified %v %d times", Props(p), n)
		}
	}
	if fires != 0 || src.steps != 0 || src.fires != 0 {
		t.Errorf("paused step had side effects: fires %d steps %d", fires, src.steps)
	}
	if nr.Voltage() != -50e-3 || nr.Params() != pr {
		t.Errorf("paused step changed state: %v", nr.Voltage())
	}
	if nr.ReceivedCurrents() != 1e-12 {
		t.Errorf("paused step must keep the buffer: %v", nr.ReceivedCurrents())
	}
	if nr.Step(0, true) || nr.Voltage() != -50e-3 {
		t.Error("non-positive dt should leave the neuron paused")
	}
}

func TestClamp(t *testing.T) {
	for _, cur := range []float32{1e-6, -1e-6, 1e-12} {
		nr := NewEngine("n")
		nr.SetMinimumVoltage(-0.08)
		nr.SetMaximumVoltage(0.04)
		nr.SetVoltageClamped(true)
		nr.SetThreshold(1) // no firing
		nr.SetVoltage(-0.07)
		nr.AddCurrent(plainSource(cur))
		dt := float32(1e-3)
		raw := nr.Voltage() + cur/nr.Capacitance()*dt
		nr.Step(dt, true)
		switch {
		case raw > 0.04:
			if nr.Voltage() != 0.04 {
				t.Errorf("upper clamp: %v", nr.Voltage())
			}
		case raw < -0.08:
			if nr.Voltage() != -0.08 {
				t.Errorf("lower clamp: %v", nr.Voltage())
			}
		default:
			if math32.Abs(nr.Voltage()-raw) > difTol {
				t.Errorf("in-range value changed: %v vs %v", nr.Voltage(), raw)
			}
		}
	}
}

func TestScenarioSubthreshold(t *testing.T) {
	nr := NewEngine("n")
	nr.SetCapacitance(0.2e-9)
	nr.SetThreshold(-55e-3)
	nr.SetInitialPotential(-80e-3)
	nr.SetRestingPotential(-70e-3)
	nr.SetVoltage(-56e-3)
	if nr.Step(1e-3, true) {
		t.Error("fired below threshold")
	}
	if nr.Voltage() != -56e-3 {
		t.Errorf("vm: %v", nr.Voltage())
	}
}

func TestScenarioFireThenIntegrate(t *testing.T) {
	nr := NewEngine("n")
	nr.SetCapacitance(0.2e-9)
	nr.SetThreshold(-55e-3)
	nr.SetInitialPotential(-80e-3)
	nr.SetRestingPotential(-70e-3)
	nr.SetVoltage(-54e-3)
	var seen []float32
	nr.OnChange(PropVoltage, "trace", func(nr *Engine) { seen = append(seen, nr.Voltage()) })
	if !nr.Step(1e-3, true) {
		t.Error("did not fire above threshold")
	}
	if nr.Voltage() != -80e-3 {
		t.Errorf("vm: %v", nr.Voltage())
	}
	// once from the fire reset, once from the unconditional step publication
	if len(seen) != 2 || seen[0] != -80e-3 || seen[1] != -80e-3 {
		t.Errorf("voltage publications: %v", seen)
	}
}

func TestNonFinitePropagation(t *testing.T) {
	nr := NewEngine("n")
	nr.SetVoltageClamped(false)
	nr.AddCurrent(plainSource(math32.NaN()))
	nr.Step(1e-3, true)
	if !math32.IsNaN(nr.Voltage()) {
		t.Errorf("NaN current should propagate, vm: %v", nr.Voltage())
	}

	nr = NewEngine("n")
	nr.SetVoltageClamped(false)
	nr.ReceiveCurrent(math32.Inf(1), nil)
	nr.Step(1e-3, true)
	if !math32.IsInf(nr.Voltage(), 1) {
		t.Errorf("+Inf current should propagate, vm: %v", nr.Voltage())
	}
}

func TestCapacitanceValidation(t *testing.T) {
	nr := NewEngine("n")
	counts := countChanges(nr)
	for _, c := range []float32{0, -1e-10, math32.NaN(), math32.Inf(1)} {
		err := nr.SetCapacitance(c)
		if !errors.Is(err, ErrCapacitance) {
			t.Errorf("capacitance %v: err %v", c, err)
		}
	}
	if nr.Capacitance() != 0.2e-9 || counts[PropCapacitance] != 0 {
		t.Errorf("rejected capacitance changed state: %v, %d", nr.Capacitance(), counts[PropCapacitance])
	}
	if err := nr.SetCapacitance(1e-9); err != nil || nr.Capacitance() != 1e-9 {
		t.Errorf("valid capacitance: %v %v", err, nr.Capacitance())
	}
}

func TestSetterNotifications(t *testing.T) {
	nr := NewEngine("n")
	counts := countChanges(nr)
	nr.SetThreshold(nr.Threshold())
	nr.SetRestingPotential(nr.RestingPotential())
	nr.SetVoltageClamped(nr.IsVoltageClamped())
	nr.SetVoltage(nr.Voltage())
	for p, n := range counts {
		if n != 0 {
			t.Errorf("unchanged %v notified %d times", Props(p), n)
		}
	}
	nr.SetThreshold(-50e-3)
	nr.SetMinimumVoltage(-0.1)
	nr.SetMaximumVoltage(0.1)
	nr.SetVoltageClamped(false)
	nr.SetEnabled(false)
	nr.SetInitialPotential(-75e-3)
	for _, p := range []Props{PropThreshold, PropMinimumVoltage, PropMaximumVoltage, PropVoltageClamped, PropEnabled, PropInitialPotential} {
		if counts[p] != 1 {
			t.Errorf("%v notified %d times", p, counts[p])
		}
	}

	// step publishes the voltage even when unchanged
	nr.SetVoltage(-70e-3)
	n := counts[PropVoltage]
	nr.Step(1e-3, true)
	nr.Step(1e-3, true)
	if counts[PropVoltage] != n+2 {
		t.Errorf("step publications: %d", counts[PropVoltage]-n)
	}
	if !nr.RemoveOnChange(PropVoltage, "count") {
		t.Error("RemoveOnChange failed")
	}
	nr.Step(1e-3, true)
	if counts[PropVoltage] != n+2 {
		t.Error("removed observer still called")
	}
}

func TestResetProperties(t *testing.T) {
	nr := NewEngine("n")
	nr.SetRestingPotential(-60e-3)
	nr.SetInitialPotential(-65e-3)
	nr.SetThreshold(-40e-3)
	nr.SetCapacitance(1e-9)
	nr.SetVoltage(-30e-3)
	counts := countChanges(nr)
	nr.ResetProperties()
	if nr.RestingPotential() != -70e-3 || nr.InitialPotential() != -80e-3 ||
		nr.Threshold() != -55e-3 || nr.Capacitance() != 0.2e-9 {
		t.Errorf("defaults not restored: %+v", nr.Params())
	}
	if nr.Voltage() != -30e-3 || counts[PropVoltage] != 0 {
		t.Error("ResetProperties must not touch the dynamics")
	}
	for _, p := range []Props{PropRestingPotential, PropInitialPotential, PropThreshold, PropCapacitance} {
		if counts[p] != 1 {
			t.Errorf("%v notified %d times", p, counts[p])
		}
	}
	nr.ResetProperties()
	if counts[PropThreshold] != 1 {
		t.Error("second ResetProperties should not notify")
	}
}

func TestFireKeepsBuffer(t *testing.T) {
	nr := NewEngine("n")
	nr.SetVoltageClamped(false)
	nr.ReceiveCurrent(10e-12, nil)
	fires := 0
	nr.OnFire("count", func(nr *Engine) { fires++ })
	nr.Fire()
	if fires != 1 || nr.Voltage() != nr.InitialPotential() {
		t.Errorf("fire: %d %v", fires, nr.Voltage())
	}
	if nr.ReceivedCurrents() != 10e-12 {
		t.Errorf("fire cleared the buffer: %v", nr.ReceivedCurrents())
	}
	if !nr.RemoveOnFire("count") {
		t.Error("RemoveOnFire failed")
	}
}

func TestParams(t *testing.T) {
	nr := NewEngine("n")
	var pr Params
	pr.Defaults()
	if nr.Params() != pr {
		t.Errorf("new engine params: %+v", nr.Params())
	}
	pr.Threshold = -50e-3
	pr.VoltageClamped = false
	if err := nr.SetParams(pr); err != nil {
		t.Fatal(err)
	}
	if nr.Params() != pr {
		t.Errorf("params: %+v", nr.Params())
	}
	bad := pr
	bad.Capacitance = 0
	bad.Threshold = 0
	if err := nr.SetParams(bad); !errors.Is(err, ErrCapacitance) {
		t.Errorf("bad params err: %v", err)
	}
	if nr.Threshold() != -50e-3 {
		t.Error("invalid params were partially applied")
	}
}

func TestProps(t *testing.T) {
	if PropThreshold.String() != "Threshold" || Props(99).String() != "99" {
		t.Errorf("props strings: %v %v", PropThreshold, Props(99))
	}
	if len(PropsValues()) != int(PropsN) {
		t.Errorf("values: %v", PropsValues())
	}
	var p Props
	if err := p.SetString("VoltageClamped"); err != nil || p != PropVoltageClamped {
		t.Errorf("SetString: %v %v", p, err)
	}
	if err := p.SetString("Bogus"); err == nil {
		t.Error("unknown name accepted")
	}
}
