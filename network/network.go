// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package network drives a set of neurons connected by synapses through
simulated time.

Each [Network.Cycle] steps every neuron once with the same dt, passing
it the resolved enabled state of its [Group], then delivers the
synaptic current of the neurons that fired.  Deliveries always happen
after all the steps of the cycle, so they are integrated on the next
cycle: no neuron sees another's update from the same cycle, whatever
order the neurons are stepped in.  This also allows the steps to run
in parallel, with [Network.Threads] > 1.
*/
package network

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/emer/neuronify/neuron"
	"github.com/emer/neuronify/observe"
	"golang.org/x/sync/errgroup"
)

// Node is a neuron in a network, with its group and connectivity.
type Node struct {

	// the neuron
	Neuron *neuron.Engine

	// group of the neuron, nil for the top level
	Group *Group

	// index in Network.Nodes
	Index int

	// whether the neuron fired on the last cycle
	Spike bool

	// synapses sending from this neuron
	Sends []*Synapse
}

// Network is a set of neurons and synapses with the timing state to
// run them.  Use [NewNetwork] to create one.
type Network struct {

	// name of the network
	Name string

	// timing state and integration step
	Time Time

	// number of goroutines used to step the neurons; <= 1 steps them
	// serially.  Synaptic delivery is always serial.
	Threads int

	// all the neurons, in order added
	Nodes []*Node

	// all the synapses, in order added
	Synapses []*Synapse

	// OnCycle functions are called at the end of each cycle,
	// after synaptic delivery.
	OnCycle observe.Funcs[*Network]

	// map of name to node
	nodeMap map[string]*Node

	// enabled state of each node for the current cycle
	enabled []bool

	// indexes of the nodes that fired in the last cycle
	fired []int
}

// NewNetwork returns a new empty network with default timing.
func NewNetwork(name string) *Network {
	nt := &Network{Name: name, Threads: 1, nodeMap: make(map[string]*Node)}
	nt.Time.Defaults()
	return nt
}

// AddNeuron adds a neuron to the network in the given group, which
// may be nil.  Neuron names must be unique within the network.
func (nt *Network) AddNeuron(nrn *neuron.Engine, gp *Group) (*Node, error) {
	if _, has := nt.nodeMap[nrn.Name]; has {
		return nil, fmt.Errorf("network %s: duplicate neuron name %q", nt.Name, nrn.Name)
	}
	nd := &Node{Neuron: nrn, Group: gp, Index: len(nt.Nodes)}
	nt.Nodes = append(nt.Nodes, nd)
	nt.nodeMap[nrn.Name] = nd
	return nd, nil
}

// NodeByName returns the node of the named neuron, or nil if not found.
func (nt *Network) NodeByName(name string) *Node {
	return nt.nodeMap[name]
}

// NeuronByName returns the named neuron, or nil if not found.
func (nt *Network) NeuronByName(name string) *neuron.Engine {
	nd := nt.nodeMap[name]
	if nd == nil {
		return nil
	}
	return nd.Neuron
}

// Connect adds a synapse between two neurons of the network,
// with the given weight (amperes per spike) and decay time
// constant (seconds).
func (nt *Network) Connect(send, recv *neuron.Engine, weight, tau float32) (*Synapse, error) {
	snd := nt.nodeMap[send.Name]
	if snd == nil || snd.Neuron != send {
		return nil, fmt.Errorf("network %s: sending neuron %q not in network", nt.Name, send.Name)
	}
	rn := nt.nodeMap[recv.Name]
	if rn == nil || rn.Neuron != recv {
		return nil, fmt.Errorf("network %s: receiving neuron %q not in network", nt.Name, recv.Name)
	}
	if tau < 0 {
		return nil, fmt.Errorf("network %s: synapse %s -> %s: negative tau %g", nt.Name, send.Name, recv.Name, tau)
	}
	sy := &Synapse{Send: send, Recv: recv, Weight: weight, Tau: tau, recv: rn.Index}
	nt.Synapses = append(nt.Synapses, sy)
	snd.Sends = append(snd.Sends, sy)
	return sy, nil
}

// ThrNodeFun calls fun on every node, splitting the nodes evenly over
// Threads goroutines if more than 1.
func (nt *Network) ThrNodeFun(fun func(nd *Node)) {
	n := len(nt.Nodes)
	if nt.Threads <= 1 || n <= 1 {
		for _, nd := range nt.Nodes {
			fun(nd)
		}
		return
	}
	per := (n + nt.Threads - 1) / nt.Threads
	var eg errgroup.Group
	eg.SetLimit(nt.Threads)
	for st := 0; st < n; st += per {
		nds := nt.Nodes[st:min(st+per, n)]
		eg.Go(func() error {
			for _, nd := range nds {
				fun(nd)
			}
			return nil
		})
	}
	eg.Wait()
}

// Cycle runs one integration step of Time.Dt on every neuron, then
// sends the spikes of the neurons that fired through their synapses
// and delivers all synaptic currents for the next cycle.  Neurons in
// a disabled group are not stepped and receive no synaptic current,
// while the traces of their synapses keep decaying.
// Returns the indexes of the nodes that fired.
func (nt *Network) Cycle() []int {
	dt := nt.Time.Dt
	if len(nt.enabled) != len(nt.Nodes) {
		nt.enabled = make([]bool, len(nt.Nodes))
	}
	for i, nd := range nt.Nodes {
		nt.enabled[i] = nd.Group.IsEnabled()
	}
	nt.ThrNodeFun(func(nd *Node) {
		nd.Spike = nd.Neuron.Step(dt, nt.enabled[nd.Index])
	})

	nt.fired = nt.fired[:0]
	for _, nd := range nt.Nodes {
		if !nd.Spike {
			continue
		}
		nt.fired = append(nt.fired, nd.Index)
		for _, sy := range nd.Sends {
			sy.Spike()
		}
	}
	for _, sy := range nt.Synapses {
		if nt.enabled[sy.recv] {
			sy.Deliver(dt)
		} else {
			sy.Decay(dt)
		}
	}
	nt.Time.CycleInc()
	nt.OnCycle.Run(nt)
	return nt.fired
}

// Run runs cycles for the given duration in seconds, rounded to the
// nearest whole number of cycles.  Returns the total number of spikes.
func (nt *Network) Run(duration float32) (int, error) {
	if !(nt.Time.Dt > 0) {
		return 0, errors.New("network: Time.Dt must be positive")
	}
	ncyc := int(duration/nt.Time.Dt + 0.5)
	slog.Debug("network run", "network", nt.Name, "cycles", ncyc, "dt", nt.Time.Dt, "threads", nt.Threads)
	nt.Time.RunStart()
	spikes := 0
	for range ncyc {
		spikes += len(nt.Cycle())
	}
	return spikes, nil
}

// ResetDynamics restarts the simulation: time, neurons and synapse
// traces are all reset.  Parameters are not changed.
func (nt *Network) ResetDynamics() {
	nt.Time.Reset()
	for _, nd := range nt.Nodes {
		nd.Neuron.ResetDynamics()
		nd.Spike = false
	}
	for _, sy := range nt.Synapses {
		sy.Reset()
	}
	nt.fired = nt.fired[:0]
}
