// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package neuronify is the overall repository for the point-neuron simulation
code behind the neuronify educational simulator, implemented in Go.

This top-level of the repository has no functional code -- everything is organized
into the following sub-packages:

* neuron: the membrane-potential integrator and threshold / fire / reset state
machine shared by all neuron types, along with the CurrentSource protocol that
every current contributing to a neuron implements.

* currents: the standard current sources (leak, adaptation, clamps and
conductance-based channels) that plug into a neuron.

* chans: conductance channel values (excitatory, leak, inhibitory, potassium)
used by conductance-based currents.

* kernel: spatial receptive-field kernels (Gaussian, difference-of-Gaussians,
Gabor, rectangular) generated over a configurable resolution.

* retina: sensory input stage that applies a kernel to an image stimulus,
producing a current for a neuron.

* network: the simulation driver, which advances time, steps each neuron once
per tick and delivers synaptic currents between neurons.

* config: TOML configuration of networks for the command-line tools.

* examples: runnable programs, starting with examples/neuronify.
*/
package neuronify
