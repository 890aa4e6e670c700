// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"fmt"
	"image"
	"log/slog"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/emer/neuronify/kernel"
	"github.com/emer/neuronify/network"
	"github.com/emer/neuronify/neuron"
	"github.com/emer/neuronify/retina"
)

// Build makes the network described by the config, with all
// dynamics reset and ready to run.
func (cfg *Config) Build() (*network.Network, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	nt := network.NewNetwork(cfg.Name)
	nt.Time.Dt = cfg.Run.Dt
	nt.Threads = cfg.Run.Threads

	groups := cfg.buildGroups()
	for _, nc := range cfg.Neurons {
		nrn, err := nc.build()
		if err != nil {
			return nil, err
		}
		if _, err := nt.AddNeuron(nrn, groups[nc.Group]); err != nil {
			return nil, err
		}
	}
	for _, sc := range cfg.Synapses {
		_, err := nt.Connect(nt.NeuronByName(sc.From), nt.NeuronByName(sc.To), sc.Weight, sc.Tau)
		if err != nil {
			return nil, err
		}
	}
	if err := cfg.buildRetina(nt); err != nil {
		return nil, err
	}
	nt.ResetDynamics()
	slog.Debug("built network", "network", nt.Name, "neurons", len(nt.Nodes), "synapses", len(nt.Synapses))
	return nt, nil
}

// buildGroups returns the groups by name, with parents linked.
func (cfg *Config) buildGroups() map[string]*network.Group {
	groups := make(map[string]*network.Group, len(cfg.Groups))
	for _, gc := range cfg.Groups {
		gp := network.NewGroup(gc.Name, nil)
		gp.Enabled = gc.Enabled
		groups[gc.Name] = gp
	}
	for _, gc := range cfg.Groups {
		if gc.Parent != "" {
			groups[gc.Name].Parent = groups[gc.Parent]
		}
	}
	return groups
}

// build returns a new neuron with the enabled current sources attached.
func (nc *NeuronConfig) build() (*neuron.Engine, error) {
	nrn := neuron.NewEngine(nc.Name)
	if err := nrn.SetParams(nc.Params); err != nil {
		return nil, fmt.Errorf("neuron %s: %w", nc.Name, err)
	}
	if nc.Leak.Enabled {
		lk := nc.Leak
		lk.Membrane = nrn
		nrn.AddCurrent(&lk)
	}
	if nc.Adaptation.Enabled {
		ad := nc.Adaptation
		ad.Membrane = nrn
		nrn.AddCurrent(&ad)
	}
	if nc.Clamp.Enabled {
		cl := nc.Clamp
		nrn.AddCurrent(&cl)
	}
	if nc.Pulse.Enabled {
		pl := nc.Pulse
		nrn.AddCurrent(&pl)
	}
	if nc.Tonic.Enabled {
		cd := nc.Tonic
		cd.Membrane = nrn
		nrn.AddCurrent(&cd)
	}
	return nrn, nil
}

// buildRetina attaches a receptive field over the retina image to
// each of the target neurons, all sharing one kernel engine.
func (cfg *Config) buildRetina(nt *network.Network) error {
	rc := &cfg.Retina
	if rc.Kernel == "" {
		return nil
	}
	kern, err := kernel.ByName(rc.Kernel)
	if err != nil {
		return err
	}
	ke := kernel.NewEngine(kern)
	if err := ke.SetResolutionWidth(rc.Width); err != nil {
		return err
	}
	if err := ke.SetResolutionHeight(rc.Height); err != nil {
		return err
	}
	if err := ke.SetExtent(rc.Extent); err != nil {
		return err
	}
	var img image.Image
	if rc.Image != "" {
		img, err = imgio.Open(cfg.Path(rc.Image))
		if err != nil {
			return fmt.Errorf("Retina.Image: %w", err)
		}
	}
	for _, nm := range rc.Targets {
		rf := retina.NewReceptiveField(ke, img)
		rf.Gain = rc.Gain
		nt.NeuronByName(nm).AddCurrent(rf)
	}
	return nil
}
