// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package config reads network descriptions from TOML files and builds
them into a runnable [network.Network].

Keys are the Go field names of [Config] and its parts.  Every value
not given in the file keeps its default, including within each entry
of the Groups, Neurons and Synapses arrays.  See the neuronify example
for a sample file.
*/
package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/core/base/reflectx"
	"github.com/BurntSushi/toml"
	"github.com/c2h5oh/datasize"
	"github.com/emer/neuronify/currents"
	"github.com/emer/neuronify/neuron"
)

// RunConfig has config parameters related to running the network
type RunConfig struct {

	// integration time step, in seconds
	Dt float32 `default:"0.0001" min:"0"`

	// total simulated time to run, in seconds
	Duration float32 `default:"0.3" min:"0"`

	// number of goroutines stepping neurons in parallel
	Threads int `default:"1" min:"1"`
}

func (rc *RunConfig) Defaults() {
	errors.Log(reflectx.SetFromDefaultTags(rc))
}

// LogConfig has config parameters related to logging data
type LogConfig struct {

	// file to save the Vm and spike trace to, as tab-separated values.
	// no trace is saved if empty.
	File string

	// maximum size of the recorded trace, e.g., "16MB": recording
	// stops when reached.  Defaults to 4MB.
	MaxSize datasize.ByteSize
}

func (lc *LogConfig) Defaults() {
	errors.Log(reflectx.SetFromDefaultTags(lc))
	lc.MaxSize = 4 * datasize.MB
}

// GroupConfig describes a group of neurons that can be disabled together.
type GroupConfig struct {

	// unique name of the group
	Name string

	// name of the enclosing group, if any
	Parent string

	// whether the neurons of the group are stepped
	Enabled bool `default:"true"`
}

func (gc *GroupConfig) Defaults() {
	errors.Log(reflectx.SetFromDefaultTags(gc))
}

// NeuronConfig describes one neuron and its current sources.
// Only current sources that are Enabled are attached.
type NeuronConfig struct {

	// unique name of the neuron
	Name string

	// name of the group of the neuron, if any
	Group string

	// biophysical parameters
	Params neuron.Params

	// passive leak towards the resting potential -- enabled by default
	Leak currents.Leak

	// spike-triggered adaptation
	Adaptation currents.Adaptation

	// constant injected current
	Clamp currents.Clamp

	// injected current within a window of time
	Pulse currents.Pulse

	// fixed channel conductances
	Tonic currents.Conductance
}

func (nc *NeuronConfig) Defaults() {
	nc.Params.Defaults()
	nc.Leak.Defaults()
	nc.Adaptation.Defaults()
	nc.Adaptation.Enabled = false
	nc.Clamp.Defaults()
	nc.Clamp.Enabled = false
	nc.Pulse.Defaults()
	nc.Pulse.Enabled = false
	nc.Tonic.Defaults()
	nc.Tonic.Enabled = false
}

// SynapseConfig describes a synapse between two neurons.
type SynapseConfig struct {

	// name of the sending neuron
	From string

	// name of the receiving neuron
	To string

	// current per spike, in amperes -- negative for inhibition
	Weight float32 `default:"2e-10"`

	// decay time constant, in seconds -- 0 for a single-cycle pulse
	Tau float32 `default:"0.005" min:"0"`
}

func (sc *SynapseConfig) Defaults() {
	errors.Log(reflectx.SetFromDefaultTags(sc))
}

// RetinaConfig describes visual input: an image weighted by a
// kernel receptive field and injected into the target neurons.
type RetinaConfig struct {

	// image file to use as the stimulus, relative to the config file
	Image string

	// kernel type: gauss, dog, gabor or rect.  No retina if empty.
	Kernel string

	// kernel resolution along x
	Width int `default:"20" min:"1"`

	// kernel resolution along y
	Height int `default:"20" min:"1"`

	// span of the kernel axes
	Extent float64 `default:"2" min:"0"`

	// current per unit of weighted intensity, in amperes
	Gain float32 `default:"1e-11"`

	// names of the neurons receiving the input
	Targets []string
}

func (rc *RetinaConfig) Defaults() {
	errors.Log(reflectx.SetFromDefaultTags(rc))
}

// Config is a complete network description.
type Config struct {

	// name of the network
	Name string `default:"neuronify"`

	// running related configuration options
	Run RunConfig

	// data logging related configuration options
	Log LogConfig

	// groups of neurons
	Groups []GroupConfig

	// the neurons
	Neurons []NeuronConfig

	// the synapses
	Synapses []SynapseConfig

	// visual input
	Retina RetinaConfig

	// directory relative file names are resolved from
	dir string
}

func (cfg *Config) Defaults() {
	errors.Log(reflectx.SetFromDefaultTags(cfg))
	cfg.Log.Defaults()
}

// rawConfig defers the decoding of the array entries until
// they have been set to their defaults.
type rawConfig struct {
	Name     string
	Run      RunConfig
	Log      LogConfig
	Groups   []toml.Primitive
	Neurons  []toml.Primitive
	Synapses []toml.Primitive
	Retina   RetinaConfig
}

// Open reads and validates the config from the given TOML file.
func Open(filename string) (*Config, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	cfg, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	cfg.dir = filepath.Dir(filename)
	return cfg, nil
}

// Read reads and validates the config from TOML.  Keys that do not
// match any field are logged as warnings.
func Read(r io.Reader) (*Config, error) {
	cfg := &Config{}
	cfg.Defaults()
	raw := rawConfig{Name: cfg.Name, Run: cfg.Run, Log: cfg.Log, Retina: cfg.Retina}
	md, err := toml.NewDecoder(r).Decode(&raw)
	if err != nil {
		return nil, err
	}
	cfg.Name, cfg.Run, cfg.Log, cfg.Retina = raw.Name, raw.Run, raw.Log, raw.Retina

	cfg.Groups = make([]GroupConfig, len(raw.Groups))
	for i, p := range raw.Groups {
		cfg.Groups[i].Defaults()
		if err := md.PrimitiveDecode(p, &cfg.Groups[i]); err != nil {
			return nil, fmt.Errorf("Groups[%d]: %w", i, err)
		}
	}
	cfg.Neurons = make([]NeuronConfig, len(raw.Neurons))
	for i, p := range raw.Neurons {
		cfg.Neurons[i].Defaults()
		if err := md.PrimitiveDecode(p, &cfg.Neurons[i]); err != nil {
			return nil, fmt.Errorf("Neurons[%d]: %w", i, err)
		}
	}
	cfg.Synapses = make([]SynapseConfig, len(raw.Synapses))
	for i, p := range raw.Synapses {
		cfg.Synapses[i].Defaults()
		if err := md.PrimitiveDecode(p, &cfg.Synapses[i]); err != nil {
			return nil, fmt.Errorf("Synapses[%d]: %w", i, err)
		}
	}
	for _, key := range md.Undecoded() {
		slog.Warn("config: unknown key ignored", "key", key.String())
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the config for consistency, returning all
// the problems found.
func (cfg *Config) Validate() error {
	var errs []error
	if !(cfg.Run.Dt > 0) {
		errs = append(errs, fmt.Errorf("Run.Dt must be positive: %g", cfg.Run.Dt))
	}
	if cfg.Run.Duration < 0 {
		errs = append(errs, fmt.Errorf("Run.Duration must not be negative: %g", cfg.Run.Duration))
	}
	if cfg.Run.Threads < 1 {
		errs = append(errs, fmt.Errorf("Run.Threads must be at least 1: %d", cfg.Run.Threads))
	}

	groups := make(map[string]bool, len(cfg.Groups))
	for i, gc := range cfg.Groups {
		switch {
		case gc.Name == "":
			errs = append(errs, fmt.Errorf("Groups[%d]: missing Name", i))
		case groups[gc.Name]:
			errs = append(errs, fmt.Errorf("Groups[%d]: duplicate name %q", i, gc.Name))
		}
		groups[gc.Name] = true
	}
	for i, gc := range cfg.Groups {
		if gc.Parent != "" && !groups[gc.Parent] {
			errs = append(errs, fmt.Errorf("Groups[%d] %s: unknown parent %q", i, gc.Name, gc.Parent))
		}
	}
	if err := cfg.checkGroupCycles(); err != nil {
		errs = append(errs, err)
	}

	neurons := make(map[string]bool, len(cfg.Neurons))
	for i, nc := range cfg.Neurons {
		switch {
		case nc.Name == "":
			errs = append(errs, fmt.Errorf("Neurons[%d]: missing Name", i))
		case neurons[nc.Name]:
			errs = append(errs, fmt.Errorf("Neurons[%d]: duplicate name %q", i, nc.Name))
		}
		neurons[nc.Name] = true
		if nc.Group != "" && !groups[nc.Group] {
			errs = append(errs, fmt.Errorf("Neurons[%d] %s: unknown group %q", i, nc.Name, nc.Group))
		}
		if !(nc.Params.Capacitance > 0) {
			errs = append(errs, fmt.Errorf("Neurons[%d] %s: %w", i, nc.Name, neuron.ErrCapacitance))
		}
		if nc.Leak.Enabled && !(nc.Leak.Resistance > 0) {
			errs = append(errs, fmt.Errorf("Neurons[%d] %s: Leak.Resistance must be positive", i, nc.Name))
		}
	}
	for i, sc := range cfg.Synapses {
		if !neurons[sc.From] {
			errs = append(errs, fmt.Errorf("Synapses[%d]: unknown sending neuron %q", i, sc.From))
		}
		if !neurons[sc.To] {
			errs = append(errs, fmt.Errorf("Synapses[%d]: unknown receiving neuron %q", i, sc.To))
		}
		if sc.Tau < 0 {
			errs = append(errs, fmt.Errorf("Synapses[%d]: negative Tau %g", i, sc.Tau))
		}
	}

	if cfg.Retina.Kernel != "" {
		if cfg.Retina.Width < 1 || cfg.Retina.Height < 1 {
			errs = append(errs, fmt.Errorf("Retina: resolution must be at least 1: %d x %d", cfg.Retina.Width, cfg.Retina.Height))
		}
		for _, nm := range cfg.Retina.Targets {
			if !neurons[nm] {
				errs = append(errs, fmt.Errorf("Retina: unknown target neuron %q", nm))
			}
		}
	}
	return errors.Join(errs...)
}

// checkGroupCycles returns an error if following the parents of any
// group leads back to it.
func (cfg *Config) checkGroupCycles() error {
	parent := make(map[string]string, len(cfg.Groups))
	for _, gc := range cfg.Groups {
		parent[gc.Name] = gc.Parent
	}
	for _, gc := range cfg.Groups {
		seen := map[string]bool{gc.Name: true}
		for p := gc.Parent; p != ""; p = parent[p] {
			if seen[p] {
				return fmt.Errorf("Groups: cycle through %q", gc.Name)
			}
			seen[p] = true
		}
	}
	return nil
}

// Path resolves a file name relative to the config file, if it was
// opened from one.
func (cfg *Config) Path(fn string) string {
	if fn == "" || filepath.IsAbs(fn) || cfg.dir == "" {
		return fn
	}
	return filepath.Join(cfg.dir, fn)
}
