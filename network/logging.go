// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package network

import (
	"io"
	"log/slog"

	"cogentcore.org/lab/table"
	"cogentcore.org/lab/tensor"
	"github.com/c2h5oh/datasize"
)

// Recorder logs the voltage and spikes of every neuron of a network
// on each cycle into a table with columns Time, then <name>_Vm and
// <name>_Spike for each neuron.  Neurons added to the network after
// the recorder was created are not recorded.
type Recorder struct {

	// network being recorded
	Net *Network

	// maximum size of the recorded values; recording stops when
	// reached.  0 means no limit.
	MaxSize datasize.ByteSize

	// recorded trace
	Table *table.Table

	time  *tensor.Float64
	vm    []*tensor.Float64
	spike []*tensor.Float64

	// spikes per node, counted even when full
	counts []int

	// MaxSize was reached
	full bool
}

// NewRecorder returns a recorder for the network that records on
// every cycle, until the recorded values reach maxSize.
func NewRecorder(net *Network, maxSize datasize.ByteSize) *Recorder {
	rc := &Recorder{Net: net, MaxSize: maxSize}
	rc.Table = table.New()
	rc.time = rc.Table.AddFloat64Column("Time")
	for _, nd := range net.Nodes {
		rc.vm = append(rc.vm, rc.Table.AddFloat64Column(nd.Neuron.Name+"_Vm"))
		rc.spike = append(rc.spike, rc.Table.AddFloat64Column(nd.Neuron.Name+"_Spike"))
	}
	rc.counts = make([]int, len(net.Nodes))
	net.OnCycle.Add("Recorder", rc.Record)
	return rc
}

// rowSize is the size of one row of the table.
func (rc *Recorder) rowSize() datasize.ByteSize {
	return datasize.ByteSize(8 * (1 + 2*len(rc.vm)))
}

// Record adds a row for the current state of the network.
func (rc *Recorder) Record(net *Network) {
	for i := range rc.counts {
		if net.Nodes[i].Spike {
			rc.counts[i]++
		}
	}
	if rc.full {
		return
	}
	row := rc.Table.NumRows()
	if rc.MaxSize > 0 && datasize.ByteSize(row+1)*rc.rowSize() > rc.MaxSize {
		rc.full = true
		slog.Warn("trace recorder full, recording stopped", "network", net.Name, "max", rc.MaxSize.HumanReadable(), "rows", row)
		return
	}
	rc.Table.SetNumRows(row + 1)
	rc.time.SetFloat1D(float64(net.Time.Time), row)
	for i := range rc.vm {
		nd := net.Nodes[i]
		rc.vm[i].SetFloat1D(float64(nd.Neuron.Voltage()), row)
		sp := 0.0
		if nd.Spike {
			sp = 1
		}
		rc.spike[i].SetFloat1D(sp, row)
	}
}

// Full returns true if recording stopped at MaxSize.
func (rc *Recorder) Full() bool { return rc.full }

// Rows returns the number of recorded rows.
func (rc *Recorder) Rows() int { return rc.Table.NumRows() }

// SpikeCounts returns the number of spikes of each recorded neuron
// since the last reset, by name.
func (rc *Recorder) SpikeCounts() map[string]int {
	sc := make(map[string]int, len(rc.counts))
	for i, n := range rc.counts {
		sc[rc.Net.Nodes[i].Neuron.Name] = n
	}
	return sc
}

// Reset clears the recorded rows and spike counts.
func (rc *Recorder) Reset() {
	rc.Table.SetNumRows(0)
	for i := range rc.counts {
		rc.counts[i] = 0
	}
	rc.full = false
}

// WriteCSV writes the recorded table as tab-separated values with
// a header row.
func (rc *Recorder) WriteCSV(w io.Writer) error {
	return rc.Table.WriteCSV(w, tensor.Tab, true)
}
