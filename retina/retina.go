// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package retina provides visual input for neurons: a grayscale
[Stimulus] sampled from an image, and a [ReceptiveField] current
source that weights the stimulus by a spatial kernel from package
kernel and injects the result into a neuron.
*/
package retina

import (
	"fmt"
	"image"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/lab/tensor"
	"github.com/anthonynsimon/bild/convolution"
	"github.com/anthonynsimon/bild/effect"
	"github.com/anthonynsimon/bild/imgio"
	"github.com/anthonynsimon/bild/transform"
	"github.com/emer/neuronify/kernel"
	"gonum.org/v1/gonum/floats"
)

// Stimulus is a grayscale image resampled to a fixed resolution,
// with intensities in [0, 1] stored row by row from the top.
type Stimulus struct {
	Width  int
	Height int
	Values []float64
}

// NewStimulus converts img to grayscale and resamples it to
// width x height.
func NewStimulus(img image.Image, width, height int) *Stimulus {
	st := &Stimulus{Width: width, Height: height, Values: make([]float64, width*height)}
	if img == nil || img.Bounds().Empty() {
		return st
	}
	rs := transform.Resize(effect.Grayscale(img), width, height, transform.Linear)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			st.Values[y*width+x] = float64(rs.Pix[y*rs.Stride+x*4]) / 255
		}
	}
	return st
}

// OpenStimulus opens an image file (png, jpeg, bmp) as a stimulus.
func OpenStimulus(filename string, width, height int) (*Stimulus, error) {
	img, err := imgio.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("retina: opening stimulus: %w", err)
	}
	return NewStimulus(img, width, height), nil
}

// At returns the intensity at the given column and row.
func (st *Stimulus) At(x, y int) float64 {
	return st.Values[y*st.Width+x]
}

// ReceptiveField is a current source that injects
// Gain * sum(weight * intensity) over the stimulus image,
// with weights built by a kernel [kernel.Engine] at its
// resolution.  The weights and the resampled stimulus are
// rebuilt lazily, on the first call to Current after the engine
// signals that they need recreation.
type ReceptiveField struct {

	// include this current
	Enabled bool

	// current per unit of weighted intensity, in amperes
	Gain float32 `def:"1e-11"`

	// engine generating the weights
	engine *kernel.Engine

	// source image
	image image.Image

	// current weights, (height, width)
	weights *tensor.Float64

	// image resampled at the kernel resolution
	stim *Stimulus

	// weights and stimulus must be rebuilt
	stale bool

	// name of the recreation callback on the engine
	name string
}

// NewReceptiveField returns a new enabled receptive field over img,
// which may be nil for no input yet.
func NewReceptiveField(ke *kernel.Engine, img image.Image) *ReceptiveField {
	rf := &ReceptiveField{Enabled: true, Gain: 1e-11, engine: ke, image: img, stale: true}
	rf.weights = tensor.NewFloat64(ke.ResolutionHeight(), ke.ResolutionWidth())
	rf.name = fmt.Sprintf("retina.ReceptiveField:%p", rf)
	ke.OnNeedsRecreation.Add(rf.name, func(*kernel.Engine) {
		rf.stale = true
	})
	return rf
}

// Release unsubscribes the receptive field from its kernel engine,
// e.g., after it has been removed from its neuron.  The weights are
// then no longer rebuilt when the engine changes.
func (rf *ReceptiveField) Release() {
	rf.engine.OnNeedsRecreation.Delete(rf.name)
}

// Engine returns the kernel engine of the receptive field.
func (rf *ReceptiveField) Engine() *kernel.Engine { return rf.engine }

// SetImage sets the source image, which is resampled on next use.
func (rf *ReceptiveField) SetImage(img image.Image) {
	rf.image = img
	rf.stale = true
}

// Weights returns the current weights, rebuilding them if needed.
func (rf *ReceptiveField) Weights() *tensor.Float64 {
	rf.update()
	return rf.weights
}

// Stimulus returns the resampled stimulus, rebuilding it if needed.
func (rf *ReceptiveField) Stimulus() *Stimulus {
	rf.update()
	return rf.stim
}

func (rf *ReceptiveField) update() {
	if !rf.stale {
		return
	}
	rf.stale = false
	if errors.Log(rf.engine.CreateKernel(rf.weights)) != nil {
		rf.weights.SetShapeSizes(rf.engine.ResolutionHeight(), rf.engine.ResolutionWidth())
		for i := range rf.weights.Values {
			rf.weights.Values[i] = 0
		}
	}
	rf.stim = NewStimulus(rf.image, rf.engine.ResolutionWidth(), rf.engine.ResolutionHeight())
}

func (rf *ReceptiveField) IsEnabled() bool { return rf.Enabled }

func (rf *ReceptiveField) Current() float32 {
	rf.update()
	return rf.Gain * float32(floats.Dot(rf.weights.Values, rf.stim.Values))
}

// Filter applies the receptive field to every location of img,
// returning the response image.  The kernel is normalized by its
// absolute sum.  If it has negative weights, zero response maps to
// mid gray so that inhibitory responses are visible.
func Filter(img image.Image, spatial *tensor.Float64) *image.RGBA {
	bias := 0.0
	if len(spatial.Values) > 0 && floats.Min(spatial.Values) < 0 {
		bias = 128
	}
	ck := kernel.ToConvolution(spatial)
	return convolution.Convolve(img, ck.Normalized(), &convolution.Options{Bias: bias, KeepAlpha: true})
}
