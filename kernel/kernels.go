// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kernel

import (
	"fmt"
	"math"
	"strings"

	"cogentcore.org/lab/tensor"
	"github.com/anthonynsimon/bild/convolution"
)

// gauss2 returns the normalized 2-D Gaussian density at squared radius r2.
func gauss2(r2, sigma float64) float64 {
	s2 := sigma * sigma
	return math.Exp(-r2/(2*s2)) / (2 * math.Pi * s2)
}

// Gauss is a circular Gaussian receptive field,
// with a peak value of Gain at the center.
type Gauss struct {

	// standard deviation, in axis units
	Sigma float64 `def:"0.25" min:"0"`

	// peak weight
	Gain float64 `def:"1"`
}

func (gs *Gauss) Defaults() {
	gs.Sigma = 0.25
	gs.Gain = 1
}

func (gs *Gauss) Create(spatial *tensor.Float64, x, y []float64) {
	for i, yv := range y {
		for j, xv := range x {
			r2 := xv*xv + yv*yv
			spatial.SetFloat(gs.Gain*math.Exp(-r2/(2*gs.Sigma*gs.Sigma)), i, j)
		}
	}
}

// DoG is a difference-of-Gaussians center-surround receptive field,
// as found in retinal ganglion cells.  Each Gaussian is normalized,
// so a SurroundWeight of 1 gives a balanced field that does not
// respond to uniform input.
type DoG struct {

	// standard deviation of the center, in axis units
	CenterSigma float64 `def:"0.1" min:"0"`

	// standard deviation of the surround, in axis units -- should be larger than CenterSigma
	SurroundSigma float64 `def:"0.3" min:"0"`

	// relative weight of the surround
	SurroundWeight float64 `def:"1"`

	// invert the field: inhibitory center, excitatory surround
	OffCenter bool

	// overall multiplier
	Gain float64 `def:"1"`
}

func (dg *DoG) Defaults() {
	dg.CenterSigma = 0.1
	dg.SurroundSigma = 0.3
	dg.SurroundWeight = 1
	dg.OffCenter = false
	dg.Gain = 1
}

func (dg *DoG) Create(spatial *tensor.Float64, x, y []float64) {
	sign := 1.0
	if dg.OffCenter {
		sign = -1
	}
	for i, yv := range y {
		for j, xv := range x {
			r2 := xv*xv + yv*yv
			v := gauss2(r2, dg.CenterSigma) - dg.SurroundWeight*gauss2(r2, dg.SurroundSigma)
			spatial.SetFloat(sign*dg.Gain*v, i, j)
		}
	}
}

// Gabor is an oriented Gabor receptive field: a sinusoidal grating
// under a circular Gaussian envelope, as in simple cells of V1.
type Gabor struct {

	// standard deviation of the Gaussian envelope, in axis units
	Sigma float64 `def:"0.3" min:"0"`

	// wavelength of the grating, in axis units
	Wavelength float64 `def:"0.5" min:"0"`

	// orientation of the grating, in radians -- 0 gives vertical bars
	Orientation float64 `def:"0"`

	// phase offset of the grating, in radians
	Phase float64 `def:"0"`

	// peak weight
	Gain float64 `def:"1"`
}

func (gb *Gabor) Defaults() {
	gb.Sigma = 0.3
	gb.Wavelength = 0.5
	gb.Orientation = 0
	gb.Phase = 0
	gb.Gain = 1
}

func (gb *Gabor) Create(spatial *tensor.Float64, x, y []float64) {
	sin, cos := math.Sincos(gb.Orientation)
	for i, yv := range y {
		for j, xv := range x {
			xr := xv*cos + yv*sin
			env := math.Exp(-(xv*xv + yv*yv) / (2 * gb.Sigma * gb.Sigma))
			spatial.SetFloat(gb.Gain*env*math.Cos(2*math.Pi*xr/gb.Wavelength+gb.Phase), i, j)
		}
	}
}

// Rect is a uniform rectangular receptive field: weight 1 inside,
// 0 outside (or -1 inside if Off).
type Rect struct {

	// half of the width of the rectangle, in axis units
	HalfWidth float64 `def:"0.5" min:"0"`

	// half of the height of the rectangle, in axis units
	HalfHeight float64 `def:"0.5" min:"0"`

	// negative weights inside the rectangle
	Off bool
}

func (rc *Rect) Defaults() {
	rc.HalfWidth = 0.5
	rc.HalfHeight = 0.5
	rc.Off = false
}

func (rc *Rect) Create(spatial *tensor.Float64, x, y []float64) {
	in := 1.0
	if rc.Off {
		in = -1
	}
	for i, yv := range y {
		for j, xv := range x {
			v := 0.0
			if math.Abs(xv) <= rc.HalfWidth && math.Abs(yv) <= rc.HalfHeight {
				v = in
			}
			spatial.SetFloat(v, i, j)
		}
	}
}

// Names are the kernel types known to [ByName].
var Names = []string{"gauss", "dog", "gabor", "rect"}

// ByName returns a new kernel of the given type with default
// parameters.  Names are not case sensitive.
func ByName(name string) (Kernel, error) {
	switch strings.ToLower(name) {
	case "gauss":
		k := &Gauss{}
		k.Defaults()
		return k, nil
	case "dog":
		k := &DoG{}
		k.Defaults()
		return k, nil
	case "gabor":
		k := &Gabor{}
		k.Defaults()
		return k, nil
	case "rect":
		k := &Rect{}
		k.Defaults()
		return k, nil
	}
	return nil, fmt.Errorf("kernel: unknown kernel type %q, must be one of %v", name, Names)
}

// ToConvolution converts a (height, width) weight matrix into an
// image convolution kernel, e.g., to preview a receptive field
// applied over a whole image.
func ToConvolution(spatial *tensor.Float64) *convolution.Kernel {
	h, w := spatial.DimSize(0), spatial.DimSize(1)
	ck := convolution.NewKernel(w, h)
	for i := 0; i < h; i++ {
		for j := 0; j < w; j++ {
			ck.Matrix[i*w+j] = spatial.Float(i, j)
		}
	}
	return ck
}
