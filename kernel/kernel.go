// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package kernel generates the 2-D spatial weight matrices (receptive
fields) used by sensory input stages such as the retina.

An [Engine] holds the resolution of the matrix and the coordinate axes
sampled over it.  The actual shape of the weights is supplied by a
[Kernel] strategy (Gaussian, difference-of-Gaussians, Gabor, ...).
The Engine never builds the weights itself: when the resolution
changes it emits a recreation notification, and the consumer calls
[Engine.CreateKernel] when it next needs the weights.
*/
package kernel

import (
	"errors"
	"fmt"
	"math"

	"cogentcore.org/lab/tensor"
	"github.com/emer/neuronify/observe"
	"gonum.org/v1/gonum/floats"
)

// ErrResolution is returned when setting a resolution below 1.
var ErrResolution = errors.New("kernel: resolution must be at least 1")

// Kernel fills a weight matrix of shape (len(y), len(x)).
// Values must be a pure function of the axes and the
// kernel's own parameters.
type Kernel interface {
	Create(spatial *tensor.Float64, x, y []float64)
}

// Func is an adapter to use an ordinary function as a [Kernel].
type Func func(spatial *tensor.Float64, x, y []float64)

// Create calls f(spatial, x, y).
func (f Func) Create(spatial *tensor.Float64, x, y []float64) {
	f(spatial, x, y)
}

// Engine manages the resolution and coordinate axes of a
// spatial kernel.  Use [NewEngine] to create one.
type Engine struct {

	// Kernel builds the weights in [Engine.CreateKernel]
	Kernel Kernel

	// OnResolutionChanged functions are called after either
	// resolution changes, with the new axes in place.
	OnResolutionChanged observe.Funcs[*Engine]

	// OnNeedsRecreation functions are called, once per change,
	// whenever weights created before the change are stale.
	OnNeedsRecreation observe.Funcs[*Engine]

	// number of samples along y
	height int

	// number of samples along x
	width int

	// total span of each axis, centered on 0
	extent float64

	x []float64
	y []float64
}

// NewEngine returns a new engine using the given kernel, with the
// default 20 x 20 resolution over an extent of 2, i.e., [-1, 1].
func NewEngine(kern Kernel) *Engine {
	ke := &Engine{Kernel: kern, height: 20, width: 20, extent: 2}
	ke.x = axis(ke.width, ke.extent)
	ke.y = axis(ke.height, ke.extent)
	return ke
}

// axis returns n evenly spaced samples over [-extent/2, extent/2].
// A single sample sits at the center.
func axis(n int, extent float64) []float64 {
	ax := make([]float64, n)
	if n == 1 {
		return ax
	}
	return floats.Span(ax, -extent/2, extent/2)
}

// ResolutionHeight returns the number of rows of the weight matrix.
func (ke *Engine) ResolutionHeight() int { return ke.height }

// ResolutionWidth returns the number of columns of the weight matrix.
func (ke *Engine) ResolutionWidth() int { return ke.width }

// Extent returns the span of both coordinate axes.
func (ke *Engine) Extent() float64 { return ke.extent }

// X returns the coordinate samples along the width.
// The slice is owned by the engine and must not be modified.
func (ke *Engine) X() []float64 { return ke.x }

// Y returns the coordinate samples along the height.
// The slice is owned by the engine and must not be modified.
func (ke *Engine) Y() []float64 { return ke.y }

// SetResolutionHeight sets the number of rows.  If it changes, the y
// axis is regenerated and the change and recreation notifications are
// sent.  Values below 1 return [ErrResolution] and change nothing.
func (ke *Engine) SetResolutionHeight(n int) error {
	if n < 1 {
		return fmt.Errorf("%w: height %d", ErrResolution, n)
	}
	if n == ke.height {
		return nil
	}
	ke.height = n
	ke.y = axis(n, ke.extent)
	ke.changed()
	return nil
}

// SetResolutionWidth sets the number of columns.  If it changes, the x
// axis is regenerated and the change and recreation notifications are
// sent.  Values below 1 return [ErrResolution] and change nothing.
func (ke *Engine) SetResolutionWidth(n int) error {
	if n < 1 {
		return fmt.Errorf("%w: width %d", ErrResolution, n)
	}
	if n == ke.width {
		return nil
	}
	ke.width = n
	ke.x = axis(n, ke.extent)
	ke.changed()
	return nil
}

// SetExtent sets the span of both axes, which must be positive and
// finite.  If it changes, both axes are regenerated and a single
// recreation notification is sent.
func (ke *Engine) SetExtent(e float64) error {
	if !(e > 0) || math.IsInf(e, 1) {
		return fmt.Errorf("kernel: extent must be positive and finite: %g", e)
	}
	if e == ke.extent {
		return nil
	}
	ke.extent = e
	ke.x = axis(ke.width, e)
	ke.y = axis(ke.height, e)
	ke.OnNeedsRecreation.Run(ke)
	return nil
}

func (ke *Engine) changed() {
	ke.OnResolutionChanged.Run(ke)
	ke.OnNeedsRecreation.Run(ke)
}

// CreateKernel reshapes spatial to (height, width), zeroes it, and
// fills it with the weights of the engine's [Kernel] over the
// current axes.
func (ke *Engine) CreateKernel(spatial *tensor.Float64) error {
	if ke.Kernel == nil {
		return errors.New("kernel: no Kernel set on engine")
	}
	spatial.SetShapeSizes(ke.height, ke.width)
	n := ke.height * ke.width
	for i := 0; i < n; i++ {
		spatial.SetFloat1D(0, i)
	}
	ke.Kernel.Create(spatial, ke.x, ke.y)
	return nil
}

// Weights returns a new matrix filled by [Engine.CreateKernel].
func (ke *Engine) Weights() (*tensor.Float64, error) {
	spatial := tensor.NewFloat64(ke.height, ke.width)
	if err := ke.CreateKernel(spatial); err != nil {
		return nil, err
	}
	return spatial, nil
}
