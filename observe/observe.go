// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package observe provides ordered lists of named callback functions,
used for change notifications on neuron and kernel properties.
Functions are called in the order they were added, which makes the
order of side effects (e.g., plot updates vs. logging) predictable.
*/
package observe

import (
	"slices"

	"cogentcore.org/core/base/keylist"
)

// Funcs is an ordered list of named functions that all take
// the same argument.  The zero value is ready to use.
type Funcs[T any] struct {
	list keylist.List[string, func(T)]
}

// Add adds a named function to the list.  If a function with the
// same name already exists, it is replaced in place, preserving order.
func (fs *Funcs[T]) Add(name string, fun func(T)) {
	fs.list.Set(name, fun)
}

// Delete removes the function with the given name,
// returning false if it was not found.
func (fs *Funcs[T]) Delete(name string) bool {
	return fs.list.DeleteByKey(name)
}

// Run calls all of the functions in order with the given value.
func (fs *Funcs[T]) Run(v T) {
	for _, fun := range fs.list.Values {
		fun(v)
	}
}

// Len returns the number of functions in the list.
func (fs *Funcs[T]) Len() int {
	return fs.list.Len()
}

// Names returns the function names, in order.
func (fs *Funcs[T]) Names() []string {
	return slices.Clone(fs.list.Keys)
}

// Has returns true if a function with the given name is in the list.
func (fs *Funcs[T]) Has(name string) bool {
	return fs.list.IndexByKey(name) >= 0
}

// Reset removes all functions.
func (fs *Funcs[T]) Reset() {
	fs.list.Reset()
}
