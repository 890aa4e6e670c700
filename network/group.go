// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package network

import "strings"

// Group is a named set of neurons that can be switched on and off as
// a whole.  Groups nest: a neuron is only stepped when its group and
// every ancestor of it are enabled.  A nil *Group is the always
// enabled top level.
type Group struct {

	// name of the group
	Name string

	// enclosing group, nil for top-level groups
	Parent *Group

	// whether neurons in this group (and subgroups) are stepped
	Enabled bool
}

// NewGroup returns a new enabled group within the given parent,
// which may be nil.
func NewGroup(name string, parent *Group) *Group {
	return &Group{Name: name, Parent: parent, Enabled: true}
}

// IsEnabled returns true if this group and all of its ancestors
// are enabled.
func (gp *Group) IsEnabled() bool {
	for g := gp; g != nil; g = g.Parent {
		if !g.Enabled {
			return false
		}
	}
	return true
}

// Path returns the slash-separated names from the top-level group.
func (gp *Group) Path() string {
	var names []string
	for g := gp; g != nil; g = g.Parent {
		names = append(names, g.Name)
	}
	for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
		names[i], names[j] = names[j], names[i]
	}
	return strings.Join(names, "/")
}
