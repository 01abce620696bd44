// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package quantity implements the typed, multi-order per-particle buffers
// that back every field a Storage can hold.
package quantity

import "github.com/cpmech/gosl/chk"

// ValueType is the closed set of per-particle value kinds a Quantity can
// hold. New kinds are never added at runtime: visitors dispatch over this
// tag with a switch, not an open interface.
type ValueType int

const (
	Scalar         ValueType = iota // single float64
	Vector                          // 3-vector; 4th slot (H) only meaningful for POSITION/VELOCITY
	SymTensor                       // symmetric 3x3 tensor, 6 independent components
	TracelessTensor                 // traceless symmetric 3x3 tensor, 5 independent components
	Index                           // integer index (e.g. MATERIAL_ID, FLAG)
)

func (t ValueType) String() string {
	switch t {
	case Scalar:
		return "Scalar"
	case Vector:
		return "Vector"
	case SymTensor:
		return "SymTensor"
	case TracelessTensor:
		return "TracelessTensor"
	case Index:
		return "Index"
	default:
		return "Unknown"
	}
}

// Order is how many derivatives a Quantity stores.
type Order int

const (
	Zero   Order = iota // value only
	First                // value + dt
	Second               // value + dt + d2t
)

// componentsOf returns how many float64 slots one element of the given
// value type occupies in a flat buffer. Vector uses 4 slots (x,y,z,H).
func componentsOf(vt ValueType) int {
	switch vt {
	case Scalar, Index:
		return 1
	case Vector:
		return 4
	case SymTensor:
		return 6
	case TracelessTensor:
		return 5
	default:
		chk.Panic("quantity: unknown value type %v", vt)
		return 0
	}
}
