// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package equation

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosph/quantity"
	"github.com/cpmech/gosph/storage"
)

func Test_accumulated01(tst *testing.T) {

	chk.PrintTitle("accumulated01: declare+add+merge SHARED sums")

	st := storage.New()
	st.Resize(2, false)
	st.Insert(storage.VELOCITY_DIVERGENCE)

	acc := NewAccumulated(2)
	acc.Declare(storage.VELOCITY_DIVERGENCE, quantity.Scalar, quantity.Zero, Shared)
	acc.AddScalar(storage.VELOCITY_DIVERGENCE, 0, 3)
	acc.AddScalar(storage.VELOCITY_DIVERGENCE, 0, 4)
	acc.AddScalar(storage.VELOCITY_DIVERGENCE, 1, 1)

	acc.MergeInto(st)
	chk.Scalar(tst, "divv[0]", 1e-15, st.Get(storage.VELOCITY_DIVERGENCE).Scalar(0), 7)
	chk.Scalar(tst, "divv[1]", 1e-15, st.Get(storage.VELOCITY_DIVERGENCE).Scalar(1), 1)
}

func Test_accumulated02(tst *testing.T) {

	chk.PrintTitle("accumulated02: UNIQUE collision panics at declare time")

	defer func() {
		if r := recover(); r == nil {
			tst.Errorf("expected a panic on UNIQUE collision")
		}
	}()
	acc := NewAccumulated(2)
	acc.Declare(storage.STRAIN_RATE_CORRECTION_TENSOR, quantity.SymTensor, quantity.Zero, Unique)
	acc.Declare(storage.STRAIN_RATE_CORRECTION_TENSOR, quantity.SymTensor, quantity.Zero, Unique)
}

func Test_accumulated03(tst *testing.T) {

	chk.PrintTitle("accumulated03: two SHARED declarations of the same id coexist")

	acc := NewAccumulated(2)
	acc.Declare(storage.VELOCITY_DIVERGENCE, quantity.Scalar, quantity.Zero, Shared)
	acc.Declare(storage.VELOCITY_DIVERGENCE, quantity.Scalar, quantity.Zero, Shared)
	if !acc.Has(storage.VELOCITY_DIVERGENCE) {
		tst.Errorf("expected VELOCITY_DIVERGENCE to be declared")
	}
}

func Test_accumulated04(tst *testing.T) {

	chk.PrintTitle("accumulated04: UNIQUE merge overwrites, not sums")

	st := storage.New()
	st.Resize(1, false)
	st.Insert(storage.STRAIN_RATE_CORRECTION_TENSOR)
	st.Get(storage.STRAIN_RATE_CORRECTION_TENSOR).SetSymTensor(0, quantity.SymTensor3{XX: 99})

	acc := NewAccumulated(1)
	acc.Declare(storage.STRAIN_RATE_CORRECTION_TENSOR, quantity.SymTensor, quantity.Zero, Unique)
	acc.AddSymTensor(storage.STRAIN_RATE_CORRECTION_TENSOR, 0, quantity.SymTensor3{XX: 1, YY: 2})
	acc.MergeInto(st)

	got := st.Get(storage.STRAIN_RATE_CORRECTION_TENSOR).SymTensor(0)
	chk.Scalar(tst, "C.XX", 1e-15, got.XX, 1)
	chk.Scalar(tst, "C.YY", 1e-15, got.YY, 2)
}

type countingDerivative struct {
	key string
}

func (d *countingDerivative) Key() string { return d.key }
func (d *countingDerivative) Create(acc *Accumulated) {
	acc.Declare(storage.VELOCITY_DIVERGENCE, quantity.Scalar, quantity.Zero, Shared)
}
func (d *countingDerivative) Initialize(st *storage.Storage, acc *Accumulated) error { return nil }
func (d *countingDerivative) EvalSymmetric(st *storage.Storage, acc *Accumulated, i int, neighs []Pair) {
}

func Test_holder01(tst *testing.T) {

	chk.PrintTitle("holder01: Require deduplicates by Key")

	h := NewDerivativeHolder()
	a := h.Require(&countingDerivative{key: "divv"})
	b := h.Require(&countingDerivative{key: "divv"})
	c := h.Require(&countingDerivative{key: "gradv"})

	if a != b {
		tst.Errorf("expected the same instance for equal keys")
	}
	if a == c {
		tst.Errorf("expected distinct instances for distinct keys")
	}
	if h.Len() != 2 {
		tst.Errorf("expected 2 distinct derivatives, got %d", h.Len())
	}
}
