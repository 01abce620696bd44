// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package quantity

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_quantity_scalarorders01(tst *testing.T) {
	chk.PrintTitle("quantity_scalarorders01: a Second-order Scalar exposes value, dt and d2t")
	q := New(Scalar, Second, 3)
	if !q.HasDt() || !q.HasD2t() {
		tst.Fatalf("Second order should have both derivatives")
	}
	q.SetScalar(1, 2.5)
	q.SetScalarDt(1, -1.0)
	q.SetScalarD2t(1, 4.0)
	chk.Scalar(tst, "value", 1e-15, q.Scalar(1), 2.5)
	chk.Scalar(tst, "dt", 1e-15, q.ScalarDt(1), -1.0)
	chk.Scalar(tst, "d2t", 1e-15, q.ScalarD2t(1), 4.0)
}

func Test_quantity_zerothorderhasnoderivatives01(tst *testing.T) {
	chk.PrintTitle("quantity_zerothorderhasnoderivatives01: a Zero-order Scalar panics on ScalarDt")
	q := New(Scalar, Zero, 2)
	if q.HasDt() {
		tst.Fatalf("Zero order should not report HasDt")
	}
	defer func() {
		if recover() == nil {
			tst.Fatalf("expected ScalarDt on a Zero-order quantity to panic")
		}
	}()
	q.ScalarDt(0)
}

func Test_quantity_wrongtypepanics01(tst *testing.T) {
	chk.PrintTitle("quantity_wrongtypepanics01: Vector accessor on a Scalar quantity panics")
	q := New(Scalar, Zero, 2)
	defer func() {
		if recover() == nil {
			tst.Fatalf("expected Vector() on a Scalar quantity to panic")
		}
	}()
	q.Vector(0)
}

func Test_quantity_indexoutofrangepanics01(tst *testing.T) {
	chk.PrintTitle("quantity_indexoutofrangepanics01: an out-of-range particle index panics")
	q := New(Scalar, Zero, 2)
	defer func() {
		if recover() == nil {
			tst.Fatalf("expected Scalar(2) on a 2-particle quantity to panic")
		}
	}()
	q.Scalar(2)
}

func Test_quantity_vectorroundtrip01(tst *testing.T) {
	chk.PrintTitle("quantity_vectorroundtrip01: SetVector/Vector round-trips all four components")
	q := New(Vector, First, 2)
	v := Vec3{X: 1, Y: 2, Z: 3, H: 0.1}
	q.SetVector(0, v)
	got := q.Vector(0)
	chk.Scalar(tst, "x", 1e-15, got.X, v.X)
	chk.Scalar(tst, "y", 1e-15, got.Y, v.Y)
	chk.Scalar(tst, "z", 1e-15, got.Z, v.Z)
	chk.Scalar(tst, "h", 1e-15, got.H, v.H)
}

func Test_quantity_symtensorroundtrip01(tst *testing.T) {
	chk.PrintTitle("quantity_symtensorroundtrip01: SetSymTensor/SymTensor round-trips all six components")
	q := New(SymTensor, Zero, 1)
	t := SymTensor3{XX: 1, YY: 2, ZZ: 3, XY: 4, XZ: 5, YZ: 6}
	q.SetSymTensor(0, t)
	got := q.SymTensor(0)
	if got != t {
		tst.Fatalf("got %+v, want %+v", got, t)
	}
}

func Test_quantity_upgradeallocatesbuffers01(tst *testing.T) {
	chk.PrintTitle("quantity_upgradeallocatesbuffers01: Upgrade from Zero to Second allocates dt and d2t")
	q := New(Scalar, Zero, 2)
	q.SetScalar(0, 9)
	q.Upgrade(Second)
	if !q.HasDt() || !q.HasD2t() {
		tst.Fatalf("expected both derivatives after Upgrade(Second)")
	}
	chk.Scalar(tst, "value preserved", 1e-15, q.Scalar(0), 9)
	chk.Scalar(tst, "dt zeroed", 1e-15, q.ScalarDt(0), 0)
}

func Test_quantity_resizepreservesexisting01(tst *testing.T) {
	chk.PrintTitle("quantity_resizepreservesexisting01: Resize keeps existing values and zeros new slots")
	q := New(Scalar, Zero, 2)
	q.SetScalar(0, 1)
	q.SetScalar(1, 2)
	q.Resize(4, false)
	if q.N != 4 {
		tst.Fatalf("N after resize = %d, want 4", q.N)
	}
	chk.Scalar(tst, "slot 0 preserved", 1e-15, q.Scalar(0), 1)
	chk.Scalar(tst, "slot 1 preserved", 1e-15, q.Scalar(1), 2)
	chk.Scalar(tst, "slot 2 zeroed", 1e-15, q.Scalar(2), 0)
}

func Test_quantity_zerohighestderivative01(tst *testing.T) {
	chk.PrintTitle("quantity_zerohighestderivative01: ZeroHighestDerivative clears only d2t for Second order")
	q := New(Scalar, Second, 1)
	q.SetScalar(0, 1)
	q.SetScalarDt(0, 2)
	q.SetScalarD2t(0, 3)
	q.ZeroHighestDerivative()
	chk.Scalar(tst, "value untouched", 1e-15, q.Scalar(0), 1)
	chk.Scalar(tst, "dt untouched", 1e-15, q.ScalarDt(0), 2)
	chk.Scalar(tst, "d2t zeroed", 1e-15, q.ScalarD2t(0), 0)
}

func Test_quantity_clone01(tst *testing.T) {
	chk.PrintTitle("quantity_clone01: Clone is independent of the original's buffers")
	q := New(Scalar, First, 1)
	q.SetScalar(0, 1)
	q.SetScalarDt(0, 2)
	clone := q.Clone(true, false)
	q.SetScalar(0, 100)
	chk.Scalar(tst, "clone value unaffected", 1e-15, clone.Scalar(0), 1)
	chk.Scalar(tst, "clone dt copied", 1e-15, clone.ScalarDt(0), 2)
}

func Test_vec3_arithmetic01(tst *testing.T) {
	chk.PrintTitle("vec3_arithmetic01: Add, Sub, Scale, Dot, Cross, Length")
	a := Vec3{X: 1, Y: 0, Z: 0, H: 1}
	b := Vec3{X: 0, Y: 1, Z: 0, H: 2}
	chk.Scalar(tst, "dot", 1e-15, a.Dot(b), 0)
	sum := a.Add(b)
	chk.Scalar(tst, "sum.h", 1e-15, sum.H, 3)
	cross := a.Cross(b)
	chk.Scalar(tst, "cross.z", 1e-15, cross.Z, 1)
	chk.Scalar(tst, "length", 1e-15, a.Scale(3).Length(), 3)
}

func Test_vec3_normalizedzero01(tst *testing.T) {
	chk.PrintTitle("vec3_normalizedzero01: Normalized of the zero vector is the zero vector")
	z := Vec3{}.Normalized()
	chk.Scalar(tst, "x", 1e-15, z.X, 0)
	chk.Scalar(tst, "y", 1e-15, z.Y, 0)
	chk.Scalar(tst, "z", 1e-15, z.Z, 0)
}
