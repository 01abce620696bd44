// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package storage

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosph/quantity"
)

type fakeMaterial struct{ name string }

func (m fakeMaterial) Name() string { return m.name }

func Test_storage01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("storage01: insert, isValid")

	s := NewWithMaterial(4, fakeMaterial{"rock"})
	s.Insert(POSITION)
	s.Insert(MASS)
	s.Insert(MATERIAL_ID)

	if !s.IsValid(Complete) {
		tst.Errorf("storage should be valid after insert")
	}
	for i := 0; i < 4; i++ {
		if s.Get(MATERIAL_ID).Index(i) != 0 {
			tst.Errorf("MATERIAL_ID[%d] should be 0", i)
		}
	}
}

func Test_storage02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("storage02: duplicate keeps partition")

	s := NewWithMaterial(3, fakeMaterial{"ice"})
	s.Insert(POSITION)
	s.Insert(MATERIAL_ID)
	for i := 0; i < 3; i++ {
		s.Get(POSITION).SetVector(i, quantity.Vec3{X: float64(i)})
	}

	newIdx := s.Duplicate([]int{0, 2})
	if len(newIdx) != 2 {
		tst.Errorf("duplicate should return 2 new indices")
	}
	if s.N() != 5 {
		tst.Errorf("N should be 5 after duplicating 2, got %d", s.N())
	}
	for _, idx := range newIdx {
		if s.MaterialOf(idx).Name() != "ice" {
			tst.Errorf("duplicated particle %d should stay in source material", idx)
		}
	}
	if !s.IsValid(Complete) {
		tst.Errorf("storage should remain valid after duplicate")
	}
}

func Test_storage03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("storage03: remove drops empty partitions")

	s := New()
	s.n = 2
	s.partitions = []MaterialPartition{
		{From: 0, To: 1, Material: fakeMaterial{"a"}},
		{From: 1, To: 2, Material: fakeMaterial{"b"}},
	}
	s.Insert(POSITION)
	s.Insert(MATERIAL_ID)

	s.Remove([]int{0})
	if s.N() != 1 {
		tst.Errorf("N should be 1 after removing 1 of 2, got %d", s.N())
	}
	if len(s.Partitions()) != 1 {
		tst.Errorf("empty partition should have been dropped, have %d", len(s.Partitions()))
	}
	if s.MaterialOf(0).Name() != "b" {
		tst.Errorf("surviving particle should keep its own material, got %q", s.MaterialOf(0).Name())
	}
}

func Test_storage04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("storage04: zeroHighestDerivatives is idempotent")

	s := NewWithMaterial(2, fakeMaterial{"m"})
	s.Insert(POSITION)
	s.Get(POSITION).SetVectorD2t(0, quantity.Vec3{X: 9})
	s.ZeroHighestDerivatives()
	s.ZeroHighestDerivatives()
	v := s.Get(POSITION).VectorD2t(0)
	chk.Scalar(tst, "a_x", 1e-15, v.X, 0)
}

func Test_storage05(tst *testing.T) {

	//verbose()
	chk.PrintTitle("storage05: dependent storage mirrors structural ops")

	owner := NewWithMaterial(3, fakeMaterial{"m"})
	owner.Insert(POSITION)

	dep := New()
	dep.n = 3
	dep.Insert(POSITION)

	owner.AddDependent(dep)
	owner.Duplicate([]int{0})
	if dep.N() != owner.N() {
		tst.Errorf("dependent should track owner's N: %d != %d", dep.N(), owner.N())
	}
}

func Test_storage06(tst *testing.T) {

	//verbose()
	chk.PrintTitle("storage06: clone shares materials, deep-copies values")

	s := NewWithMaterial(2, fakeMaterial{"m"})
	s.Insert(POSITION)
	s.Get(POSITION).SetVector(0, quantity.Vec3{X: 1})

	c := s.Clone(AllBuffers)
	c.Get(POSITION).SetVector(0, quantity.Vec3{X: 2})

	if s.Get(POSITION).Vector(0).X != 1 {
		tst.Errorf("clone should deep-copy values; original was mutated")
	}
	if c.Partitions()[0].Material.Name() != s.Partitions()[0].Material.Name() {
		tst.Errorf("clone should share material identity")
	}
}
