// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scheduler

import (
	"errors"
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_pool01(tst *testing.T) {

	chk.PrintTitle("pool01: ParallelFor covers every index exactly once")

	p := NewWithWorkers(4)
	const n = 37
	hits := make([]int, n)
	err := p.ParallelFor(n, func(lo, hi int) error {
		for i := lo; i < hi; i++ {
			hits[i]++
		}
		return nil
	})
	if err != nil {
		tst.Errorf("ParallelFor failed: %v", err)
	}
	for i, h := range hits {
		if h != 1 {
			tst.Errorf("index %d visited %d times, want 1", i, h)
		}
	}
}

func Test_pool02(tst *testing.T) {

	chk.PrintTitle("pool02: ParallelFor propagates the first error")

	p := NewWithWorkers(4)
	want := errors.New("boom")
	err := p.ParallelFor(16, func(lo, hi int) error {
		if lo == 0 {
			return want
		}
		return nil
	})
	if err == nil {
		tst.Errorf("expected an error")
	}
}

func Test_pool03(tst *testing.T) {

	chk.PrintTitle("pool03: ThreadLocal addresses one slot per worker")

	p := NewWithWorkers(4)
	tl := NewThreadLocal[int](p.NumWorkers())
	err := p.ParallelForIndexed(4, func(workerID, lo, hi int) error {
		*tl.Get(workerID) = hi - lo
		return nil
	})
	if err != nil {
		tst.Errorf("ParallelForIndexed failed: %v", err)
	}
	sum := 0
	for _, v := range tl.All() {
		sum += v
	}
	if sum != 4 {
		tst.Errorf("sum of per-worker slot sizes = %d, want 4", sum)
	}
}

func Test_pool04(tst *testing.T) {

	chk.PrintTitle("pool04: ParallelInvoke runs every fn")

	p := NewWithWorkers(2)
	count := make([]int, 3)
	err := p.ParallelInvoke(
		func() error { count[0] = 1; return nil },
		func() error { count[1] = 1; return nil },
		func() error { count[2] = 1; return nil },
	)
	if err != nil {
		tst.Errorf("ParallelInvoke failed: %v", err)
	}
	for i, c := range count {
		if c != 1 {
			tst.Errorf("fn %d did not run", i)
		}
	}
}

func Test_task01(tst *testing.T) {

	chk.PrintTitle("task01: Go/Wait returns the closure's error")

	ok := Go(func() error { return nil })
	if err := ok.Wait(); err != nil {
		tst.Errorf("expected nil error, got %v", err)
	}
	want := errors.New("fail")
	bad := Go(func() error { return want })
	if err := bad.Wait(); err != want {
		tst.Errorf("expected %v, got %v", want, err)
	}
}
