// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package storage implements the heterogeneous, materially-segmented
// per-particle container described in spec.md §3.2: a quantity map keyed
// by a closed identifier set, plus material partitions, attractors, and
// dependent-storage propagation.
package storage

import "github.com/cpmech/gosph/quantity"

// Id is the closed set of quantity identifiers a Storage may hold. Each id
// appears at most once per Storage.
type Id int

const (
	POSITION Id = iota
	MASS
	DENSITY
	ENERGY
	PRESSURE
	SOUND_SPEED
	DEVIATORIC_STRESS
	DAMAGE
	FLAG
	MATERIAL_ID
	NEIGHBOR_CNT
	VELOCITY_DIVERGENCE
	VELOCITY_GRADIENT
	VELOCITY_ROTATION
	STRAIN_RATE_CORRECTION_TENSOR
	AV_ALPHA
	AV_STRESS
	XSPH_VELOCITIES
	SURFACE_NORMAL
	ENERGY_LAPLACIAN
	DELTASPH_DENSITY_GRADIENT
	STRESS_REDUCING
	TIME_STEP
	TIME_STEP_CRITERION
	PHASE_ANGLE
	ANGULAR_VELOCITY
	PERSISTENT_INDEX
	UVW
	INITIAL_POSITION
	GENERALIZED_PRESSURE
	GENERALIZED_ENERGY
	INTERPARTICLE_SPACING_KERNEL

	// VELOCITY is not listed explicitly in spec.md's Storage id set
	// because it is carried as POSITION's dt buffer (POSITION is
	// SECOND-order: value=r, dt=v, d2t=a) rather than a separate id, per
	// spec.md §3.1. It is kept here only as a documented alias so code
	// can still say storage.VELOCITY when it means POSITION's dt -- it
	// must never be inserted as its own Quantity.
	VELOCITY = POSITION
)

var idNames = map[Id]string{
	POSITION:                       "POSITION",
	MASS:                           "MASS",
	DENSITY:                        "DENSITY",
	ENERGY:                         "ENERGY",
	PRESSURE:                       "PRESSURE",
	SOUND_SPEED:                    "SOUND_SPEED",
	DEVIATORIC_STRESS:              "DEVIATORIC_STRESS",
	DAMAGE:                         "DAMAGE",
	FLAG:                           "FLAG",
	MATERIAL_ID:                    "MATERIAL_ID",
	NEIGHBOR_CNT:                   "NEIGHBOR_CNT",
	VELOCITY_DIVERGENCE:            "VELOCITY_DIVERGENCE",
	VELOCITY_GRADIENT:              "VELOCITY_GRADIENT",
	VELOCITY_ROTATION:              "VELOCITY_ROTATION",
	STRAIN_RATE_CORRECTION_TENSOR:  "STRAIN_RATE_CORRECTION_TENSOR",
	AV_ALPHA:                       "AV_ALPHA",
	AV_STRESS:                      "AV_STRESS",
	XSPH_VELOCITIES:                "XSPH_VELOCITIES",
	SURFACE_NORMAL:                 "SURFACE_NORMAL",
	ENERGY_LAPLACIAN:               "ENERGY_LAPLACIAN",
	DELTASPH_DENSITY_GRADIENT:      "DELTASPH_DENSITY_GRADIENT",
	STRESS_REDUCING:                "STRESS_REDUCING",
	TIME_STEP:                      "TIME_STEP",
	TIME_STEP_CRITERION:            "TIME_STEP_CRITERION",
	PHASE_ANGLE:                    "PHASE_ANGLE",
	ANGULAR_VELOCITY:               "ANGULAR_VELOCITY",
	PERSISTENT_INDEX:               "PERSISTENT_INDEX",
	UVW:                            "UVW",
	INITIAL_POSITION:               "INITIAL_POSITION",
	GENERALIZED_PRESSURE:           "GENERALIZED_PRESSURE",
	GENERALIZED_ENERGY:             "GENERALIZED_ENERGY",
	INTERPARTICLE_SPACING_KERNEL:   "INTERPARTICLE_SPACING_KERNEL",
}

func (id Id) String() string {
	if n, ok := idNames[id]; ok {
		return n
	}
	return "Id(?)"
}

// defaultLayout declares the (ValueType, Order) every id must use when
// first inserted without an explicit type -- mirroring spec.md §3.1's
// "closed set" contract so callers cannot accidentally give DENSITY a
// vector layout.
var defaultLayout = map[Id]struct {
	Type  quantity.ValueType
	Order quantity.Order
}{
	POSITION:                      {quantity.Vector, quantity.Second},
	MASS:                          {quantity.Scalar, quantity.Zero},
	DENSITY:                       {quantity.Scalar, quantity.First},
	ENERGY:                        {quantity.Scalar, quantity.First},
	PRESSURE:                      {quantity.Scalar, quantity.Zero},
	SOUND_SPEED:                   {quantity.Scalar, quantity.Zero},
	DEVIATORIC_STRESS:             {quantity.TracelessTensor, quantity.First},
	DAMAGE:                        {quantity.Scalar, quantity.First},
	FLAG:                          {quantity.Index, quantity.Zero},
	MATERIAL_ID:                   {quantity.Index, quantity.Zero},
	NEIGHBOR_CNT:                  {quantity.Index, quantity.Zero},
	VELOCITY_DIVERGENCE:           {quantity.Scalar, quantity.Zero},
	VELOCITY_GRADIENT:             {quantity.SymTensor, quantity.Zero},
	VELOCITY_ROTATION:             {quantity.Vector, quantity.Zero},
	STRAIN_RATE_CORRECTION_TENSOR: {quantity.SymTensor, quantity.Zero},
	AV_ALPHA:                      {quantity.Scalar, quantity.First},
	AV_STRESS:                     {quantity.SymTensor, quantity.Zero},
	XSPH_VELOCITIES:               {quantity.Vector, quantity.Zero},
	SURFACE_NORMAL:                {quantity.Vector, quantity.Zero},
	ENERGY_LAPLACIAN:              {quantity.Scalar, quantity.Zero},
	DELTASPH_DENSITY_GRADIENT:     {quantity.Vector, quantity.Zero},
	STRESS_REDUCING:               {quantity.Scalar, quantity.Zero},
	TIME_STEP:                     {quantity.Scalar, quantity.Zero},
	TIME_STEP_CRITERION:           {quantity.Index, quantity.Zero},
	PHASE_ANGLE:                   {quantity.Scalar, quantity.First},
	ANGULAR_VELOCITY:              {quantity.Scalar, quantity.Zero},
	PERSISTENT_INDEX:              {quantity.Index, quantity.Zero},
	UVW:                           {quantity.Vector, quantity.Zero},
	INITIAL_POSITION:              {quantity.Vector, quantity.Zero},
	GENERALIZED_PRESSURE:          {quantity.Scalar, quantity.Zero},
	GENERALIZED_ENERGY:            {quantity.Scalar, quantity.First},
	INTERPARTICLE_SPACING_KERNEL:  {quantity.Scalar, quantity.Zero},
}
