package finder

import (
	"math"

	"github.com/cpmech/gosph/quantity"
	"github.com/cpmech/gosph/scheduler"
)

type cellCoord [3]int

// UniformGrid buckets points into fixed-size cells (spec.md §4.4's
// "uniform grid" implementation); CellSize should be set by the caller to
// kernel support × max H so that every true interaction radius fits
// within one ring of neighboring cells (spec.md §4.4b).
type UniformGrid struct {
	CellSize float64

	points []quantity.Vec3
	rank   []int
	cells  map[cellCoord][]int
}

func NewUniformGrid(cellSize float64) *UniformGrid {
	return &UniformGrid{CellSize: cellSize}
}

func (f *UniformGrid) cellOf(p quantity.Vec3) cellCoord {
	c := f.CellSize
	return cellCoord{
		int(math.Floor(p.X / c)),
		int(math.Floor(p.Y / c)),
		int(math.Floor(p.Z / c)),
	}
}

func (f *UniformGrid) Build(sched scheduler.Scheduler, points []quantity.Vec3, flags BuildFlags) error {
	f.points = points
	f.cells = make(map[cellCoord][]int, len(points))
	for i, p := range points {
		c := f.cellOf(p)
		f.cells[c] = append(f.cells[c], i)
	}
	if flags == MakeRank {
		f.rank = rankOf(points)
	} else {
		f.rank = nil
	}
	return nil
}

// ringRadius returns how many cell rings around the query cell must be
// visited to guarantee covering radius.
func (f *UniformGrid) ringRadius(radius float64) int {
	return int(math.Ceil(radius/f.CellSize)) + 1
}

func (f *UniformGrid) visit(p quantity.Vec3, radius float64, accept func(j int, d2 float64) bool) {
	r2 := radius * radius
	ring := f.ringRadius(radius)
	c := f.cellOf(p)
	for dx := -ring; dx <= ring; dx++ {
		for dy := -ring; dy <= ring; dy++ {
			for dz := -ring; dz <= ring; dz++ {
				cell := cellCoord{c[0] + dx, c[1] + dy, c[2] + dz}
				for _, j := range f.cells[cell] {
					d2 := p.Sub(f.points[j]).LengthSqr()
					if d2 < r2 {
						if !accept(j, d2) {
							return
						}
					}
				}
			}
		}
	}
}

func (f *UniformGrid) FindAll(i int, radius float64, out []Hit) []Hit {
	return f.FindAllPoint(f.points[i], radius, out)
}

func (f *UniformGrid) FindAllPoint(p quantity.Vec3, radius float64, out []Hit) []Hit {
	out = out[:0]
	f.visit(p, radius, func(j int, d2 float64) bool {
		out = append(out, Hit{Index: j, DistSqr: d2})
		return true
	})
	return out
}

func (f *UniformGrid) FindLowerRank(i int, radius float64, out []Hit) []Hit {
	out = out[:0]
	ri := f.rank[i]
	f.visit(f.points[i], radius, func(j int, d2 float64) bool {
		if f.rank[j] < ri {
			out = append(out, Hit{Index: j, DistSqr: d2})
		}
		return true
	})
	return out
}
