package settings

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosph/finder"
)

// finderAllocators is the name->constructor map RunSettings.Finder looks
// up, following the same self-registering factory-map idiom as
// kernel.New and timestep.New (package finder itself has no such map,
// since none of its constructors take uniform arguments: KdTree takes
// none, UniformGrid takes a cell size, Periodic wraps another finder).
var finderAllocators = map[string]func() finder.NeighborFinder{
	"bruteforce":   func() finder.NeighborFinder { return finder.NewBruteForce() },
	"kdtree":       func() finder.NeighborFinder { return finder.NewKdTree() },
	"uniform-grid": func() finder.NeighborFinder { return finder.NewUniformGrid(1.0) },
}

// NewFinder returns the finder.NeighborFinder registered under s.Finder.
func (s *RunSettings) NewFinder() (finder.NeighborFinder, error) {
	alloc, ok := finderAllocators[s.Finder]
	if !ok {
		return nil, chk.Err("settings: finder %q is not available", s.Finder)
	}
	return alloc(), nil
}
