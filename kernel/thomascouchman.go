package kernel

// thomasCouchmanShape (Thomas & Couchman 1992) has the same value profile
// as the M4 cubic spline, but flattens the gradient term below q=2/3 to
// its value at q=2/3, preventing the pairing/clumping instability that
// the cubic spline's vanishing gradient at q=0 would otherwise allow.
type thomasCouchmanShape struct {
	cubic cubicSplineShape
}

func (thomasCouchmanShape) Support() float64 { return 2 }

func (s thomasCouchmanShape) F(q float64) float64 { return s.cubic.F(q) }

func (s thomasCouchmanShape) DFq(q float64) float64 {
	const clamp = 2.0 / 3.0
	if q < clamp {
		q = clamp
	}
	return s.cubic.DFq(q)
}

// ThomasCouchman is the anti-clumping variant of the cubic spline.
type ThomasCouchman struct{ base }

func NewThomasCouchman(dim int) *ThomasCouchman {
	return &ThomasCouchman{newBase(dim, thomasCouchmanShape{})}
}
