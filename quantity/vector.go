package quantity

import "math"

// Vec3 is a 3-component vector with a 4th slot H, meaningful only when the
// vector belongs to the POSITION quantity (smoothing length) or VELOCITY
// quantity (dH/dt); for every other vector quantity the 4th slot is unused
// and kept at zero.
type Vec3 struct {
	X, Y, Z, H float64
}

func (v Vec3) Add(w Vec3) Vec3 { return Vec3{v.X + w.X, v.Y + w.Y, v.Z + w.Z, v.H + w.H} }
func (v Vec3) Sub(w Vec3) Vec3 { return Vec3{v.X - w.X, v.Y - w.Y, v.Z - w.Z, v.H - w.H} }
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s, v.H * s}
}

// Dot is the dot product of the spatial (x,y,z) part only; H never
// participates in geometric algebra.
func (v Vec3) Dot(w Vec3) float64 { return v.X*w.X + v.Y*w.Y + v.Z*w.Z }

func (v Vec3) Cross(w Vec3) Vec3 {
	return Vec3{
		X: v.Y*w.Z - v.Z*w.Y,
		Y: v.Z*w.X - v.X*w.Z,
		Z: v.X*w.Y - v.Y*w.X,
	}
}

func (v Vec3) LengthSqr() float64 { return v.X*v.X + v.Y*v.Y + v.Z*v.Z }
func (v Vec3) Length() float64    { return math.Sqrt(v.LengthSqr()) }

// Normalized returns the unit vector in the direction of v, or the zero
// vector if v is (numerically) zero.
func (v Vec3) Normalized() Vec3 {
	l := v.Length()
	if l < 1e-300 {
		return Vec3{}
	}
	return v.Scale(1 / l)
}

func (v Vec3) components() [4]float64 { return [4]float64{v.X, v.Y, v.Z, v.H} }

func vec3From(c [4]float64) Vec3 { return Vec3{c[0], c[1], c[2], c[3]} }
