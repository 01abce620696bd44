package quantity

import "math"

// SymTensor3 is a symmetric 3x3 tensor stored by its 6 independent
// components (xx, yy, zz, xy, xz, yz).
type SymTensor3 struct {
	XX, YY, ZZ, XY, XZ, YZ float64
}

func (t SymTensor3) Add(s SymTensor3) SymTensor3 {
	return SymTensor3{t.XX + s.XX, t.YY + s.YY, t.ZZ + s.ZZ, t.XY + s.XY, t.XZ + s.XZ, t.YZ + s.YZ}
}

func (t SymTensor3) Scale(a float64) SymTensor3 {
	return SymTensor3{t.XX * a, t.YY * a, t.ZZ * a, t.XY * a, t.XZ * a, t.YZ * a}
}

func (t SymTensor3) Trace() float64 { return t.XX + t.YY + t.ZZ }

// Deviatoric returns t with its isotropic (trace/3) part removed.
func (t SymTensor3) Deviatoric() SymTensor3 {
	m := t.Trace() / 3
	return SymTensor3{t.XX - m, t.YY - m, t.ZZ - m, t.XY, t.XZ, t.YZ}
}

// DoubleDot is the full contraction t:s = sum_ij t_ij s_ij.
func (t SymTensor3) DoubleDot(s SymTensor3) float64 {
	return t.XX*s.XX + t.YY*s.YY + t.ZZ*s.ZZ + 2*(t.XY*s.XY+t.XZ*s.XZ+t.YZ*s.YZ)
}

// Apply returns t . v (matrix-vector product, spatial part only).
func (t SymTensor3) Apply(v Vec3) Vec3 {
	return Vec3{
		X: t.XX*v.X + t.XY*v.Y + t.XZ*v.Z,
		Y: t.XY*v.X + t.YY*v.Y + t.YZ*v.Z,
		Z: t.XZ*v.X + t.YZ*v.Y + t.ZZ*v.Z,
	}
}

// SymOuter returns the symmetrized outer product (a⊗b + b⊗a)/2.
func SymOuter(a, b Vec3) SymTensor3 {
	return SymTensor3{
		XX: a.X * b.X,
		YY: a.Y * b.Y,
		ZZ: a.Z * b.Z,
		XY: 0.5 * (a.X*b.Y + a.Y*b.X),
		XZ: 0.5 * (a.X*b.Z + a.Z*b.X),
		YZ: 0.5 * (a.Y*b.Z + a.Z*b.Y),
	}
}

// ToMatrix expands t into a dense 3x3 matrix, e.g. for gosl/la.MatInv.
func (t SymTensor3) ToMatrix() [3][3]float64 {
	return [3][3]float64{
		{t.XX, t.XY, t.XZ},
		{t.XY, t.YY, t.YZ},
		{t.XZ, t.YZ, t.ZZ},
	}
}

func SymTensorFromMatrix(m [3][3]float64) SymTensor3 {
	return SymTensor3{XX: m[0][0], YY: m[1][1], ZZ: m[2][2], XY: m[0][1], XZ: m[0][2], YZ: m[1][2]}
}

// Eigenvalues returns the three principal values of a symmetric 3x3 tensor
// using the closed-form trigonometric solution (Kopp 2008), avoiding an
// iterative solver for what is, per particle, a tiny fixed-size problem.
func (t SymTensor3) Eigenvalues() [3]float64 {
	p1 := t.XY*t.XY + t.XZ*t.XZ + t.YZ*t.YZ
	if p1 == 0 {
		// already diagonal
		vals := [3]float64{t.XX, t.YY, t.ZZ}
		if vals[0] < vals[1] {
			vals[0], vals[1] = vals[1], vals[0]
		}
		if vals[1] < vals[2] {
			vals[1], vals[2] = vals[2], vals[1]
		}
		if vals[0] < vals[1] {
			vals[0], vals[1] = vals[1], vals[0]
		}
		return vals
	}
	q := t.Trace() / 3
	b := SymTensor3{t.XX - q, t.YY - q, t.ZZ - q, t.XY, t.XZ, t.YZ}
	p2 := b.XX*b.XX + b.YY*b.YY + b.ZZ*b.ZZ + 2*p1
	p := math.Sqrt(p2 / 6)
	detB := b.XX*(b.YY*b.ZZ-b.YZ*b.YZ) - b.XY*(b.XY*b.ZZ-b.YZ*b.XZ) + b.XZ*(b.XY*b.YZ-b.YY*b.XZ)
	r := detB / (2 * p * p * p)
	if r <= -1 {
		r = -1
	} else if r >= 1 {
		r = 1
	}
	phi := math.Acos(r) / 3
	eig1 := q + 2*p*math.Cos(phi)
	eig3 := q + 2*p*math.Cos(phi+2*math.Pi/3)
	eig2 := 3*q - eig1 - eig3
	return [3]float64{eig1, eig2, eig3}
}

// TracelessTensor3 is a symmetric, trace-free 3x3 tensor (5 independent
// components: xx, yy, xy, xz, yz; zz is recovered as -(xx+yy)).
type TracelessTensor3 struct {
	XX, YY, XY, XZ, YZ float64
}

func (t TracelessTensor3) Full() SymTensor3 {
	return SymTensor3{XX: t.XX, YY: t.YY, ZZ: -(t.XX + t.YY), XY: t.XY, XZ: t.XZ, YZ: t.YZ}
}

func TracelessFromFull(s SymTensor3) TracelessTensor3 {
	d := s.Deviatoric()
	return TracelessTensor3{XX: d.XX, YY: d.YY, XY: d.XY, XZ: d.XZ, YZ: d.YZ}
}

func (t TracelessTensor3) Add(s TracelessTensor3) TracelessTensor3 {
	return TracelessTensor3{t.XX + s.XX, t.YY + s.YY, t.XY + s.XY, t.XZ + s.XZ, t.YZ + s.YZ}
}

func (t TracelessTensor3) Scale(a float64) TracelessTensor3 {
	return TracelessTensor3{t.XX * a, t.YY * a, t.XY * a, t.XZ * a, t.YZ * a}
}
