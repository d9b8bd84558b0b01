package gravity

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/orbsim/internal/body"
)

// G is the gravitational constant in AU^3 Msun^-1 day^-2 (the square of
// the Gaussian gravitational constant k = 0.01720209895).
const G = 0.00029591220828559104

// DefaultSoftening is the squared softening length in AU^2, small
// against any closest approach in the bundled scenarios.
const DefaultSoftening = 1e-8

// ExtraAccel supplies additional accelerations keyed by body index.
// Indices absent from the returned map receive no extra acceleration.
// A nil ExtraAccel means no perturbation at all.
type ExtraAccel func(bodies []body.Body) map[int]r3.Vec

// Options configures one acceleration evaluation. The zero value of
// every field selects a default, so Options{} is a full N-body
// evaluation at unit mass scale with DefaultSoftening.
type Options struct {
	// MassScale multiplies every source mass. The zero value selects 1,
	// not zero gravity: there is no way to switch gravity off here, and
	// the config layer rejects mass_scale <= 0 before it reaches this
	// point. Turning a body into a pure test particle is done by giving
	// it zero Mass instead.
	MassScale float64
	// Softening is added to every squared separation. Zero selects
	// DefaultSoftening.
	Softening float64
	// CentralOnly restricts gravity sources to the body named by
	// CentralID. Used when bootstrapping circular orbits, never for
	// the running simulation.
	CentralOnly bool
	CentralID   string
	// Extra perturbations summed after gravity.
	Extra ExtraAccel
}

func (o Options) massScale() float64 {
	if o.MassScale == 0 {
		return 1
	}
	return o.MassScale
}

func (o Options) eps2() float64 {
	if o.Softening == 0 {
		return DefaultSoftening
	}
	return o.Softening
}

// Accelerations returns one acceleration vector per body, the sum of
// the gravitational pulls of every other body plus any Extra hook.
// Pure: never errors, and softening keeps every result finite even at
// zero separation.
func Accelerations(bodies []body.Body, opt Options) []r3.Vec {
	var acc []r3.Vec
	if opt.CentralOnly {
		acc = centralAccelerations(bodies, opt)
	} else {
		acc = pairwiseAccelerations(bodies, opt)
	}

	if opt.Extra != nil {
		for i, a := range opt.Extra(bodies) {
			if i < 0 || i >= len(acc) {
				continue
			}
			acc[i] = r3.Add(acc[i], a)
		}
	}
	return acc
}

// pairwiseAccelerations is the O(N^2) direct sum. Each unordered pair
// is visited once and the reaction applied with opposite sign.
func pairwiseAccelerations(bodies []body.Body, opt Options) []r3.Vec {
	n := len(bodies)
	acc := make([]r3.Vec, n)
	eps2 := opt.eps2()
	scale := opt.massScale()

	for i := 0; i < n; i++ {
		pi := bodies[i].Pos
		for j := i + 1; j < n; j++ {
			rx := bodies[j].Pos.X - pi.X
			ry := bodies[j].Pos.Y - pi.Y
			rz := bodies[j].Pos.Z - pi.Z
			r2 := rx*rx + ry*ry + rz*rz + eps2

			rInv := 1.0 / math.Sqrt(r2)
			r3Inv := rInv * rInv * rInv

			fij := G * bodies[j].Mass * scale * r3Inv
			acc[i].X += fij * rx
			acc[i].Y += fij * ry
			acc[i].Z += fij * rz

			fji := G * bodies[i].Mass * scale * r3Inv
			acc[j].X -= fji * rx
			acc[j].Y -= fji * ry
			acc[j].Z -= fji * rz
		}
	}
	return acc
}

// centralAccelerations pulls every body toward the designated central
// body only. An unknown CentralID yields all-zero accelerations.
func centralAccelerations(bodies []body.Body, opt Options) []r3.Vec {
	acc := make([]r3.Vec, len(bodies))
	c, ok := body.Find(bodies, opt.CentralID)
	if !ok {
		return acc
	}
	eps2 := opt.eps2()
	mu := G * bodies[c].Mass * opt.massScale()

	for i := range bodies {
		if i == c {
			continue
		}
		r := r3.Sub(bodies[c].Pos, bodies[i].Pos)
		r2 := r3.Norm2(r) + eps2
		rInv := 1.0 / math.Sqrt(r2)
		acc[i] = r3.Scale(mu*rInv*rInv*rInv, r)
	}
	return acc
}

// Energy is the total mechanical energy, kinetic plus softened pairwise
// potential, under the same mass scaling as Accelerations.
func Energy(bodies []body.Body, opt Options) float64 {
	eps2 := opt.eps2()
	scale := opt.massScale()
	ke := 0.0
	pe := 0.0

	for i := range bodies {
		ke += 0.5 * bodies[i].Mass * scale * r3.Norm2(bodies[i].Vel)
		for j := i + 1; j < len(bodies); j++ {
			r := math.Sqrt(r3.Norm2(r3.Sub(bodies[j].Pos, bodies[i].Pos)) + eps2)
			pe -= G * bodies[i].Mass * bodies[j].Mass * scale * scale / r
		}
	}
	return ke + pe
}

// Momentum is the mass-weighted sum of velocities.
func Momentum(bodies []body.Body) r3.Vec {
	var p r3.Vec
	for i := range bodies {
		p = r3.Add(p, r3.Scale(bodies[i].Mass, bodies[i].Vel))
	}
	return p
}

// AngularMomentum is the total angular momentum about the origin.
func AngularMomentum(bodies []body.Body) r3.Vec {
	var l r3.Vec
	for i := range bodies {
		l = r3.Add(l, r3.Scale(bodies[i].Mass, r3.Cross(bodies[i].Pos, bodies[i].Vel)))
	}
	return l
}
