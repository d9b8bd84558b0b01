// Package seed derives initial conditions for a body set: circular
// orbital velocities about a central body, and removal of the net
// system momentum so the barycenter stays put under long integration.
package seed

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/orbsim/internal/body"
	"github.com/san-kum/orbsim/internal/gravity"
)

// eclipticNormal is the reference plane normal for tangent construction.
var eclipticNormal = r3.Vec{Z: 1}

// Circular assigns every non-central body the velocity of a circular
// orbit about the body named by centralID: speed sqrt(G*M/r), direction
// tangential within the ecliptic plane, prograde unless retrograde is
// set, added on top of the central body's own velocity. An unknown
// centralID leaves all bodies untouched.
func Circular(bodies []body.Body, centralID string, retrograde bool) {
	c, ok := body.Find(bodies, centralID)
	if !ok {
		return
	}
	mu := gravity.G * bodies[c].Mass

	for i := range bodies {
		if i == c {
			continue
		}
		rVec := r3.Sub(bodies[i].Pos, bodies[c].Pos)
		r := r3.Norm(rVec)
		if r == 0 {
			continue
		}

		tangent := r3.Cross(eclipticNormal, rVec)
		if r3.Norm(tangent) < 1e-12*r {
			// Radius vector parallel to the plane normal: any
			// in-plane direction is tangential.
			tangent = r3.Cross(r3.Vec{X: 1}, rVec)
		}
		tangent = r3.Unit(tangent)
		if retrograde {
			tangent = r3.Scale(-1, tangent)
		}

		speed := math.Sqrt(mu / r)
		bodies[i].Vel = r3.Add(bodies[c].Vel, r3.Scale(speed, tangent))
	}
}

// ZeroMomentum subtracts the mass-weighted mean velocity from every
// body, leaving the system with zero net momentum. A system of total
// mass zero is left untouched.
func ZeroMomentum(bodies []body.Body) {
	total := body.TotalMass(bodies)
	if total == 0 {
		return
	}
	drift := r3.Scale(1/total, gravity.Momentum(bodies))
	for i := range bodies {
		bodies[i].Vel = r3.Sub(bodies[i].Vel, drift)
	}
}
