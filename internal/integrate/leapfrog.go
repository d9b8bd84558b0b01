package integrate

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/orbsim/internal/body"
	"github.com/san-kum/orbsim/internal/gravity"
)

// leapfrogStep advances the bodies in place by one substep of size h
// using kick-drift-kick velocity Verlet. The scheme is symmetric and
// time-reversible, which bounds long-term energy drift for the
// conservative gravity force.
//
// The drift is scaled by vs (the velocity-scale knob) while the kicks
// are not: scaling the velocity state itself would pump energy in or
// out of the system every step.
func leapfrogStep(bodies []body.Body, h, vs float64, opt gravity.Options) {
	half := 0.5 * h
	drift := h * vs

	acc := gravity.Accelerations(bodies, opt)
	for i := range bodies {
		bodies[i].Vel = r3.Add(bodies[i].Vel, r3.Scale(half, acc[i]))
	}
	for i := range bodies {
		bodies[i].Pos = r3.Add(bodies[i].Pos, r3.Scale(drift, bodies[i].Vel))
	}

	acc = gravity.Accelerations(bodies, opt)
	for i := range bodies {
		bodies[i].Vel = r3.Add(bodies[i].Vel, r3.Scale(half, acc[i]))
	}
}
