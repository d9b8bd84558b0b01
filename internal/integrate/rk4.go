package integrate

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/orbsim/internal/body"
	"github.com/san-kum/orbsim/internal/gravity"
)

// rk4Scratch holds the stage buffers so one Advance call allocates
// them once instead of every substep.
type rk4Scratch struct {
	stage              []body.Body
	k1x, k2x, k3x, k4x []r3.Vec
	k1v, k2v, k3v, k4v []r3.Vec
}

func newRK4Scratch(n int) *rk4Scratch {
	return &rk4Scratch{
		stage: make([]body.Body, n),
		k1x:   make([]r3.Vec, n),
		k2x:   make([]r3.Vec, n),
		k3x:   make([]r3.Vec, n),
		k4x:   make([]r3.Vec, n),
	}
}

// rk4Step advances the bodies in place by one substep of size h using
// classical fourth-order Runge-Kutta on the coupled system
//
//	dx/dt = vs * v
//	dv/dt = a(x)
//
// vs scales only the position derivative, matching the leapfrog drift
// scaling, so both integrators respond to the velocity-scale knob the
// same way.
func rk4Step(bodies []body.Body, s *rk4Scratch, h, vs float64, opt gravity.Options) {
	n := len(bodies)
	half := 0.5 * h

	s.k1v = gravity.Accelerations(bodies, opt)
	for i := 0; i < n; i++ {
		s.k1x[i] = r3.Scale(vs, bodies[i].Vel)
	}

	copy(s.stage, bodies)
	for i := 0; i < n; i++ {
		s.stage[i].Pos = r3.Add(bodies[i].Pos, r3.Scale(half, s.k1x[i]))
		s.stage[i].Vel = r3.Add(bodies[i].Vel, r3.Scale(half, s.k1v[i]))
	}
	s.k2v = gravity.Accelerations(s.stage, opt)
	for i := 0; i < n; i++ {
		s.k2x[i] = r3.Scale(vs, s.stage[i].Vel)
	}

	for i := 0; i < n; i++ {
		s.stage[i].Pos = r3.Add(bodies[i].Pos, r3.Scale(half, s.k2x[i]))
		s.stage[i].Vel = r3.Add(bodies[i].Vel, r3.Scale(half, s.k2v[i]))
	}
	s.k3v = gravity.Accelerations(s.stage, opt)
	for i := 0; i < n; i++ {
		s.k3x[i] = r3.Scale(vs, s.stage[i].Vel)
	}

	for i := 0; i < n; i++ {
		s.stage[i].Pos = r3.Add(bodies[i].Pos, r3.Scale(h, s.k3x[i]))
		s.stage[i].Vel = r3.Add(bodies[i].Vel, r3.Scale(h, s.k3v[i]))
	}
	s.k4v = gravity.Accelerations(s.stage, opt)
	for i := 0; i < n; i++ {
		s.k4x[i] = r3.Scale(vs, s.stage[i].Vel)
	}

	h6 := h / 6.0
	for i := 0; i < n; i++ {
		dx := r3.Add(r3.Add(s.k1x[i], r3.Scale(2, s.k2x[i])), r3.Add(r3.Scale(2, s.k3x[i]), s.k4x[i]))
		dv := r3.Add(r3.Add(s.k1v[i], r3.Scale(2, s.k2v[i])), r3.Add(r3.Scale(2, s.k3v[i]), s.k4v[i]))
		bodies[i].Pos = r3.Add(bodies[i].Pos, r3.Scale(h6, dx))
		bodies[i].Vel = r3.Add(bodies[i].Vel, r3.Scale(h6, dv))
	}
}
