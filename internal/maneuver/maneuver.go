// Package maneuver implements the optional perturbations layered on
// top of gravity: instantaneous delta-v burns applied directly to the
// velocity state, and a continuous-thrust autopilot exposed as a
// gravity.ExtraAccel hook.
package maneuver

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/orbsim/internal/body"
)

// Burn adds dv (AU/day) to the named body's velocity along its current
// direction of travel. This is a direct state edit outside the
// integration loop, applied once per trigger. Unknown ids and bodies
// at rest are skipped.
func Burn(bodies []body.Body, id string, dv float64) {
	i, ok := body.Find(bodies, id)
	if !ok {
		return
	}
	speed := r3.Norm(bodies[i].Vel)
	if speed == 0 {
		return
	}
	bodies[i].Vel = r3.Add(bodies[i].Vel, r3.Scale(dv/speed, bodies[i].Vel))
}

// Phase is the autopilot flight phase.
type Phase int

const (
	Idle Phase = iota
	Accelerating
	Decelerating
)

func (p Phase) String() string {
	switch p {
	case Accelerating:
		return "accelerating"
	case Decelerating:
		return "decelerating"
	default:
		return "idle"
	}
}

// Autopilot flies one body toward a target with constant-magnitude
// thrust: toward the target while more than half the initial
// separation remains, away from it (braking) afterward. There is no
// automatic disengage; once decelerating it stays decelerating until
// Disengage is called.
type Autopilot struct {
	BodyID   string
	TargetID string
	Thrust   float64 // AU/day^2

	phase       Phase
	initialDist float64
}

// Engage captures the current separation and starts the accelerating
// phase. Unknown body or target ids leave the autopilot idle.
func (a *Autopilot) Engage(bodies []body.Body) {
	i, ok := body.Find(bodies, a.BodyID)
	if !ok {
		return
	}
	j, ok := body.Find(bodies, a.TargetID)
	if !ok {
		return
	}
	a.initialDist = r3.Norm(r3.Sub(bodies[j].Pos, bodies[i].Pos))
	if a.initialDist == 0 {
		return
	}
	a.phase = Accelerating
}

func (a *Autopilot) Disengage() {
	a.phase = Idle
	a.initialDist = 0
}

func (a *Autopilot) Phase() Phase { return a.phase }

// Accelerations is the gravity.ExtraAccel hook: thrust on the flying
// body only, every other index absent. If the flying or target body is
// missing this frame, the hook contributes nothing but the autopilot
// stays engaged.
func (a *Autopilot) Accelerations(bodies []body.Body) map[int]r3.Vec {
	if a.phase == Idle {
		return nil
	}
	i, ok := body.Find(bodies, a.BodyID)
	if !ok {
		return nil
	}
	j, ok := body.Find(bodies, a.TargetID)
	if !ok {
		return nil
	}

	toTarget := r3.Sub(bodies[j].Pos, bodies[i].Pos)
	remaining := r3.Norm(toTarget)
	if remaining == 0 {
		return nil
	}

	if a.phase == Accelerating && remaining < 0.5*a.initialDist {
		a.phase = Decelerating
	}

	dir := r3.Unit(toTarget)
	if a.phase == Decelerating {
		dir = r3.Scale(-1, dir)
	}
	return map[int]r3.Vec{i: r3.Scale(a.Thrust, dir)}
}
