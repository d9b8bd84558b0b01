package maneuver

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/orbsim/internal/body"
)

func TestBurnAddsDeltaVAlongVelocity(t *testing.T) {
	bodies := []body.Body{
		{ID: "payload", Mass: 0, Vel: r3.Vec{X: 0.003, Y: 0.004}},
	}
	Burn(bodies, "payload", 0.005)

	// |v| was 0.005; adding 0.005 along the same direction doubles it.
	if got := r3.Norm(bodies[0].Vel); math.Abs(got-0.01) > 1e-15 {
		t.Errorf("speed after burn = %g, want 0.01", got)
	}
	dir := r3.Unit(bodies[0].Vel)
	if math.Abs(dir.X-0.6) > 1e-12 || math.Abs(dir.Y-0.8) > 1e-12 {
		t.Errorf("burn changed the direction of travel: %v", dir)
	}
}

func TestBurnNoops(t *testing.T) {
	bodies := []body.Body{
		{ID: "payload", Vel: r3.Vec{}},
	}
	Burn(bodies, "payload", 0.01)
	if bodies[0].Vel != (r3.Vec{}) {
		t.Errorf("burn on a body at rest must be skipped, got %v", bodies[0].Vel)
	}

	Burn(bodies, "missing", 0.01)
	if bodies[0].Vel != (r3.Vec{}) {
		t.Error("burn on an unknown id must be skipped")
	}
}

func apBodies(payloadX float64) []body.Body {
	return []body.Body{
		{ID: "payload", Mass: 0, Pos: r3.Vec{X: payloadX}},
		{ID: "mars", Mass: 3e-7, Pos: r3.Vec{X: 2}},
	}
}

func TestAutopilotPhases(t *testing.T) {
	ap := &Autopilot{BodyID: "payload", TargetID: "mars", Thrust: 1e-6}

	if ap.Phase() != Idle {
		t.Fatalf("fresh autopilot should be idle, got %v", ap.Phase())
	}
	if ap.Accelerations(apBodies(0)) != nil {
		t.Error("idle autopilot must contribute nothing")
	}

	ap.Engage(apBodies(0)) // initial separation 2
	if ap.Phase() != Accelerating {
		t.Fatalf("expected accelerating after engage, got %v", ap.Phase())
	}

	// More than half the separation remains: thrust toward the target.
	acc := ap.Accelerations(apBodies(0.5))
	if a, ok := acc[0]; !ok || a.X <= 0 {
		t.Errorf("accelerating phase should thrust toward target, got %v", acc)
	}
	if _, ok := acc[1]; ok {
		t.Error("target body must receive no thrust")
	}

	// Past the halfway mark: flip to braking and stay there.
	acc = ap.Accelerations(apBodies(1.5))
	if ap.Phase() != Decelerating {
		t.Fatalf("expected decelerating past halfway, got %v", ap.Phase())
	}
	if a := acc[0]; a.X >= 0 {
		t.Errorf("decelerating phase should thrust away from target, got %v", a)
	}

	// No automatic disengage, even back outside the halfway radius.
	ap.Accelerations(apBodies(0.1))
	if ap.Phase() != Decelerating {
		t.Errorf("decelerating is terminal, got %v", ap.Phase())
	}

	ap.Disengage()
	if ap.Phase() != Idle {
		t.Errorf("disengage should return to idle, got %v", ap.Phase())
	}
}

func TestAutopilotMissingBodiesAreSkipped(t *testing.T) {
	ap := &Autopilot{BodyID: "payload", TargetID: "mars", Thrust: 1e-6}
	ap.Engage(apBodies(0))

	// Target absent this frame: no thrust, but still engaged.
	acc := ap.Accelerations([]body.Body{{ID: "payload", Pos: r3.Vec{X: 0.5}}})
	if acc != nil {
		t.Errorf("missing target must contribute nothing, got %v", acc)
	}
	if ap.Phase() != Accelerating {
		t.Errorf("missing target must not change phase, got %v", ap.Phase())
	}
}

func TestAutopilotEngageUnknownIDStaysIdle(t *testing.T) {
	ap := &Autopilot{BodyID: "payload", TargetID: "nowhere", Thrust: 1e-6}
	ap.Engage(apBodies(0))
	if ap.Phase() != Idle {
		t.Errorf("engage with unknown target must stay idle, got %v", ap.Phase())
	}
}

func TestAutopilotThrustMagnitude(t *testing.T) {
	ap := &Autopilot{BodyID: "payload", TargetID: "mars", Thrust: 2.5e-6}
	ap.Engage(apBodies(0))

	acc := ap.Accelerations(apBodies(0))
	if got := r3.Norm(acc[0]); math.Abs(got-2.5e-6) > 1e-20 {
		t.Errorf("thrust magnitude = %g, want 2.5e-6", got)
	}
}
