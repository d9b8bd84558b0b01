package gravity

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/orbsim/internal/body"
)

func twoBody() []body.Body {
	return []body.Body{
		{ID: "sun", Mass: 1.0},
		{ID: "earth", Mass: 3e-6, Pos: r3.Vec{X: 1}},
	}
}

func TestAccelerationsPointTowardSource(t *testing.T) {
	acc := Accelerations(twoBody(), Options{})

	// Earth sits at +x of the sun, so it must be pulled in -x.
	if acc[1].X >= 0 {
		t.Errorf("expected earth pulled toward sun, got ax=%g", acc[1].X)
	}
	want := G * math.Pow(1+DefaultSoftening, -1.5)
	if math.Abs(-acc[1].X-want) > 1e-12 {
		t.Errorf("expected |a| = %g, got %g", want, -acc[1].X)
	}
}

func TestAccelerationsNewtonThirdLaw(t *testing.T) {
	bodies := []body.Body{
		{ID: "a", Mass: 2.0, Pos: r3.Vec{X: -0.3, Y: 0.1}},
		{ID: "b", Mass: 0.5, Pos: r3.Vec{X: 0.4, Z: -0.2}},
		{ID: "c", Mass: 1.5, Pos: r3.Vec{Y: 0.7, Z: 0.5}},
	}
	acc := Accelerations(bodies, Options{})

	// Internal forces cancel: sum of m_i * a_i must vanish.
	var f r3.Vec
	for i := range bodies {
		f = r3.Add(f, r3.Scale(bodies[i].Mass, acc[i]))
	}
	if r3.Norm(f) > 1e-15 {
		t.Errorf("net internal force should vanish, got %v", f)
	}
}

func TestAccelerationsZeroMassExertsNothing(t *testing.T) {
	without := Accelerations(twoBody(), Options{})

	with := append(twoBody(), body.Body{ID: "payload", Mass: 0, Pos: r3.Vec{X: 0.5, Y: 0.1}})
	acc := Accelerations(with, Options{})

	for i := range without {
		if r3.Norm(r3.Sub(acc[i], without[i])) != 0 {
			t.Errorf("body %d acceleration changed by zero-mass payload: %v vs %v", i, acc[i], without[i])
		}
	}
	if r3.Norm(acc[2]) == 0 {
		t.Error("payload should still feel gravity")
	}
}

func TestAccelerationsCoincidentBodiesStayFinite(t *testing.T) {
	bodies := []body.Body{
		{ID: "a", Mass: 1.0, Pos: r3.Vec{X: 0.5}},
		{ID: "b", Mass: 1.0, Pos: r3.Vec{X: 0.5}},
	}
	acc := Accelerations(bodies, Options{})
	for i, a := range acc {
		if math.IsNaN(r3.Norm(a)) || math.IsInf(r3.Norm(a), 0) {
			t.Errorf("body %d acceleration not finite: %v", i, a)
		}
	}
}

func TestAccelerationsMassScale(t *testing.T) {
	base := Accelerations(twoBody(), Options{})
	doubled := Accelerations(twoBody(), Options{MassScale: 2})

	if math.Abs(doubled[1].X-2*base[1].X) > 1e-18 {
		t.Errorf("mass scale 2 should double pull: %g vs %g", doubled[1].X, base[1].X)
	}
}

func TestAccelerationsCentralOnly(t *testing.T) {
	bodies := []body.Body{
		{ID: "sun", Mass: 1.0},
		{ID: "earth", Mass: 3e-6, Pos: r3.Vec{X: 1}},
		{ID: "jupiter", Mass: 9.5e-4, Pos: r3.Vec{X: 5.2}},
	}
	acc := Accelerations(bodies, Options{CentralOnly: true, CentralID: "sun"})

	// Earth must feel the sun only: pure -x pull, no jupiter term.
	if acc[1].X >= 0 || acc[1].Y != 0 || acc[1].Z != 0 {
		t.Errorf("central-only acceleration off axis: %v", acc[1])
	}
	full := Accelerations(bodies, Options{})
	if full[1].X == acc[1].X {
		t.Error("full evaluation should differ from central-only with jupiter present")
	}

	// Unknown central id yields zero accelerations, not an error.
	acc = Accelerations(bodies, Options{CentralOnly: true, CentralID: "nope"})
	for i, a := range acc {
		if r3.Norm(a) != 0 {
			t.Errorf("body %d should have zero acceleration, got %v", i, a)
		}
	}
}

func TestAccelerationsExtraHook(t *testing.T) {
	extra := func(bodies []body.Body) map[int]r3.Vec {
		return map[int]r3.Vec{1: {Z: 1e-5}, 99: {X: 1}}
	}
	base := Accelerations(twoBody(), Options{})
	acc := Accelerations(twoBody(), Options{Extra: extra})

	if math.Abs(acc[1].Z-base[1].Z-1e-5) > 1e-18 {
		t.Errorf("extra acceleration not applied: %g", acc[1].Z)
	}
	if acc[0] != base[0] {
		t.Errorf("index without extra entry changed: %v vs %v", acc[0], base[0])
	}
}

func TestEnergyAndMomentum(t *testing.T) {
	bodies := twoBody()
	bodies[1].Vel = r3.Vec{Y: math.Sqrt(G)}

	e := Energy(bodies, Options{})
	// Bound circular orbit: kinetic is half the potential magnitude.
	if e >= 0 {
		t.Errorf("bound orbit should have negative total energy, got %g", e)
	}

	p := Momentum(bodies)
	want := 3e-6 * math.Sqrt(G)
	if math.Abs(p.Y-want) > 1e-18 {
		t.Errorf("momentum = %g, want %g", p.Y, want)
	}

	l := AngularMomentum(bodies)
	if l.Z <= 0 {
		t.Errorf("prograde orbit should have +z angular momentum, got %g", l.Z)
	}
}
