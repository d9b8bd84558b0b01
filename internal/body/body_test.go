package body

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func TestScenariosHaveUniqueIDs(t *testing.T) {
	for _, name := range ScenarioNames() {
		bodies, err := Scenario(name)
		if err != nil {
			t.Fatalf("scenario %s: %v", name, err)
		}
		seen := make(map[string]bool)
		for _, b := range bodies {
			if seen[b.ID] {
				t.Errorf("scenario %s: duplicate id %q", name, b.ID)
			}
			seen[b.ID] = true
			if b.Mass < 0 {
				t.Errorf("scenario %s: body %s has negative mass", name, b.ID)
			}
		}
	}
}

func TestScenarioUnknown(t *testing.T) {
	if _, err := Scenario("andromeda"); err == nil {
		t.Error("expected error for unknown scenario")
	}
}

func TestSolarSystemShape(t *testing.T) {
	bodies := SolarSystem()
	if len(bodies) != 9 {
		t.Fatalf("expected 9 bodies, got %d", len(bodies))
	}
	if bodies[0].ID != "sun" || bodies[0].Mass != 1.0 {
		t.Errorf("first body should be the sun at 1 Msun, got %+v", bodies[0])
	}
	for _, b := range bodies[1:] {
		if b.Mass <= 0 || b.Mass >= 0.01 {
			t.Errorf("%s: implausible planetary mass %g Msun", b.ID, b.Mass)
		}
		if r3.Norm(b.Pos) == 0 {
			t.Errorf("%s: planet at the origin", b.ID)
		}
	}
}

func TestWithPayloadIsMassless(t *testing.T) {
	bodies := WithPayload(InnerSystem())
	i, ok := Find(bodies, "payload")
	if !ok {
		t.Fatal("payload missing")
	}
	if bodies[i].Mass != 0 {
		t.Errorf("payload mass = %g, want 0", bodies[i].Mass)
	}
}

func TestFind(t *testing.T) {
	bodies := InnerSystem()
	if i, ok := Find(bodies, "mars"); !ok || bodies[i].ID != "mars" {
		t.Errorf("Find(mars) = %d, %v", i, ok)
	}
	if _, ok := Find(bodies, "pluto"); ok {
		t.Error("Find should miss on absent id")
	}
}

func TestCloneAllIsIndependent(t *testing.T) {
	orig := Binary()
	clone := CloneAll(orig)
	clone[0].Pos = r3.Vec{X: 99}
	if orig[0].Pos.X == 99 {
		t.Error("CloneAll must not share backing storage")
	}
}

func TestTotalMass(t *testing.T) {
	if got := TotalMass(Binary()); got != 2.0 {
		t.Errorf("binary total mass = %g, want 2", got)
	}
}
