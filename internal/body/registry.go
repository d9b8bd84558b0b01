package body

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

// Planetary masses in solar masses and mean orbital distances in AU.
// Radii are display sizes, not to scale with the distances.
func SolarSystem() []Body {
	return []Body{
		{ID: "sun", Name: "Sun", Mass: 1.0, Pos: r3.Vec{}, Radius: 0.08, Color: "#FDB813", TrailLen: 0},
		{ID: "mercury", Name: "Mercury", Mass: 1.66e-7, Pos: r3.Vec{X: 0.387}, Radius: 0.012, Color: "#B5B5B5", TrailLen: 120},
		{ID: "venus", Name: "Venus", Mass: 2.45e-6, Pos: r3.Vec{X: 0.723}, Radius: 0.018, Color: "#E8CDA2", TrailLen: 200},
		{ID: "earth", Name: "Earth", Mass: 3.00e-6, Pos: r3.Vec{X: 1.0}, Radius: 0.019, Color: "#2E86AB", TrailLen: 240},
		{ID: "mars", Name: "Mars", Mass: 3.23e-7, Pos: r3.Vec{X: 1.524}, Radius: 0.015, Color: "#C1440E", TrailLen: 320},
		{ID: "jupiter", Name: "Jupiter", Mass: 9.54e-4, Pos: r3.Vec{X: 5.203}, Radius: 0.045, Color: "#C88B3A", TrailLen: 500},
		{ID: "saturn", Name: "Saturn", Mass: 2.86e-4, Pos: r3.Vec{X: 9.537}, Radius: 0.040, Color: "#E4D191", TrailLen: 500},
		{ID: "uranus", Name: "Uranus", Mass: 4.37e-5, Pos: r3.Vec{X: 19.191}, Radius: 0.030, Color: "#AAD9DD", TrailLen: 500},
		{ID: "neptune", Name: "Neptune", Mass: 5.15e-5, Pos: r3.Vec{X: 30.069}, Radius: 0.029, Color: "#4B70DD", TrailLen: 500},
	}
}

// InnerSystem keeps the sun and the four terrestrial planets. Orbital
// periods are short, so it is the default for interactive viewing.
func InnerSystem() []Body {
	return SolarSystem()[:5]
}

// Binary is a two-star system with equal masses on the x axis. Useful
// for integrator comparisons because the analytic orbit is known.
func Binary() []Body {
	return []Body{
		{ID: "alpha", Name: "Alpha", Mass: 1.0, Pos: r3.Vec{X: -0.5}, Radius: 0.06, Color: "#FDB813", TrailLen: 300},
		{ID: "beta", Name: "Beta", Mass: 1.0, Pos: r3.Vec{X: 0.5}, Radius: 0.06, Color: "#F4E8C1", TrailLen: 300},
	}
}

// WithPayload appends a zero-mass test particle near Earth's orbit.
func WithPayload(bodies []Body) []Body {
	out := CloneAll(bodies)
	return append(out, Body{
		ID: "payload", Name: "Payload", Mass: 0,
		Pos: r3.Vec{X: 1.05}, Radius: 0.008, Color: "#DDDDDD", TrailLen: 400,
	})
}

// Scenario builds the named initial body set.
func Scenario(name string) ([]Body, error) {
	switch name {
	case "solar":
		return SolarSystem(), nil
	case "inner":
		return InnerSystem(), nil
	case "binary":
		return Binary(), nil
	case "payload":
		return WithPayload(InnerSystem()), nil
	default:
		return nil, fmt.Errorf("body: unknown scenario %q", name)
	}
}

// ScenarioNames lists the scenarios Scenario accepts.
func ScenarioNames() []string {
	return []string{"solar", "inner", "binary", "payload"}
}
