package body

import "gonum.org/v1/gonum/spatial/r3"

// Body is one gravitating particle. Mass is in solar masses, Pos in AU,
// Vel in AU/day. A Mass of 0 marks a test particle: it feels gravity but
// exerts none. Radius and Color are presentation payload and do not
// participate in integration.
type Body struct {
	ID       string
	Name     string
	Mass     float64
	Pos      r3.Vec
	Vel      r3.Vec
	Radius   float64
	Color    string
	TrailLen int
}

// CloneAll returns an independent copy of the body array. Each frame
// returns a new array; callers must not touch the previous one afterward.
func CloneAll(bodies []Body) []Body {
	out := make([]Body, len(bodies))
	copy(out, bodies)
	return out
}

// Find returns the index of the body with the given id, or false when
// no such body exists. Operations referencing a missing id are skipped
// rather than failed, so the caller checks the second return.
func Find(bodies []Body, id string) (int, bool) {
	for i := range bodies {
		if bodies[i].ID == id {
			return i, true
		}
	}
	return 0, false
}

// TotalMass sums the masses of all bodies.
func TotalMass(bodies []Body) float64 {
	total := 0.0
	for i := range bodies {
		total += bodies[i].Mass
	}
	return total
}
