package metrics

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/orbsim/internal/body"
	"github.com/san-kum/orbsim/internal/gravity"
)

// Metric observes the body set once per frame and reduces it to one
// number at the end of a run.
type Metric interface {
	Name() string
	Observe(bodies []body.Body, t float64)
	Value() float64
	Reset()
}

// EnergyDrift tracks the maximum relative deviation of total
// mechanical energy from its value at the first observation. Leapfrog
// should keep this small over many orbits; RK4 drifts monotonically.
type EnergyDrift struct {
	opt      gravity.Options
	initial  float64
	maxDrift float64
	samples  int
}

func NewEnergyDrift(opt gravity.Options) *EnergyDrift {
	return &EnergyDrift{opt: opt}
}

func (e *EnergyDrift) Name() string { return "energy_drift" }

func (e *EnergyDrift) Observe(bodies []body.Body, t float64) {
	energy := gravity.Energy(bodies, e.opt)
	if e.samples == 0 {
		e.initial = energy
	}
	e.samples++

	if e.initial != 0 {
		drift := math.Abs(energy-e.initial) / math.Abs(e.initial)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 { return e.maxDrift }

func (e *EnergyDrift) Reset() {
	e.initial = 0
	e.maxDrift = 0
	e.samples = 0
}

// MomentumDrift tracks the maximum norm of the difference between the
// system momentum and its value at the first observation.
type MomentumDrift struct {
	initial r3.Vec
	max     float64
	samples int
}

func NewMomentumDrift() *MomentumDrift {
	return &MomentumDrift{}
}

func (m *MomentumDrift) Name() string { return "momentum_drift" }

func (m *MomentumDrift) Observe(bodies []body.Body, t float64) {
	p := gravity.Momentum(bodies)
	if m.samples == 0 {
		m.initial = p
	}
	m.samples++
	m.max = math.Max(m.max, r3.Norm(r3.Sub(p, m.initial)))
}

func (m *MomentumDrift) Value() float64 { return m.max }

func (m *MomentumDrift) Reset() {
	m.initial = r3.Vec{}
	m.max = 0
	m.samples = 0
}
