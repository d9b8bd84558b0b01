// Package engine owns the per-frame simulation loop: it holds the
// authoritative body array, applies queued maneuvers, advances the
// integrator, and keeps the trail buffers current. Execution is
// single-threaded and frame-driven; an Engine must not be shared
// across goroutines.
package engine

import (
	"context"

	"github.com/san-kum/orbsim/internal/body"
	"github.com/san-kum/orbsim/internal/gravity"
	"github.com/san-kum/orbsim/internal/integrate"
	"github.com/san-kum/orbsim/internal/maneuver"
	"github.com/san-kum/orbsim/internal/metrics"
	"github.com/san-kum/orbsim/internal/seed"
	"github.com/san-kum/orbsim/internal/trail"
)

// FrameConfig is the immutable per-frame parameter bundle. The caller
// passes it into every Step; the engine never reads ambient state.
type FrameConfig struct {
	Running   bool
	Method    integrate.Method
	DT        float64
	TimeScale float64
	MassScale float64
	VelScale  float64
	HMax      float64
	Softening float64
}

type queuedBurn struct {
	id string
	dv float64
}

// Engine holds one simulation run.
type Engine struct {
	scenario   string
	central    string
	retrograde bool

	bodies    []body.Body
	trails    *trail.Set
	autopilot *maneuver.Autopilot
	burns     []queuedBurn
	trailLen  int
	t         float64
}

// New builds the named scenario, seeds circular velocities about
// centralID, zeroes the system momentum, and allocates trail buffers.
func New(scenario, centralID string, retrograde bool) (*Engine, error) {
	e := &Engine{
		scenario:   scenario,
		central:    centralID,
		retrograde: retrograde,
		trails:     trail.NewSet(),
	}
	if err := e.Reset(); err != nil {
		return nil, err
	}
	return e, nil
}

// Reset rebuilds the body set from the scenario registry and discards
// all trail history. The autopilot is disengaged but keeps its tuning.
func (e *Engine) Reset() error {
	bodies, err := body.Scenario(e.scenario)
	if err != nil {
		return err
	}
	seed.Circular(bodies, e.central, e.retrograde)
	seed.ZeroMomentum(bodies)

	e.bodies = bodies
	e.trails.Reset(bodies)
	e.applyTrailOverride()
	e.burns = e.burns[:0]
	e.t = 0
	if e.autopilot != nil {
		e.autopilot.Disengage()
	}
	return nil
}

// Bodies returns the current authoritative body array. Callers treat
// it as read-only; the next Step replaces it wholesale.
func (e *Engine) Bodies() []body.Body { return e.bodies }

func (e *Engine) Trails() *trail.Set { return e.trails }

// Time is the accumulated simulated time in days.
func (e *Engine) Time() float64 { return e.t }

// QueueBurn schedules an instantaneous delta-v burn (AU/day) on the
// named body, applied at the start of the next running frame.
func (e *Engine) QueueBurn(id string, dv float64) {
	e.burns = append(e.burns, queuedBurn{id: id, dv: dv})
}

// SetAutopilot installs (or, with nil, removes) the continuous-thrust
// autopilot. When engage is set it locks onto its target immediately.
func (e *Engine) SetAutopilot(ap *maneuver.Autopilot, engage bool) {
	e.autopilot = ap
	if ap != nil && engage {
		ap.Engage(e.bodies)
	}
}

func (e *Engine) Autopilot() *maneuver.Autopilot { return e.autopilot }

// OverrideTrailLens replaces every body's trail capacity with k,
// discarding the history of any trail whose capacity changes. The
// override sticks across Reset. k <= 0 clears the override; scenario
// defaults return on the next Reset.
func (e *Engine) OverrideTrailLens(k int) {
	e.trailLen = k
	e.applyTrailOverride()
}

func (e *Engine) applyTrailOverride() {
	if e.trailLen <= 0 {
		return
	}
	for i := range e.bodies {
		e.bodies[i].TrailLen = e.trailLen
		e.trails.Resize(e.bodies[i].ID, e.trailLen, e.bodies[i].Pos)
	}
}

// SetTrailLen reconfigures one body's trail capacity at runtime,
// discarding its history.
func (e *Engine) SetTrailLen(id string, k int) {
	i, ok := body.Find(e.bodies, id)
	if !ok {
		return
	}
	e.bodies[i].TrailLen = k
	e.trails.Resize(id, k, e.bodies[i].Pos)
}

func (e *Engine) extra() gravity.ExtraAccel {
	if e.autopilot == nil {
		return nil
	}
	return e.autopilot.Accelerations
}

// Step advances the simulation by one frame and returns the new body
// array. With Running unset, or a frame span of zero, the current
// array is returned unchanged. Queued burns are applied before the
// integrator runs, then the trail buffers record the new positions.
func (e *Engine) Step(cfg FrameConfig) []body.Body {
	if !cfg.Running {
		return e.bodies
	}

	work := body.CloneAll(e.bodies)
	for _, b := range e.burns {
		maneuver.Burn(work, b.id, b.dv)
	}
	e.burns = e.burns[:0]

	icfg := integrate.Config{
		Method:    cfg.Method,
		DT:        cfg.DT,
		TimeScale: cfg.TimeScale,
		MassScale: cfg.MassScale,
		VelScale:  cfg.VelScale,
		HMax:      cfg.HMax,
		Softening: cfg.Softening,
		Extra:     e.extra(),
	}

	e.bodies = integrate.Advance(work, icfg)
	e.t += icfg.Span()
	e.trails.Record(e.bodies)
	return e.bodies
}

// Result collects a headless run for storage and plotting.
type Result struct {
	Times   []float64
	Frames  [][]body.Body
	Metrics map[string]float64
	Steps   int
}

// Run executes the given number of frames synchronously, observing
// metrics once per frame and snapshotting the body array. It checks
// ctx between frames only; a frame in progress always completes.
func (e *Engine) Run(ctx context.Context, frames int, cfg FrameConfig, ms ...metrics.Metric) (*Result, error) {
	result := &Result{
		Times:   make([]float64, 0, frames+1),
		Frames:  make([][]body.Body, 0, frames+1),
		Metrics: make(map[string]float64),
	}
	for _, m := range ms {
		m.Reset()
	}

	snapshot := func() {
		result.Times = append(result.Times, e.t)
		result.Frames = append(result.Frames, body.CloneAll(e.bodies))
		for _, m := range ms {
			m.Observe(e.bodies, e.t)
		}
	}
	snapshot()

	for i := 0; i < frames; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}
		e.Step(cfg)
		result.Steps++
		snapshot()
	}

	for _, m := range ms {
		result.Metrics[m.Name()] = m.Value()
	}
	return result, nil
}
