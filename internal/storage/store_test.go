package storage

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/orbsim/internal/body"
	"github.com/san-kum/orbsim/internal/engine"
)

func sampleResult() *engine.Result {
	frame := func(x float64) []body.Body {
		return []body.Body{
			{ID: "sun", Mass: 1},
			{ID: "earth", Mass: 3e-6, Pos: r3.Vec{X: x, Y: 0.5}},
		}
	}
	return &engine.Result{
		Times:   []float64{0, 0.1, 0.2},
		Frames:  [][]body.Body{frame(1.0), frame(1.1), frame(1.2)},
		Metrics: map[string]float64{"energy_drift": 1e-9},
		Steps:   2,
	}
}

func TestSaveListLoad(t *testing.T) {
	store := New(t.TempDir())
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}

	runID, err := store.Save("inner", "leapfrog", 0.1, 1.0, 0.2, sampleResult())
	if err != nil {
		t.Fatal(err)
	}

	runs, err := store.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 || runs[0].ID != runID {
		t.Fatalf("expected one run %s, got %+v", runID, runs)
	}

	meta, err := store.Load(runID)
	if err != nil {
		t.Fatal(err)
	}
	if meta.Scenario != "inner" || meta.Integrator != "leapfrog" {
		t.Errorf("metadata mismatch: %+v", meta)
	}
	if len(meta.Bodies) != 2 || meta.Bodies[1] != "earth" {
		t.Errorf("body ids not persisted: %v", meta.Bodies)
	}
	if meta.Metrics["energy_drift"] != 1e-9 {
		t.Errorf("metrics not persisted: %v", meta.Metrics)
	}
}

func TestLoadStates(t *testing.T) {
	store := New(t.TempDir())
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}
	runID, err := store.Save("inner", "rk4", 0.1, 1.0, 0.2, sampleResult())
	if err != nil {
		t.Fatal(err)
	}

	states, times, err := store.LoadStates(runID)
	if err != nil {
		t.Fatal(err)
	}
	if len(states) != 3 || len(times) != 3 {
		t.Fatalf("expected 3 rows, got %d states / %d times", len(states), len(times))
	}
	if times[1] != 0.1 {
		t.Errorf("times[1] = %g, want 0.1", times[1])
	}
	// Columns: sun x,y,z then earth x,y,z.
	if len(states[0]) != 6 {
		t.Fatalf("expected 6 position columns, got %d", len(states[0]))
	}
	if states[2][3] != 1.2 || states[2][4] != 0.5 {
		t.Errorf("earth position row wrong: %v", states[2])
	}
}

func TestSaveEmptyResult(t *testing.T) {
	store := New(t.TempDir())
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Save("inner", "leapfrog", 0.1, 1.0, 0, &engine.Result{}); err == nil {
		t.Error("expected error for empty result")
	}
}

func TestListMissingDir(t *testing.T) {
	store := New(t.TempDir() + "/nope")
	runs, err := store.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}
}
