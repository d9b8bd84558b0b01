package integrate

import (
	"fmt"
	"math"

	"github.com/san-kum/orbsim/internal/body"
	"github.com/san-kum/orbsim/internal/gravity"
)

// Method selects the time-stepping scheme.
type Method int

const (
	Leapfrog Method = iota
	RK4
)

func (m Method) String() string {
	switch m {
	case RK4:
		return "rk4"
	default:
		return "leapfrog"
	}
}

func ParseMethod(s string) (Method, error) {
	switch s {
	case "leapfrog", "":
		return Leapfrog, nil
	case "rk4":
		return RK4, nil
	default:
		return Leapfrog, fmt.Errorf("integrate: unknown method %q", s)
	}
}

const (
	// DefaultHMax bounds a single substep so the innermost orbit of
	// the bundled scenarios stays stable at any requested time scale.
	DefaultHMax = 0.05

	// MaxDT and MaxTimeScale clamp caller requests so the substep
	// count, and with it the per-frame force-evaluation work, stays
	// bounded.
	MaxDT        = 0.25
	MaxTimeScale = 100.0
)

// Config is the per-frame advance configuration. The zero value of
// VelScale, MassScale, HMax and Softening selects the defaults; DT and
// TimeScale of zero (or below) produce no motion.
type Config struct {
	Method    Method
	DT        float64 // simulated days per frame before scaling
	TimeScale float64 // playback multiplier on DT
	MassScale float64 // multiplies every gravitational source mass
	VelScale  float64 // scales the position drift only, never velocity
	HMax      float64 // substep ceiling in days
	Softening float64 // squared softening length in AU^2
	Extra     gravity.ExtraAccel
}

func (c Config) velScale() float64 {
	if c.VelScale == 0 {
		return 1
	}
	return c.VelScale
}

func (c Config) hMax() float64 {
	if c.HMax <= 0 {
		return DefaultHMax
	}
	return c.HMax
}

// Span is the simulated time H covered by one frame, after clamping.
func (c Config) Span() float64 {
	dt := math.Min(c.DT, MaxDT)
	ts := math.Min(c.TimeScale, MaxTimeScale)
	if dt <= 0 || ts <= 0 {
		return 0
	}
	return dt * ts
}

// Substeps is the number of internal steps one frame will take.
func (c Config) Substeps() int {
	h := c.Span()
	if h <= 0 {
		return 0
	}
	return int(math.Ceil(h / c.hMax()))
}

// Advance moves every body forward by one frame's worth of simulated
// time and returns a new body array; the input is never modified. The
// frame span is subdivided into ceil(H/hMax) equal substeps regardless
// of how large a span the caller requests. H <= 0 returns an unchanged
// copy.
func Advance(bodies []body.Body, cfg Config) []body.Body {
	out := body.CloneAll(bodies)

	h := cfg.Span()
	if h <= 0 {
		return out
	}

	n := cfg.Substeps()
	step := h / float64(n)
	opt := gravity.Options{
		MassScale: cfg.MassScale,
		Softening: cfg.Softening,
		Extra:     cfg.Extra,
	}

	switch cfg.Method {
	case RK4:
		s := newRK4Scratch(len(out))
		for i := 0; i < n; i++ {
			rk4Step(out, s, step, cfg.velScale(), opt)
		}
	default:
		for i := 0; i < n; i++ {
			leapfrogStep(out, step, cfg.velScale(), opt)
		}
	}
	return out
}
