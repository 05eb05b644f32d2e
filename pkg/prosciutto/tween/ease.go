package tween

import (
	"math"
	"strings"

	"github.com/charmbracelet/harmonica"

	"github.com/BrandonKowalski/prosciutto/pkg/prosciutto/constants"
)

// Ease maps linear progress in [0,1] to eased progress. Eases must return 0
// for 0 and 1 for 1; values in between may overshoot.
type Ease func(t float64) float64

func Linear(t float64) float64 { return t }

func InQuad(t float64) float64 { return t * t }

func OutQuad(t float64) float64 { return t * (2 - t) }

func InOutQuad(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	return -1 + (4-2*t)*t
}

func OutCubic(t float64) float64 {
	u := t - 1
	return u*u*u + 1
}

// OutBack overshoots slightly before settling, the usual popup "pop".
func OutBack(t float64) float64 {
	const c1 = 1.70158
	const c3 = c1 + 1
	u := t - 1
	return 1 + c3*u*u*u + c1*u*u
}

// Spring returns an ease that follows a damped spring released from 0 towards
// 1 over one second of simulated time at the nominal frame rate. Lower damping
// gives more wobble. The last sample is pinned to 1.
func Spring(angularFrequency, dampingRatio float64) Ease {
	steps := constants.FrameRate
	spring := harmonica.NewSpring(harmonica.FPS(steps), angularFrequency, dampingRatio)

	samples := make([]float64, steps+1)
	pos, vel := 0.0, 0.0
	for i := 1; i <= steps; i++ {
		pos, vel = spring.Update(pos, vel, 1)
		samples[i] = pos
	}
	samples[steps] = 1

	return func(t float64) float64 {
		if t <= 0 {
			return 0
		}
		if t >= 1 {
			return 1
		}
		x := t * float64(steps)
		i := int(math.Floor(x))
		frac := x - float64(i)
		return samples[i] + (samples[i+1]-samples[i])*frac
	}
}

// ByName resolves an ease from configuration. Unknown names report false.
func ByName(name string) (Ease, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "linear":
		return Linear, true
	case "in-quad":
		return InQuad, true
	case "out-quad":
		return OutQuad, true
	case "in-out-quad":
		return InOutQuad, true
	case "out-cubic":
		return OutCubic, true
	case "out-back":
		return OutBack, true
	case "spring":
		return Spring(6, 0.5), true
	}
	return nil, false
}
