package main

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
)

// Signal produces one CSV column.
type Signal interface {
	Name() string
	// Read returns the value of the signal at t seconds.
	Read(t float64) float64
}

type wave struct {
	name   string
	period float64
	fn     func(phase float64) float64
}

func (w wave) Name() string { return w.name }

func (w wave) Read(t float64) float64 {
	return w.fn(2 * math.Pi * t / w.period)
}

func square(phase float64) float64 {
	if math.Sin(phase) >= 0 {
		return 1
	}
	return -1
}

// walk is a random walk that steps once per read.
type walk struct {
	rng   *rand.Rand
	value float64
	step  float64
}

func (w *walk) Name() string { return "walk" }

func (w *walk) Read(float64) float64 {
	w.value += (w.rng.Float64()*2 - 1) * w.step
	return w.value
}

// parseSignals builds the signals named in a comma-separated list.
func parseSignals(list string, period float64, seed int64) ([]Signal, error) {
	var out []Signal
	for _, name := range strings.Split(list, ",") {
		name = strings.TrimSpace(name)
		switch name {
		case "":
			continue
		case "sine":
			out = append(out, wave{name: name, period: period, fn: math.Sin})
		case "cosine":
			out = append(out, wave{name: name, period: period, fn: math.Cos})
		case "square":
			out = append(out, wave{name: name, period: period, fn: square})
		case "walk":
			out = append(out, &walk{rng: rand.New(rand.NewSource(seed)), step: 0.1})
		default:
			return nil, fmt.Errorf("unknown signal %q", name)
		}
	}
	if len(out) < 1 {
		return nil, fmt.Errorf("no signals requested")
	}
	return out, nil
}
