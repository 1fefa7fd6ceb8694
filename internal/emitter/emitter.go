// Package emitter scatters the initial population.
package emitter

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/san-kum/plife/internal/particle"
)

var (
	ErrInvalidCount  = errors.New("emitter: particle count must not be negative")
	ErrInvalidRegion = errors.New("emitter: spawn region must have positive width and height")
)

// Group is one block of same-typed particles to emit.
type Group struct {
	Type  particle.Type
	Count int
}

// Emit returns count particles of type t at integer positions drawn uniformly
// from [0, width) × [0, height), with zero velocity and acceleration.
// A zero count yields an empty population.
func Emit(rng *rand.Rand, count int, width, height uint32, t particle.Type) (particle.Population, error) {
	if count < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCount, count)
	}
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidRegion, width, height)
	}
	if !t.Valid() {
		return nil, fmt.Errorf("%w: %s", particle.ErrUnknownType, t)
	}

	pop := make(particle.Population, count)
	for i := range pop {
		pop[i] = particle.Particle{
			Pos: particle.Vec2{
				X: float64(rng.Uint32() % width),
				Y: float64(rng.Uint32() % height),
			},
			Type: t,
		}
	}
	return pop, nil
}

// EmitAll emits each group in order into one population sharing the region.
func EmitAll(rng *rand.Rand, groups []Group, width, height uint32) (particle.Population, error) {
	total := 0
	for _, g := range groups {
		total += g.Count
	}
	pop := make(particle.Population, 0, max(total, 0))
	for _, g := range groups {
		part, err := Emit(rng, g.Count, width, height, g.Type)
		if err != nil {
			return nil, fmt.Errorf("emit %s: %w", g.Type, err)
		}
		pop = append(pop, part...)
	}
	return pop, nil
}
