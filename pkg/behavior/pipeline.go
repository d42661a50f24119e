package behavior

import (
	"cmp"
	"slices"

	"github.com/Tomortec/particle-emitter/pkg/components"
)

// Pipeline is an immutable, ordered set of behaviors. It implements
// components.ParticlePipeline.
//
// The per-tick and recycle lists are resolved once in NewPipeline, so
// UpdateParticle never type-asserts.
type Pipeline struct {
	behaviors []Behavior
	updaters  []Updater
	recyclers []Recycler
}

var _ components.ParticlePipeline = (*Pipeline)(nil)

// NewPipeline sorts behaviors ascending by Order. Behaviors with equal
// Order keep the order they were passed in.
func NewPipeline(behaviors ...Behavior) *Pipeline {
	sorted := slices.Clone(behaviors)
	slices.SortStableFunc(sorted, func(a, b Behavior) int {
		return cmp.Compare(a.Order(), b.Order())
	})

	p := &Pipeline{behaviors: sorted}
	for _, b := range sorted {
		if u, ok := b.(Updater); ok {
			p.updaters = append(p.updaters, u)
		}
		if r, ok := b.(Recycler); ok {
			p.recyclers = append(p.recyclers, r)
		}
	}
	return p
}

// Behaviors returns the behaviors in execution order.
func (p *Pipeline) Behaviors() []Behavior {
	return slices.Clone(p.behaviors)
}

// Len returns the number of behaviors.
func (p *Pipeline) Len() int {
	return len(p.behaviors)
}

// InitParticles runs every behavior's spawn hook on the batch, in order.
func (p *Pipeline) InitParticles(first *components.ParticleComponent) {
	if first == nil {
		return
	}
	for _, b := range p.behaviors {
		b.InitParticles(first)
	}
}

// UpdateParticle runs every per-tick hook on particle, in order.
func (p *Pipeline) UpdateParticle(particle *components.ParticleComponent, dt float64) {
	for _, u := range p.updaters {
		u.UpdateParticle(particle, dt)
	}
}

// RecycleParticle releases per-particle state held by behaviors.
func (p *Pipeline) RecycleParticle(particle *components.ParticleComponent) {
	for _, r := range p.recyclers {
		r.RecycleParticle(particle)
	}
}
