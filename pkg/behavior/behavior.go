// Package behavior defines the contract particle behaviors implement, the
// ordered pipeline an emitter applies to its particles, a registry that
// builds behaviors from declarative configuration, and the reference
// behaviors (animated textures, blend mode, static texture, alpha, scale).
//
// Every behavior has an Order. A Pipeline sorts its behaviors by Order once,
// keeping registration order for equal keys, and applies that fixed order to
// every particle in both phases: InitParticles when a batch spawns and
// UpdateParticle on every tick. A behavior that reads a value another
// behavior writes must declare a larger Order.
package behavior

import (
	"github.com/Tomortec/particle-emitter/pkg/components"
)

// Order is the execution priority of a behavior. Lower values run first.
type Order int

// Priority buckets shared by the built-in behaviors.
const (
	OrderSpawn  Order = 0 // One-time setup that reads nothing other behaviors produce
	OrderNormal Order = 2 // Texture, alpha, scale and other value behaviors
	OrderLate   Order = 5 // Behaviors that read values assigned in OrderNormal
)

// Behavior is the capability every particle behavior provides.
type Behavior interface {
	// Order returns the behavior's fixed priority.
	Order() Order

	// InitParticles initializes a newly spawned batch. first is the head of
	// the batch; the remaining particles follow through first.Next.
	InitParticles(first *components.ParticleComponent)
}

// Updater is implemented by behaviors that act on every tick.
type Updater interface {
	UpdateParticle(p *components.ParticleComponent, dt float64)
}

// Recycler is implemented by behaviors that keep per-particle state outside
// the particle and need to drop it when the particle dies.
type Recycler interface {
	RecycleParticle(p *components.ParticleComponent)
}

// eachInBatch calls fn for first and every particle chained after it.
func eachInBatch(first *components.ParticleComponent, fn func(p *components.ParticleComponent)) {
	for p := first; p != nil; p = p.Next {
		fn(p)
	}
}
