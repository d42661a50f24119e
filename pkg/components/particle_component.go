package components

import (
	"github.com/Tomortec/particle-emitter/pkg/ecs"
	"github.com/hajimehoshi/ebiten/v2"
)

// ParticleComponent is the mutable per-particle state that behaviors read
// and write. The ParticleSystem owns it: it allocates the component at spawn,
// advances Age and AgePercent before behaviors run each tick, and destroys
// the entity when Age reaches MaxLife.
//
// Ownership of the fields by behavior:
//   - Image: texture behaviors only
//   - Blend: blend mode behavior only, once at spawn
//   - Alpha, Scale, Rotation, velocity: the other value behaviors
type ParticleComponent struct {
	// Identity (粒子身份)
	ID ecs.EntityID // Entity that owns this component; key for per-particle behavior state

	// Lifecycle (生命周期, 秒)
	Age        float64 // Seconds since spawn
	MaxLife    float64 // Lifetime in seconds, fixed at spawn
	AgePercent float64 // Age / MaxLife, clamped to [0, 1]

	// Rendering (渲染属性)
	Image *ebiten.Image // Current texture
	Blend ebiten.Blend  // Blend mode used to draw Image
	Alpha float64       // 0 = fully transparent, 1 = fully opaque
	Scale float64       // Scale multiplier (1.0 = original size)

	// Transform (位置与运动)
	X, Y      float64 // World position
	VelocityX float64 // Pixels per second
	VelocityY float64 // Pixels per second
	Rotation  float64 // Degrees

	// Next links the particles spawned in the same batch. The first particle
	// of a batch is handed to InitParticles; the rest follow via Next.
	// Nil terminates the batch. The ParticleSystem clears it once the batch
	// is initialized.
	Next *ParticleComponent
}

// Reset restores the spawn defaults while keeping the identity.
func (p *ParticleComponent) Reset(maxLife float64) {
	id := p.ID
	*p = ParticleComponent{
		ID:      id,
		MaxLife: maxLife,
		Blend:   ebiten.BlendSourceOver,
		Alpha:   1,
		Scale:   1,
	}
}
