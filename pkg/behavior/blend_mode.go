package behavior

import (
	"github.com/Tomortec/particle-emitter/pkg/components"
	"github.com/hajimehoshi/ebiten/v2"
)

// TypeBlendMode is the registry key of BlendModeBehavior.
const TypeBlendMode = "blendMode"

// BlendModeBehavior assigns a blend mode to every particle when it spawns.
// The value is opaque here; whether the renderer supports it is the
// renderer's business.
//
// Example config:
//
//	type: blendMode
//	config:
//	  blendMode: multiply
type BlendModeBehavior struct {
	value ebiten.Blend
}

// NewBlendModeBehavior stores blend as-is.
func NewBlendModeBehavior(blend ebiten.Blend) *BlendModeBehavior {
	return &BlendModeBehavior{value: blend}
}

// Order implements Behavior. Blend mode reads nothing other behaviors write,
// so it runs in the earliest bucket.
func (b *BlendModeBehavior) Order() Order { return OrderSpawn }

// Value returns the stored blend mode.
func (b *BlendModeBehavior) Value() ebiten.Blend { return b.value }

// InitParticles sets the blend mode of every particle in the batch.
func (b *BlendModeBehavior) InitParticles(first *components.ParticleComponent) {
	for p := first; p != nil; p = p.Next {
		p.Blend = b.value
	}
}
