package behavior

import (
	"github.com/Tomortec/particle-emitter/pkg/components"
	"github.com/hajimehoshi/ebiten/v2"
)

// TypeTextureSingle is the registry key of SingleTextureBehavior.
const TypeTextureSingle = "textureSingle"

// SingleTextureBehavior assigns one static texture to every particle.
//
// Example config:
//
//	type: textureSingle
//	config:
//	  texture: IMAGE_SPARK
type SingleTextureBehavior struct {
	texture *ebiten.Image
}

// NewSingleTextureBehavior returns a behavior that shows img on every particle.
func NewSingleTextureBehavior(img *ebiten.Image) *SingleTextureBehavior {
	return &SingleTextureBehavior{texture: img}
}

// Order implements Behavior.
func (b *SingleTextureBehavior) Order() Order { return OrderNormal }

// InitParticles sets the texture of every particle in the batch.
func (b *SingleTextureBehavior) InitParticles(first *components.ParticleComponent) {
	for p := first; p != nil; p = p.Next {
		p.Image = b.texture
	}
}
