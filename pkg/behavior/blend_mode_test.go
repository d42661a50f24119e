package behavior

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
)

func TestBlendModeBehavior_SetsWholeBatch(t *testing.T) {
	b := NewBlendModeBehavior(ebiten.BlendXor)
	assert.Equal(t, ebiten.BlendXor, b.Value())
	assert.Equal(t, OrderSpawn, b.Order())

	batch := newBatch(5, 1, 1)
	b.InitParticles(batch[0])
	for _, p := range batch {
		assert.Equal(t, ebiten.BlendXor, p.Blend)
	}
}

func TestBlendModeBehavior_HasNoTickHook(t *testing.T) {
	var b Behavior = NewBlendModeBehavior(ebiten.BlendLighter)
	_, ticks := b.(Updater)
	assert.False(t, ticks, "blend mode is assigned once at spawn")

	p := NewPipeline(b)
	particle := newBatch(1, 1, 1)[0]
	p.InitParticles(particle)
	particle.Blend = ebiten.BlendCopy
	p.UpdateParticle(particle, 1)
	assert.Equal(t, ebiten.BlendCopy, particle.Blend)
}

func TestSingleTextureBehavior(t *testing.T) {
	img := ebiten.NewImage(1, 1)
	b := NewSingleTextureBehavior(img)
	batch := newBatch(3, 1, 1)
	b.InitParticles(batch[0])
	for _, p := range batch {
		assert.Same(t, img, p.Image)
	}
}
