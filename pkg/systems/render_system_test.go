package systems

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tomortec/particle-emitter/pkg/components"
	"github.com/Tomortec/particle-emitter/pkg/ecs"
)

func testParticle(img *ebiten.Image, x, y float64) *components.ParticleComponent {
	p := &components.ParticleComponent{}
	p.Reset(1)
	p.Image = img
	p.X, p.Y = x, y
	return p
}

// TestBuildParticleVertices_BasicPositionMapping 测试中心对齐的四个顶点
func TestBuildParticleVertices_BasicPositionMapping(t *testing.T) {
	p := testParticle(ebiten.NewImage(32, 32), 300, 300)

	vertices := buildParticleVertices(p)

	want := [4][2]float64{{284, 284}, {316, 284}, {284, 316}, {316, 316}}
	for i, w := range want {
		assert.InDelta(t, w[0], float64(vertices[i].DstX), 0.01, "vertex %d x", i)
		assert.InDelta(t, w[1], float64(vertices[i].DstY), 0.01, "vertex %d y", i)
	}
	assert.Equal(t, float32(32), vertices[3].SrcX)
	assert.Equal(t, float32(32), vertices[3].SrcY)
}

func TestBuildParticleVertices_ScaleRotationAlpha(t *testing.T) {
	p := testParticle(ebiten.NewImage(10, 10), 0, 0)
	p.Scale = 2
	p.Rotation = 90
	p.Alpha = 0.25

	vertices := buildParticleVertices(p)

	// 旋转 90° 后左上角 (-10,-10) 变为 (10,-10)
	assert.InDelta(t, 10, float64(vertices[0].DstX), 0.01)
	assert.InDelta(t, -10, float64(vertices[0].DstY), 0.01)
	for i, v := range vertices {
		assert.Equal(t, float32(0.25), v.ColorA, "vertex %d alpha", i)
	}
}

func TestCollectBatches_GroupsByImageAndBlend(t *testing.T) {
	em := ecs.NewEntityManager()
	rs := NewRenderSystem(em)

	imgA := ebiten.NewImage(4, 4)
	imgB := ebiten.NewImage(4, 4)

	emitterID := em.CreateEntity()
	emitter := &components.EmitterComponent{}
	em.AddComponent(emitterID, emitter)

	add := func(img *ebiten.Image, blend ebiten.Blend, alpha float64) {
		id := em.CreateEntity()
		p := testParticle(img, 0, 0)
		p.ID = id
		p.Blend = blend
		p.Alpha = alpha
		em.AddComponent(id, p)
		emitter.ActiveParticles = append(emitter.ActiveParticles, id)
	}

	add(imgA, ebiten.BlendSourceOver, 1)
	add(imgA, ebiten.BlendLighter, 1)
	add(imgB, ebiten.BlendSourceOver, 1)
	add(imgA, ebiten.BlendSourceOver, 1)
	add(imgB, ebiten.BlendSourceOver, 0) // 透明粒子不绘制
	add(nil, ebiten.BlendSourceOver, 1)  // 无贴图粒子不绘制

	batches := rs.collectBatches()
	require.Len(t, batches, 3)

	wantCounts := []int{2, 1, 1}
	for i, b := range batches {
		assert.Len(t, b.particles, wantCounts[i], "batch %d", i)
	}
	assert.Same(t, imgA, batches[0].img, "batches keep first-seen order")
	assert.Equal(t, ebiten.BlendSourceOver, batches[0].blend)
	assert.Same(t, imgA, batches[1].img)
	assert.Equal(t, ebiten.BlendLighter, batches[1].blend, "same image with another blend mode needs its own batch")
	assert.Same(t, imgB, batches[2].img)
}

func TestDrawParticles_DoesNotPanic(t *testing.T) {
	em := ecs.NewEntityManager()
	rs := NewRenderSystem(em)

	emitterID := em.CreateEntity()
	emitter := &components.EmitterComponent{}
	em.AddComponent(emitterID, emitter)
	for i := 0; i < 3; i++ {
		id := em.CreateEntity()
		p := testParticle(ebiten.NewImage(2, 2), float64(i), 0)
		p.ID = id
		em.AddComponent(id, p)
		emitter.ActiveParticles = append(emitter.ActiveParticles, id)
	}

	screen := ebiten.NewImage(64, 64)
	assert.NotPanics(t, func() { rs.DrawParticles(screen) })
	assert.Empty(t, rs.particleVertices, "vertex buffer is flushed after drawing")
}
