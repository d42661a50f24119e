package systems

import (
	"math"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Tomortec/particle-emitter/pkg/components"
	"github.com/Tomortec/particle-emitter/pkg/ecs"
)

// maxBatchVertices keeps batch indices within uint16.
const maxBatchVertices = math.MaxUint16 - 3

// RenderSystem draws particles as textured quads.
//
// Particles sharing an (image, blend) pair are drawn with one DrawTriangles
// call. Batches are drawn in the order their first particle is met, walking
// emitters and their particles in spawn order.
type RenderSystem struct {
	entityManager *ecs.EntityManager

	// 顶点缓冲（复用以避免每帧分配）
	particleVertices []ebiten.Vertex
	particleIndices  []uint16
}

// NewRenderSystem creates a new RenderSystem instance.
func NewRenderSystem(em *ecs.EntityManager) *RenderSystem {
	return &RenderSystem{
		entityManager:    em,
		particleVertices: make([]ebiten.Vertex, 0, 256),
		particleIndices:  make([]uint16, 0, 384),
	}
}

// batchKey 批次键：贴图指针 + 混合模式
type batchKey struct {
	img   *ebiten.Image
	blend ebiten.Blend
}

type particleBatch struct {
	batchKey
	particles []*components.ParticleComponent
}

// collectBatches groups every drawable particle by image and blend mode.
// Particles without an image or with zero alpha are skipped.
func (s *RenderSystem) collectBatches() []*particleBatch {
	emitterIDs := ecs.GetEntitiesWith1[*components.EmitterComponent](s.entityManager)
	slices.Sort(emitterIDs)

	var batches []*particleBatch
	index := make(map[batchKey]int)

	for _, emitterID := range emitterIDs {
		emitter, ok := ecs.GetComponent[*components.EmitterComponent](s.entityManager, emitterID)
		if !ok {
			continue
		}
		for _, particleID := range emitter.ActiveParticles {
			particle, ok := ecs.GetComponent[*components.ParticleComponent](s.entityManager, particleID)
			if !ok || particle.Image == nil || particle.Alpha <= 0 {
				continue
			}

			key := batchKey{img: particle.Image, blend: particle.Blend}
			i, exists := index[key]
			if !exists {
				i = len(batches)
				index[key] = i
				batches = append(batches, &particleBatch{batchKey: key})
			}
			batches[i].particles = append(batches[i].particles, particle)
		}
	}
	return batches
}

// DrawParticles draws every live particle onto screen.
func (s *RenderSystem) DrawParticles(screen *ebiten.Image) {
	for _, batch := range s.collectBatches() {
		s.particleVertices = s.particleVertices[:0]
		s.particleIndices = s.particleIndices[:0]

		for _, particle := range batch.particles {
			if len(s.particleVertices) >= maxBatchVertices {
				s.flush(screen, batch.batchKey)
			}

			vertices := buildParticleVertices(particle)
			baseIndex := uint16(len(s.particleVertices))
			s.particleVertices = append(s.particleVertices, vertices[:]...)
			s.particleIndices = append(s.particleIndices,
				baseIndex+0, baseIndex+1, baseIndex+2, // 第一个三角形
				baseIndex+1, baseIndex+3, baseIndex+2, // 第二个三角形
			)
		}
		s.flush(screen, batch.batchKey)
	}
}

func (s *RenderSystem) flush(screen *ebiten.Image, key batchKey) {
	if len(s.particleVertices) == 0 {
		return
	}
	op := &ebiten.DrawTrianglesOptions{
		Blend:     key.blend,
		AntiAlias: true,
	}
	screen.DrawTriangles(s.particleVertices, s.particleIndices, key.img, op)
	s.particleVertices = s.particleVertices[:0]
	s.particleIndices = s.particleIndices[:0]
}

// buildParticleVertices returns the four corners of the particle quad,
// centered on its position: top-left, top-right, bottom-left, bottom-right.
// Rotation is in degrees and applied before scale.
func buildParticleVertices(particle *components.ParticleComponent) [4]ebiten.Vertex {
	bounds := particle.Image.Bounds()
	w := float64(bounds.Dx())
	h := float64(bounds.Dy())

	srcX0 := float32(bounds.Min.X)
	srcY0 := float32(bounds.Min.Y)
	srcX1 := float32(bounds.Max.X)
	srcY1 := float32(bounds.Max.Y)

	corners := [4][2]float64{
		{-w / 2, -h / 2},
		{w / 2, -h / 2},
		{-w / 2, h / 2},
		{w / 2, h / 2},
	}
	srcs := [4][2]float32{
		{srcX0, srcY0},
		{srcX1, srcY0},
		{srcX0, srcY1},
		{srcX1, srcY1},
	}

	radians := particle.Rotation * math.Pi / 180.0
	cosTheta := math.Cos(radians)
	sinTheta := math.Sin(radians)
	alpha := float32(particle.Alpha)

	var vertices [4]ebiten.Vertex
	for i, corner := range corners {
		rotatedX := corner[0]*cosTheta - corner[1]*sinTheta
		rotatedY := corner[0]*sinTheta + corner[1]*cosTheta

		vertices[i] = ebiten.Vertex{
			DstX:   float32(particle.X + rotatedX*particle.Scale),
			DstY:   float32(particle.Y + rotatedY*particle.Scale),
			SrcX:   srcs[i][0],
			SrcY:   srcs[i][1],
			ColorR: 1,
			ColorG: 1,
			ColorB: 1,
			ColorA: alpha,
		}
	}
	return vertices
}
