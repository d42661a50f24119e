package systems

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tomortec/particle-emitter/pkg/behavior"
	"github.com/Tomortec/particle-emitter/pkg/components"
	"github.com/Tomortec/particle-emitter/pkg/config"
	"github.com/Tomortec/particle-emitter/pkg/ecs"
	"github.com/Tomortec/particle-emitter/pkg/game"
)

// countingPipeline 记录每个钩子的调用
type countingPipeline struct {
	batches  [][]ecs.EntityID
	updates  map[ecs.EntityID]int
	recycled []ecs.EntityID
}

func newCountingPipeline() *countingPipeline {
	return &countingPipeline{updates: make(map[ecs.EntityID]int)}
}

func (c *countingPipeline) InitParticles(first *components.ParticleComponent) {
	var batch []ecs.EntityID
	for p := first; p != nil; p = p.Next {
		batch = append(batch, p.ID)
	}
	c.batches = append(c.batches, batch)
}

func (c *countingPipeline) UpdateParticle(p *components.ParticleComponent, dt float64) {
	c.updates[p.ID]++
}

func (c *countingPipeline) RecycleParticle(p *components.ParticleComponent) {
	c.recycled = append(c.recycled, p.ID)
}

func mustConfig(t *testing.T, yamlText string) *config.EmitterConfig {
	t.Helper()
	cfg, err := config.ParseEmitterConfig([]byte(yamlText))
	require.NoError(t, err)
	return cfg
}

func TestParticleSystem_BurstSpawnsOneBatch(t *testing.T) {
	em := ecs.NewEntityManager()
	ps := NewParticleSystem(em)
	pipeline := newCountingPipeline()

	emitterID := ps.SpawnEmitter(mustConfig(t, `
name: burst
lifetime: 1
particlesPerWave: 5
behaviors: [{type: blendMode}]
`), pipeline, 10, 20)

	ps.Update(0.1)
	require.Len(t, pipeline.batches, 1)
	assert.Len(t, pipeline.batches[0], 5, "InitParticles sees the whole batch through Next")
	assert.Equal(t, 5, ps.ParticleCount())

	for _, id := range pipeline.batches[0] {
		p, ok := ecs.GetComponent[*components.ParticleComponent](em, id)
		require.True(t, ok)
		assert.Nil(t, p.Next, "batch chain is cleared after init")
		assert.Equal(t, 10.0, p.X)
		assert.Equal(t, 20.0, p.Y)
		assert.Zero(t, p.Age, "new particles are not aged in their spawn tick")
	}

	emitter, ok := ecs.GetComponent[*components.EmitterComponent](em, emitterID)
	require.True(t, ok)
	assert.False(t, emitter.Active, "a burst emitter stops after its wave")
	assert.Equal(t, 5, emitter.TotalLaunched)

	ps.Update(0.1)
	assert.Len(t, pipeline.batches, 1, "no second wave")
}

func TestParticleSystem_ExpiryRecyclesThenDestroys(t *testing.T) {
	em := ecs.NewEntityManager()
	ps := NewParticleSystem(em)
	pipeline := newCountingPipeline()

	emitterID := ps.SpawnEmitter(mustConfig(t, `
name: burst
lifetime: 0.5
particlesPerWave: 2
behaviors: [{type: blendMode}]
`), pipeline, 0, 0)

	ps.Update(0.1) // spawn
	ids := pipeline.batches[0]

	ps.Update(0.2)
	for _, id := range ids {
		assert.Equal(t, 1, pipeline.updates[id])
		p, _ := ecs.GetComponent[*components.ParticleComponent](em, id)
		assert.InDelta(t, 0.4, p.AgePercent, 1e-9)
	}
	assert.Empty(t, pipeline.recycled)

	ps.Update(0.4) // past MaxLife
	assert.ElementsMatch(t, ids, pipeline.recycled)
	for _, id := range ids {
		assert.False(t, em.Exists(id))
		assert.Equal(t, 1, pipeline.updates[id], "expired particles are not updated")
	}
	assert.False(t, em.Exists(emitterID), "finished emitter is removed")
}

func TestParticleSystem_FrequencyAndMaxParticles(t *testing.T) {
	em := ecs.NewEntityManager()
	ps := NewParticleSystem(em)
	pipeline := newCountingPipeline()

	ps.SpawnEmitter(mustConfig(t, `
name: stream
lifetime: 10
frequency: 0.1
particlesPerWave: 2
maxParticles: 5
behaviors: [{type: blendMode}]
`), pipeline, 0, 0)

	ps.Update(0.1) // age 0: wave 1
	ps.Update(0.1) // age 0.1: wave 2
	require.Len(t, pipeline.batches, 2)
	assert.Equal(t, 4, ps.ParticleCount())

	ps.Update(0.1) // wave 3 truncated to the cap
	require.Len(t, pipeline.batches, 3)
	assert.Len(t, pipeline.batches[2], 1)
	assert.Equal(t, 5, ps.ParticleCount())

	ps.Update(0.1) // cap reached: no batch
	assert.Len(t, pipeline.batches, 3)
}

func TestParticleSystem_EmitterLifetime(t *testing.T) {
	em := ecs.NewEntityManager()
	ps := NewParticleSystem(em)
	pipeline := newCountingPipeline()

	emitterID := ps.SpawnEmitter(mustConfig(t, `
name: short
lifetime: 0.05
frequency: 0.1
emitterLifetime: 0.25
behaviors: [{type: blendMode}]
`), pipeline, 0, 0)

	for i := 0; i < 5; i++ {
		ps.Update(0.1)
	}
	assert.Len(t, pipeline.batches, 3, "waves at 0, 0.1 and 0.2 only")

	emitter, ok := ecs.GetComponent[*components.EmitterComponent](em, emitterID)
	if ok {
		assert.False(t, emitter.Active)
	}
	ps.Update(0.1)
	assert.False(t, em.Exists(emitterID))
}

func TestParticleSystem_StopEmitter(t *testing.T) {
	em := ecs.NewEntityManager()
	ps := NewParticleSystem(em)
	pipeline := newCountingPipeline()

	id := ps.SpawnEmitter(mustConfig(t, `
name: stream
lifetime: 0.15
frequency: 0.1
behaviors: [{type: blendMode}]
`), pipeline, 0, 0)

	ps.Update(0.1)
	ps.StopEmitter(id)
	ps.Update(0.1)
	assert.Len(t, pipeline.batches, 1)
	assert.True(t, em.Exists(id), "stopped emitter waits for its particles")

	ps.Update(0.1)
	assert.False(t, em.Exists(id))
}

func TestParticleSystem_VelocityMovesParticles(t *testing.T) {
	em := ecs.NewEntityManager()
	ps := NewParticleSystem(em)
	pipeline := newCountingPipeline()

	ps.SpawnEmitter(mustConfig(t, `
name: right
lifetime: 5
speed: 100
angle: 0
behaviors: [{type: blendMode}]
`), pipeline, 0, 0)

	ps.Update(0.1)
	ps.Update(0.5)
	p, ok := ecs.GetComponent[*components.ParticleComponent](em, pipeline.batches[0][0])
	require.True(t, ok)
	assert.InDelta(t, 50.0, p.X, 1e-9)
	assert.InDelta(t, 0.0, p.Y, 1e-9)
}

// TestParticleSystem_AnimatedPipeline runs the declarative pipeline end to
// end: blend mode at spawn, lifetime-stretched frames, state dropped on expiry.
func TestParticleSystem_AnimatedPipeline(t *testing.T) {
	rm := game.NewResourceManager()
	frames := map[string]*ebiten.Image{}
	for _, id := range []string{"x", "y", "z"} {
		frames[id] = ebiten.NewImage(1, 1)
		rm.RegisterImage(id, frames[id])
	}

	cfg := mustConfig(t, `
name: stretched
lifetime: 3
particlesPerWave: 4
behaviors:
  - type: animatedSingle
    config:
      anim: {framerate: -1, textures: [x, y, z]}
  - type: blendMode
    config: {blendMode: add}
`)
	pipeline, err := behavior.DefaultRegistry().BuildPipeline(cfg.Behaviors, behavior.Env{Textures: rm})
	require.NoError(t, err)
	animated := pipeline.Behaviors()[1].(*behavior.SingleAnimatedTextureBehavior)

	em := ecs.NewEntityManager()
	ps := NewParticleSystem(em)
	emitterID := ps.SpawnEmitter(cfg, pipeline, 0, 0)

	ps.Update(0.016)
	emitter, _ := ecs.GetComponent[*components.EmitterComponent](em, emitterID)
	require.Len(t, emitter.ActiveParticles, 4)
	assert.Equal(t, 4, animated.LiveParticles())

	particles := make([]*components.ParticleComponent, 0, 4)
	for _, id := range emitter.ActiveParticles {
		p, _ := ecs.GetComponent[*components.ParticleComponent](em, id)
		particles = append(particles, p)
		assert.Same(t, frames["x"], p.Image)
		assert.Equal(t, ebiten.BlendLighter, p.Blend)
	}

	ps.Update(1.5)
	for _, p := range particles {
		assert.Same(t, frames["y"], p.Image)
	}
	ps.Update(1.0)
	for _, p := range particles {
		assert.Same(t, frames["z"], p.Image)
	}

	ps.Update(1.0)
	assert.Equal(t, 0, animated.LiveParticles(), "expired particles release their playback")
	assert.Equal(t, 0, ps.ParticleCount())
}

func TestParticleSystem_Clear(t *testing.T) {
	em := ecs.NewEntityManager()
	ps := NewParticleSystem(em)
	pipeline := newCountingPipeline()

	cfg := mustConfig(t, `
name: stream
lifetime: 5
frequency: 0.1
particlesPerWave: 3
behaviors: [{type: blendMode}]
`)
	ps.SpawnEmitter(cfg, pipeline, 0, 0)
	ps.SpawnEmitter(cfg, pipeline, 50, 50)
	ps.Update(0.1)
	require.Equal(t, 6, ps.ParticleCount())

	ps.Clear()
	assert.Len(t, pipeline.recycled, 6)
	assert.Equal(t, 0, ps.ParticleCount())
	assert.Equal(t, 0, em.EntityCount())
}
