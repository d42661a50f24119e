package systems

import (
	"log"
	"math"
	"slices"

	particlePkg "github.com/Tomortec/particle-emitter/internal/particle"
	"github.com/Tomortec/particle-emitter/pkg/components"
	"github.com/Tomortec/particle-emitter/pkg/config"
	"github.com/Tomortec/particle-emitter/pkg/ecs"
)

// maxWavesPerUpdate caps how many overdue waves one Update may spawn, so a
// long frame hitch does not flood the screen.
const maxWavesPerUpdate = 16

// ParticleSystem drives emitters and their particles.
//
// Each Update runs, per emitter:
//  1. Live particles: age, move, then the emitter's pipeline UpdateParticle.
//     Expired particles get RecycleParticle and are destroyed.
//  2. The emitter itself: age, stop after its lifetime, spawn due waves.
//     Every wave is one batch chained through ParticleComponent.Next and
//     handed to the pipeline's InitParticles.
//
// Spawning after the particle pass means a new particle is first seen by
// the renderer at age 0, showing its first frame.
//
// Finished emitters (inactive, no particles left) are destroyed.
type ParticleSystem struct {
	EntityManager *ecs.EntityManager
}

// NewParticleSystem creates a new ParticleSystem instance.
func NewParticleSystem(em *ecs.EntityManager) *ParticleSystem {
	return &ParticleSystem{EntityManager: em}
}

// SpawnEmitter creates an emitter entity at (x, y) that applies pipeline to
// the particles it launches. The config must already be validated.
func (ps *ParticleSystem) SpawnEmitter(cfg *config.EmitterConfig, pipeline components.ParticlePipeline, x, y float64) ecs.EntityID {
	lifeMin, lifeMax := cfg.LifetimeRange()
	speedMin, speedMax := cfg.SpeedRange()
	angleMin, angleMax := cfg.AngleRange()

	id := ps.EntityManager.CreateEntity()
	ps.EntityManager.AddComponent(id, &components.EmitterComponent{
		Name:             cfg.Name,
		Pipeline:         pipeline,
		Active:           true,
		Lifetime:         cfg.EmitterLifetime,
		X:                x,
		Y:                y,
		Frequency:        cfg.Frequency,
		ParticlesPerWave: cfg.ParticlesPerWave,
		MaxParticles:     cfg.MaxParticles,
		MinLifetime:      lifeMin,
		MaxLifetime:      lifeMax,
		SpeedMin:         speedMin,
		SpeedMax:         speedMax,
		AngleMin:         angleMin,
		AngleMax:         angleMax,
	})

	log.Printf("[ParticleSystem] Spawned emitter %q (ID=%d) at (%.1f, %.1f)", cfg.Name, id, x, y)
	return id
}

// StopEmitter stops spawning; live particles play out and the emitter is
// removed once they are gone.
func (ps *ParticleSystem) StopEmitter(id ecs.EntityID) {
	if emitter, ok := ecs.GetComponent[*components.EmitterComponent](ps.EntityManager, id); ok {
		emitter.Active = false
	}
}

// Clear removes every emitter and particle at once. Particles are recycled
// through their pipeline first.
func (ps *ParticleSystem) Clear() {
	for _, emitterID := range ecs.GetEntitiesWith1[*components.EmitterComponent](ps.EntityManager) {
		emitter, ok := ecs.GetComponent[*components.EmitterComponent](ps.EntityManager, emitterID)
		if !ok {
			continue
		}
		for _, particleID := range emitter.ActiveParticles {
			if particle, ok := ecs.GetComponent[*components.ParticleComponent](ps.EntityManager, particleID); ok && emitter.Pipeline != nil {
				emitter.Pipeline.RecycleParticle(particle)
			}
			ps.EntityManager.DestroyEntity(particleID)
		}
		emitter.ActiveParticles = nil
		ps.EntityManager.DestroyEntity(emitterID)
	}
	ps.EntityManager.RemoveMarkedEntities()
}

// Update advances every emitter and particle by dt seconds.
func (ps *ParticleSystem) Update(dt float64) {
	emitterIDs := ecs.GetEntitiesWith1[*components.EmitterComponent](ps.EntityManager)
	slices.Sort(emitterIDs)

	for _, emitterID := range emitterIDs {
		emitter, ok := ecs.GetComponent[*components.EmitterComponent](ps.EntityManager, emitterID)
		if !ok {
			continue
		}

		ps.updateParticles(emitter, dt)
		ps.updateEmitter(emitter, dt)

		if !emitter.Active && len(emitter.ActiveParticles) == 0 {
			ps.EntityManager.DestroyEntity(emitterID)
		}
	}

	ps.EntityManager.RemoveMarkedEntities()
}

// ParticleCount returns the number of live particles across all emitters.
func (ps *ParticleSystem) ParticleCount() int {
	count := 0
	for _, emitterID := range ecs.GetEntitiesWith1[*components.EmitterComponent](ps.EntityManager) {
		if emitter, ok := ecs.GetComponent[*components.EmitterComponent](ps.EntityManager, emitterID); ok {
			count += len(emitter.ActiveParticles)
		}
	}
	return count
}

// updateParticles ages the emitter's particles and runs the per-tick hooks.
// The active list is compacted in place.
func (ps *ParticleSystem) updateParticles(emitter *components.EmitterComponent, dt float64) {
	alive := emitter.ActiveParticles[:0]

	for _, particleID := range emitter.ActiveParticles {
		particle, ok := ecs.GetComponent[*components.ParticleComponent](ps.EntityManager, particleID)
		if !ok {
			continue
		}

		particle.Age += dt
		if particle.Age >= particle.MaxLife {
			if emitter.Pipeline != nil {
				emitter.Pipeline.RecycleParticle(particle)
			}
			ps.EntityManager.DestroyEntity(particleID)
			continue
		}
		particle.AgePercent = math.Min(1, particle.Age/particle.MaxLife)

		particle.X += particle.VelocityX * dt
		particle.Y += particle.VelocityY * dt

		if emitter.Pipeline != nil {
			emitter.Pipeline.UpdateParticle(particle, dt)
		}
		alive = append(alive, particleID)
	}

	emitter.ActiveParticles = alive
}

// updateEmitter ages the emitter and spawns the waves that are due.
func (ps *ParticleSystem) updateEmitter(emitter *components.EmitterComponent, dt float64) {
	if !emitter.Active {
		return
	}

	// Frequency 0: single burst on the first update, then stop.
	if emitter.Frequency <= 0 {
		ps.spawnWave(emitter)
		emitter.Active = false
		return
	}

	waves := 0
	for emitter.Age >= emitter.NextSpawnTime && waves < maxWavesPerUpdate {
		if emitter.Lifetime > 0 && emitter.NextSpawnTime >= emitter.Lifetime {
			break
		}
		ps.spawnWave(emitter)
		emitter.NextSpawnTime += emitter.Frequency
		waves++
	}
	if waves == maxWavesPerUpdate && emitter.Age >= emitter.NextSpawnTime {
		// 跳过积压的波次
		emitter.NextSpawnTime = emitter.Age + emitter.Frequency
	}

	emitter.Age += dt
	if emitter.Lifetime > 0 && emitter.Age >= emitter.Lifetime {
		emitter.Active = false
	}
}

// spawnWave creates one batch of particles and initializes it through the
// pipeline. The batch is cut short by MaxParticles.
func (ps *ParticleSystem) spawnWave(emitter *components.EmitterComponent) {
	count := emitter.ParticlesPerWave
	if emitter.MaxParticles > 0 {
		count = min(count, emitter.MaxParticles-len(emitter.ActiveParticles))
	}
	if count <= 0 {
		return
	}

	var first, last *components.ParticleComponent
	for i := 0; i < count; i++ {
		particle := ps.newParticle(emitter)
		if first == nil {
			first = particle
		} else {
			last.Next = particle
		}
		last = particle
	}

	if emitter.Pipeline != nil {
		emitter.Pipeline.InitParticles(first)
	}

	// 批次链只在初始化期间有效
	for p := first; p != nil; {
		next := p.Next
		p.Next = nil
		p = next
	}
}

// newParticle creates a particle entity at the emitter's position with a
// random lifetime and launch velocity.
func (ps *ParticleSystem) newParticle(emitter *components.EmitterComponent) *components.ParticleComponent {
	id := ps.EntityManager.CreateEntity()

	particle := &components.ParticleComponent{ID: id}
	particle.Reset(particlePkg.RandomInRange(emitter.MinLifetime, emitter.MaxLifetime))
	particle.X = emitter.X
	particle.Y = emitter.Y

	speed := particlePkg.RandomInRange(emitter.SpeedMin, emitter.SpeedMax)
	if speed != 0 {
		// 屏幕坐标系：0° = 向右，90° = 向下
		radians := particlePkg.RandomInRange(emitter.AngleMin, emitter.AngleMax) * math.Pi / 180.0
		particle.VelocityX = speed * math.Cos(radians)
		particle.VelocityY = speed * math.Sin(radians)
	}

	ps.EntityManager.AddComponent(id, particle)
	emitter.ActiveParticles = append(emitter.ActiveParticles, id)
	emitter.TotalLaunched++
	return particle
}
