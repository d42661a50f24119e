package components

import (
	"github.com/Tomortec/particle-emitter/pkg/ecs"
)

// ParticlePipeline is the ordered behavior list an emitter applies to its
// particles. behavior.Pipeline is the implementation; the interface keeps
// this package free of behavior imports.
type ParticlePipeline interface {
	// InitParticles runs every behavior's spawn hook on the batch starting at first.
	InitParticles(first *ParticleComponent)
	// UpdateParticle runs every per-tick hook on p, in order.
	UpdateParticle(p *ParticleComponent, dt float64)
	// RecycleParticle lets behaviors drop per-particle state before p is destroyed.
	RecycleParticle(p *ParticleComponent)
}

// EmitterComponent represents a particle emitter that spawns waves of
// particles and applies its behavior pipeline to them.
//
// This is a pure data component; the ParticleSystem drives it.
type EmitterComponent struct {
	Name     string
	Pipeline ParticlePipeline

	// Emitter state (发射器状态)
	Active   bool    // Whether the emitter is currently spawning particles
	Age      float64 // Time the emitter has been running (seconds)
	Lifetime float64 // Seconds before the emitter stops spawning; <= 0 means infinite

	// Spawn position (发射位置)
	X, Y float64

	// Spawn timing (发射时机)
	Frequency        float64 // Seconds between waves; 0 = single burst
	ParticlesPerWave int     // Particles created per wave (one batch)
	NextSpawnTime    float64 // Emitter age at which the next wave spawns
	MaxParticles     int     // Cap on simultaneously alive particles; 0 = unlimited

	// Particle lifetime range, seconds (粒子寿命范围)
	MinLifetime float64
	MaxLifetime float64

	// Launch velocity (发射速度与角度)
	SpeedMin, SpeedMax float64 // Pixels per second
	AngleMin, AngleMax float64 // Degrees, screen coordinates: 0 = right, 90 = down

	// Particle tracking (粒子追踪)
	ActiveParticles []ecs.EntityID // Currently alive particle entity IDs
	TotalLaunched   int            // Total number of particles spawned so far
}
