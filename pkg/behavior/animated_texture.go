package behavior

import (
	"fmt"
	"math/rand"

	"github.com/kamstrup/intmap"

	"github.com/Tomortec/particle-emitter/internal/particle"
	"github.com/Tomortec/particle-emitter/pkg/components"
	"github.com/Tomortec/particle-emitter/pkg/ecs"
)

// Registry keys of the animated texture behaviors.
const (
	TypeAnimatedRandom = "animatedRandom"
	TypeAnimatedSingle = "animatedSingle"
)

const initialPlaybackCapacity = 64

// playbacks holds the animation cursor of every live particle, keyed by the
// particle's entity. Values are stored inline so a tick does not allocate.
type playbacks struct {
	byParticle *intmap.Map[ecs.EntityID, particle.Playback]
}

func newPlaybacks() playbacks {
	return playbacks{byParticle: intmap.New[ecs.EntityID, particle.Playback](initialPlaybackCapacity)}
}

// start attaches a fresh cursor to p and shows the first frame.
func (s playbacks) start(p *components.ParticleComponent, anim *particle.ParsedAnimatedParticleArt) {
	pb := particle.NewPlayback(anim, p.MaxLife)
	p.Image = pb.Frame()
	s.byParticle.Put(p.ID, pb)
}

// advance moves p's cursor by dt and assigns the current frame.
func (s playbacks) advance(p *components.ParticleComponent, dt float64) {
	pb, ok := s.byParticle.Get(p.ID)
	if !ok {
		return
	}
	p.Image = pb.Advance(dt)
	s.byParticle.Put(p.ID, pb)
}

func (s playbacks) release(p *components.ParticleComponent) {
	s.byParticle.Del(p.ID)
}

func (s playbacks) get(id ecs.EntityID) (particle.Playback, bool) {
	return s.byParticle.Get(id)
}

func (s playbacks) len() int {
	return s.byParticle.Len()
}

// RandomAnimatedTextureBehavior plays one animation per particle, picked
// uniformly at random from a list when the particle spawns.
//
// Example config:
//
//	type: animatedRandom
//	config:
//	  anims:
//	    - {framerate: 25, loop: true, textures: [frame1, frame2, frame3]}
//	    - {framerate: 25, loop: true, textures: [frame3, frame2, frame1]}
type RandomAnimatedTextureBehavior struct {
	anims     []*particle.ParsedAnimatedParticleArt
	playbacks playbacks
	intn      func(n int) int
}

// NewRandomAnimatedTextureBehavior parses every animation in anims. It fails
// with particle.ErrInvalidAnimation when anims is empty or any animation is
// invalid; resolver errors are returned unchanged.
func NewRandomAnimatedTextureBehavior(anims []particle.AnimatedParticleArt, resolver particle.TextureResolver) (*RandomAnimatedTextureBehavior, error) {
	if len(anims) == 0 {
		return nil, fmt.Errorf("%w: animatedRandom needs at least one animation", particle.ErrInvalidAnimation)
	}

	parsed := make([]*particle.ParsedAnimatedParticleArt, 0, len(anims))
	for i, art := range anims {
		anim, err := particle.ParseAnimatedArt(art, resolver)
		if err != nil {
			return nil, fmt.Errorf("anims[%d]: %w", i, err)
		}
		parsed = append(parsed, anim)
	}

	return &RandomAnimatedTextureBehavior{
		anims:     parsed,
		playbacks: newPlaybacks(),
		intn:      rand.Intn,
	}, nil
}

// Order implements Behavior.
func (b *RandomAnimatedTextureBehavior) Order() Order { return OrderNormal }

// Animations returns the parsed animations in configuration order.
func (b *RandomAnimatedTextureBehavior) Animations() []*particle.ParsedAnimatedParticleArt {
	return b.anims
}

// InitParticles draws an animation for every particle of the batch.
func (b *RandomAnimatedTextureBehavior) InitParticles(first *components.ParticleComponent) {
	eachInBatch(first, b.InitParticle)
}

// InitParticle draws an animation for a single particle and shows its first frame.
func (b *RandomAnimatedTextureBehavior) InitParticle(p *components.ParticleComponent) {
	anim := b.anims[0]
	if len(b.anims) > 1 {
		anim = b.anims[b.intn(len(b.anims))]
	}
	b.playbacks.start(p, anim)
}

// UpdateParticle implements Updater.
func (b *RandomAnimatedTextureBehavior) UpdateParticle(p *components.ParticleComponent, dt float64) {
	b.playbacks.advance(p, dt)
}

// RecycleParticle implements Recycler.
func (b *RandomAnimatedTextureBehavior) RecycleParticle(p *components.ParticleComponent) {
	b.playbacks.release(p)
}

// Playback returns the animation cursor of a live particle.
func (b *RandomAnimatedTextureBehavior) Playback(id ecs.EntityID) (particle.Playback, bool) {
	return b.playbacks.get(id)
}

// LiveParticles returns how many particles currently hold a cursor.
func (b *RandomAnimatedTextureBehavior) LiveParticles() int {
	return b.playbacks.len()
}

// SingleAnimatedTextureBehavior plays the same animation on every particle.
//
// Example config:
//
//	type: animatedSingle
//	config:
//	  anim: {framerate: 25, loop: true, textures: [frame1, frame2, frame3]}
type SingleAnimatedTextureBehavior struct {
	anim      *particle.ParsedAnimatedParticleArt
	playbacks playbacks
}

// NewSingleAnimatedTextureBehavior parses art once; the result is shared by
// every particle.
func NewSingleAnimatedTextureBehavior(art particle.AnimatedParticleArt, resolver particle.TextureResolver) (*SingleAnimatedTextureBehavior, error) {
	anim, err := particle.ParseAnimatedArt(art, resolver)
	if err != nil {
		return nil, err
	}
	return &SingleAnimatedTextureBehavior{
		anim:      anim,
		playbacks: newPlaybacks(),
	}, nil
}

// Order implements Behavior.
func (b *SingleAnimatedTextureBehavior) Order() Order { return OrderNormal }

// Animation returns the shared parsed animation.
func (b *SingleAnimatedTextureBehavior) Animation() *particle.ParsedAnimatedParticleArt {
	return b.anim
}

// InitParticles starts the animation on every particle of the batch.
func (b *SingleAnimatedTextureBehavior) InitParticles(first *components.ParticleComponent) {
	eachInBatch(first, b.InitParticle)
}

// InitParticle starts the animation on a single particle.
func (b *SingleAnimatedTextureBehavior) InitParticle(p *components.ParticleComponent) {
	b.playbacks.start(p, b.anim)
}

// UpdateParticle implements Updater.
func (b *SingleAnimatedTextureBehavior) UpdateParticle(p *components.ParticleComponent, dt float64) {
	b.playbacks.advance(p, dt)
}

// RecycleParticle implements Recycler.
func (b *SingleAnimatedTextureBehavior) RecycleParticle(p *components.ParticleComponent) {
	b.playbacks.release(p)
}

// Playback returns the animation cursor of a live particle.
func (b *SingleAnimatedTextureBehavior) Playback(id ecs.EntityID) (particle.Playback, bool) {
	return b.playbacks.get(id)
}

// LiveParticles returns how many particles currently hold a cursor.
func (b *SingleAnimatedTextureBehavior) LiveParticles() int {
	return b.playbacks.len()
}
