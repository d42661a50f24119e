package behavior

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Tomortec/particle-emitter/internal/particle"
	"github.com/Tomortec/particle-emitter/pkg/components"
	"github.com/Tomortec/particle-emitter/pkg/ecs"
)

var errNoTexture = errors.New("no such texture")

var blendAdd = ebiten.BlendLighter

// mapResolver hands out one 1x1 image per known reference.
type mapResolver struct {
	images map[string]*ebiten.Image
}

func newMapResolver(refs ...string) *mapResolver {
	r := &mapResolver{images: make(map[string]*ebiten.Image, len(refs))}
	for _, ref := range refs {
		r.images[ref] = ebiten.NewImage(1, 1)
	}
	return r
}

func (r *mapResolver) ResolveTexture(ref string) (*ebiten.Image, error) {
	img, ok := r.images[ref]
	if !ok {
		return nil, errNoTexture
	}
	return img, nil
}

// newBatch builds n chained particles with IDs starting at firstID.
func newBatch(n int, firstID ecs.EntityID, maxLife float64) []*components.ParticleComponent {
	batch := make([]*components.ParticleComponent, n)
	for i := range batch {
		batch[i] = &components.ParticleComponent{ID: firstID + ecs.EntityID(i)}
		batch[i].Reset(maxLife)
	}
	for i := 0; i+1 < n; i++ {
		batch[i].Next = batch[i+1]
	}
	return batch
}

// animOf describes an animation showing each ref for one frame.
func animOf(framerate float64, loop bool, refs ...string) particle.AnimatedParticleArt {
	art := particle.AnimatedParticleArt{Framerate: framerate, Loop: loop}
	for _, ref := range refs {
		art.Textures = append(art.Textures, particle.Frame(ref))
	}
	return art
}
