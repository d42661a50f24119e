package particle

import (
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// ErrInvalidAnimation is returned (wrapped) when an animation description
// cannot produce a playable animation.
var ErrInvalidAnimation = errors.New("invalid animation")

// ParseAnimatedArt resolves an animation description into its playback model.
//
// Every texture entry is repeated Count times; string references are
// resolved through resolver. Errors returned by resolver are passed through
// unchanged.
//
// Returns an error wrapping ErrInvalidAnimation when:
//   - the flattened frame list is empty
//   - an entry has Count <= 0 or neither a texture reference nor an image
//   - Framerate is neither FramerateMatchLife nor > 0
//
// Example usage:
//
//	anim, err := ParseAnimatedArt(AnimatedParticleArt{
//	    Framerate: 2,
//	    Loop:      true,
//	    Textures:  []FrameSpec{FrameN("a", 2), Frame("b")},
//	}, rm)
//	// anim.Frames = [a a b], anim.Duration = 1.5
func ParseAnimatedArt(art AnimatedParticleArt, resolver TextureResolver) (*ParsedAnimatedParticleArt, error) {
	total := 0
	for i, spec := range art.Textures {
		if spec.Count <= 0 {
			return nil, fmt.Errorf("%w: texture %d has count %d", ErrInvalidAnimation, i, spec.Count)
		}
		if spec.Image == nil && spec.Texture == "" {
			return nil, fmt.Errorf("%w: texture %d has no texture reference", ErrInvalidAnimation, i)
		}
		total += spec.Count
	}
	if total == 0 {
		return nil, fmt.Errorf("%w: no frames", ErrInvalidAnimation)
	}

	parsed := &ParsedAnimatedParticleArt{Loop: art.Loop}

	switch {
	case art.Framerate == FramerateMatchLife:
		parsed.MatchLife = true
	case art.Framerate > 0:
		parsed.Framerate = art.Framerate
		parsed.Duration = float64(total) / art.Framerate
	default:
		return nil, fmt.Errorf("%w: framerate %v must be > 0 or %d", ErrInvalidAnimation, art.Framerate, FramerateMatchLife)
	}

	parsed.Frames = make([]*ebiten.Image, 0, total)
	for i, spec := range art.Textures {
		img := spec.Image
		if img == nil {
			if resolver == nil {
				return nil, fmt.Errorf("%w: texture %d (%q) needs a texture resolver", ErrInvalidAnimation, i, spec.Texture)
			}
			var err error
			img, err = resolver.ResolveTexture(spec.Texture)
			if err != nil {
				return nil, err
			}
			if img == nil {
				return nil, fmt.Errorf("%w: texture %d (%q) resolved to nil", ErrInvalidAnimation, i, spec.Texture)
			}
		}
		for n := 0; n < spec.Count; n++ {
			parsed.Frames = append(parsed.Frames, img)
		}
	}

	return parsed, nil
}
