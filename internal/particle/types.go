// Package particle provides the data structures and parsing functionality for
// animated particle art and the per-particle playback model evaluated by the
// texture behaviors.
//
// Authors describe an animation declaratively (AnimatedParticleArt, usually
// loaded from YAML). ParseAnimatedArt flattens that description into an
// immutable ParsedAnimatedParticleArt which is shared by every particle that
// plays it. Each particle then owns a small Playback cursor that selects the
// current frame from its elapsed time.
package particle

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"gopkg.in/yaml.v3"
)

// FramerateMatchLife is the framerate sentinel that stretches exactly one
// pass of the animation across the particle's lifetime.
const FramerateMatchLife = -1

// TextureResolver converts a texture reference (resource ID or file path)
// into a loaded texture. The resource manager is the production implementation.
type TextureResolver interface {
	ResolveTexture(ref string) (*ebiten.Image, error)
}

// AnimatedParticleArt is the author-facing description of a single animation.
//
// Example YAML:
//
//	framerate: 25
//	loop: true
//	textures:
//	  - {texture: IMAGE_FIRE1, count: 5}
//	  - IMAGE_FIRE2
type AnimatedParticleArt struct {
	// Framerate in frames per second. FramerateMatchLife (-1) ties the
	// framerate to the particle's lifetime.
	Framerate float64 `yaml:"framerate"`

	// Loop restarts the animation after the last frame. Defaults to false.
	Loop bool `yaml:"loop,omitempty"`

	// Textures lists the frames in order. Each entry may repeat its texture
	// Count times.
	Textures []FrameSpec `yaml:"textures"`
}

// FrameSpec is one entry of AnimatedParticleArt.Textures.
//
// In YAML an entry is either a plain scalar (the texture reference, count 1)
// or a mapping {texture, count}. A mapping without count also means 1.
// In Go, use Frame or FrameN to build entries; a literal with Count 0 is
// rejected by ParseAnimatedArt.
type FrameSpec struct {
	Texture string        // Texture reference resolved through a TextureResolver
	Image   *ebiten.Image // Already-resolved texture; takes precedence over Texture
	Count   int           // Number of consecutive frames showing this texture
}

// Frame returns a single-frame entry for ref.
func Frame(ref string) FrameSpec {
	return FrameSpec{Texture: ref, Count: 1}
}

// FrameN returns an entry that shows ref for count consecutive frames.
func FrameN(ref string, count int) FrameSpec {
	return FrameSpec{Texture: ref, Count: count}
}

// ImageFrame returns a single-frame entry for an already-loaded texture.
func ImageFrame(img *ebiten.Image) FrameSpec {
	return FrameSpec{Image: img, Count: 1}
}

// frameSpecYAML is the mapping form of a FrameSpec.
type frameSpecYAML struct {
	Texture string `yaml:"texture"`
	Count   *int   `yaml:"count"`
}

// UnmarshalYAML accepts both the scalar and the mapping form.
func (f *FrameSpec) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		f.Texture = node.Value
		f.Image = nil
		f.Count = 1
		return nil
	case yaml.MappingNode:
		var raw frameSpecYAML
		if err := node.Decode(&raw); err != nil {
			return err
		}
		f.Texture = raw.Texture
		f.Image = nil
		f.Count = 1
		if raw.Count != nil {
			f.Count = *raw.Count
		}
		return nil
	default:
		return fmt.Errorf("line %d: texture entry must be a string or {texture, count} mapping", node.Line)
	}
}

// MarshalYAML writes single frames back in the short scalar form.
func (f FrameSpec) MarshalYAML() (interface{}, error) {
	if f.Count == 1 {
		return f.Texture, nil
	}
	return frameSpecYAML{Texture: f.Texture, Count: &f.Count}, nil
}

// ParsedAnimatedParticleArt is the resolved playback model of an
// AnimatedParticleArt. It is immutable after ParseAnimatedArt returns and is
// shared read-only by every particle playing it.
type ParsedAnimatedParticleArt struct {
	Frames []*ebiten.Image // Flattened frame list, never empty

	// Framerate and Duration are zero when MatchLife is set; the per-particle
	// values are derived from the particle lifetime in NewPlayback.
	Framerate float64 // Frames per second
	Duration  float64 // len(Frames) / Framerate, in seconds

	Loop      bool
	MatchLife bool // Framerate was FramerateMatchLife
}

// FrameCount returns the number of frames after run-length expansion.
func (a *ParsedAnimatedParticleArt) FrameCount() int {
	return len(a.Frames)
}
