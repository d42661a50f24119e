package particle

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// frameEpsilon keeps products such as 0.3*10 from landing one frame early.
const frameEpsilon = 1e-7

// Playback is the per-particle animation cursor. It references a shared
// ParsedAnimatedParticleArt and only stores the elapsed time and the
// effective framerate, so it can be kept by value.
type Playback struct {
	Anim *ParsedAnimatedParticleArt

	// Elapsed is the position within the current pass, in seconds. It grows
	// with Advance; looping playback wraps it back into [0, Duration).
	Elapsed float64

	framerate float64 // Effective frames per second
	duration  float64 // Effective duration of one pass, in seconds
}

// NewPlayback starts anim for a particle whose lifetime is maxLife seconds.
//
// For lifetime-stretched animations the framerate is len(Frames)/maxLife so
// one full pass spans the lifetime. A stretched animation on a particle with
// maxLife <= 0 stays on its first frame.
func NewPlayback(anim *ParsedAnimatedParticleArt, maxLife float64) Playback {
	p := Playback{Anim: anim}
	if anim.MatchLife {
		if maxLife > 0 {
			p.framerate = float64(len(anim.Frames)) / maxLife
			p.duration = maxLife
		}
	} else {
		p.framerate = anim.Framerate
		p.duration = anim.Duration
	}
	return p
}

// Framerate returns the effective framerate for this particle.
func (p *Playback) Framerate() float64 {
	return p.framerate
}

// Duration returns the effective duration of one pass for this particle.
func (p *Playback) Duration() float64 {
	return p.duration
}

// FrameIndex returns the index of the frame shown at the current elapsed time.
// Looping animations wrap; others hold on their last frame.
func (p *Playback) FrameIndex() int {
	return frameIndexAt(p.Elapsed, p.framerate, len(p.Anim.Frames), p.Anim.Loop)
}

// Frame returns the texture shown at the current elapsed time.
func (p *Playback) Frame() *ebiten.Image {
	return p.Anim.Frames[p.FrameIndex()]
}

// Advance moves the cursor forward by dt seconds and returns the texture to
// display. Large steps may skip frames.
func (p *Playback) Advance(dt float64) *ebiten.Image {
	p.Elapsed += dt
	// 循环动画把 elapsed 折回一个周期内，避免长寿命粒子的浮点漂移
	if p.Anim.Loop && p.duration > 0 && p.Elapsed >= p.duration {
		p.Elapsed = math.Mod(p.Elapsed, p.duration)
	}
	return p.Frame()
}

// frameIndexAt implements the positional frame rule shared by both texture
// behaviors.
func frameIndexAt(elapsed, framerate float64, n int, loop bool) int {
	if n <= 1 || framerate <= 0 || elapsed <= 0 {
		return 0
	}
	raw := math.Floor(elapsed*framerate + frameEpsilon)
	if loop {
		return int(math.Mod(raw, float64(n)))
	}
	if raw >= float64(n-1) {
		return n - 1
	}
	return int(raw)
}
