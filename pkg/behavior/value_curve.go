package behavior

import (
	"fmt"

	"github.com/Tomortec/particle-emitter/internal/particle"
	"github.com/Tomortec/particle-emitter/pkg/components"
)

// Registry keys of the value curve behaviors.
const (
	TypeAlpha = "alpha"
	TypeScale = "scale"
)

// curve is a parsed value string: either a fixed value / random range picked
// at spawn, or keyframes evaluated against the particle's AgePercent.
type curve struct {
	min, max  float64
	keyframes []particle.Keyframe
	interp    string
}

func parseCurve(s string) (curve, error) {
	min, max, keyframes, interp, err := particle.ParseValueStrict(s)
	if err != nil {
		return curve{}, err
	}
	return curve{min: min, max: max, keyframes: keyframes, interp: interp}, nil
}

func (c curve) initial() float64 {
	if len(c.keyframes) > 0 {
		return particle.EvaluateKeyframes(c.keyframes, 0, c.interp)
	}
	return particle.RandomInRange(c.min, c.max)
}

func (c curve) animated() bool {
	return len(c.keyframes) > 0
}

// AlphaBehavior drives a particle's alpha over its lifetime.
//
// Example config:
//
//	type: alpha
//	config:
//	  alpha: "0,1 70,1 1,0"
type AlphaBehavior struct {
	curve curve
}

// NewAlphaBehavior parses value with the emitter value syntax (fixed value,
// [min max] range, or keyframes).
func NewAlphaBehavior(value string) (*AlphaBehavior, error) {
	c, err := parseCurve(value)
	if err != nil {
		return nil, fmt.Errorf("alpha: %w", err)
	}
	return &AlphaBehavior{curve: c}, nil
}

// Order implements Behavior.
func (b *AlphaBehavior) Order() Order { return OrderNormal }

// InitParticles implements Behavior.
func (b *AlphaBehavior) InitParticles(first *components.ParticleComponent) {
	for p := first; p != nil; p = p.Next {
		p.Alpha = b.curve.initial()
	}
}

// UpdateParticle implements Updater.
func (b *AlphaBehavior) UpdateParticle(p *components.ParticleComponent, dt float64) {
	if b.curve.animated() {
		p.Alpha = particle.EvaluateKeyframes(b.curve.keyframes, p.AgePercent, b.curve.interp)
	}
}

// ScaleBehavior drives a particle's scale over its lifetime.
//
// Example config:
//
//	type: scale
//	config:
//	  scale: "EaseOut 0,0.2 1,1.5"
type ScaleBehavior struct {
	curve curve
}

// NewScaleBehavior parses value with the emitter value syntax.
func NewScaleBehavior(value string) (*ScaleBehavior, error) {
	c, err := parseCurve(value)
	if err != nil {
		return nil, fmt.Errorf("scale: %w", err)
	}
	return &ScaleBehavior{curve: c}, nil
}

// Order implements Behavior.
func (b *ScaleBehavior) Order() Order { return OrderNormal }

// InitParticles implements Behavior.
func (b *ScaleBehavior) InitParticles(first *components.ParticleComponent) {
	for p := first; p != nil; p = p.Next {
		p.Scale = b.curve.initial()
	}
}

// UpdateParticle implements Updater.
func (b *ScaleBehavior) UpdateParticle(p *components.ParticleComponent, dt float64) {
	if b.curve.animated() {
		p.Scale = particle.EvaluateKeyframes(b.curve.keyframes, p.AgePercent, b.curve.interp)
	}
}
