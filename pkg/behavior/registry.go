package behavior

import (
	"errors"
	"fmt"
	"sort"

	"github.com/Tomortec/particle-emitter/internal/particle"
	"github.com/Tomortec/particle-emitter/pkg/config"
	"github.com/Tomortec/particle-emitter/pkg/game"
	"github.com/hajimehoshi/ebiten/v2"
	"gopkg.in/yaml.v3"
)

var (
	// ErrUnknownBehavior is returned when a config names an unregistered type.
	ErrUnknownBehavior = errors.New("unknown behavior type")
	// ErrDuplicateBehavior is returned when a type key is registered twice.
	ErrDuplicateBehavior = errors.New("behavior type already registered")
)

// Env carries the collaborators factories need to build behaviors.
type Env struct {
	Textures   particle.TextureResolver                 // Resolves texture references
	BlendModes func(name string) (ebiten.Blend, error) // Maps blend mode identifiers; nil means game.ParseBlendMode
}

// Factory builds a behavior from its config node. node may be empty (Kind 0)
// when the config omits the "config" key.
type Factory func(node *yaml.Node, env Env) (Behavior, error)

// Registry maps stable type keys to behavior factories. Type keys are part
// of the config format and must never change once published.
type Registry struct {
	factories map[string]Factory
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// DefaultRegistry returns a registry with every built-in behavior registered.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.mustRegister(TypeAnimatedRandom, newAnimatedRandom)
	r.mustRegister(TypeAnimatedSingle, newAnimatedSingle)
	r.mustRegister(TypeBlendMode, newBlendMode)
	r.mustRegister(TypeTextureSingle, newTextureSingle)
	r.mustRegister(TypeAlpha, newAlpha)
	r.mustRegister(TypeScale, newScale)
	return r
}

// Register adds a factory under typeKey.
func (r *Registry) Register(typeKey string, factory Factory) error {
	if typeKey == "" || factory == nil {
		return fmt.Errorf("register behavior: empty type key or nil factory")
	}
	if _, exists := r.factories[typeKey]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateBehavior, typeKey)
	}
	r.factories[typeKey] = factory
	return nil
}

func (r *Registry) mustRegister(typeKey string, factory Factory) {
	if err := r.Register(typeKey, factory); err != nil {
		panic(err)
	}
}

// Types returns the registered type keys, sorted.
func (r *Registry) Types() []string {
	keys := make([]string, 0, len(r.factories))
	for k := range r.factories {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Build constructs a single behavior from its declarative config.
func (r *Registry) Build(cfg config.BehaviorConfig, env Env) (Behavior, error) {
	factory, ok := r.factories[cfg.Type]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownBehavior, cfg.Type)
	}
	b, err := factory(&cfg.Config, env)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", cfg.Type, err)
	}
	return b, nil
}

// BuildPipeline constructs every behavior in cfgs and sorts them into a
// Pipeline. The first failure aborts the whole build.
func (r *Registry) BuildPipeline(cfgs []config.BehaviorConfig, env Env) (*Pipeline, error) {
	behaviors := make([]Behavior, 0, len(cfgs))
	for i, cfg := range cfgs {
		b, err := r.Build(cfg, env)
		if err != nil {
			return nil, fmt.Errorf("behaviors[%d]: %w", i, err)
		}
		behaviors = append(behaviors, b)
	}
	return NewPipeline(behaviors...), nil
}

// decodeNode decodes node into out, treating an absent node as empty.
func decodeNode(node *yaml.Node, out interface{}) error {
	if node == nil || node.Kind == 0 {
		return nil
	}
	if err := node.Decode(out); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}
	return nil
}

func newAnimatedRandom(node *yaml.Node, env Env) (Behavior, error) {
	var cfg struct {
		Anims []particle.AnimatedParticleArt `yaml:"anims"`
	}
	if err := decodeNode(node, &cfg); err != nil {
		return nil, err
	}
	return NewRandomAnimatedTextureBehavior(cfg.Anims, env.Textures)
}

func newAnimatedSingle(node *yaml.Node, env Env) (Behavior, error) {
	var cfg struct {
		Anim *particle.AnimatedParticleArt `yaml:"anim"`
	}
	if err := decodeNode(node, &cfg); err != nil {
		return nil, err
	}
	if cfg.Anim == nil {
		return nil, fmt.Errorf("%w: animatedSingle needs an anim", particle.ErrInvalidAnimation)
	}
	return NewSingleAnimatedTextureBehavior(*cfg.Anim, env.Textures)
}

func newBlendMode(node *yaml.Node, env Env) (Behavior, error) {
	var cfg struct {
		BlendMode string `yaml:"blendMode"`
	}
	if err := decodeNode(node, &cfg); err != nil {
		return nil, err
	}
	lookup := env.BlendModes
	if lookup == nil {
		lookup = game.ParseBlendMode
	}
	blend, err := lookup(cfg.BlendMode)
	if err != nil {
		return nil, err
	}
	return NewBlendModeBehavior(blend), nil
}

func newTextureSingle(node *yaml.Node, env Env) (Behavior, error) {
	var cfg struct {
		Texture string `yaml:"texture"`
	}
	if err := decodeNode(node, &cfg); err != nil {
		return nil, err
	}
	if cfg.Texture == "" {
		return nil, fmt.Errorf("texture cannot be empty")
	}
	if env.Textures == nil {
		return nil, fmt.Errorf("no texture resolver configured")
	}
	img, err := env.Textures.ResolveTexture(cfg.Texture)
	if err != nil {
		return nil, err
	}
	return NewSingleTextureBehavior(img), nil
}

func newAlpha(node *yaml.Node, _ Env) (Behavior, error) {
	var cfg struct {
		Alpha string `yaml:"alpha"`
	}
	if err := decodeNode(node, &cfg); err != nil {
		return nil, err
	}
	return NewAlphaBehavior(cfg.Alpha)
}

func newScale(node *yaml.Node, _ Env) (Behavior, error) {
	var cfg struct {
		Scale string `yaml:"scale"`
	}
	if err := decodeNode(node, &cfg); err != nil {
		return nil, err
	}
	return NewScaleBehavior(cfg.Scale)
}
