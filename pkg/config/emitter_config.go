package config

import (
	"fmt"
	"os"

	"github.com/Tomortec/particle-emitter/internal/particle"
	"gopkg.in/yaml.v3"
)

// EmitterConfig 粒子发射器配置（YAML）
//
// Example:
//
//	name: sparkle
//	lifetime: "[0.5 1.5]"
//	frequency: 0.05
//	particlesPerWave: 3
//	maxParticles: 200
//	emitterLifetime: -1
//	speed: "[40 120]"
//	angle: "[0 360]"
//	behaviors:
//	  - type: animatedSingle
//	    config:
//	      anim: {framerate: -1, textures: [IMAGE_SPARK1, IMAGE_SPARK2]}
//	  - type: blendMode
//	    config: {blendMode: add}
type EmitterConfig struct {
	Name             string           `yaml:"name"`             // 发射器名称
	Lifetime         string           `yaml:"lifetime"`         // 粒子寿命（秒），固定值或 "[min max]"
	Frequency        float64          `yaml:"frequency"`        // 两波之间的间隔（秒），0 表示一次性爆发
	ParticlesPerWave int              `yaml:"particlesPerWave"` // 每波粒子数，默认 1
	MaxParticles     int              `yaml:"maxParticles"`     // 同时存活粒子上限，0 表示不限
	EmitterLifetime  float64          `yaml:"emitterLifetime"`  // 发射持续时间（秒），<= 0 表示无限
	Speed            string           `yaml:"speed,omitempty"`  // 初速度（像素/秒），固定值或 "[min max]"
	Angle            string           `yaml:"angle,omitempty"`  // 发射角度（度），0 = 向右，90 = 向下
	Behaviors        []BehaviorConfig `yaml:"behaviors"`        // 行为列表（顺序即注册顺序）
}

// BehaviorConfig 单个行为的声明式配置
// Config is kept as a raw node; the behavior registry decodes it into the
// type-specific structure.
type BehaviorConfig struct {
	Type   string    `yaml:"type"`             // 稳定的注册表键，例如 "animatedRandom"
	Config yaml.Node `yaml:"config,omitempty"` // 行为参数
}

// LifetimeRange returns the parsed particle lifetime range in seconds.
func (c *EmitterConfig) LifetimeRange() (min, max float64) {
	min, max, _, _ = particle.ParseValue(c.Lifetime)
	return min, max
}

// SpeedRange returns the launch speed range in pixels per second.
func (c *EmitterConfig) SpeedRange() (min, max float64) {
	min, max, _, _ = particle.ParseValue(c.Speed)
	return min, max
}

// AngleRange returns the launch angle range in degrees.
func (c *EmitterConfig) AngleRange() (min, max float64) {
	min, max, _, _ = particle.ParseValue(c.Angle)
	return min, max
}

// LoadEmitterConfig 从 YAML 文件加载发射器配置
func LoadEmitterConfig(filePath string) (*EmitterConfig, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read emitter config %s: %w", filePath, err)
	}

	config, err := ParseEmitterConfig(data)
	if err != nil {
		return nil, fmt.Errorf("emitter config %s: %w", filePath, err)
	}
	return config, nil
}

// ParseEmitterConfig 解析并校验 YAML 格式的发射器配置
func ParseEmitterConfig(data []byte) (*EmitterConfig, error) {
	var config EmitterConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse emitter YAML: %w", err)
	}

	if config.ParticlesPerWave == 0 {
		config.ParticlesPerWave = 1
	}

	if err := validateEmitterConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid emitter config: %w", err)
	}
	return &config, nil
}

// validateEmitterConfig 验证配置的有效性
func validateEmitterConfig(config *EmitterConfig) error {
	min, max, err := parseRange("lifetime", config.Lifetime)
	if err != nil {
		return err
	}
	if min <= 0 || max < min {
		return fmt.Errorf("lifetime must be a positive value or [min max] range, got %q", config.Lifetime)
	}
	if config.Frequency < 0 {
		return fmt.Errorf("frequency must be >= 0, got %v", config.Frequency)
	}
	if config.Speed != "" {
		lo, hi, err := parseRange("speed", config.Speed)
		if err != nil {
			return err
		}
		if hi < lo {
			return fmt.Errorf("speed range is inverted: %q", config.Speed)
		}
	}
	if config.Angle != "" {
		if _, _, err := parseRange("angle", config.Angle); err != nil {
			return err
		}
	}
	if config.ParticlesPerWave < 0 {
		return fmt.Errorf("particlesPerWave must be >= 0 (0 means 1), got %d", config.ParticlesPerWave)
	}
	if config.MaxParticles < 0 {
		return fmt.Errorf("maxParticles must be >= 0, got %d", config.MaxParticles)
	}
	if len(config.Behaviors) == 0 {
		return fmt.Errorf("behaviors cannot be empty")
	}
	for i, b := range config.Behaviors {
		if b.Type == "" {
			return fmt.Errorf("behaviors[%d]: type cannot be empty", i)
		}
	}
	return nil
}

// parseRange 解析固定值或 "[min max]"，不接受关键帧
func parseRange(field, value string) (min, max float64, err error) {
	min, max, keyframes, _, err := particle.ParseValueStrict(value)
	if err != nil {
		return 0, 0, fmt.Errorf("%s: %w", field, err)
	}
	if len(keyframes) > 0 {
		return 0, 0, fmt.Errorf("%s: keyframes are not allowed here, got %q", field, value)
	}
	return min, max, nil
}
