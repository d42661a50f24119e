package behavior

import "github.com/Tomortec/particle-emitter/pkg/game"

// EditorField describes one configurable field for an authoring tool.
type EditorField struct {
	Name        string      // Key inside the behavior's config mapping
	Type        string      // "animatedArt", "animatedArtList", "select", "image", "valueCurve"
	Title       string      // Display label
	Description string      // Tooltip text
	Default     interface{} // Default value, nil when required
	Options     []string    // Choices for "select" fields
}

// EditorConfig is the static editor description of a behavior type. The
// runtime never reads it.
type EditorConfig struct {
	Category string // Editor grouping, e.g. "art", "blend", "alpha"
	Title    string
	Fields   []EditorField
}

var editorConfigs = map[string]EditorConfig{
	TypeAnimatedRandom: {
		Category: "art",
		Title:    "Animated Texture (Random)",
		Fields: []EditorField{{
			Name:        "anims",
			Type:        "animatedArtList",
			Title:       "Particle Animations",
			Description: "Animation configuration to use for each particle, randomly chosen from the list.",
		}},
	},
	TypeAnimatedSingle: {
		Category: "art",
		Title:    "Animated Texture (Single)",
		Fields: []EditorField{{
			Name:        "anim",
			Type:        "animatedArt",
			Title:       "Particle Animation",
			Description: "Animation configuration to use for each particle.",
		}},
	},
	TypeBlendMode: {
		Category: "blend",
		Title:    "Blend Mode",
		Fields: []EditorField{{
			Name:        "blendMode",
			Type:        "select",
			Title:       "Blend Mode",
			Description: "Blend mode of all particles. This IS a performance hit if not all particles use the same mode.",
			Default:     "normal",
			Options:     game.BlendModeNames(),
		}},
	},
	TypeTextureSingle: {
		Category: "art",
		Title:    "Texture (Single)",
		Fields: []EditorField{{
			Name:        "texture",
			Type:        "image",
			Title:       "Particle Texture",
			Description: "Image to use for each particle.",
		}},
	},
	TypeAlpha: {
		Category: "alpha",
		Title:    "Alpha (Interpolated)",
		Fields: []EditorField{{
			Name:        "alpha",
			Type:        "valueCurve",
			Title:       "Alpha",
			Description: "Fixed value, [min max] range, or time,value keyframes over the particle lifetime.",
			Default:     "1",
		}},
	},
	TypeScale: {
		Category: "scale",
		Title:    "Scale (Interpolated)",
		Fields: []EditorField{{
			Name:        "scale",
			Type:        "valueCurve",
			Title:       "Scale",
			Description: "Fixed value, [min max] range, or time,value keyframes over the particle lifetime.",
			Default:     "1",
		}},
	},
}

// EditorConfigFor returns the editor description of a behavior type.
func EditorConfigFor(typeKey string) (EditorConfig, bool) {
	cfg, ok := editorConfigs[typeKey]
	return cfg, ok
}
