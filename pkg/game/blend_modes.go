package game

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
)

// ErrUnknownBlendMode is returned for identifiers missing from the blend table.
var ErrUnknownBlendMode = errors.New("unknown blend mode")

// 混合模式名称表（顺序即编辑器中的显示顺序）
var blendModeNames = []string{"normal", "add", "multiply", "screen", "copy", "clear", "xor", "lighter"}

var blendModes = map[string]ebiten.Blend{
	"normal": ebiten.BlendSourceOver,
	"add":    ebiten.BlendLighter,
	// 正片叠底：src*dst + dst*(1-srcA)，适用于预乘 alpha
	"multiply": {
		BlendFactorSourceRGB:        ebiten.BlendFactorDestinationColor,
		BlendFactorSourceAlpha:      ebiten.BlendFactorOne,
		BlendFactorDestinationRGB:   ebiten.BlendFactorOneMinusSourceAlpha,
		BlendFactorDestinationAlpha: ebiten.BlendFactorOneMinusSourceAlpha,
		BlendOperationRGB:           ebiten.BlendOperationAdd,
		BlendOperationAlpha:         ebiten.BlendOperationAdd,
	},
	// 滤色：src + dst*(1-src)
	"screen": {
		BlendFactorSourceRGB:        ebiten.BlendFactorOne,
		BlendFactorSourceAlpha:      ebiten.BlendFactorOne,
		BlendFactorDestinationRGB:   ebiten.BlendFactorOneMinusSourceColor,
		BlendFactorDestinationAlpha: ebiten.BlendFactorOneMinusSourceAlpha,
		BlendOperationRGB:           ebiten.BlendOperationAdd,
		BlendOperationAlpha:         ebiten.BlendOperationAdd,
	},
	"copy":    ebiten.BlendCopy,
	"clear":   ebiten.BlendClear,
	"xor":     ebiten.BlendXor,
	"lighter": ebiten.BlendLighter,
}

// ParseBlendMode maps a config identifier to an ebiten blend. Matching is
// case-insensitive and an empty name means "normal".
func ParseBlendMode(name string) (ebiten.Blend, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		key = "normal"
	}
	blend, ok := blendModes[key]
	if !ok {
		return ebiten.Blend{}, fmt.Errorf("%w: %q", ErrUnknownBlendMode, name)
	}
	return blend, nil
}

// BlendModeNames returns the accepted identifiers in display order.
func BlendModeNames() []string {
	return append([]string(nil), blendModeNames...)
}
