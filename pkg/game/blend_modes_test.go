package game

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBlendMode(t *testing.T) {
	tests := []struct {
		name string
		want ebiten.Blend
	}{
		{"normal", ebiten.BlendSourceOver},
		{"", ebiten.BlendSourceOver},
		{"add", ebiten.BlendLighter},
		{"ADD", ebiten.BlendLighter},
		{" copy ", ebiten.BlendCopy},
		{"xor", ebiten.BlendXor},
		{"clear", ebiten.BlendClear},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseBlendMode(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseBlendModeCustom(t *testing.T) {
	multiply, err := ParseBlendMode("multiply")
	require.NoError(t, err)
	assert.Equal(t, ebiten.BlendFactorDestinationColor, multiply.BlendFactorSourceRGB, "multiply scales source by destination color")

	screen, err := ParseBlendMode("screen")
	require.NoError(t, err)
	assert.NotEqual(t, multiply, screen)
	assert.NotEqual(t, ebiten.BlendSourceOver, screen)
}

func TestParseBlendModeUnknown(t *testing.T) {
	_, err := ParseBlendMode("hard-light")
	assert.ErrorIs(t, err, ErrUnknownBlendMode)
}

func TestBlendModeNamesAllParse(t *testing.T) {
	names := BlendModeNames()
	require.NotEmpty(t, names)
	require.Equal(t, "normal", names[0])
	for _, name := range names {
		_, err := ParseBlendMode(name)
		assert.NoError(t, err, "listed name %q", name)
	}

	names[0] = "mutated"
	assert.Equal(t, "normal", BlendModeNames()[0], "BlendModeNames returns a copy")
}
