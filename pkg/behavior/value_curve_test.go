package behavior

import (
	"testing"

	"github.com/Tomortec/particle-emitter/internal/particle"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlphaBehavior_Keyframes(t *testing.T) {
	b, err := NewAlphaBehavior("0,1 1,0")
	require.NoError(t, err)

	p := newBatch(1, 1, 2)[0]
	b.InitParticles(p)
	assert.InDelta(t, 1.0, p.Alpha, 1e-9)

	p.AgePercent = 0.5
	b.UpdateParticle(p, 0.016)
	assert.InDelta(t, 0.5, p.Alpha, 1e-9)

	p.AgePercent = 1
	b.UpdateParticle(p, 0.016)
	assert.InDelta(t, 0.0, p.Alpha, 1e-9)
}

func TestAlphaBehavior_FixedValueStaysPut(t *testing.T) {
	b, err := NewAlphaBehavior("0.4")
	require.NoError(t, err)

	p := newBatch(1, 1, 2)[0]
	b.InitParticles(p)
	p.AgePercent = 0.9
	b.UpdateParticle(p, 0.016)
	assert.InDelta(t, 0.4, p.Alpha, 1e-9)
}

func TestScaleBehavior_RangePickedAtSpawn(t *testing.T) {
	b, err := NewScaleBehavior("[0.5 1.5]")
	require.NoError(t, err)

	batch := newBatch(50, 1, 1)
	b.InitParticles(batch[0])
	for _, p := range batch {
		assert.GreaterOrEqual(t, p.Scale, 0.5)
		assert.LessOrEqual(t, p.Scale, 1.5)
	}
}

func TestValueCurve_RejectsMalformed(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"empty", ""},
		{"blank", "  "},
		{"word", "big"},
		{"letter O in keyframe", "1,O"},
		{"half-parsed range", "[0.2 x]"},
		{"garbage between keyframes", "0,1 x,y 1,0"},
		{"interpolation only", "EaseIn"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewAlphaBehavior(tt.value)
			require.Error(t, err)
			assert.ErrorIs(t, err, particle.ErrInvalidValue)

			_, err = NewScaleBehavior(tt.value)
			require.Error(t, err)
			assert.ErrorIs(t, err, particle.ErrInvalidValue)
		})
	}
}
