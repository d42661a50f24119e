package particle

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"strconv"
	"strings"
)

// Keyframe is a single point of a value curve over the particle lifetime.
type Keyframe struct {
	Time  float64 // Normalized lifetime fraction (0-1)
	Value float64 // Value at this keyframe
}

// Interpolation modes understood by EvaluateKeyframes.
const (
	InterpLinear        = "Linear"
	InterpEaseIn        = "EaseIn"
	InterpEaseOut       = "EaseOut"
	InterpFastInOutWeak = "FastInOutWeak"
)

var interpolationKeywords = []string{InterpLinear, InterpEaseIn, InterpEaseOut, InterpFastInOutWeak}

// ErrInvalidValue is returned (wrapped) by ParseValueStrict for malformed
// value strings.
var ErrInvalidValue = errors.New("invalid value")

// ParseValueStrict parses a value string used by emitter and behavior configs.
// Supported formats:
//   - Fixed value: "1.5" → min=1.5, max=1.5
//   - Range: "[0.7 0.9]" → min=0.7, max=0.9
//   - Keyframes: "0,1 1,0" → time,value pairs; a time > 1 is a percentage ("0,1 70,0")
//   - Interpolation: "EaseOut 0,1 1,0" → keyframes with interpolation="EaseOut"
//
// Every token must parse; an empty string, a half-parsed range or a bad
// keyframe pair returns an error wrapping ErrInvalidValue.
func ParseValueStrict(s string) (min, max float64, keyframes []Keyframe, interpolation string, err error) {
	raw := s
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, 0, nil, "", fmt.Errorf("%w: empty value", ErrInvalidValue)
	}

	// 范围格式 "[min max]" 或 "[value]"
	if strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]") {
		parts := strings.Fields(strings.TrimSuffix(strings.TrimPrefix(s, "["), "]"))
		switch len(parts) {
		case 2:
			lo, err1 := strconv.ParseFloat(parts[0], 64)
			hi, err2 := strconv.ParseFloat(parts[1], 64)
			if err1 == nil && err2 == nil {
				return lo, hi, nil, "", nil
			}
		case 1:
			if v, err := strconv.ParseFloat(parts[0], 64); err == nil {
				return v, v, nil, "", nil
			}
		}
		return 0, 0, nil, "", fmt.Errorf("%w: malformed range %q", ErrInvalidValue, raw)
	}

	for _, keyword := range interpolationKeywords {
		if strings.Contains(s, keyword) {
			interpolation = keyword
			s = strings.TrimSpace(strings.ReplaceAll(s, keyword, ""))
			break
		}
	}

	if strings.Contains(s, ",") {
		parts := strings.Fields(s)
		keyframes = make([]Keyframe, 0, len(parts))
		for _, part := range parts {
			pair := strings.Split(part, ",")
			if len(pair) != 2 {
				return 0, 0, nil, "", fmt.Errorf("%w: keyframe %q in %q is not time,value", ErrInvalidValue, part, raw)
			}
			t, err1 := strconv.ParseFloat(pair[0], 64)
			v, err2 := strconv.ParseFloat(pair[1], 64)
			if err1 != nil || err2 != nil {
				return 0, 0, nil, "", fmt.Errorf("%w: keyframe %q in %q is not numeric", ErrInvalidValue, part, raw)
			}
			if t > 1 {
				t /= 100.0 // 百分比时间
			}
			keyframes = append(keyframes, Keyframe{Time: t, Value: v})
		}
		return 0, 0, keyframes, interpolation, nil
	}

	if interpolation != "" {
		return 0, 0, nil, "", fmt.Errorf("%w: %s needs keyframes in %q", ErrInvalidValue, interpolation, raw)
	}
	v, perr := strconv.ParseFloat(s, 64)
	if perr != nil {
		return 0, 0, nil, "", fmt.Errorf("%w: %q is not a number", ErrInvalidValue, raw)
	}
	return v, v, nil, "", nil
}

// ParseValue is ParseValueStrict for values already validated at load
// time. Malformed input yields zero values.
func ParseValue(s string) (min, max float64, keyframes []Keyframe, interpolation string) {
	min, max, keyframes, interpolation, err := ParseValueStrict(s)
	if err != nil {
		return 0, 0, nil, ""
	}
	return min, max, keyframes, interpolation
}

// EvaluateKeyframes returns the value of the curve at normalized time t.
// Keyframes must be sorted by Time. t is clamped to [0, 1].
func EvaluateKeyframes(keyframes []Keyframe, t float64, interpolation string) float64 {
	if len(keyframes) == 0 {
		return 0
	}
	if len(keyframes) == 1 {
		return keyframes[0].Value
	}

	t = math.Max(0, math.Min(1, t))
	if t <= keyframes[0].Time {
		return keyframes[0].Value
	}

	for i := 0; i < len(keyframes)-1; i++ {
		k0 := keyframes[i]
		k1 := keyframes[i+1]
		if t < k0.Time || t > k1.Time {
			continue
		}
		span := k1.Time - k0.Time
		if span <= 0 {
			return k1.Value
		}
		ratio := easingFor(interpolation)((t - k0.Time) / span)
		return Lerp(k0.Value, k1.Value, ratio)
	}

	return keyframes[len(keyframes)-1].Value
}

// RandomInRange returns a random float64 in the range [min, max].
func RandomInRange(min, max float64) float64 {
	if min >= max {
		return min
	}
	return min + rand.Float64()*(max-min)
}
