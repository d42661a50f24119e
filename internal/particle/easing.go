package particle

// Easing functions for keyframe interpolation. Each maps progress t in
// [0, 1] to eased progress in [0, 1].
//
// 参考：https://easings.net/

// EaseLinear 线性（匀速）
func EaseLinear(t float64) float64 {
	return t
}

// EaseInQuad 二次方缓入：开始慢，结束快。f(t) = t²
func EaseInQuad(t float64) float64 {
	return t * t
}

// EaseOutQuad 二次方缓出：开始快，结束慢。f(t) = 1 - (1-t)²
func EaseOutQuad(t float64) float64 {
	return 1 - (1-t)*(1-t)
}

// EaseSmoothstep 两端缓、中间快的弱 S 曲线。f(t) = t²(3 - 2t)
func EaseSmoothstep(t float64) float64 {
	return t * t * (3 - 2*t)
}

// Lerp 线性插值：t=0 返回 a，t=1 返回 b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// easingFor returns the easing function of an interpolation keyword.
// Unknown or empty keywords are linear.
func easingFor(interpolation string) func(float64) float64 {
	switch interpolation {
	case InterpEaseIn:
		return EaseInQuad
	case InterpEaseOut:
		return EaseOutQuad
	case InterpFastInOutWeak:
		return EaseSmoothstep
	default:
		return EaseLinear
	}
}
