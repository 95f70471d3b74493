package algorithms

import "math"

// Epsilon - 0 나눗셈 방지용 최소 분모
const Epsilon = 0.0001

// RandomSource - [0, 1) 범위 난수 공급자
//
// *rand.Rand (math/rand, math/rand/v2) 가 그대로 만족한다.
// 테스트에서는 고정된 수열을 돌려주는 구현을 넣는다.
type RandomSource interface {
	Float64() float64
}

// Clamp - value 를 [min, max] 로 제한
func Clamp(value, min, max float64) float64 {
	return math.Min(math.Max(value, min), max)
}

// ClampInt - 정수 버전 Clamp
func ClampInt(value, min, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// ShortestAngleDiff - current 에서 target 으로 가는 부호 있는 최단 각도 차이 (라디안)
func ShortestAngleDiff(target, current float64) float64 {
	diff := math.Mod(target-current+math.Pi, 2*math.Pi) - math.Pi
	if diff < -math.Pi {
		diff += 2 * math.Pi
	}
	return diff
}
