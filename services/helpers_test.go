package services

import (
	"math"
	"storenav-backend/models"
	"testing"
)

// scriptedRand - 정해진 수열을 돌려주고 다 쓰면 fallback 반환
type scriptedRand struct {
	values   []float64
	fallback float64
	calls    int
}

func (s *scriptedRand) Float64() float64 {
	s.calls++
	if len(s.values) == 0 {
		return s.fallback
	}
	v := s.values[0]
	s.values = s.values[1:]
	return v
}

// laneThreeMiddle - RandomDestination 이 레인 3 중심 (15, 0) 을 고르게 하는 수열
func laneThreeMiddle() *scriptedRand {
	return &scriptedRand{values: []float64{0.9, 0.5, 0.5}, fallback: 0.5}
}

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func assertPointNear(t *testing.T, label string, got, want models.Point, tol float64) {
	t.Helper()
	if got.DistanceTo(want) > tol {
		t.Errorf("%s = %v, want %v (±%v)", label, got, want, tol)
	}
}

func horizontalLayout() models.StoreLayout {
	l := models.DefaultStoreLayout()
	l.Orientation = models.OrientationHorizontal
	return l
}
