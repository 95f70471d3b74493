package services

import (
	"storenav-backend/models"
	"testing"
)

func TestRandomDestination(t *testing.T) {
	layout := models.DefaultStoreLayout()

	tests := []struct {
		name   string
		values []float64
		want   models.Point
	}{
		// 0.9 > 0.2 → 레인 floor(0.5*6)=3, y = 0.5*120 - 60
		{"lane centre branch", []float64{0.9, 0.5, 0.5}, models.Point{X: 15, Y: 0}},
		{"lane centre bottom of range", []float64{0.9, 0, 0}, models.Point{X: -105, Y: -60}},
		// 0.1 ≤ 0.2 → 매장 전체에서 (0.48*250-125, 0.5*150-75) = (-5, 0), 통로 위
		{"walkway sample accepted", []float64{0.1, 0.48, 0.5}, models.Point{X: -5, Y: 0}},
		// 첫 샘플 (-125, -75) 은 통로 밖, 두 번째 시도에서 레인 분기
		{"rejected sample retries", []float64{0.1, 0, 0, 0.9, 0.99, 1}, models.Point{X: 95, Y: 60}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rng := &scriptedRand{values: tt.values}
			got := RandomDestination(layout, rng)
			assertPointNear(t, "RandomDestination", got, tt.want, 1e-9)
		})
	}
}

func TestRandomDestinationFallback(t *testing.T) {
	layout := models.DefaultStoreLayout()

	// 항상 0 이면 50번 모두 (-125, -75) 를 뽑아 실패 → 레인 0 중심, y = 0
	rng := &scriptedRand{fallback: 0}
	got := RandomDestination(layout, rng)
	if got != (models.Point{X: -105, Y: 0}) {
		t.Errorf("RandomDestination fallback = %v, want {-105 0}", got)
	}
	if want := destinationAttempts*3 + 1; rng.calls != want {
		t.Errorf("random calls = %d, want %d", rng.calls, want)
	}
}

func TestRandomDestinationStaysInStore(t *testing.T) {
	layout := models.DefaultStoreLayout()
	rng := NewRandomSource(42)

	for i := 0; i < 500; i++ {
		p := RandomDestination(layout, rng)
		if p.X < -layout.StoreWidth/2 || p.X > layout.StoreWidth/2 ||
			p.Y < -layout.StoreHeight/2 || p.Y > layout.StoreHeight/2 {
			t.Fatalf("RandomDestination = %v, outside the store", p)
		}
	}
}
