package services

import (
	"math"
	"storenav-backend/algorithms"
	"storenav-backend/models"
)

const (
	destinationAttempts = 50
	// laneDestinationChance - 이 값보다 큰 난수면 레인 중심 목적지
	laneDestinationChance = 0.2
	// laneEndMargin - 레인 목적지 y 범위를 줄이는 값 (양끝 합계)
	laneEndMargin = 30.0
)

// RandomDestination - 무작위 목적지 샘플링 (기준 좌표계)
//
// 약 80% 확률로 무작위 레인 중심 위의 점을 검증 없이 바로 채택하고, 나머지는 매장 전체에서
// 뽑은 점이 통로 위일 때만 채택한다. 50회 안에 채택하지 못하면 무작위 레인 중심의 y = 0.
func RandomDestination(layout models.StoreLayout, rng algorithms.RandomSource) models.Point {
	for i := 0; i < destinationAttempts; i++ {
		if rng.Float64() > laneDestinationChance {
			x := layout.LaneCenter(randomLane(layout, rng))
			usable := layout.StoreHeight - laneEndMargin
			y := rng.Float64()*usable - usable/2
			return models.Point{X: x, Y: y}
		}

		p := models.Point{
			X: rng.Float64()*layout.StoreWidth - layout.StoreWidth/2,
			Y: rng.Float64()*layout.StoreHeight - layout.StoreHeight/2,
		}
		if IsInLaneWalkway(p, layout) {
			return p
		}
	}

	return models.Point{X: layout.LaneCenter(randomLane(layout, rng)), Y: 0}
}

// randomLane - [0, LaneCount) 범위 레인 인덱스
func randomLane(layout models.StoreLayout, rng algorithms.RandomSource) int {
	if layout.LaneCount <= 0 {
		rng.Float64()
		return 0
	}
	lane := int(math.Floor(rng.Float64() * float64(layout.LaneCount)))
	return algorithms.ClampInt(lane, 0, layout.LaneCount-1)
}
