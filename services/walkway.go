package services

import (
	"math"
	"storenav-backend/algorithms"
	"storenav-backend/models"
)

const (
	// crossLaneEdgeMargin - 레인 사이 통로의 상/하단 여백
	crossLaneEdgeMargin = 5.0
	// walkwaySideMargin - 상/하단 통로의 좌/우 여백
	walkwaySideMargin = 10.0
	// storeEdgeMargin - 스냅/바운스 목적지의 매장 경계 여백
	storeEdgeMargin = 10.0
)

// IsInLaneWalkway - 연속 좌표가 통로 위에 있는지 (기준 좌표계)
//
// (a) 인접한 두 레인 사이 통로의 중앙선에서 (spacing - thickness - buffer)/2 이내이고
// 상/하단 경계에서 5 이상 떨어져 있거나, (b) 상/하단 통로 중앙선에서 walkwayWidth/2 이내이고
// 좌/우 경계에서 10 이상 떨어져 있으면 true.
func IsInLaneWalkway(p models.Point, layout models.StoreLayout) bool {
	crossLaneWidth := layout.LaneSpacing - layout.LaneThickness - layout.CrossLaneBuffer
	yInBounds := math.Abs(p.Y) < layout.StoreHeight/2-crossLaneEdgeMargin

	for lane := 0; lane < layout.LaneCount-1; lane++ {
		mid := (layout.LaneCenter(lane) + layout.LaneCenter(lane+1)) / 2
		if math.Abs(p.X-mid) < crossLaneWidth/2 && yInBounds {
			return true
		}
	}

	topWalkwayY := layout.StoreHeight/2 - layout.WalkwayWidth
	bottomWalkwayY := -layout.StoreHeight/2 + layout.WalkwayWidth
	inBand := math.Abs(p.Y-topWalkwayY) < layout.WalkwayWidth/2 ||
		math.Abs(p.Y-bottomWalkwayY) < layout.WalkwayWidth/2

	return inBand && math.Abs(p.X) < layout.StoreWidth/2-walkwaySideMargin
}

// FindNearestValidPosition - 가장 가까운 레인 중심 x, 경계 안쪽으로 클램프한 y
func FindNearestValidPosition(p models.Point, layout models.StoreLayout) models.Point {
	nearestX := layout.LaneCenter(0)
	minDist := math.Abs(p.X - nearestX)

	for lane := 1; lane < layout.LaneCount; lane++ {
		laneX := layout.LaneCenter(lane)
		if d := math.Abs(p.X - laneX); d < minDist {
			minDist = d
			nearestX = laneX
		}
	}

	return models.Point{
		X: nearestX,
		Y: algorithms.Clamp(p.Y, -layout.StoreHeight/2+storeEdgeMargin, layout.StoreHeight/2-storeEdgeMargin),
	}
}

// IsWalkwayPosition - 월드 좌표 버전 IsInLaneWalkway
func IsWalkwayPosition(p models.Point, layout models.StoreLayout) bool {
	return IsInLaneWalkway(layout.Canonical(p), layout)
}
