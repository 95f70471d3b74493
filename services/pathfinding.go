package services

import (
	"storenav-backend/algorithms"
	"storenav-backend/models"
)

// destinationSnapDistSq - 경로 끝점과 요청 목적지 사이 허용 거리 제곱 (0.5²)
const destinationSnapDistSq = 0.25

// PathFinder - 레이아웃 그리드 위 A* 경로 계획 서비스
type PathFinder struct {
	grids *GridCache
}

// NewPathFinder - PathFinder 생성 (grids 가 nil 이면 매 호출마다 그리드 생성)
func NewPathFinder(grids *GridCache) *PathFinder {
	return &PathFinder{grids: grids}
}

// FindPath - 두 월드 좌표 사이 그리드 A* 경로
//
// 반환 점들은 셀 중심 좌표다. 목표에 도달할 수 없으면 직선 [start, end] 를 그대로 돌려준다.
// 이 경우 경로가 레인을 가로지를 수 있다.
func (pf *PathFinder) FindPath(start, end models.Point, layout models.StoreLayout) []models.Point {
	path, ok := pf.findCanonical(layout.Canonical(start), layout.Canonical(end), layout)
	if !ok {
		return []models.Point{start, end}
	}
	return layout.WorldPoints(path)
}

// findCanonical - 기준 좌표계 A*. 실패 시 (직선, false)
func (pf *PathFinder) findCanonical(start, end models.Point, layout models.StoreLayout) ([]models.Point, bool) {
	grid := pf.grids.Get(layout)
	if grid.IsEmpty() {
		return []models.Point{start, end}, false
	}

	startCell := algorithms.NearestWalkable(grid.Cells, grid.WorldToCell(start))
	endCell := algorithms.NearestWalkable(grid.Cells, grid.WorldToCell(end))

	cells, found := algorithms.FindGridPath(grid.Cells, startCell, endCell)
	if !found {
		return []models.Point{start, end}, false
	}

	path := make([]models.Point, len(cells))
	for i, c := range cells {
		path[i] = grid.CellCenter(c)
	}
	return path, true
}

// FindOuterWalkwayPath - 상단/하단 외곽 통로를 경유하는 두 경로 중 짧은 쪽
//
// 각 경로는 (start → start.x 의 앵커) → (end.x 의 앵커) → end 세 구간을 이어 붙인다.
// 마지막 점이 end 에서 0.5 이상 떨어져 있으면 end 를 덧붙인다.
func (pf *PathFinder) FindOuterWalkwayPath(start, end models.Point, layout models.StoreLayout) []models.Point {
	cStart := layout.Canonical(start)
	cEnd := layout.Canonical(end)

	topY := layout.StoreHeight/2 - layout.OuterWalkwayOffset
	bottomY := -layout.StoreHeight/2 + layout.OuterWalkwayOffset

	topRoute := pf.buildOuterRoute(cStart, cEnd, topY, layout)
	bottomRoute := pf.buildOuterRoute(cStart, cEnd, bottomY, layout)

	route := topRoute
	if models.PathLength(bottomRoute) < models.PathLength(topRoute) {
		route = bottomRoute
	}

	if len(route) == 0 || route[len(route)-1].DistanceSqTo(cEnd) > destinationSnapDistSq {
		route = append(route, cEnd)
	}
	return layout.WorldPoints(route)
}

// buildOuterRoute - 앵커 y 를 경유하는 3구간 경로 (기준 좌표계)
func (pf *PathFinder) buildOuterRoute(start, end models.Point, anchorY float64, layout models.StoreLayout) []models.Point {
	leg1, _ := pf.findCanonical(start, models.Point{X: start.X, Y: anchorY}, layout)
	anchor := lastOr(leg1, models.Point{X: start.X, Y: anchorY})

	leg2, _ := pf.findCanonical(anchor, models.Point{X: end.X, Y: anchorY}, layout)
	leg2Anchor := lastOr(leg2, models.Point{X: end.X, Y: anchorY})

	leg3, _ := pf.findCanonical(leg2Anchor, end, layout)

	stitched := make([]models.Point, 0, len(leg1)+len(leg2)+len(leg3))
	stitched = append(stitched, leg1...)
	if len(leg2) > 0 {
		stitched = append(stitched, leg2[1:]...)
	}
	if len(leg3) > 0 {
		stitched = append(stitched, leg3[1:]...)
	}
	return stitched
}

// PlanPath - preferOuter 에 따라 외곽 통로 경로 또는 직접 경로
func (pf *PathFinder) PlanPath(start, end models.Point, layout models.StoreLayout, preferOuter bool) []models.Point {
	if preferOuter {
		return pf.FindOuterWalkwayPath(start, end, layout)
	}
	return pf.FindPath(start, end, layout)
}

func lastOr(points []models.Point, fallback models.Point) models.Point {
	if len(points) == 0 {
		return fallback
	}
	return points[len(points)-1]
}
