package services

import (
	"reflect"
	"storenav-backend/models"
	"testing"
)

func TestFindPathWithinCrossLane(t *testing.T) {
	pf := NewPathFinder(NewGridCache(4))
	layout := models.DefaultStoreLayout()

	path := pf.FindPath(models.Point{X: 0, Y: -60}, models.Point{X: 0, Y: 60}, layout)

	// 열 25 를 따라 행 3 → 27 직선
	if len(path) != 25 {
		t.Fatalf("len(path) = %d, want 25", len(path))
	}
	for i, p := range path {
		if p.X != 2.5 {
			t.Errorf("path[%d].X = %v, want 2.5", i, p.X)
		}
	}
	if path[0] != (models.Point{X: 2.5, Y: -57.5}) || path[len(path)-1] != (models.Point{X: 2.5, Y: 62.5}) {
		t.Errorf("path endpoints = %v..%v", path[0], path[len(path)-1])
	}
}

func TestFindPathUnreachableFallsBackToStraightLine(t *testing.T) {
	pf := NewPathFinder(nil)
	layout := models.DefaultStoreLayout()
	start := models.Point{X: 0, Y: 0}
	end := models.Point{X: 40, Y: 0}

	// 레인이 전체 높이를 막으므로 다른 통로로는 갈 수 없다
	got := pf.FindPath(start, end, layout)
	if want := []models.Point{start, end}; !reflect.DeepEqual(got, want) {
		t.Errorf("FindPath = %v, want %v", got, want)
	}
}

func narrowLaneLayout() models.StoreLayout {
	return models.StoreLayout{
		StoreWidth:         200,
		StoreHeight:        100,
		LaneCount:          4,
		LaneSpacing:        30,
		LaneThickness:      5,
		StartOffset:        15,
		WalkwayWidth:       8,
		CrossLaneBuffer:    3,
		OuterWalkwayOffset: 10,
		Orientation:        models.OrientationVertical,
	}
}

func TestFindPathAcrossLanesReturnsFallback(t *testing.T) {
	layout := narrowLaneLayout()
	start := models.Point{X: -80, Y: 0}
	end := models.Point{X: 80, Y: 0}

	got := NewPathFinder(NewGridCache(4)).FindPath(start, end, layout)
	if want := []models.Point{start, end}; !reflect.DeepEqual(got, want) {
		t.Errorf("FindPath = %v, want %v", got, want)
	}
}

func TestFindPathStaysOutOfLaneColumns(t *testing.T) {
	vertical := narrowLaneLayout()
	horizontal := narrowLaneLayout()
	horizontal.Orientation = models.OrientationHorizontal

	tests := []struct {
		name       string
		layout     models.StoreLayout
		start, end models.Point
	}{
		// 레인 1, 2 사이 열 10..13
		{"narrow gap", vertical, models.Point{X: -45, Y: -40}, models.Point{X: -35, Y: 40}},
		{"narrow gap diagonal", vertical, models.Point{X: -32, Y: 45}, models.Point{X: -48, Y: -45}},
		// 레인 3 오른쪽 열 22..39
		{"right of last lane", vertical, models.Point{X: 30, Y: -40}, models.Point{X: 90, Y: 40}},
		{"default layout gap", models.DefaultStoreLayout(), models.Point{X: -15, Y: -50}, models.Point{X: 5, Y: 50}},
		{"horizontal narrow gap", horizontal, models.Point{X: -40, Y: -45}, models.Point{X: 40, Y: -35}},
		{"horizontal default gap", horizontalLayout(), models.Point{X: 50, Y: 5}, models.Point{X: -50, Y: -15}},
	}

	pf := NewPathFinder(NewGridCache(8))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := pf.FindPath(tt.start, tt.end, tt.layout)
			if len(path) < 2 {
				t.Fatalf("len(path) = %d", len(path))
			}
			assertPointNear(t, "first point", path[0], tt.start, NavCellSize)
			assertPointNear(t, "last point", path[len(path)-1], tt.end, NavCellSize)

			// 셀 중심끼리 한 칸씩 이어져야 A* 경로다
			for i := 1; i < len(path); i++ {
				if d := path[i].DistanceTo(path[i-1]); !approxEqual(d, NavCellSize) {
					t.Fatalf("step %d length = %v, want %v", i, d, NavCellSize)
				}
			}

			g := BuildNavGrid(tt.layout)
			for i, p := range path {
				col := g.WorldToCol(tt.layout.Canonical(p).X)
				for lane := 0; lane < tt.layout.LaneCount; lane++ {
					lo, hi := g.LaneColumnSpan(tt.layout, lane)
					if col >= lo && col <= hi {
						t.Errorf("path[%d] = %v lies in lane %d columns [%d, %d]", i, p, lane, lo, hi)
					}
				}
			}
		})
	}
}

func TestFindPathHorizontalReturnsWorldPoints(t *testing.T) {
	pf := NewPathFinder(nil)
	layout := horizontalLayout()

	path := pf.FindPath(models.Point{X: -60, Y: 0}, models.Point{X: 60, Y: 0}, layout)
	if len(path) != 25 {
		t.Fatalf("len(path) = %d, want 25", len(path))
	}
	for i, p := range path {
		if p.Y != 2.5 {
			t.Errorf("path[%d].Y = %v, want 2.5", i, p.Y)
		}
	}
}

func TestFindOuterWalkwayPath(t *testing.T) {
	tests := []struct {
		name       string
		layout     models.StoreLayout
		start, end models.Point
	}{
		{"vertical", models.DefaultStoreLayout(), models.Point{X: -5, Y: 0}, models.Point{X: 35, Y: 0}},
		{"horizontal", horizontalLayout(), models.Point{X: 0, Y: -5}, models.Point{X: 0, Y: 35}},
		{"same cross lane", models.DefaultStoreLayout(), models.Point{X: -5, Y: 0}, models.Point{X: -5, Y: -40}},
	}

	pf := NewPathFinder(NewGridCache(4))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := pf.FindOuterWalkwayPath(tt.start, tt.end, tt.layout)
			if len(path) < 2 {
				t.Fatalf("len(path) = %d, want at least 2", len(path))
			}
			last := path[len(path)-1]
			if last.DistanceSqTo(tt.end) > 0.25 {
				t.Errorf("last point %v is more than 0.5 from end %v", last, tt.end)
			}
		})
	}
}

func TestFindOuterWalkwayPathPicksShorterSide(t *testing.T) {
	pf := NewPathFinder(nil)
	layout := models.DefaultStoreLayout()

	// 목적지가 아래쪽이면 하단 통로 (y = -63) 경유가 짧다
	path := pf.FindOuterWalkwayPath(models.Point{X: -5, Y: 0}, models.Point{X: -5, Y: -40}, layout)
	minY := path[0].Y
	for _, p := range path {
		if p.Y < minY {
			minY = p.Y
		}
	}
	if minY > -60 {
		t.Errorf("lowest point y = %v, want the route to reach the bottom walkway", minY)
	}
	for _, p := range path {
		if p.Y > 10 {
			t.Errorf("bottom route visits %v above the start", p)
			break
		}
	}

	if got := pf.PlanPath(models.Point{X: -5, Y: 0}, models.Point{X: -5, Y: -40}, layout, true); !reflect.DeepEqual(got, path) {
		t.Error("PlanPath(preferOuter=true) differs from FindOuterWalkwayPath")
	}
	if got := pf.PlanPath(models.Point{X: 0, Y: -60}, models.Point{X: 0, Y: 60}, layout, false); len(got) != 25 {
		t.Errorf("PlanPath(preferOuter=false) len = %d, want 25", len(got))
	}
}
