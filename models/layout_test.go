package models

import (
	"math"
	"testing"
)

func TestTransformCoordsIsInvolution(t *testing.T) {
	points := []Point{{X: 0, Y: 0}, {X: 12.5, Y: -40}, {X: -100, Y: 73.25}}

	for _, orientation := range []Orientation{OrientationVertical, OrientationHorizontal} {
		layout := DefaultStoreLayout()
		layout.Orientation = orientation

		for _, p := range points {
			x, y := layout.TransformCoords(p.X, p.Y)
			bx, by := layout.TransformCoords(x, y)
			if bx != p.X || by != p.Y {
				t.Errorf("%s: TransformCoords twice on %v = (%v, %v)", orientation, p, bx, by)
			}
			if got := layout.World(layout.Canonical(p)); got != p {
				t.Errorf("%s: World(Canonical(%v)) = %v", orientation, p, got)
			}
		}

		for _, a := range []float64{0, 0.3, math.Pi / 2, -2.1} {
			back := layout.TransformOrientation(layout.TransformOrientation(a))
			if math.Abs(back-a) > 1e-12 {
				t.Errorf("%s: TransformOrientation twice on %v = %v", orientation, a, back)
			}
		}
	}
}

func TestTransformCoordsHorizontalSwaps(t *testing.T) {
	layout := DefaultStoreLayout()
	layout.Orientation = OrientationHorizontal

	x, y := layout.TransformCoords(3, -7)
	if x != -7 || y != 3 {
		t.Errorf("TransformCoords(3, -7) = (%v, %v), want (-7, 3)", x, y)
	}
	if got := layout.TransformOrientation(0); math.Abs(got-math.Pi/2) > 1e-12 {
		t.Errorf("TransformOrientation(0) = %v, want π/2", got)
	}

	vertical := DefaultStoreLayout()
	if x, y := vertical.TransformCoords(3, -7); x != 3 || y != -7 {
		t.Errorf("vertical TransformCoords(3, -7) = (%v, %v), want identity", x, y)
	}
}

func TestLaneCenter(t *testing.T) {
	layout := DefaultStoreLayout()

	tests := []struct {
		lane int
		want float64
	}{
		{0, -105},
		{1, -65},
		{5, 95},
	}
	for _, tt := range tests {
		if got := layout.LaneCenter(tt.lane); got != tt.want {
			t.Errorf("LaneCenter(%d) = %v, want %v", tt.lane, got, tt.want)
		}
	}
}

func TestPathLength(t *testing.T) {
	tests := []struct {
		name   string
		points []Point
		want   float64
	}{
		{"empty", nil, 0},
		{"single", []Point{{X: 1, Y: 1}}, 0},
		{"two legs", []Point{{X: 0, Y: 0}, {X: 3, Y: 4}, {X: 3, Y: 10}}, 11},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PathLength(tt.points); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("PathLength = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRobotTaskWaypoints(t *testing.T) {
	var nilTask *RobotTask
	if _, ok := nilTask.CurrentWaypoint(); ok {
		t.Error("nil task CurrentWaypoint ok=true")
	}

	task := &RobotTask{Waypoints: []Point{{X: 1}, {X: 2}}}
	if wp, ok := task.CurrentWaypoint(); !ok || wp.X != 1 {
		t.Errorf("CurrentWaypoint = (%v, %v), want ({1 0}, true)", wp, ok)
	}
	if !task.HasNextWaypoint() {
		t.Error("HasNextWaypoint at index 0 of 2 = false")
	}
	task.WaypointIndex = 1
	if task.HasNextWaypoint() {
		t.Error("HasNextWaypoint at last index = true")
	}
}

func TestSimulationConfigDropTarget(t *testing.T) {
	cfg := SimulationConfig{DropLane: 1, DropProgress: 50}
	cfg.ApplyLayout(DefaultStoreLayout())

	// 레인 1 중심 -65 + spacing/2, 사용 구간 중앙
	if got := cfg.DropTarget(); got != (Point{X: -45, Y: 0}) {
		t.Errorf("DropTarget = %v, want {-45 0}", got)
	}

	cfg.DropLane = 99
	if got := cfg.DropTarget(); got.X != 115 {
		t.Errorf("DropTarget with lane out of range X = %v, want last lane 115", got.X)
	}

	horizontal := DefaultStoreLayout()
	horizontal.Orientation = OrientationHorizontal
	cfg.DropLane = 1
	cfg.ApplyLayout(horizontal)
	if got := cfg.DropTarget(); got != (Point{X: 0, Y: -45}) {
		t.Errorf("horizontal DropTarget = %v, want {0 -45}", got)
	}
	if !cfg.Layout().IsHorizontal() {
		t.Error("Layout() lost horizontal orientation")
	}
}
