package services

import (
	"math"
	"storenav-backend/models"
	"testing"
)

func TestMoveToWaypoint(t *testing.T) {
	tests := []struct {
		name        string
		pos         models.Point
		heading     float64
		speed       float64
		waypoint    models.Point
		deltaMs     float64
		wantPos     models.Point
		wantHeading float64
	}{
		{
			name: "partial step", pos: models.Point{}, heading: 0, speed: 10,
			waypoint: models.Point{X: 3, Y: 4}, deltaMs: 100,
			wantPos: models.Point{X: 0.6, Y: 0.8}, wantHeading: math.Atan2(4, 3),
		},
		{
			name: "step clamps to remaining distance", pos: models.Point{}, heading: 0, speed: 100,
			waypoint: models.Point{X: 3, Y: 4}, deltaMs: 100,
			wantPos: models.Point{X: 3, Y: 4}, wantHeading: math.Atan2(4, 3),
		},
		{
			name: "already there keeps heading", pos: models.Point{X: 1, Y: 1}, heading: 2.2, speed: 10,
			waypoint: models.Point{X: 1.005, Y: 1}, deltaMs: 100,
			wantPos: models.Point{X: 1, Y: 1}, wantHeading: 2.2,
		},
		{
			name: "heading snaps to travel direction", pos: models.Point{}, heading: 1, speed: 10,
			waypoint: models.Point{X: -10, Y: 0}, deltaMs: 50,
			wantPos: models.Point{X: -0.5, Y: 0}, wantHeading: math.Pi,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos, heading := MoveToWaypoint(tt.pos, tt.heading, tt.speed, tt.waypoint, tt.deltaMs)
			assertPointNear(t, "position", pos, tt.wantPos, 1e-9)
			if !approxEqual(heading, tt.wantHeading) {
				t.Errorf("heading = %v, want %v", heading, tt.wantHeading)
			}
		})
	}
}

func TestMoveToWaypointWithCollision(t *testing.T) {
	layout := models.DefaultStoreLayout()

	t.Run("free move matches plain follower", func(t *testing.T) {
		pos, heading := MoveToWaypointWithCollision(models.Point{X: -5, Y: 0}, 0, 10, models.Point{X: -5, Y: 10}, 100, nil, layout)
		assertPointNear(t, "position", pos, models.Point{X: -5, Y: 1}, 1e-9)
		if !approxEqual(heading, math.Pi/2) {
			t.Errorf("heading = %v, want π/2", heading)
		}
	})

	t.Run("invalid origin snaps and keeps heading", func(t *testing.T) {
		pos, heading := MoveToWaypointWithCollision(models.Point{X: -27, Y: 0}, 0.7, 10, models.Point{X: 0, Y: 0}, 100, nil, layout)
		if pos != (models.Point{X: -25, Y: 0}) {
			t.Errorf("position = %v, want {-25 0}", pos)
		}
		if heading != 0.7 {
			t.Errorf("heading = %v, want 0.7", heading)
		}
	})

	t.Run("keeps x when only the y step is valid", func(t *testing.T) {
		pos, _ := MoveToWaypointWithCollision(models.Point{X: 9, Y: 0}, 0, 30, models.Point{X: 20, Y: 5}, 100, nil, layout)
		wantY := 3 * 5 / math.Hypot(11, 5)
		assertPointNear(t, "position", pos, models.Point{X: 9, Y: wantY}, 1e-9)
	})

	t.Run("both axes blocked stays put", func(t *testing.T) {
		// 상단 통로 오른쪽 끝에서 매장 밖으로
		start := models.Point{X: 114, Y: 65}
		pos, heading := MoveToWaypointWithCollision(start, 0.3, 100, models.Point{X: 130, Y: 80}, 100, nil, layout)
		if pos != start || heading != 0.3 {
			t.Errorf("MoveToWaypointWithCollision = (%v, %v), want (%v, 0.3)", pos, heading, start)
		}
	})

	t.Run("product on segment pushes away", func(t *testing.T) {
		product := models.Point{X: 5, Y: 1}
		pos, _ := MoveToWaypointWithCollision(models.Point{X: 0, Y: 0}, 0, 30, models.Point{X: 10, Y: 0}, 100, []models.Point{product}, layout)
		if d := pos.DistanceTo(product); math.Abs(d-PushDistance) > 1e-9 {
			t.Errorf("distance to product = %v, want %v", d, PushDistance)
		}
	})

	t.Run("push off the walkway cancels the move", func(t *testing.T) {
		// 밀린 점 x ≈ 10.36 은 통로 밖
		start := models.Point{X: 9.5, Y: 0}
		pos, heading := MoveToWaypointWithCollision(start, 0, 10, models.Point{X: 9.5, Y: -10}, 100, []models.Point{{X: 7.5, Y: 0}}, layout)
		if pos != start {
			t.Errorf("position = %v, want %v", pos, start)
		}
		if !approxEqual(heading, -math.Pi/2) {
			t.Errorf("heading = %v, want -π/2", heading)
		}
	})

	t.Run("horizontal layout", func(t *testing.T) {
		pos, heading := MoveToWaypointWithCollision(models.Point{X: 0, Y: -5}, 0, 10, models.Point{X: 10, Y: -5}, 100, nil, horizontalLayout())
		assertPointNear(t, "position", pos, models.Point{X: 1, Y: -5}, 1e-9)
		if !approxEqual(heading, 0) {
			t.Errorf("heading = %v, want 0", heading)
		}
	})
}

func TestHasArrived(t *testing.T) {
	tests := []struct {
		name  string
		robot models.Point
		wp    models.Point
		want  bool
	}{
		{"same point", models.Point{X: 1, Y: 1}, models.Point{X: 1, Y: 1}, true},
		{"on the radius", models.Point{}, models.Point{X: 2.5, Y: 0}, true},
		{"diagonal inside", models.Point{}, models.Point{X: 1.5, Y: 2}, true},
		{"just outside", models.Point{}, models.Point{X: 2.51, Y: 0}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasArrived(tt.robot, tt.wp); got != tt.want {
				t.Errorf("HasArrived(%v, %v) = %v, want %v", tt.robot, tt.wp, got, tt.want)
			}
		})
	}
}
