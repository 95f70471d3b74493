package services

import (
	"storenav-backend/models"
	"testing"
)

func TestIsInLaneWalkway(t *testing.T) {
	layout := models.DefaultStoreLayout()

	// 레인 중심 -105, -65, -25, 15, 55, 95 / 통로 중앙선 -85, -45, -5, 35, 75
	// 통로 반폭 (40-6-4)/2 = 15, 상/하단 통로 y = ±65 반폭 5
	tests := []struct {
		name string
		p    models.Point
		want bool
	}{
		{"cross lane centre", models.Point{X: -5, Y: 0}, true},
		{"cross lane inside edge", models.Point{X: 9.9, Y: 30}, true},
		{"cross lane boundary is exclusive", models.Point{X: 10, Y: 0}, false},
		{"lane centre", models.Point{X: -25, Y: 0}, false},
		{"cross lane near top edge", models.Point{X: -5, Y: 72}, false},
		{"top walkway over lane", models.Point{X: -25, Y: 65}, true},
		{"bottom walkway", models.Point{X: 95, Y: -68}, true},
		{"top walkway past side margin", models.Point{X: 120, Y: 65}, false},
		{"beyond last lane", models.Point{X: 110, Y: 0}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsInLaneWalkway(tt.p, layout); got != tt.want {
				t.Errorf("IsInLaneWalkway(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestIsWalkwayPositionHorizontal(t *testing.T) {
	layout := horizontalLayout()

	// 가로 레이아웃에서 통로는 y 축 방향으로 놓인다
	if !IsWalkwayPosition(models.Point{X: 0, Y: -5}, layout) {
		t.Error("IsWalkwayPosition({0 -5}) = false on horizontal layout")
	}
	if IsWalkwayPosition(models.Point{X: 0, Y: -25}, layout) {
		t.Error("IsWalkwayPosition({0 -25}) = true on a horizontal lane centre")
	}
}

func TestFindNearestValidPosition(t *testing.T) {
	layout := models.DefaultStoreLayout()

	tests := []struct {
		name string
		p    models.Point
		want models.Point
	}{
		{"snaps x to nearest lane", models.Point{X: -27, Y: 10}, models.Point{X: -25, Y: 10}},
		{"clamps top", models.Point{X: -27, Y: 100}, models.Point{X: -25, Y: 65}},
		{"clamps bottom", models.Point{X: 200, Y: -80}, models.Point{X: 95, Y: -65}},
		{"far left", models.Point{X: -200, Y: 0}, models.Point{X: -105, Y: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FindNearestValidPosition(tt.p, layout); got != tt.want {
				t.Errorf("FindNearestValidPosition(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}
