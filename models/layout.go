package models

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Orientation - 선반 레인 방향
type Orientation string

const (
	OrientationVertical   Orientation = "vertical"   // 레인이 y 축을 따라 세로로 놓임 (기준 좌표계)
	OrientationHorizontal Orientation = "horizontal" // x/y 축을 바꿔서 가로 레인 구현
)

// ========================================
// 매장 레이아웃
// ========================================
type StoreLayout struct {
	StoreWidth         float64     `json:"store_width" yaml:"store_width"`
	StoreHeight        float64     `json:"store_height" yaml:"store_height"`
	LaneCount          int         `json:"lane_count" yaml:"lane_count"`
	LaneSpacing        float64     `json:"lane_spacing" yaml:"lane_spacing"`
	LaneThickness      float64     `json:"lane_thickness" yaml:"lane_thickness"`
	StartOffset        float64     `json:"start_offset" yaml:"start_offset"`
	WalkwayWidth       float64     `json:"walkway_width" yaml:"walkway_width"`
	CrossLaneBuffer    float64     `json:"cross_lane_buffer" yaml:"cross_lane_buffer"`
	OuterWalkwayOffset float64     `json:"outer_walkway_offset" yaml:"outer_walkway_offset"`
	Orientation        Orientation `json:"orientation" yaml:"orientation"`
}

// DefaultStoreLayout - 기본 레이아웃 (250 x 150, 레인 6개)
func DefaultStoreLayout() StoreLayout {
	return StoreLayout{
		StoreWidth:         250,
		StoreHeight:        150,
		LaneCount:          6,
		LaneSpacing:        40,
		LaneThickness:      6,
		StartOffset:        20,
		WalkwayWidth:       10,
		CrossLaneBuffer:    4,
		OuterWalkwayOffset: 12,
		Orientation:        OrientationVertical,
	}
}

// IsHorizontal - 가로 레인 여부
func (l StoreLayout) IsHorizontal() bool {
	return l.Orientation == OrientationHorizontal
}

// LaneCenter - i 번째 레인 중심의 x 좌표 (기준 좌표계)
func (l StoreLayout) LaneCenter(i int) float64 {
	return -l.StoreWidth/2 + l.StartOffset + float64(i)*l.LaneSpacing
}

// TransformCoords - 가로 레이아웃이면 x/y 교환, 세로면 그대로
//
// 두 번 적용하면 원래 값으로 돌아온다.
func (l StoreLayout) TransformCoords(x, y float64) (float64, float64) {
	if l.IsHorizontal() {
		return y, x
	}
	return x, y
}

// TransformOrientation - 좌표 교환에 맞춘 헤딩 변환 (π/2 - angle)
func (l StoreLayout) TransformOrientation(angle float64) float64 {
	if l.IsHorizontal() {
		return math.Pi/2 - angle
	}
	return angle
}

// TransformPoint - Point 버전 TransformCoords
func (l StoreLayout) TransformPoint(p Point) Point {
	x, y := l.TransformCoords(p.X, p.Y)
	return Point{X: x, Y: y}
}

// Canonical - 월드 좌표 → 기준(세로) 좌표계
func (l StoreLayout) Canonical(p Point) Point { return l.TransformPoint(p) }

// World - 기준 좌표계 → 월드 좌표
func (l StoreLayout) World(p Point) Point { return l.TransformPoint(p) }

// CanonicalPoints - 점 목록 전체 변환 (새 슬라이스)
func (l StoreLayout) CanonicalPoints(points []Point) []Point {
	out := make([]Point, len(points))
	for i, p := range points {
		out[i] = l.TransformPoint(p)
	}
	return out
}

// WorldPoints - CanonicalPoints 의 역변환
func (l StoreLayout) WorldPoints(points []Point) []Point {
	return l.CanonicalPoints(points)
}

// ========================================
// 2D 좌표
// ========================================
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Vec - gonum 벡터로 변환
func (p Point) Vec() r2.Vec {
	return r2.Vec{X: p.X, Y: p.Y}
}

// PointFromVec - gonum 벡터 → Point
func PointFromVec(v r2.Vec) Point {
	return Point{X: v.X, Y: v.Y}
}

// DistanceTo - 두 점 사이 거리
func (p Point) DistanceTo(q Point) float64 {
	return r2.Norm(r2.Sub(q.Vec(), p.Vec()))
}

// DistanceSqTo - 두 점 사이 거리 제곱
func (p Point) DistanceSqTo(q Point) float64 {
	return r2.Norm2(r2.Sub(q.Vec(), p.Vec()))
}
