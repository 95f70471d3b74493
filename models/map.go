package models

import "time"

// Product - 선반 위 상품 (정적 장애물)
type Product struct {
	ID string  `gorm:"primaryKey;size:64" json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
	// Ordinal - 저장 요청 안에서의 순서, 조회 시 이 순서로 돌려준다
	Ordinal   int       `gorm:"not null;index" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// Position - 상품 좌표
func (p Product) Position() Point {
	return Point{X: p.X, Y: p.Y}
}

// ProductPositions - 상품 목록 → 장애물 좌표 목록
func ProductPositions(products []Product) []Point {
	points := make([]Point, len(products))
	for i, p := range products {
		points[i] = p.Position()
	}
	return points
}

// SimulationConfig - 저장된 시뮬레이션 설정 (단일 행, id = 1)
type SimulationConfig struct {
	ID              uint    `gorm:"primaryKey" json:"id"`
	ProductCount    int     `gorm:"not null" json:"product_count"`
	RobotCount      int     `gorm:"not null" json:"robot_count"`
	TrackedRobotID  *string `json:"tracked_robot_id"`
	PickupProductID *string `json:"pickup_product_id"`
	DropLane        int     `json:"drop_lane"`
	DropProgress    int     `json:"drop_progress"` // 레인 길이 대비 하차 지점 (%)

	StoreWidth         float64 `json:"store_width"`
	StoreHeight        float64 `json:"store_height"`
	LaneCount          int     `json:"lane_count"`
	LaneSpacing        float64 `json:"lane_spacing"`
	LaneThickness      float64 `json:"lane_thickness"`
	StartOffset        float64 `json:"start_offset"`
	WalkwayWidth       float64 `json:"walkway_width"`
	CrossLaneBuffer    float64 `json:"cross_lane_buffer"`
	OuterWalkwayOffset float64 `json:"outer_walkway_offset"`
	Orientation        string  `gorm:"size:16" json:"orientation"`

	UpdatedAt time.Time `json:"updated_at"`
}

// Layout - 저장된 설정에서 레이아웃 추출
func (c SimulationConfig) Layout() StoreLayout {
	layout := StoreLayout{
		StoreWidth:         c.StoreWidth,
		StoreHeight:        c.StoreHeight,
		LaneCount:          c.LaneCount,
		LaneSpacing:        c.LaneSpacing,
		LaneThickness:      c.LaneThickness,
		StartOffset:        c.StartOffset,
		WalkwayWidth:       c.WalkwayWidth,
		CrossLaneBuffer:    c.CrossLaneBuffer,
		OuterWalkwayOffset: c.OuterWalkwayOffset,
		Orientation:        OrientationVertical,
	}
	if Orientation(c.Orientation) == OrientationHorizontal {
		layout.Orientation = OrientationHorizontal
	}
	return layout
}

// ApplyLayout - 레이아웃 값을 설정 행에 복사
func (c *SimulationConfig) ApplyLayout(l StoreLayout) {
	c.StoreWidth = l.StoreWidth
	c.StoreHeight = l.StoreHeight
	c.LaneCount = l.LaneCount
	c.LaneSpacing = l.LaneSpacing
	c.LaneThickness = l.LaneThickness
	c.StartOffset = l.StartOffset
	c.WalkwayWidth = l.WalkwayWidth
	c.CrossLaneBuffer = l.CrossLaneBuffer
	c.OuterWalkwayOffset = l.OuterWalkwayOffset
	c.Orientation = string(l.Orientation)
	if c.Orientation == "" {
		c.Orientation = string(OrientationVertical)
	}
}

// SaveSimulationInput - 설정 저장 요청
type SaveSimulationInput struct {
	ProductCount    int         `json:"product_count"`
	RobotCount      int         `json:"robot_count"`
	TrackedRobotID  *string     `json:"tracked_robot_id"`
	PickupProductID *string     `json:"pickup_product_id"`
	DropLane        *int        `json:"drop_lane"`
	DropProgress    *int        `json:"drop_progress"`
	Layout          StoreLayout `json:"layout"`
	Products        []Product   `json:"products"`
}

// DropTarget - 하차 레인/진행률로 하차 지점 계산 (월드 좌표)
func (c SimulationConfig) DropTarget() Point {
	layout := c.Layout()
	lane := c.DropLane
	if lane < 0 {
		lane = 0
	}
	if layout.LaneCount > 0 && lane >= layout.LaneCount {
		lane = layout.LaneCount - 1
	}
	// 레인 옆 통로 (다음 레인과의 중간)
	x := layout.LaneCenter(lane) + layout.LaneSpacing/2
	usable := layout.StoreHeight - 30
	y := -usable/2 + usable*float64(c.DropProgress)/100
	return layout.World(Point{X: x, Y: y})
}
