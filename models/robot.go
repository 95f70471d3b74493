package models

// 로봇 외형 상수
const (
	VariantWalking = "walking"
	VariantTracked = "tracked"
	VariantDome    = "dome"
)

// 작업 단계 상수
const (
	PhaseToProduct = "toProduct" // 상품 위치로 이동 중
	PhaseToDropoff = "toDropoff" // 상품을 들고 하차 지점으로 이동 중
)

// RobotVariant - 로봇 외형 타입
type RobotVariant string

// RobotTaskPhase - 작업 단계 타입
type RobotTaskPhase string

// ========================================
// 로봇 한 틱 상태 (호출자가 소유, 값으로 전달)
// ========================================
type RobotState struct {
	Position     Point   `json:"position"`
	Destination  Point   `json:"destination"`
	Heading      float64 `json:"heading"`        // 라디안
	Speed        float64 `json:"speed"`          // 초당 이동 단위
	StuckTimerMs float64 `json:"stuck_timer_ms"` // 마지막 이동 이후 경과 시간
}

// ========================================
// 시뮬레이터 로봇
// ========================================
type Robot struct {
	ID                string       `json:"id"`
	Name              string       `json:"name"`
	Variant           RobotVariant `json:"variant"`
	State             RobotState   `json:"state"`
	CarryingProductID string       `json:"carrying_product_id,omitempty"`
	Task              *RobotTask   `json:"task,omitempty"`
}

// ========================================
// 픽업/하차 작업
// ========================================
type RobotTask struct {
	ID             string         `json:"id"`
	RobotID        string         `json:"robot_id"`
	ProductID      string         `json:"product_id"`
	DropTarget     Point          `json:"drop_target"`
	Phase          RobotTaskPhase `json:"phase"`
	IssuedAt       int64          `json:"issued_at"` // Unix ms
	Waypoints      []Point        `json:"waypoints,omitempty"`
	WaypointIndex  int            `json:"waypoint_index"`
	WaypointTarget string         `json:"waypoint_target,omitempty"` // 경로를 계획한 목표 키
}

// CurrentWaypoint - 현재 따라가야 할 웨이포인트 (없으면 false)
func (t *RobotTask) CurrentWaypoint() (Point, bool) {
	if t == nil || t.WaypointIndex < 0 || t.WaypointIndex >= len(t.Waypoints) {
		return Point{}, false
	}
	return t.Waypoints[t.WaypointIndex], true
}

// HasNextWaypoint - 현재 이후에 웨이포인트가 남아 있는지
func (t *RobotTask) HasNextWaypoint() bool {
	return t != nil && t.WaypointIndex < len(t.Waypoints)-1
}
