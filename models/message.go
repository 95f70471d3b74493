package models

// ========================================
// 메시지 타입 상수
// ========================================
const (
	// Server → Web
	MessageTypeRobotsUpdate = "robots_update" // 틱마다 로봇 상태 일괄 전송
	MessageTypeSimStatus    = "sim_status"    // 시뮬레이터 시작/정지
	MessageTypeTaskUpdate   = "task_update"   // 작업 단계 변경/완료
	MessageTypePathUpdate   = "path_update"   // 새 경로 계획
	MessageTypeSystemInfo   = "system_info"   // 연결 확인 등

	// Web → Server
	MessageTypeTaskCommand   = "task_command"   // 픽업/하차 작업 지시
	MessageTypeEmergencyStop = "emergency_stop" // 시뮬레이터 정지
	MessageTypeStart         = "start"          // 시뮬레이터 시작
)

// ========================================
// 공통 WebSocket 메시지 형식
// ========================================
type WebSocketMessage struct {
	Type      string      `json:"type"`
	Data      interface{} `json:"data"`
	Timestamp int64       `json:"timestamp"` // Unix timestamp (ms)
}

// ========================================
// 로봇 일괄 업데이트
// ========================================
type RobotsUpdateData struct {
	Tick   uint64  `json:"tick"`
	Robots []Robot `json:"robots"`
}

// ========================================
// 작업 지시
// ========================================
type TaskCommand struct {
	RobotID    string `json:"robot_id"`
	ProductID  string `json:"product_id"`
	DropTarget *Point `json:"drop_target,omitempty"` // 없으면 저장된 하차 레인/진행률 사용
}

// TaskUpdateData - 작업 상태 알림
type TaskUpdateData struct {
	TaskID    string         `json:"task_id"`
	RobotID   string         `json:"robot_id"`
	Phase     RobotTaskPhase `json:"phase"`
	Completed bool           `json:"completed"`
}

// ========================================
// 경로 데이터
// ========================================
type PathData struct {
	Points        []Point `json:"points"`
	Length        float64 `json:"length"`
	OuterWalkway  bool    `json:"outer_walkway"`
	ComputeMicros int64   `json:"compute_micros"`
}

// PathLength - 연속한 점 사이 거리의 합
func PathLength(points []Point) float64 {
	total := 0.0
	for i := 1; i < len(points); i++ {
		total += points[i-1].DistanceTo(points[i])
	}
	return total
}
