package models

import (
	"time"
)

// 로그 이벤트 타입
const (
	EventPathComputed  = "path_computed"
	EventRobotsStepped = "robots_stepped"
	EventTaskAssigned  = "task_assigned"
	EventTaskPhase     = "task_phase"
	EventTaskComplete  = "task_complete"
	EventSimStart      = "sim_start"
	EventSimStop       = "sim_stop"
	EventConfigSaved   = "config_saved"
)

// 로그 발생원
const (
	SourceHTTP      = "http"
	SourceRaw       = "raw"
	SourceSimulator = "simulator"
	SourceWebSocket = "websocket"
)

var knownEvents = map[string]bool{
	EventPathComputed:  true,
	EventRobotsStepped: true,
	EventTaskAssigned:  true,
	EventTaskPhase:     true,
	EventTaskComplete:  true,
	EventSimStart:      true,
	EventSimStop:       true,
	EventConfigSaved:   true,
}

var knownSources = map[string]bool{
	SourceHTTP:      true,
	SourceRaw:       true,
	SourceSimulator: true,
	SourceWebSocket: true,
}

// IsKnownEvent - 기록되는 이벤트 타입인지
func IsKnownEvent(eventType string) bool { return knownEvents[eventType] }

// IsKnownSource - 기록되는 발생원인지
func IsKnownSource(source string) bool { return knownSources[source] }

// NavLog - 내비게이션/시뮬레이션 이벤트 로그
type NavLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	EventType string    `gorm:"size:32;index" json:"event_type"`
	Source    string    `gorm:"size:32;index" json:"source"`

	// 로봇 정보 (해당될 때만)
	RobotID   string  `gorm:"size:64;index" json:"robot_id"`
	PositionX float64 `json:"position_x"`
	PositionY float64 `json:"position_y"`
	Heading   float64 `json:"heading"`

	// 경로/작업 정보
	TaskID     string  `gorm:"size:64;index" json:"task_id"`
	Phase      string  `gorm:"size:16" json:"phase"`
	TargetX    float64 `json:"target_x"`
	TargetY    float64 `json:"target_y"`
	PathPoints int     `json:"path_points"`
	PathLength float64 `json:"path_length"`
	RobotCount int     `json:"robot_count"`

	// 메타데이터
	DataJSON string `gorm:"type:text" json:"data_json"` // 원본 요청/이벤트 JSON
}
