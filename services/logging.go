package services

import (
	"fmt"
	"log"
	"storenav-backend/models"
	"sync"
	"time"
)

// 로깅 버퍼 (비동기 일괄 처리)
type LogBuffer struct {
	logs      []models.NavLog
	mu        sync.Mutex
	flushSize int           // 일괄 저장 크기
	flushTime time.Duration // 자동 플러시 시간
	stopChan  chan bool
	done      chan struct{}
}

var logBuffer *LogBuffer

// InitLogging - 로깅 시스템 초기화
func InitLogging(flushSize int, flushInterval time.Duration) {
	if flushSize <= 0 {
		flushSize = 50
	}
	if flushInterval <= 0 {
		flushInterval = 10 * time.Second
	}

	logBuffer = &LogBuffer{
		logs:      make([]models.NavLog, 0, flushSize*2),
		flushSize: flushSize,
		flushTime: flushInterval,
		stopChan:  make(chan bool),
		done:      make(chan struct{}),
	}

	// 자동 플러시 고루틴 시작
	go logBuffer.autoFlush()

	log.Printf("✅ 로깅 시스템 초기화 완료 (flushSize: %d, flushInterval: %v)", flushSize, flushInterval)
}

// autoFlush - 주기적 로그 저장
func (lb *LogBuffer) autoFlush() {
	ticker := time.NewTicker(lb.flushTime)
	defer ticker.Stop()
	defer close(lb.done)

	for {
		select {
		case <-ticker.C:
			lb.Flush()
		case <-lb.stopChan:
			lb.Flush() // 종료 시 남은 로그 저장
			return
		}
	}
}

// AddLog - 로그 버퍼에 추가 (비동기)
func AddLog(logEntry models.NavLog) {
	lb := logBuffer
	if lb == nil {
		return
	}
	if logEntry.CreatedAt.IsZero() {
		logEntry.CreatedAt = time.Now()
	}

	lb.mu.Lock()
	lb.logs = append(lb.logs, logEntry)
	size := len(lb.logs)
	lb.mu.Unlock()

	// 버퍼 크기가 차면 즉시 플러시
	if size >= lb.flushSize {
		go lb.Flush()
	}
}

// Pending - 아직 저장되지 않은 로그 수
func (lb *LogBuffer) Pending() int {
	lb.mu.Lock()
	defer lb.mu.Unlock()
	return len(lb.logs)
}

// Flush - 버퍼의 모든 로그를 DB에 저장
func (lb *LogBuffer) Flush() {
	lb.mu.Lock()
	if len(lb.logs) == 0 {
		lb.mu.Unlock()
		return
	}

	// 로그 복사 및 버퍼 초기화
	logsToSave := make([]models.NavLog, len(lb.logs))
	copy(logsToSave, lb.logs)
	lb.logs = lb.logs[:0]
	lb.mu.Unlock()

	// DB 일괄 저장
	if db != nil {
		if err := db.CreateInBatches(logsToSave, 100).Error; err != nil {
			log.Printf("❌ 로그 저장 실패: %v", err)
		}
	}
}

// LogPathComputed - 경로 계산 로그
func LogPathComputed(source string, start, end models.Point, path []models.Point, outer bool) {
	phase := "grid"
	if outer {
		phase = "outer"
	}
	AddLog(models.NavLog{
		EventType:  models.EventPathComputed,
		Source:     source,
		PositionX:  start.X,
		PositionY:  start.Y,
		TargetX:    end.X,
		TargetY:    end.Y,
		Phase:      phase,
		PathPoints: len(path),
		PathLength: models.PathLength(path),
	})
}

// LogRobotsStepped - 일괄 스텝 호출 로그
func LogRobotsStepped(source string, robotCount int) {
	AddLog(models.NavLog{
		EventType:  models.EventRobotsStepped,
		Source:     source,
		RobotCount: robotCount,
	})
}

// LogTaskAssigned - 작업 할당 로그
func LogTaskAssigned(task *models.RobotTask, pos models.Point) {
	target := lastOr(task.Waypoints, task.DropTarget)
	AddLog(models.NavLog{
		EventType:  models.EventTaskAssigned,
		Source:     models.SourceSimulator,
		RobotID:    task.RobotID,
		PositionX:  pos.X,
		PositionY:  pos.Y,
		TaskID:     task.ID,
		Phase:      string(task.Phase),
		TargetX:    target.X,
		TargetY:    target.Y,
		PathPoints: len(task.Waypoints),
		PathLength: models.PathLength(task.Waypoints),
	})
}

// LogTaskPhase - 작업 단계 전환 로그
func LogTaskPhase(task *models.RobotTask, pos models.Point, heading float64) {
	target := lastOr(task.Waypoints, task.DropTarget)
	AddLog(models.NavLog{
		EventType:  models.EventTaskPhase,
		Source:     models.SourceSimulator,
		RobotID:    task.RobotID,
		PositionX:  pos.X,
		PositionY:  pos.Y,
		Heading:    heading,
		TaskID:     task.ID,
		Phase:      string(task.Phase),
		TargetX:    target.X,
		TargetY:    target.Y,
		PathPoints: len(task.Waypoints),
	})
}

// LogTaskComplete - 작업 완료 로그
func LogTaskComplete(task *models.RobotTask, pos models.Point) {
	AddLog(models.NavLog{
		EventType: models.EventTaskComplete,
		Source:    models.SourceSimulator,
		RobotID:   task.RobotID,
		PositionX: pos.X,
		PositionY: pos.Y,
		TaskID:    task.ID,
		Phase:     string(task.Phase),
	})
}

// LogSimEvent - 시뮬레이터/설정 이벤트 로그
func LogSimEvent(eventType, source string, robotCount int, dataJSON string) {
	AddLog(models.NavLog{
		EventType:  eventType,
		Source:     source,
		RobotCount: robotCount,
		DataJSON:   dataJSON,
	})
}

// LogQuery - 로그 조회 조건 (빈 값은 조건에서 빠진다)
type LogQuery struct {
	RobotID   string
	TaskID    string
	Source    string
	EventType string
	Since     time.Time
	Until     time.Time
	Limit     int
	// Ascending - 작업 타임라인처럼 오래된 것부터
	Ascending bool
}

// QueryLogs - 조건에 맞는 로그 조회
func QueryLogs(q LogQuery) ([]models.NavLog, error) {
	if db == nil {
		return nil, ErrDatabaseNotReady
	}

	query := db.Model(&models.NavLog{})
	if q.RobotID != "" {
		query = query.Where("robot_id = ?", q.RobotID)
	}
	if q.TaskID != "" {
		query = query.Where("task_id = ?", q.TaskID)
	}
	if q.Source != "" {
		query = query.Where("source = ?", q.Source)
	}
	if q.EventType != "" {
		query = query.Where("event_type = ?", q.EventType)
	}
	if !q.Since.IsZero() {
		query = query.Where("created_at >= ?", q.Since)
	}
	if !q.Until.IsZero() {
		query = query.Where("created_at <= ?", q.Until)
	}
	if q.Limit > 0 {
		query = query.Limit(q.Limit)
	}

	order := "created_at DESC, id DESC"
	if q.Ascending {
		order = "created_at ASC, id ASC"
	}

	var logs []models.NavLog
	err := query.Order(order).Find(&logs).Error
	return logs, err
}

// GetLogStats - 로그 통계
func GetLogStats(hours int) (map[string]interface{}, error) {
	if db == nil {
		return nil, ErrDatabaseNotReady
	}
	since := time.Now().Add(-time.Duration(hours) * time.Hour)

	var totalLogs int64
	if err := db.Model(&models.NavLog{}).
		Where("created_at >= ?", since).
		Count(&totalLogs).Error; err != nil {
		return nil, err
	}

	// 이벤트 타입별 카운트
	var eventCounts []struct {
		EventType string
		Count     int64
	}
	if err := db.Model(&models.NavLog{}).
		Select("event_type, COUNT(*) as count").
		Where("created_at >= ?", since).
		Group("event_type").
		Scan(&eventCounts).Error; err != nil {
		return nil, err
	}

	eventMap := make(map[string]int64)
	for _, ec := range eventCounts {
		eventMap[ec.EventType] = ec.Count
	}

	return map[string]interface{}{
		"total_logs":   totalLogs,
		"event_counts": eventMap,
		"time_range":   fmt.Sprintf("Last %d hours", hours),
	}, nil
}

// StopLogging - 로깅 시스템 종료 (남은 로그 저장까지 대기)
func StopLogging() {
	lb := logBuffer
	if lb == nil {
		return
	}
	lb.stopChan <- true
	<-lb.done
	logBuffer = nil
	log.Println("🛑 로깅 시스템 종료")
}
