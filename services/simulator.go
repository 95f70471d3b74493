package services

import (
	"errors"
	"fmt"
	"log"
	"storenav-backend/algorithms"
	"storenav-backend/models"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	ErrRobotNotFound   = errors.New("로봇을 찾을 수 없습니다")
	ErrProductNotFound = errors.New("상품을 찾을 수 없습니다")
)

// StoreSimulator - 매장 로봇 시뮬레이터
//
// 작업이 없는 로봇은 UpdateRobots 로 자율 주행하고, 작업을 받은 로봇 하나는
// 외곽 통로 경로를 웨이포인트로 따라간다.
type StoreSimulator struct {
	IsRunning     bool
	broadcastFunc func(models.WebSocketMessage)

	pathFinder *PathFinder
	rng        algorithms.RandomSource
	tick       time.Duration

	// 시뮬레이션 상태
	layout      models.StoreLayout
	products    []models.Product
	productByID map[string]models.Product
	obstacles   []models.Point
	robots      []models.Robot
	dropTarget  models.Point
	tickCount   uint64

	// 제어
	stopChan chan bool
	mu       sync.RWMutex
}

// NewStoreSimulator - 시뮬레이터 생성
func NewStoreSimulator(
	pathFinder *PathFinder,
	rng algorithms.RandomSource,
	tick time.Duration,
	broadcastFunc func(models.WebSocketMessage),
) *StoreSimulator {
	if pathFinder == nil {
		pathFinder = NewPathFinder(NewGridCache(8))
	}
	if tick <= 0 {
		tick = time.Duration(DefaultTickMs) * time.Millisecond
	}
	return &StoreSimulator{
		broadcastFunc: broadcastFunc,
		pathFinder:    pathFinder,
		rng:           rng,
		tick:          tick,
		layout:        models.DefaultStoreLayout(),
		productByID:   map[string]models.Product{},
		stopChan:      make(chan bool),
	}
}

// Load - 레이아웃/상품/로봇 교체 (진행 중인 작업은 사라진다)
func (s *StoreSimulator) Load(layout models.StoreLayout, products []models.Product, robots []models.Robot, dropTarget models.Point) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.layout = layout
	s.products = products
	s.productByID = make(map[string]models.Product, len(products))
	for _, p := range products {
		s.productByID[p.ID] = p
	}
	s.obstacles = models.ProductPositions(products)
	s.robots = robots
	s.dropTarget = dropTarget
	s.tickCount = 0

	log.Printf("🗺️ 시뮬레이션 로드: 상품 %d개, 로봇 %d대", len(products), len(robots))
}

// Start - 시뮬레이션 시작
func (s *StoreSimulator) Start() {
	s.mu.Lock()
	if s.IsRunning {
		s.mu.Unlock()
		return
	}
	s.IsRunning = true
	robotCount := len(s.robots)
	s.mu.Unlock()

	log.Println("🚀 매장 시뮬레이터 시작")
	LogSimEvent(models.EventSimStart, models.SourceSimulator, robotCount, "")
	s.broadcastStatus(true)

	go s.runSimulation()
}

// Stop - 시뮬레이션 중지
func (s *StoreSimulator) Stop() {
	s.mu.Lock()
	if !s.IsRunning {
		s.mu.Unlock()
		return
	}
	s.IsRunning = false
	robotCount := len(s.robots)
	s.mu.Unlock()

	s.stopChan <- true
	log.Println("🛑 매장 시뮬레이터 중지")
	LogSimEvent(models.EventSimStop, models.SourceSimulator, robotCount, "")
	s.broadcastStatus(false)
}

// Running - 실행 중 여부
func (s *StoreSimulator) Running() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.IsRunning
}

// runSimulation - 시뮬레이션 메인 루프
func (s *StoreSimulator) runSimulation() {
	ticker := time.NewTicker(s.tick)
	defer ticker.Stop()

	deltaMs := float64(s.tick) / float64(time.Millisecond)

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.Step(deltaMs)
		}
	}
}

// Step - 한 틱 진행 후 로봇 상태 브로드캐스트
func (s *StoreSimulator) Step(deltaMs float64) {
	if deltaMs <= 0 {
		deltaMs = DefaultTickMs
	}

	s.mu.Lock()
	s.tickCount++
	events := s.stepLocked(deltaMs)
	msg := models.WebSocketMessage{
		Type: models.MessageTypeRobotsUpdate,
		Data: models.RobotsUpdateData{
			Tick:   s.tickCount,
			Robots: cloneRobots(s.robots),
		},
		Timestamp: time.Now().UnixMilli(),
	}
	s.mu.Unlock()

	s.broadcast(msg)
	for _, ev := range events {
		s.broadcast(ev)
	}
}

// stepLocked - 자율 주행 로봇 일괄 스텝 + 작업 로봇 웨이포인트 이동 (mu 보유 상태)
func (s *StoreSimulator) stepLocked(deltaMs float64) []models.WebSocketMessage {
	var events []models.WebSocketMessage

	// 1. 작업 로봇 경로 준비
	for i := range s.robots {
		if s.robots[i].Task != nil {
			s.ensureTaskPath(&s.robots[i])
		}
	}

	// 2. 자율 주행 로봇
	autopilot := make([]int, 0, len(s.robots))
	states := make([]models.RobotState, 0, len(s.robots))
	for i, r := range s.robots {
		if r.Task == nil {
			autopilot = append(autopilot, i)
			states = append(states, r.State)
		}
	}
	if len(states) > 0 {
		next := UpdateRobots(states, s.obstacles, s.layout, deltaMs, s.rng)
		for j, idx := range autopilot {
			s.robots[idx].State = next[j]
		}
	}

	// 3. 작업 로봇 이동 + 단계 진행
	for i := range s.robots {
		r := &s.robots[i]
		if r.Task == nil {
			continue
		}

		waypoint := r.State.Destination
		if wp, ok := r.Task.CurrentWaypoint(); ok {
			waypoint = wp
		}
		// 마지막 웨이포인트가 선반 위 상품이므로 통로/충돌 제약 없이 따라간다
		r.State.Position, r.State.Heading = MoveToWaypoint(
			r.State.Position, r.State.Heading, r.State.Speed, waypoint, deltaMs,
		)

		if ev, ok := s.advanceTask(r, waypoint); ok {
			events = append(events, ev)
		}
	}

	return events
}

// taskTarget - 현재 단계의 목표 지점과 경로 키
func (s *StoreSimulator) taskTarget(task *models.RobotTask) (models.Point, string, bool) {
	if task.Phase == models.PhaseToProduct {
		product, ok := s.productByID[task.ProductID]
		if !ok {
			return models.Point{}, "", false
		}
		return product.Position(), "product-" + task.ProductID, true
	}
	return task.DropTarget, "drop-" + task.ProductID, true
}

// ensureTaskPath - 경로가 없거나 목표가 바뀌었으면 외곽 통로 경로 재계획
func (s *StoreSimulator) ensureTaskPath(r *models.Robot) {
	task := r.Task
	target, key, ok := s.taskTarget(task)
	if !ok {
		return
	}

	if len(task.Waypoints) == 0 || task.WaypointIndex >= len(task.Waypoints) || task.WaypointTarget != key {
		task.Waypoints = s.pathFinder.PlanPath(r.State.Position, target, s.layout, true)
		task.WaypointIndex = 0
		task.WaypointTarget = key
	}
	if wp, ok := task.CurrentWaypoint(); ok {
		r.State.Destination = wp
	}
}

// advanceTask - 웨이포인트 도착 시 다음 웨이포인트/단계로 진행
func (s *StoreSimulator) advanceTask(r *models.Robot, waypoint models.Point) (models.WebSocketMessage, bool) {
	task := r.Task

	// 집으러 가던 상품이 사라졌으면 작업 취소
	if _, _, ok := s.taskTarget(task); !ok {
		log.Printf("⚠️ 작업 취소 (상품 없음): %s", task.ProductID)
		r.Task = nil
		r.CarryingProductID = ""
		return s.taskMessage(task, true), true
	}

	if !HasArrived(r.State.Position, waypoint) {
		return models.WebSocketMessage{}, false
	}

	if task.HasNextWaypoint() {
		task.WaypointIndex++
		r.State.Destination = task.Waypoints[task.WaypointIndex]
		return models.WebSocketMessage{}, false
	}

	if task.Phase == models.PhaseToProduct {
		r.CarryingProductID = task.ProductID
		task.Phase = models.PhaseToDropoff
		task.Waypoints = s.pathFinder.PlanPath(r.State.Position, task.DropTarget, s.layout, true)
		task.WaypointIndex = 0
		task.WaypointTarget = "drop-" + task.ProductID
		if wp, ok := task.CurrentWaypoint(); ok {
			r.State.Destination = wp
		}

		log.Printf("📦 %s 상품 픽업 → 하차 지점 이동", r.Name)
		LogTaskPhase(task, r.State.Position, r.State.Heading)
		return s.taskMessage(task, false), true
	}

	log.Printf("✅ %s 작업 완료 (%s)", r.Name, task.ID)
	LogTaskComplete(task, r.State.Position)
	r.Task = nil
	r.CarryingProductID = ""
	r.State.Destination = r.State.Position
	r.State.StuckTimerMs = 0
	return s.taskMessage(task, true), true
}

func (s *StoreSimulator) taskMessage(task *models.RobotTask, completed bool) models.WebSocketMessage {
	return models.WebSocketMessage{
		Type: models.MessageTypeTaskUpdate,
		Data: models.TaskUpdateData{
			TaskID:    task.ID,
			RobotID:   task.RobotID,
			Phase:     task.Phase,
			Completed: completed,
		},
		Timestamp: time.Now().UnixMilli(),
	}
}

// AssignTask - 로봇에 픽업/하차 작업 지시 (다른 로봇의 작업은 취소)
func (s *StoreSimulator) AssignTask(cmd models.TaskCommand) (*models.RobotTask, error) {
	s.mu.Lock()

	idx := -1
	for i := range s.robots {
		if s.robots[i].ID == cmd.RobotID {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", ErrRobotNotFound, cmd.RobotID)
	}
	if _, ok := s.productByID[cmd.ProductID]; !ok {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", ErrProductNotFound, cmd.ProductID)
	}

	// 작업 로봇은 한 대만
	for i := range s.robots {
		s.robots[i].Task = nil
		s.robots[i].CarryingProductID = ""
	}

	drop := s.dropTarget
	if cmd.DropTarget != nil {
		drop = *cmd.DropTarget
	}

	r := &s.robots[idx]
	r.Task = &models.RobotTask{
		ID:         uuid.New().String(),
		RobotID:    r.ID,
		ProductID:  cmd.ProductID,
		DropTarget: drop,
		Phase:      models.PhaseToProduct,
		IssuedAt:   time.Now().UnixMilli(),
	}
	s.ensureTaskPath(r)

	task := *r.Task
	task.Waypoints = append([]models.Point(nil), r.Task.Waypoints...)
	pos := r.State.Position
	name := r.Name
	s.mu.Unlock()

	log.Printf("📍 작업 지시: %s → 상품 %s (웨이포인트 %d개)", name, cmd.ProductID, len(task.Waypoints))
	LogTaskAssigned(&task, pos)
	s.broadcast(s.taskMessage(&task, false))
	s.broadcast(models.WebSocketMessage{
		Type: models.MessageTypePathUpdate,
		Data: models.PathData{
			Points:       task.Waypoints,
			Length:       models.PathLength(task.Waypoints),
			OuterWalkway: true,
		},
		Timestamp: time.Now().UnixMilli(),
	})

	return &task, nil
}

// Robots - 현재 로봇 상태 복사본
func (s *StoreSimulator) Robots() []models.Robot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneRobots(s.robots)
}

// Layout - 현재 레이아웃
func (s *StoreSimulator) Layout() models.StoreLayout {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.layout
}

// Products - 현재 상품 목록
func (s *StoreSimulator) Products() []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Product(nil), s.products...)
}

// Snapshot - 현재 상태 스냅샷
func (s *StoreSimulator) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return NewSnapshot(s.layout, s.tickCount, cloneRobots(s.robots), append([]models.Product(nil), s.products...))
}

// GetStatus - 현재 상태 반환
func (s *StoreSimulator) GetStatus() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var activeTask *models.RobotTask
	for _, r := range s.robots {
		if r.Task != nil {
			t := *r.Task
			activeTask = &t
			break
		}
	}

	return map[string]interface{}{
		"running":     s.IsRunning,
		"tick":        s.tickCount,
		"tick_ms":     s.tick.Milliseconds(),
		"robots":      len(s.robots),
		"products":    len(s.products),
		"layout":      s.layout,
		"drop_target": s.dropTarget,
		"active_task": activeTask,
	}
}

func (s *StoreSimulator) broadcastStatus(running bool) {
	s.broadcast(models.WebSocketMessage{
		Type:      models.MessageTypeSimStatus,
		Data:      map[string]interface{}{"running": running},
		Timestamp: time.Now().UnixMilli(),
	})
}

func (s *StoreSimulator) broadcast(msg models.WebSocketMessage) {
	if s.broadcastFunc == nil {
		return
	}
	s.broadcastFunc(msg)
}

// cloneRobots - 작업/웨이포인트까지 복사
func cloneRobots(robots []models.Robot) []models.Robot {
	out := make([]models.Robot, len(robots))
	copy(out, robots)
	for i := range out {
		if out[i].Task != nil {
			t := *out[i].Task
			t.Waypoints = append([]models.Point(nil), t.Waypoints...)
			out[i].Task = &t
		}
	}
	return out
}
