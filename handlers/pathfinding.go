package handlers

import (
	"log"
	"storenav-backend/algorithms"
	"storenav-backend/models"
	"storenav-backend/services"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
)

var (
	navMu     sync.RWMutex
	navigator = services.NewPathFinder(services.NewGridCache(16))
	navRand   algorithms.RandomSource = services.NewRandomSource(0)
)

// InitNavigation - 경로 계획/스텝 핸들러가 쓸 서비스 교체 (nil 이면 기존 값 유지)
func InitNavigation(pf *services.PathFinder, rng algorithms.RandomSource) {
	navMu.Lock()
	defer navMu.Unlock()
	if pf != nil {
		navigator = pf
	}
	if rng != nil {
		navRand = rng
	}
}

func pathFinder() *services.PathFinder {
	navMu.RLock()
	defer navMu.RUnlock()
	return navigator
}

func randomSource() algorithms.RandomSource {
	navMu.RLock()
	defer navMu.RUnlock()
	return navRand
}

// PathRequest - 경로 계획 요청 (layout 빠진 항목은 기본값)
type PathRequest struct {
	Start              models.Point       `json:"start"`
	End                models.Point       `json:"end"`
	Layout             models.StoreLayout `json:"layout"`
	PreferOuterWalkway bool               `json:"prefer_outer_walkway"`
}

// HandleFindPath - 그리드 A* 또는 외곽 통로 경로
func HandleFindPath(c *fiber.Ctx) error {
	req := PathRequest{Layout: models.DefaultStoreLayout()}
	if err := parseBody(c, pathSchema, &req); err != nil {
		return badRequest(c, err)
	}

	started := time.Now()
	path := pathFinder().PlanPath(req.Start, req.End, req.Layout, req.PreferOuterWalkway)
	elapsed := time.Since(started)

	log.Printf("📍 경로 계획: (%.1f, %.1f) → (%.1f, %.1f), %d개 웨이포인트",
		req.Start.X, req.Start.Y, req.End.X, req.End.Y, len(path))
	services.LogPathComputed(models.SourceHTTP, req.Start, req.End, path, req.PreferOuterWalkway)

	return c.JSON(fiber.Map{
		"success": true,
		"path": models.PathData{
			Points:        path,
			Length:        models.PathLength(path),
			OuterWalkway:  req.PreferOuterWalkway,
			ComputeMicros: elapsed.Microseconds(),
		},
	})
}

// StepRequest - 로봇 일괄 스텝 요청
type StepRequest struct {
	Robots   []models.RobotState `json:"robots"`
	Products []models.Point      `json:"products"`
	Layout   models.StoreLayout  `json:"layout"`
	DeltaMs  float64             `json:"delta_ms"`
}

// HandleStepRobots - 로봇 상태 한 틱 진행 (입력 순서 유지)
func HandleStepRobots(c *fiber.Ctx) error {
	req := StepRequest{Layout: models.DefaultStoreLayout()}
	if err := parseBody(c, robotsStepSchema, &req); err != nil {
		return badRequest(c, err)
	}

	next := services.UpdateRobots(req.Robots, req.Products, req.Layout, req.DeltaMs, randomSource())
	services.LogRobotsStepped(models.SourceHTTP, len(next))

	return c.JSON(fiber.Map{
		"success": true,
		"robots":  next,
	})
}

// WaypointRequest - 웨이포인트 이동 요청
type WaypointRequest struct {
	Position      models.Point       `json:"position"`
	Heading       float64            `json:"heading"`
	Speed         float64            `json:"speed"`
	Waypoint      models.Point       `json:"waypoint"`
	DeltaMs       float64            `json:"delta_ms"`
	WithCollision bool               `json:"with_collision"`
	Products      []models.Point     `json:"products"`
	Layout        models.StoreLayout `json:"layout"`
}

// HandleMoveToWaypoint - 웨이포인트 방향 한 틱 이동
func HandleMoveToWaypoint(c *fiber.Ctx) error {
	req := WaypointRequest{Layout: models.DefaultStoreLayout(), DeltaMs: services.DefaultTickMs}
	if err := parseBody(c, waypointSchema, &req); err != nil {
		return badRequest(c, err)
	}

	var (
		pos     models.Point
		heading float64
	)
	if req.WithCollision {
		pos, heading = services.MoveToWaypointWithCollision(
			req.Position, req.Heading, req.Speed, req.Waypoint, req.DeltaMs, req.Products, req.Layout,
		)
	} else {
		pos, heading = services.MoveToWaypoint(req.Position, req.Heading, req.Speed, req.Waypoint, req.DeltaMs)
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"position": pos,
		"heading":  heading,
		"arrived":  services.HasArrived(pos, req.Waypoint),
	})
}

// ArrivalRequest - 도착 판정 요청
type ArrivalRequest struct {
	Position models.Point `json:"position"`
	Waypoint models.Point `json:"waypoint"`
}

// HandleArrival - 웨이포인트 도착 여부
func HandleArrival(c *fiber.Ctx) error {
	var req ArrivalRequest
	if err := parseBody(c, arrivalSchema, &req); err != nil {
		return badRequest(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"arrived": services.HasArrived(req.Position, req.Waypoint),
	})
}
