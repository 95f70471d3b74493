package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// SetupRoutes - REST/WebSocket 라우트 등록
func SetupRoutes(app *fiber.App) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("StoreNav 서버가 실행 중입니다.")
	})

	api := app.Group("/api")

	api.Get("/health", func(c *fiber.Ctx) error {
		running := false
		if simulator != nil {
			running = simulator.Running()
		}
		return c.JSON(fiber.Map{
			"status":    "OK",
			"clients":   Manager.GetClientCount(),
			"simulator": running,
			"time":      time.Now().Format(time.RFC3339),
		})
	})

	// 경로 계획
	api.Post("/path", HandleFindPath)

	// 로봇 스텝/웨이포인트/도착
	robots := api.Group("/robots")
	robots.Post("/step", HandleStepRobots)
	robots.Post("/waypoint", HandleMoveToWaypoint)
	robots.Post("/arrival", HandleArrival)

	// 평탄화 숫자 배열 버전
	raw := api.Group("/raw")
	raw.Post("/path", HandleRawPath)
	raw.Post("/robots", HandleRawRobots)
	raw.Post("/waypoint", HandleRawWaypoint)
	raw.Post("/arrival", HandleRawArrival)

	// 시뮬레이션 설정/제어
	sim := api.Group("/simulation")
	sim.Get("/config", HandleGetSimulationConfig)
	sim.Put("/config", HandleSaveSimulationConfig)
	sim.Get("/products", HandleGetProducts)
	sim.Get("/products/count", HandleGetProductCount)
	sim.Post("/start", HandleStartSimulation)
	sim.Post("/stop", HandleStopSimulation)
	sim.Get("/status", HandleSimulationStatus)
	sim.Post("/task", HandleAssignTask)
	sim.Get("/robots.csv", HandleRobotsCSV)
	sim.Get("/snapshot", HandleSnapshot)

	// 로그 조회 API
	logsAPI := api.Group("/logs")
	logsAPI.Get("/", HandleQueryLogs)               // robot_id, task_id, source, event_type, start, end
	logsAPI.Get("/recent", HandleQueryLogs)         // 최근 로그
	logsAPI.Get("/range", HandleGetLogsByTimeRange) // 시간 범위
	logsAPI.Get("/type", HandleGetLogsByEventType)  // 이벤트 타입별
	logsAPI.Get("/task/:id", HandleGetTaskLogs)     // 작업 타임라인
	logsAPI.Get("/stats", HandleGetLogStats)        // 통계

	// WebSocket
	app.Use("/websocket", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			c.Locals("allowed", true)
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	app.Get("/websocket/sim", websocket.New(HandleSimWebSocket))
}
