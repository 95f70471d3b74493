package main

import (
	"log"
	"os"
	"os/signal"
	"storenav-backend/handlers"
	"storenav-backend/services"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"
)

func main() {
	// .env 파일 로드
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  .env 파일을 찾을 수 없습니다.")
	}

	cfg, err := services.LoadConfig()
	if err != nil {
		log.Fatalf("❌ 설정 로드 실패: %v", err)
	}

	// DB 연결 (MySQL 또는 SQLite)
	if err := services.InitDatabase(cfg.Database); err != nil {
		log.Fatalf("❌ DB 초기화 실패: %v", err)
	}
	defer services.CloseDatabase()

	// 로깅 시스템 초기화
	services.InitLogging(cfg.LogFlushSize, cfg.LogFlushInterval)
	defer services.StopLogging() // 종료 시 남은 로그 저장

	// 경로 계획 + 시뮬레이터
	rng := services.NewRandomSource(0)
	pathFinder := services.NewPathFinder(services.NewGridCache(16))
	handlers.InitNavigation(pathFinder, rng)

	simulator := services.NewStoreSimulator(pathFinder, rng, cfg.SimTick, handlers.Manager.BroadcastMessage)
	if err := services.LoadStoredSimulation(simulator, rng, cfg.SimProductCount); err != nil {
		log.Fatalf("❌ 시뮬레이션 로드 실패: %v", err)
	}
	handlers.InitSimulator(simulator, rng)

	app := fiber.New()

	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))

	go handlers.Manager.Start()

	handlers.SetupRoutes(app)

	if cfg.SimAutoStart {
		simulator.Start()
	}

	// 종료 신호 처리
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		log.Println("🛑 종료 신호 수신")
		simulator.Stop()
		_ = app.Shutdown()
	}()

	log.Printf("🚀 서버 시작: http://localhost:%s", cfg.Port)
	log.Printf("📡 WebSocket: ws://localhost:%s/websocket/sim", cfg.Port)
	log.Printf("🧭 경로 API: POST http://localhost:%s/api/path", cfg.Port)
	log.Printf("💾 로그 API: GET http://localhost:%s/api/logs/*", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Printf("❌ 서버 오류: %v", err)
	}
}
