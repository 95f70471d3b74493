package services

import (
	"errors"
	"storenav-backend/models"
	"testing"
	"time"
)

// setupTestDB - 메모리 SQLite 로 DB 초기화, 테스트 종료 시 정리
func setupTestDB(t *testing.T) {
	t.Helper()
	if err := InitDatabase(DatabaseConfig{Driver: "sqlite", Path: ":memory:"}); err != nil {
		t.Fatalf("InitDatabase: %v", err)
	}
	t.Cleanup(CloseDatabase)
}

func TestDatabaseNotReady(t *testing.T) {
	CloseDatabase()

	if _, err := GetSimulationConfig(); !errors.Is(err, ErrDatabaseNotReady) {
		t.Errorf("GetSimulationConfig error = %v, want ErrDatabaseNotReady", err)
	}
	if _, err := SaveSimulation(models.SaveSimulationInput{}); !errors.Is(err, ErrDatabaseNotReady) {
		t.Errorf("SaveSimulation error = %v, want ErrDatabaseNotReady", err)
	}
	if _, err := GetProducts(); !errors.Is(err, ErrDatabaseNotReady) {
		t.Errorf("GetProducts error = %v, want ErrDatabaseNotReady", err)
	}
}

func TestInitDatabaseRejectsUnknownDriver(t *testing.T) {
	if err := InitDatabase(DatabaseConfig{Driver: "oracle"}); err == nil {
		t.Error("InitDatabase(oracle) error = nil")
	}
	if err := InitDatabase(DatabaseConfig{Driver: "mysql"}); err == nil {
		t.Error("InitDatabase(mysql without env) error = nil")
	}
}

func TestGetSimulationConfigDefaults(t *testing.T) {
	setupTestDB(t)

	cfg, err := GetSimulationConfig()
	if err != nil {
		t.Fatalf("GetSimulationConfig: %v", err)
	}
	if cfg.ID != 1 || cfg.RobotCount != 30 || cfg.DropLane != 1 || cfg.DropProgress != 50 {
		t.Errorf("defaults = %+v", cfg)
	}
	if cfg.Layout() != models.DefaultStoreLayout() {
		t.Errorf("default layout = %+v", cfg.Layout())
	}

	// 두 번째 호출은 같은 행을 읽는다
	again, err := GetSimulationConfig()
	if err != nil || again.ID != cfg.ID {
		t.Errorf("second GetSimulationConfig = (%+v, %v)", again, err)
	}
}

func TestSaveSimulationValidation(t *testing.T) {
	setupTestDB(t)

	tests := []struct {
		name  string
		input models.SaveSimulationInput
		want  error
	}{
		{"negative products", models.SaveSimulationInput{ProductCount: -1}, ErrNegativeCount},
		{"negative robots", models.SaveSimulationInput{RobotCount: -2}, ErrNegativeCount},
		{
			"count mismatch",
			models.SaveSimulationInput{ProductCount: 2, Products: []models.Product{{ID: "a"}}},
			ErrProductCountMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := SaveSimulation(tt.input); !errors.Is(err, tt.want) {
				t.Errorf("SaveSimulation error = %v, want %v", err, tt.want)
			}
		})
	}

	if n, _ := ProductCount(); n != 0 {
		t.Errorf("ProductCount after rejected saves = %d, want 0", n)
	}
}

func TestSaveSimulationReplacesProducts(t *testing.T) {
	setupTestDB(t)

	layout := horizontalLayout()
	layout.LaneCount = 4
	products := GenerateProducts(250, layout, NewRandomSource(1))

	tracked := "robot-2"
	dropLane := 0
	saved, err := SaveSimulation(models.SaveSimulationInput{
		ProductCount:   len(products),
		RobotCount:     5,
		TrackedRobotID: &tracked,
		DropLane:       &dropLane,
		Layout:         layout,
		Products:       products,
	})
	if err != nil {
		t.Fatalf("SaveSimulation: %v", err)
	}
	if saved.DropLane != 0 || saved.DropProgress != 50 {
		t.Errorf("saved drop = lane %d progress %d, want 0 and 50", saved.DropLane, saved.DropProgress)
	}

	if n, err := ProductCount(); err != nil || n != 250 {
		t.Fatalf("ProductCount = (%d, %v), want 250", n, err)
	}

	cfg, err := GetSimulationConfig()
	if err != nil {
		t.Fatalf("GetSimulationConfig: %v", err)
	}
	if cfg.Layout() != layout || cfg.RobotCount != 5 || cfg.ProductCount != 250 {
		t.Errorf("stored config = %+v", cfg)
	}
	if cfg.TrackedRobotID == nil || *cfg.TrackedRobotID != tracked {
		t.Errorf("TrackedRobotID = %v, want %q", cfg.TrackedRobotID, tracked)
	}

	// 두 번째 저장은 상품을 통째로 바꾼다
	replacement := []models.Product{
		{ID: "b", X: 1, Y: 2},
		{ID: "a", X: 3, Y: 4},
	}
	if _, err := SaveSimulation(models.SaveSimulationInput{
		ProductCount: 2,
		RobotCount:   0,
		Layout:       models.DefaultStoreLayout(),
		Products:     replacement,
	}); err != nil {
		t.Fatalf("second SaveSimulation: %v", err)
	}

	stored, err := GetProducts()
	if err != nil {
		t.Fatalf("GetProducts: %v", err)
	}
	if len(stored) != 2 || stored[0].ID != "b" || stored[1].ID != "a" {
		t.Errorf("stored products = %+v, want b, a in save order", stored)
	}

	cfg, _ = GetSimulationConfig()
	if cfg.RobotCount != 0 || cfg.ProductCount != 2 || cfg.TrackedRobotID != nil {
		t.Errorf("config after replace = %+v", cfg)
	}
}

func TestGetProductsKeepsGeneratedOrder(t *testing.T) {
	setupTestDB(t)

	// 문자열 정렬이면 product-10 이 product-2 앞에 온다
	products := GenerateProducts(12, models.DefaultStoreLayout(), NewRandomSource(4))
	if _, err := SaveSimulation(models.SaveSimulationInput{
		ProductCount: len(products),
		Layout:       models.DefaultStoreLayout(),
		Products:     products,
	}); err != nil {
		t.Fatalf("SaveSimulation: %v", err)
	}

	stored, err := GetProducts()
	if err != nil {
		t.Fatalf("GetProducts: %v", err)
	}
	if len(stored) != len(products) {
		t.Fatalf("len = %d, want %d", len(stored), len(products))
	}
	for i, p := range stored {
		if p.ID != products[i].ID || p.X != products[i].X || p.Y != products[i].Y {
			t.Errorf("stored[%d] = %+v, want %+v", i, p, products[i])
		}
	}
	if products[0].Ordinal != 0 || products[11].Ordinal != 0 {
		t.Error("SaveSimulation modified its input products")
	}
}

func TestLogBufferFlushesOnStop(t *testing.T) {
	setupTestDB(t)
	InitLogging(100, time.Hour)

	LogSimEvent(models.EventSimStart, "test", 3, "")
	LogPathComputed(models.SourceHTTP, models.Point{}, models.Point{X: 3, Y: 4}, []models.Point{{}, {X: 3, Y: 4}}, false)
	AddLog(models.NavLog{EventType: models.EventTaskComplete, Source: "test", RobotID: "robot-7"})

	if logBuffer.Pending() != 3 {
		t.Errorf("Pending = %d, want 3", logBuffer.Pending())
	}
	StopLogging()

	all, err := QueryLogs(LogQuery{Limit: 10})
	if err != nil || len(all) != 3 {
		t.Fatalf("QueryLogs = (%d logs, %v), want 3", len(all), err)
	}

	byRobot, err := QueryLogs(LogQuery{RobotID: "robot-7", Limit: 10})
	if err != nil || len(byRobot) != 1 {
		t.Errorf("QueryLogs(robot-7) = (%d logs, %v), want 1", len(byRobot), err)
	}

	paths, err := QueryLogs(LogQuery{EventType: models.EventPathComputed, Source: models.SourceHTTP})
	if err != nil || len(paths) != 1 || paths[0].PathLength != 5 || paths[0].Phase != "grid" {
		t.Errorf("QueryLogs(path_computed, http) = (%+v, %v)", paths, err)
	}

	ranged, err := QueryLogs(LogQuery{Since: time.Now().Add(-time.Minute), Until: time.Now().Add(time.Minute)})
	if err != nil || len(ranged) != 3 {
		t.Errorf("QueryLogs(range) = (%d logs, %v), want 3", len(ranged), err)
	}

	future, err := QueryLogs(LogQuery{Since: time.Now().Add(time.Hour)})
	if err != nil || len(future) != 0 {
		t.Errorf("QueryLogs(future) = (%d logs, %v), want 0", len(future), err)
	}

	stats, err := GetLogStats(1)
	if err != nil {
		t.Fatalf("GetLogStats: %v", err)
	}
	if stats["total_logs"].(int64) != 3 {
		t.Errorf("total_logs = %v, want 3", stats["total_logs"])
	}
	if counts := stats["event_counts"].(map[string]int64); counts[models.EventSimStart] != 1 {
		t.Errorf("event_counts = %v", counts)
	}
}

func TestAddLogWithoutBufferIsNoop(t *testing.T) {
	StopLogging()
	AddLog(models.NavLog{EventType: "ignored"})
}
