package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"storenav-backend/algorithms"
	"storenav-backend/models"
	"storenav-backend/services"
	"time"

	"github.com/gofiber/fiber/v2"
)

var (
	simulator *services.StoreSimulator
	simRand   algorithms.RandomSource
)

// InitSimulator - 시뮬레이터 핸들러 설정
func InitSimulator(sim *services.StoreSimulator, rng algorithms.RandomSource) {
	simulator = sim
	simRand = rng
}

func simulatorUnavailable(c *fiber.Ctx) error {
	return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
		"success": false,
		"message": "시뮬레이터가 초기화되지 않았습니다",
	})
}

func serverError(c *fiber.Ctx, err error) error {
	log.Printf("❌ %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"success": false,
		"message": err.Error(),
	})
}

// HandleGetSimulationConfig - 저장된 설정 조회
func HandleGetSimulationConfig(c *fiber.Ctx) error {
	cfg, err := services.GetSimulationConfig()
	if err != nil {
		return serverError(c, err)
	}
	return c.JSON(fiber.Map{
		"success":     true,
		"config":      cfg,
		"layout":      cfg.Layout(),
		"drop_target": cfg.DropTarget(),
	})
}

// HandleSaveSimulationConfig - 설정 + 상품 전체 저장 후 시뮬레이터 다시 로드
func HandleSaveSimulationConfig(c *fiber.Ctx) error {
	input := models.SaveSimulationInput{Layout: models.DefaultStoreLayout()}
	if err := parseBody(c, simulationConfigSchema, &input); err != nil {
		return badRequest(c, err)
	}

	cfg, err := services.SaveSimulation(input)
	if err != nil {
		if errors.Is(err, services.ErrNegativeCount) || errors.Is(err, services.ErrProductCountMismatch) {
			return badRequest(c, err)
		}
		return serverError(c, err)
	}

	if simulator != nil {
		if err := services.LoadStoredSimulation(simulator, simRand, 0); err != nil {
			return serverError(c, fmt.Errorf("시뮬레이터 재로드 실패: %w", err))
		}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"config":  cfg,
	})
}

// HandleGetProducts - 저장된 상품 목록
func HandleGetProducts(c *fiber.Ctx) error {
	products, err := services.GetProducts()
	if err != nil {
		return serverError(c, err)
	}
	return c.JSON(fiber.Map{
		"success":  true,
		"count":    len(products),
		"products": products,
	})
}

// HandleGetProductCount - 저장된 상품 수
func HandleGetProductCount(c *fiber.Ctx) error {
	count, err := services.ProductCount()
	if err != nil {
		return serverError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"count":   count,
	})
}

// HandleStartSimulation - 시뮬레이터 시작
func HandleStartSimulation(c *fiber.Ctx) error {
	if simulator == nil {
		return simulatorUnavailable(c)
	}
	simulator.Start()
	return c.JSON(fiber.Map{"success": true, "running": true})
}

// HandleStopSimulation - 시뮬레이터 정지
func HandleStopSimulation(c *fiber.Ctx) error {
	if simulator == nil {
		return simulatorUnavailable(c)
	}
	simulator.Stop()
	return c.JSON(fiber.Map{"success": true, "running": false})
}

// HandleSimulationStatus - 시뮬레이터 상태
func HandleSimulationStatus(c *fiber.Ctx) error {
	if simulator == nil {
		return simulatorUnavailable(c)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"status":  simulator.GetStatus(),
	})
}

// HandleAssignTask - 픽업/하차 작업 지시
func HandleAssignTask(c *fiber.Ctx) error {
	if simulator == nil {
		return simulatorUnavailable(c)
	}

	var cmd models.TaskCommand
	if err := parseBody(c, taskSchema, &cmd); err != nil {
		return badRequest(c, err)
	}

	task, err := simulator.AssignTask(cmd)
	if err != nil {
		if errors.Is(err, services.ErrRobotNotFound) || errors.Is(err, services.ErrProductNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false,
				"message": err.Error(),
			})
		}
		return serverError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"task":    task,
	})
}

// HandleRobotsCSV - 현재 로봇 상태 CSV
func HandleRobotsCSV(c *fiber.Ctx) error {
	if simulator == nil {
		return simulatorUnavailable(c)
	}

	var buf bytes.Buffer
	if err := services.WriteRobotsCSV(&buf, simulator.Robots()); err != nil {
		return serverError(c, err)
	}

	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="robots.csv"`)
	return c.Send(buf.Bytes())
}

// HandleSnapshot - zstd 압축 스냅샷
func HandleSnapshot(c *fiber.Ctx) error {
	if simulator == nil {
		return simulatorUnavailable(c)
	}

	var buf bytes.Buffer
	if err := services.WriteSnapshot(&buf, simulator.Snapshot()); err != nil {
		return serverError(c, err)
	}

	name := fmt.Sprintf("snapshot-%s.json.zst", time.Now().UTC().Format("20060102-150405"))
	c.Set(fiber.HeaderContentType, "application/zstd")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, name))
	return c.Send(buf.Bytes())
}
