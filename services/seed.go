package services

import (
	"fmt"
	"log"
	"storenav-backend/algorithms"
	"storenav-backend/models"
)

// SeedSimulation - 레이아웃에 맞춰 상품을 생성해 설정과 함께 저장
func SeedSimulation(productCount, robotCount int, layout models.StoreLayout, rng algorithms.RandomSource) (*models.SimulationConfig, error) {
	products := GenerateProducts(productCount, layout, rng)
	cfg, err := SaveSimulation(models.SaveSimulationInput{
		ProductCount: len(products),
		RobotCount:   robotCount,
		Layout:       layout,
		Products:     products,
	})
	if err != nil {
		return nil, fmt.Errorf("시드 저장 실패: %w", err)
	}
	return cfg, nil
}

// LoadStoredSimulation - 저장된 설정/상품으로 시뮬레이터 구성
//
// 저장된 상품이 없으면 fallbackProducts 개를 메모리에서만 생성한다.
func LoadStoredSimulation(sim *StoreSimulator, rng algorithms.RandomSource, fallbackProducts int) error {
	cfg, err := GetSimulationConfig()
	if err != nil {
		return err
	}
	products, err := GetProducts()
	if err != nil {
		return fmt.Errorf("상품 조회 실패: %w", err)
	}

	layout := cfg.Layout()
	if len(products) == 0 && fallbackProducts > 0 {
		products = GenerateProducts(fallbackProducts, layout, rng)
		log.Printf("⚠️ 저장된 상품 없음, %d개 임시 생성", len(products))
	}

	robots := GenerateRobots(cfg.RobotCount, layout, rng)
	sim.Load(layout, products, robots, cfg.DropTarget())

	if cfg.TrackedRobotID != nil && cfg.PickupProductID != nil {
		if _, err := sim.AssignTask(models.TaskCommand{
			RobotID:   *cfg.TrackedRobotID,
			ProductID: *cfg.PickupProductID,
		}); err != nil {
			log.Printf("⚠️ 저장된 작업 복원 실패: %v", err)
		}
	}
	return nil
}
