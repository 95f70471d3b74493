package main

import (
	"flag"
	"log"
	"storenav-backend/services"

	"github.com/joho/godotenv"
)

// 저장된 시뮬레이션 설정/상품을 생성한 값으로 교체한다.
func main() {
	var (
		products   = flag.Int("products", 0, "생성할 상품 수 (0 이면 SIM_PRODUCT_COUNT)")
		robots     = flag.Int("robots", 0, "로봇 수 (0 이면 SIM_ROBOT_COUNT)")
		layoutFile = flag.String("layout", "", "레이아웃 YAML 파일 (없으면 LAYOUT_FILE/기본값)")
		seed       = flag.Int64("seed", 0, "난수 시드 (0 이면 현재 시각)")
	)
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  .env 파일을 찾을 수 없습니다.")
	}

	cfg, err := services.LoadConfig()
	if err != nil {
		log.Fatalf("❌ 설정 로드 실패: %v", err)
	}
	if *layoutFile != "" {
		layout, err := services.LoadLayoutFile(*layoutFile)
		if err != nil {
			log.Fatalf("❌ %v", err)
		}
		cfg.Layout = layout
	}
	if *products <= 0 {
		*products = cfg.SimProductCount
	}
	if *robots <= 0 {
		*robots = cfg.SimRobotCount
	}

	if err := services.InitDatabase(cfg.Database); err != nil {
		log.Fatalf("❌ DB 초기화 실패: %v", err)
	}
	defer services.CloseDatabase()

	services.InitLogging(cfg.LogFlushSize, cfg.LogFlushInterval)
	defer services.StopLogging()

	saved, err := services.SeedSimulation(*products, *robots, cfg.Layout, services.NewRandomSource(*seed))
	if err != nil {
		log.Printf("❌ %v", err)
		return
	}
	log.Printf("🌱 시드 완료: 상품 %d개, 로봇 %d대, 레인 %d개 (%s)",
		saved.ProductCount, saved.RobotCount, saved.LaneCount, saved.Orientation)
}
