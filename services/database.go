package services

import (
	"errors"
	"fmt"
	"log"
	"storenav-backend/models"
	"strings"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"
)

// DB 인스턴스
var db *gorm.DB

const (
	simulationConfigID = 1
	productChunkSize   = 100
)

var (
	ErrDatabaseNotReady     = errors.New("데이터베이스가 초기화되지 않았습니다")
	ErrNegativeCount        = errors.New("product_count 와 robot_count 는 0 이상이어야 합니다")
	ErrProductCountMismatch = errors.New("product_count 와 products 길이가 다릅니다")
)

// InitDatabase - 설정에 따라 MySQL 또는 SQLite 연결
func InitDatabase(cfg DatabaseConfig) error {
	var dialector gorm.Dialector

	switch cfg.Driver {
	case "mysql":
		if cfg.Host == "" || cfg.User == "" || cfg.Password == "" || cfg.Name == "" {
			return fmt.Errorf("MySQL 환경 변수가 모두 설정되지 않았습니다: MYSQL_HOST, MYSQL_USER, MYSQL_PASSWORD, MYSQL_DATABASE")
		}
		port := cfg.Port
		if port == 0 {
			port = 3306
		}
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			cfg.User, cfg.Password, cfg.Host, port, cfg.Name)
		dialector = mysql.Open(dsn)
	case "sqlite", "":
		dialector = sqlite.New(sqlite.Config{DriverName: "sqlite", DSN: cfg.Path})
	default:
		return fmt.Errorf("지원하지 않는 DB_DRIVER: %s", cfg.Driver)
	}

	conn, err := gorm.Open(dialector, &gorm.Config{Logger: logger.Default.LogMode(logger.Warn)})
	if err != nil {
		return fmt.Errorf("DB 연결 실패: %w", err)
	}

	// 메모리 SQLite 는 커넥션마다 별도 DB 가 되므로 하나만 쓴다
	if cfg.Driver != "mysql" && strings.Contains(cfg.Path, ":memory:") {
		if sqlDB, err := conn.DB(); err == nil {
			sqlDB.SetMaxOpenConns(1)
		}
	}

	if err := conn.AutoMigrate(
		&models.SimulationConfig{},
		&models.Product{},
		&models.NavLog{},
	); err != nil {
		return fmt.Errorf("마이그레이션 실패: %w", err)
	}

	db = conn

	if cfg.Driver == "mysql" {
		log.Println("✅ MySQL 연결 및 마이그레이션 완료")
		log.Printf("📡 연결 정보: %s@%s:%d/%s", cfg.User, cfg.Host, cfg.Port, cfg.Name)
	} else {
		log.Printf("✅ SQLite 연결 및 마이그레이션 완료 (%s)", cfg.Path)
	}
	return nil
}

// GetDB - GORM 인스턴스 반환
func GetDB() *gorm.DB {
	return db
}

// CloseDatabase - 커넥션 풀 정리
func CloseDatabase() {
	if db == nil {
		return
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
	db = nil
}

// GetSimulationConfig - 저장된 설정 조회 (없으면 기본값으로 생성)
func GetSimulationConfig() (*models.SimulationConfig, error) {
	if db == nil {
		return nil, ErrDatabaseNotReady
	}

	cfg := models.SimulationConfig{ID: simulationConfigID}
	defaults := models.SimulationConfig{ID: simulationConfigID, RobotCount: 30, DropLane: 1, DropProgress: 50}
	defaults.ApplyLayout(models.DefaultStoreLayout())

	if err := db.Where(models.SimulationConfig{ID: simulationConfigID}).
		Attrs(defaults).
		FirstOrCreate(&cfg).Error; err != nil {
		return nil, fmt.Errorf("설정 조회 실패: %w", err)
	}
	return &cfg, nil
}

// SaveSimulation - 설정 행 갱신 + 상품 전체 교체 (하나의 트랜잭션)
func SaveSimulation(input models.SaveSimulationInput) (*models.SimulationConfig, error) {
	if db == nil {
		return nil, ErrDatabaseNotReady
	}
	if input.ProductCount < 0 || input.RobotCount < 0 {
		return nil, ErrNegativeCount
	}
	if len(input.Products) != input.ProductCount {
		return nil, fmt.Errorf("%w (product_count=%d, products=%d)",
			ErrProductCountMismatch, input.ProductCount, len(input.Products))
	}

	cfg := models.SimulationConfig{
		ID:              simulationConfigID,
		ProductCount:    input.ProductCount,
		RobotCount:      input.RobotCount,
		TrackedRobotID:  input.TrackedRobotID,
		PickupProductID: input.PickupProductID,
		DropLane:        1,
		DropProgress:    50,
	}
	if input.DropLane != nil {
		cfg.DropLane = *input.DropLane
	}
	if input.DropProgress != nil {
		cfg.DropProgress = *input.DropProgress
	}
	cfg.ApplyLayout(input.Layout)

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&cfg).Error; err != nil {
			return fmt.Errorf("설정 저장 실패: %w", err)
		}
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Product{}).Error; err != nil {
			return fmt.Errorf("상품 삭제 실패: %w", err)
		}
		if len(input.Products) == 0 {
			return nil
		}
		products := make([]models.Product, len(input.Products))
		for i, p := range input.Products {
			p.Ordinal = i
			products[i] = p
		}
		if err := tx.CreateInBatches(products, productChunkSize).Error; err != nil {
			return fmt.Errorf("상품 저장 실패: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("💾 시뮬레이션 설정 저장 (상품 %d개, 로봇 %d대)", input.ProductCount, input.RobotCount)
	LogSimEvent(models.EventConfigSaved, models.SourceHTTP, input.RobotCount, fmt.Sprintf(`{"product_count":%d}`, input.ProductCount))
	return &cfg, nil
}

// GetProducts - 저장된 상품 목록 (저장할 때 넘긴 순서)
func GetProducts() ([]models.Product, error) {
	if db == nil {
		return nil, ErrDatabaseNotReady
	}
	var products []models.Product
	err := db.Order("ordinal, id").Find(&products).Error
	return products, err
}

// ProductCount - 저장된 상품 수
func ProductCount() (int64, error) {
	if db == nil {
		return 0, ErrDatabaseNotReady
	}
	var count int64
	err := db.Model(&models.Product{}).Count(&count).Error
	return count, err
}
