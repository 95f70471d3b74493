package services

import (
	"fmt"
	"log"
	"os"
	"storenav-backend/models"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config - 환경 변수 기반 서버 설정
type Config struct {
	Port        string
	CORSOrigins string

	Database DatabaseConfig

	LayoutFile string
	Layout     models.StoreLayout

	LogFlushSize     int
	LogFlushInterval time.Duration

	SimTick         time.Duration
	SimRobotCount   int
	SimProductCount int
	SimAutoStart    bool
}

// DatabaseConfig - DB 드라이버 및 접속 정보
type DatabaseConfig struct {
	Driver   string // "mysql" | "sqlite"
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	Path     string // sqlite 파일 경로 또는 DSN
}

// LoadConfig - 환경 변수에서 설정 읽기 (godotenv 는 main 에서 먼저 로드)
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:             envString("PORT", "3000"),
		CORSOrigins:      envString("CORS_ORIGINS", "http://localhost:5173, http://localhost:3000"),
		LayoutFile:       os.Getenv("LAYOUT_FILE"),
		Layout:           models.DefaultStoreLayout(),
		LogFlushSize:     envInt("LOG_FLUSH_SIZE", 50),
		LogFlushInterval: envDuration("LOG_FLUSH_INTERVAL", 10*time.Second),
		SimTick:          time.Duration(envInt("SIM_TICK_MS", 50)) * time.Millisecond,
		SimRobotCount:    envInt("SIM_ROBOT_COUNT", 30),
		SimProductCount:  envInt("SIM_PRODUCT_COUNT", 2000),
		SimAutoStart:     envBool("SIM_AUTOSTART", false),
		Database: DatabaseConfig{
			Driver:   strings.ToLower(envString("DB_DRIVER", "sqlite")),
			Host:     os.Getenv("MYSQL_HOST"),
			Port:     envInt("MYSQL_PORT", 3306),
			User:     os.Getenv("MYSQL_USER"),
			Password: os.Getenv("MYSQL_PASSWORD"),
			Name:     os.Getenv("MYSQL_DATABASE"),
			Path:     envString("SQLITE_PATH", "storenav.db"),
		},
	}

	if cfg.LayoutFile != "" {
		layout, err := LoadLayoutFile(cfg.LayoutFile)
		if err != nil {
			return nil, err
		}
		cfg.Layout = layout
		log.Printf("📐 레이아웃 파일 로드: %s", cfg.LayoutFile)
	}

	if cfg.SimTick <= 0 {
		cfg.SimTick = time.Duration(DefaultTickMs) * time.Millisecond
	}

	return cfg, nil
}

// layoutFile - YAML 레이아웃 파일 형식 (빠진 항목은 기본값)
type layoutFile struct {
	StoreWidth         *float64 `yaml:"store_width"`
	StoreHeight        *float64 `yaml:"store_height"`
	LaneCount          *int     `yaml:"lane_count"`
	LaneSpacing        *float64 `yaml:"lane_spacing"`
	LaneThickness      *float64 `yaml:"lane_thickness"`
	StartOffset        *float64 `yaml:"start_offset"`
	WalkwayWidth       *float64 `yaml:"walkway_width"`
	CrossLaneBuffer    *float64 `yaml:"cross_lane_buffer"`
	OuterWalkwayOffset *float64 `yaml:"outer_walkway_offset"`
	Orientation        string   `yaml:"orientation"`
}

// LoadLayoutFile - YAML 레이아웃 파일 읽기
func LoadLayoutFile(path string) (models.StoreLayout, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return models.StoreLayout{}, fmt.Errorf("레이아웃 파일 읽기 실패: %w", err)
	}
	return ParseLayoutYAML(raw)
}

// ParseLayoutYAML - YAML 바이트 → 레이아웃
func ParseLayoutYAML(raw []byte) (models.StoreLayout, error) {
	var f layoutFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return models.StoreLayout{}, fmt.Errorf("layout yaml: %w", err)
	}

	layout := models.DefaultStoreLayout()
	setFloat(&layout.StoreWidth, f.StoreWidth)
	setFloat(&layout.StoreHeight, f.StoreHeight)
	if f.LaneCount != nil {
		layout.LaneCount = *f.LaneCount
	}
	setFloat(&layout.LaneSpacing, f.LaneSpacing)
	setFloat(&layout.LaneThickness, f.LaneThickness)
	setFloat(&layout.StartOffset, f.StartOffset)
	setFloat(&layout.WalkwayWidth, f.WalkwayWidth)
	setFloat(&layout.CrossLaneBuffer, f.CrossLaneBuffer)
	setFloat(&layout.OuterWalkwayOffset, f.OuterWalkwayOffset)

	switch models.Orientation(strings.ToLower(f.Orientation)) {
	case "", models.OrientationVertical:
		layout.Orientation = models.OrientationVertical
	case models.OrientationHorizontal:
		layout.Orientation = models.OrientationHorizontal
	default:
		return models.StoreLayout{}, fmt.Errorf("layout yaml: 알 수 없는 orientation %q", f.Orientation)
	}

	return layout, nil
}

func setFloat(dst *float64, src *float64) {
	if src != nil {
		*dst = *src
	}
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func envBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}
