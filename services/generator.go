package services

import (
	"fmt"
	"math"
	"math/rand"
	"storenav-backend/algorithms"
	"storenav-backend/models"
	"sync"
	"time"
)

const (
	// shelfEndMargin - 선반 상품을 레인 양끝에서 띄우는 거리
	shelfEndMargin = 15.0
	// shelfJitterX, shelfJitterY - 선반 위 상품 위치 흔들림 폭
	shelfJitterX = 1.5
	shelfJitterY = 2.0
	// robotEdgeMargin - 로봇 출발/도착 지점을 매장 위아래 끝에서 띄우는 거리
	robotEdgeMargin = 10.0
	minRobotSpeed   = 2.0
	robotSpeedRange = 3.0
)

var robotNames = []string{
	"WALL-E", "EVE", "BB-8", "R2-D2", "C-3PO",
	"Rosie", "Bender", "T-800", "Data", "GERTY",
}

var robotVariants = []models.RobotVariant{
	models.VariantWalking,
	models.VariantTracked,
	models.VariantDome,
}

// LockedRand - 여러 고루틴에서 같이 쓸 수 있는 난수원
type LockedRand struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomSource - seed 가 0 이면 현재 시각으로 시드
func NewRandomSource(seed int64) *LockedRand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &LockedRand{rng: rand.New(rand.NewSource(seed))}
}

// Float64 - [0, 1) 난수
func (r *LockedRand) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Float64()
}

// GenerateProducts - 레인 양옆 선반에 상품을 채우고 남는 개수는 매장 전체에 흩뿌림 (월드 좌표)
func GenerateProducts(count int, layout models.StoreLayout, rng algorithms.RandomSource) []models.Product {
	if count <= 0 {
		return []models.Product{}
	}

	products := make([]models.Product, 0, count)
	add := func(p models.Point) {
		w := layout.World(p)
		products = append(products, models.Product{
			ID: fmt.Sprintf("product-%d", len(products)),
			X:  w.X,
			Y:  w.Y,
		})
	}

	perSide := 0
	if layout.LaneCount > 0 {
		perSide = count / (layout.LaneCount * 2)
	}
	usable := layout.StoreHeight - 2*shelfEndMargin

	for lane := 0; lane < layout.LaneCount && perSide > 0; lane++ {
		center := layout.LaneCenter(lane)
		for _, side := range []float64{-1, 1} {
			for i := 0; i < perSide && len(products) < count; i++ {
				add(models.Point{
					X: center + side*layout.LaneThickness/2 + (rng.Float64()-0.5)*shelfJitterX,
					Y: -layout.StoreHeight/2 + shelfEndMargin +
						float64(i)/float64(perSide)*usable +
						(rng.Float64()-0.5)*shelfJitterY,
				})
			}
		}
	}

	for len(products) < count {
		add(models.Point{
			X: rng.Float64()*layout.StoreWidth - layout.StoreWidth/2,
			Y: rng.Float64()*layout.StoreHeight - layout.StoreHeight/2,
		})
	}

	return products
}

// GenerateRobots - 레인 사이 통로 위/아래 끝에서 출발해 반대편 끝으로 가는 로봇 생성 (월드 좌표)
func GenerateRobots(count int, layout models.StoreLayout, rng algorithms.RandomSource) []models.Robot {
	if count <= 0 {
		return []models.Robot{}
	}

	gaps := layout.LaneCount - 1
	if gaps < 1 {
		gaps = 1
	}
	gapCenter := func() float64 {
		g := algorithms.ClampInt(int(math.Floor(rng.Float64()*float64(gaps))), 0, gaps-1)
		return (layout.LaneCenter(g) + layout.LaneCenter(g+1)) / 2
	}

	top := layout.StoreHeight/2 - robotEdgeMargin
	bottom := -layout.StoreHeight/2 + robotEdgeMargin

	robots := make([]models.Robot, count)
	for i := range robots {
		startAtTop := rng.Float64() > 0.5
		startY, destY := bottom, top
		if startAtTop {
			startY, destY = top, bottom
		}

		start := models.Point{X: gapCenter(), Y: startY}
		dest := models.Point{X: gapCenter(), Y: destY}

		robots[i] = models.Robot{
			ID:      fmt.Sprintf("robot-%d", i),
			Name:    fmt.Sprintf("%s-%d", robotNames[i%len(robotNames)], i/len(robotNames)+1),
			Variant: robotVariants[i%len(robotVariants)],
			State: models.RobotState{
				Position:    layout.World(start),
				Destination: layout.World(dest),
				Heading:     rng.Float64() * 2 * math.Pi,
				Speed:       minRobotSpeed + rng.Float64()*robotSpeedRange,
			},
		}
	}

	return robots
}
