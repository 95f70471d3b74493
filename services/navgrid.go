package services

import (
	"math"
	"storenav-backend/algorithms"
	"storenav-backend/models"
	"sync"
)

const (
	// NavCellSize - 그리드 셀 한 변 길이
	NavCellSize = 5.0
	// LaneClearance - 레인 반폭에 더하는 여유 거리
	LaneClearance = 1.5
)

// NavGrid - 레이아웃을 래스터화한 통행 가능 그리드 (기준 좌표계)
type NavGrid struct {
	Width    float64
	Height   float64
	CellSize float64
	Cols     int
	Rows     int
	Cells    [][]bool // [row][col], true = 통행 가능
}

// BuildNavGrid - 레인 영역을 전체 높이에 걸쳐 막은 그리드 생성
func BuildNavGrid(layout models.StoreLayout) *NavGrid {
	cols := int(math.Ceil(layout.StoreWidth / NavCellSize))
	rows := int(math.Ceil(layout.StoreHeight / NavCellSize))
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}

	g := &NavGrid{
		Width:    layout.StoreWidth,
		Height:   layout.StoreHeight,
		CellSize: NavCellSize,
		Cols:     cols,
		Rows:     rows,
		Cells:    make([][]bool, rows),
	}
	for r := range g.Cells {
		row := make([]bool, cols)
		for c := range row {
			row[c] = true
		}
		g.Cells[r] = row
	}
	if cols == 0 || rows == 0 {
		return g
	}

	halfShelf := layout.LaneThickness/2 + LaneClearance
	for lane := 0; lane < layout.LaneCount; lane++ {
		center := layout.LaneCenter(lane)
		if center-halfShelf > layout.StoreWidth/2 {
			// 간격이 0 이상이면 이후 레인도 모두 매장 오른쪽 밖
			if layout.LaneSpacing >= 0 {
				break
			}
			continue
		}
		minCol := algorithms.ClampInt(g.WorldToCol(center-halfShelf), 0, cols-1)
		maxCol := algorithms.ClampInt(g.WorldToCol(center+halfShelf), 0, cols-1)
		for col := minCol; col <= maxCol; col++ {
			for row := 0; row < rows; row++ {
				g.Cells[row][col] = false
			}
		}
	}

	return g
}

// IsEmpty - 행 또는 열이 0개
func (g *NavGrid) IsEmpty() bool {
	return g == nil || g.Cols == 0 || g.Rows == 0
}

// WorldToCol - 월드 x → 열 인덱스 (범위 검사 없음)
func (g *NavGrid) WorldToCol(x float64) int {
	return int(math.Floor((x + g.Width/2) / g.CellSize))
}

// WorldToRow - 월드 y → 행 인덱스 (범위 검사 없음)
func (g *NavGrid) WorldToRow(y float64) int {
	return int(math.Floor((y + g.Height/2) / g.CellSize))
}

// WorldToCell - 그리드 범위로 클램프된 셀
func (g *NavGrid) WorldToCell(p models.Point) algorithms.Cell {
	return algorithms.Cell{
		Col: algorithms.ClampInt(g.WorldToCol(p.X), 0, g.Cols-1),
		Row: algorithms.ClampInt(g.WorldToRow(p.Y), 0, g.Rows-1),
	}
}

// CellCenter - 셀 중심의 월드 좌표
func (g *NavGrid) CellCenter(c algorithms.Cell) models.Point {
	return models.Point{
		X: float64(c.Col)*g.CellSize - g.Width/2 + g.CellSize/2,
		Y: float64(c.Row)*g.CellSize - g.Height/2 + g.CellSize/2,
	}
}

// IsWalkable - 셀 통행 가능 여부
func (g *NavGrid) IsWalkable(c algorithms.Cell) bool {
	return algorithms.IsWalkable(g.Cells, c)
}

// LaneColumnSpan - lane 번째 레인이 막는 열 범위 (양 끝 포함)
func (g *NavGrid) LaneColumnSpan(layout models.StoreLayout, lane int) (int, int) {
	halfShelf := layout.LaneThickness/2 + LaneClearance
	center := layout.LaneCenter(lane)
	return algorithms.ClampInt(g.WorldToCol(center-halfShelf), 0, g.Cols-1),
		algorithms.ClampInt(g.WorldToCol(center+halfShelf), 0, g.Cols-1)
}

// GridCache - 레이아웃별 그리드 메모이제이션
//
// 그리드는 레이아웃 값에만 의존하므로 레이아웃 구조체 자체를 키로 쓴다.
type GridCache struct {
	mu    sync.RWMutex
	grids map[models.StoreLayout]*NavGrid
	limit int
}

// NewGridCache - limit 개까지 보관 (0 이하면 64)
func NewGridCache(limit int) *GridCache {
	if limit <= 0 {
		limit = 64
	}
	return &GridCache{
		grids: make(map[models.StoreLayout]*NavGrid),
		limit: limit,
	}
}

// Get - 캐시된 그리드 반환, 없으면 생성
//
// 반환된 그리드는 공유되므로 호출자가 수정하면 안 된다.
func (c *GridCache) Get(layout models.StoreLayout) *NavGrid {
	if c == nil {
		return BuildNavGrid(layout)
	}

	c.mu.RLock()
	g, ok := c.grids[layout]
	c.mu.RUnlock()
	if ok {
		return g
	}

	g = BuildNavGrid(layout)

	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.grids[layout]; ok {
		return existing
	}
	if len(c.grids) >= c.limit {
		// 가득 차면 통째로 비운다 (레이아웃 종류가 많지 않음)
		c.grids = make(map[models.StoreLayout]*NavGrid)
	}
	c.grids[layout] = g
	return g
}

// Len - 캐시된 레이아웃 수
func (c *GridCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.grids)
}
