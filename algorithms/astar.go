package algorithms

import (
	"container/heap"
	"math"
)

// Cell - 그리드 셀 좌표 (열, 행)
type Cell struct {
	Col int `json:"col"`
	Row int `json:"row"`
}

// Node - A* 오픈셋 노드
type Node struct {
	Cell
	F     int
	index int // for heap
}

// PriorityQueue - f 값 오름차순 최소 힙
//
// f 가 같은 노드끼리의 순서는 힙 내부 배치에 따라 달라진다.
// 동점일 때 어느 경로가 선택되는지는 보장하지 않는다.
type PriorityQueue []*Node

func (pq PriorityQueue) Len() int { return len(pq) }

func (pq PriorityQueue) Less(i, j int) bool {
	return pq[i].F < pq[j].F
}

func (pq PriorityQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].index = i
	pq[j].index = j
}

func (pq *PriorityQueue) Push(x interface{}) {
	n := len(*pq)
	node := x.(*Node)
	node.index = n
	*pq = append(*pq, node)
}

func (pq *PriorityQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	node := old[n-1]
	old[n-1] = nil
	node.index = -1
	*pq = old[0 : n-1]
	return node
}

// GridSize - [row][col] 그리드의 (cols, rows)
func GridSize(grid [][]bool) (int, int) {
	if len(grid) == 0 {
		return 0, 0
	}
	return len(grid[0]), len(grid)
}

// IsWalkable - 범위 밖은 통행 불가
func IsWalkable(grid [][]bool, c Cell) bool {
	if c.Row < 0 || c.Row >= len(grid) {
		return false
	}
	row := grid[c.Row]
	if c.Col < 0 || c.Col >= len(row) {
		return false
	}
	return row[c.Col]
}

// Neighbors - 4방향 이웃 중 통행 가능한 셀 (좌, 우, 상, 하 순)
func Neighbors(grid [][]bool, c Cell) []Cell {
	cols, rows := GridSize(grid)
	list := make([]Cell, 0, 4)
	if c.Col > 0 {
		list = append(list, Cell{Col: c.Col - 1, Row: c.Row})
	}
	if c.Col < cols-1 {
		list = append(list, Cell{Col: c.Col + 1, Row: c.Row})
	}
	if c.Row > 0 {
		list = append(list, Cell{Col: c.Col, Row: c.Row - 1})
	}
	if c.Row < rows-1 {
		list = append(list, Cell{Col: c.Col, Row: c.Row + 1})
	}

	walkable := list[:0]
	for _, n := range list {
		if IsWalkable(grid, n) {
			walkable = append(walkable, n)
		}
	}
	return walkable
}

// NearestWalkable - 통행 불가 셀에서 가장 가까운 통행 가능 셀 탐색
//
// 4방향 BFS 로 그리드 전체를 훑는다. 통행 가능한 셀이 하나도 없으면 원래 셀을 그대로 돌려준다.
func NearestWalkable(grid [][]bool, c Cell) Cell {
	if IsWalkable(grid, c) {
		return c
	}
	cols, rows := GridSize(grid)
	if cols == 0 || rows == 0 || c.Col < 0 || c.Col >= cols || c.Row < 0 || c.Row >= rows {
		return c
	}

	visited := make([]bool, cols*rows)
	visited[c.Row*cols+c.Col] = true
	queue := []Cell{c}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if IsWalkable(grid, current) {
			return current
		}

		for _, next := range []Cell{
			{Col: current.Col - 1, Row: current.Row},
			{Col: current.Col + 1, Row: current.Row},
			{Col: current.Col, Row: current.Row - 1},
			{Col: current.Col, Row: current.Row + 1},
		} {
			if next.Col < 0 || next.Col >= cols || next.Row < 0 || next.Row >= rows {
				continue
			}
			idx := next.Row*cols + next.Col
			if visited[idx] {
				continue
			}
			visited[idx] = true
			queue = append(queue, next)
		}
	}
	return c
}

// heuristic - 맨해튼 거리
func heuristic(a, b Cell) int {
	return abs(a.Col-b.Col) + abs(a.Row-b.Row)
}

// FindGridPath - 4방향 A* (단위 비용, 맨해튼 휴리스틱)
//
// 시작 셀부터 목표 셀까지의 셀 목록을 돌려준다. 목표에 도달하지 못하면 nil, false.
func FindGridPath(grid [][]bool, start, goal Cell) ([]Cell, bool) {
	cols, rows := GridSize(grid)
	if cols == 0 || rows == 0 {
		return nil, false
	}
	if start.Col < 0 || start.Col >= cols || start.Row < 0 || start.Row >= rows {
		return nil, false
	}

	key := func(c Cell) int { return c.Row*cols + c.Col }

	gScore := make([]int, cols*rows)
	cameFrom := make([]int, cols*rows)
	for i := range gScore {
		gScore[i] = math.MaxInt32
		cameFrom[i] = -1
	}

	openSet := make(PriorityQueue, 0)
	heap.Init(&openSet)

	gScore[key(start)] = 0
	heap.Push(&openSet, &Node{Cell: start, F: heuristic(start, goal)})

	for openSet.Len() > 0 {
		current := heap.Pop(&openSet).(*Node)

		if current.Cell == goal {
			return reconstructPath(cameFrom, key(goal), cols), true
		}

		tentativeG := gScore[key(current.Cell)] + 1
		for _, n := range Neighbors(grid, current.Cell) {
			nk := key(n)
			if tentativeG < gScore[nk] {
				cameFrom[nk] = key(current.Cell)
				gScore[nk] = tentativeG
				heap.Push(&openSet, &Node{Cell: n, F: tentativeG + heuristic(n, goal)})
			}
		}
	}

	return nil, false
}

// reconstructPath - 부모 링크를 따라 역추적 후 뒤집기
func reconstructPath(cameFrom []int, goalKey, cols int) []Cell {
	var path []Cell
	for k := goalKey; k >= 0; k = cameFrom[k] {
		path = append(path, Cell{Col: k % cols, Row: k / cols})
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
