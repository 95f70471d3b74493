package services

import (
	"math"
	"storenav-backend/algorithms"
	"storenav-backend/models"

	"gonum.org/v1/gonum/spatial/r2"
)

const (
	// DefaultTickMs - deltaMs 가 0 이하일 때 쓰는 틱 간격
	DefaultTickMs = 50.0
	// StuckTimeoutMs - 이 시간 이상 못 움직이면 목적지 재설정
	StuckTimeoutMs = 3000.0
	// arrivalRetargetDistance - 목적지에 이만큼 가까워지면 새 목적지
	arrivalRetargetDistance = 2.0
	// bounceDistance - 충돌 반사 방향으로 잡는 새 목적지 거리
	bounceDistance = 50.0
	// headingSmoothing - 틱당 헤딩 보간 비율
	headingSmoothing = 0.25
	// movedThreshold - 축별 이동량이 이 값을 넘으면 움직인 것으로 본다
	movedThreshold = 0.01
)

// UpdateRobot - 로봇 하나를 한 틱 진행 (월드 좌표 입출력)
//
// 상태는 값으로 받아 새 상태를 돌려준다. 속도는 바꾸지 않는다.
func UpdateRobot(
	state models.RobotState,
	products []models.Point,
	layout models.StoreLayout,
	deltaMs float64,
	rng algorithms.RandomSource,
) models.RobotState {
	canonical := canonicalState(state, layout)
	next := stepCanonical(canonical, layout.CanonicalPoints(products), layout, deltaMs, rng)
	return canonicalState(next, layout)
}

// UpdateRobots - 로봇 목록 일괄 진행, 출력 순서 = 입력 순서
//
// 로봇끼리는 서로 영향을 주지 않는다. 상품 좌표 변환은 한 번만 한다.
func UpdateRobots(
	states []models.RobotState,
	products []models.Point,
	layout models.StoreLayout,
	deltaMs float64,
	rng algorithms.RandomSource,
) []models.RobotState {
	if deltaMs <= 0 {
		deltaMs = DefaultTickMs
	}
	canonicalProducts := layout.CanonicalPoints(products)

	out := make([]models.RobotState, len(states))
	for i, s := range states {
		next := stepCanonical(canonicalState(s, layout), canonicalProducts, layout, deltaMs, rng)
		out[i] = canonicalState(next, layout)
	}
	return out
}

// canonicalState - 위치/목적지/헤딩 좌표계 변환 (자기 자신이 역변환)
func canonicalState(s models.RobotState, layout models.StoreLayout) models.RobotState {
	s.Position = layout.TransformPoint(s.Position)
	s.Destination = layout.TransformPoint(s.Destination)
	s.Heading = layout.TransformOrientation(s.Heading)
	return s
}

// stepCanonical - 기준 좌표계에서 한 틱 진행
func stepCanonical(
	s models.RobotState,
	products []models.Point,
	layout models.StoreLayout,
	deltaMs float64,
	rng algorithms.RandomSource,
) models.RobotState {
	pos := s.Position
	dest := s.Destination
	timer := s.StuckTimerMs

	// 1. 오래 멈춰 있으면 목적지 재설정
	if timer > StuckTimeoutMs {
		dest = RandomDestination(layout, rng)
		timer = 0
	}

	// 2. 목적지 도착
	toDest := r2.Sub(dest.Vec(), pos.Vec())
	distance := r2.Norm(toDest)
	if distance < arrivalRetargetDistance {
		dest = RandomDestination(layout, rng)
		toDest = r2.Sub(dest.Vec(), pos.Vec())
		distance = r2.Norm(toDest)
	}

	// 3. 임시 이동
	moveAmount := s.Speed * (deltaMs / 1000)
	step := r2.Vec{}
	if distance > algorithms.Epsilon {
		step = r2.Scale(moveAmount/distance, toDest)
	}
	next := models.PointFromVec(r2.Add(pos.Vec(), step))

	// 4. 현재 위치가 통로 밖이면 스냅 후 이번 틱 종료
	if !IsInLaneWalkway(pos, layout) {
		return models.RobotState{
			Position:     FindNearestValidPosition(pos, layout),
			Destination:  RandomDestination(layout, rng),
			Heading:      s.Heading,
			Speed:        s.Speed,
			StuckTimerMs: 0,
		}
	}

	// 5. 이동할 위치가 통로 밖이면 제자리 + 새 목적지
	if !IsInLaneWalkway(next, layout) {
		return models.RobotState{
			Position:     pos,
			Destination:  RandomDestination(layout, rng),
			Heading:      s.Heading,
			Speed:        s.Speed,
			StuckTimerMs: timer + deltaMs,
		}
	}

	// 6. 상품 충돌 - 반사 방향으로 목적지를 튕기고 밀어내기
	if product, hit := CheckProductCollision(next, products); hit {
		normal := pushNormal(product, pos)
		dest = bounceDestination(pos, dest, normal, layout, rng)

		next = pushAway(product, normal)
		if !IsInLaneWalkway(next, layout) {
			next = pos
			dest = RandomDestination(layout, rng)
		}
	}

	// 7. 실제 이동 방향으로 헤딩 보간
	dx := next.X - pos.X
	dy := next.Y - pos.Y
	target := math.Atan2(dx, dy)
	heading := s.Heading + algorithms.ShortestAngleDiff(target, s.Heading)*headingSmoothing

	// 8. 정지 타이머
	if math.Abs(dx) > movedThreshold || math.Abs(dy) > movedThreshold {
		timer = 0
	} else {
		timer += deltaMs
	}

	return models.RobotState{
		Position:     next,
		Destination:  dest,
		Heading:      heading,
		Speed:        s.Speed,
		StuckTimerMs: timer,
	}
}

// bounceDestination - 목적지 방향을 법선에 대해 반사한 50 거리 지점
//
// 매장 경계 안쪽으로 클램프하고, 통로 밖이면 무작위 목적지로 대체한다.
func bounceDestination(
	pos, dest models.Point,
	normal r2.Vec,
	layout models.StoreLayout,
	rng algorithms.RandomSource,
) models.Point {
	toDest := r2.Sub(dest.Vec(), pos.Vec())
	dist := math.Max(r2.Norm(toDest), algorithms.Epsilon)
	dir := r2.Scale(1/dist, toDest)

	reflected := r2.Sub(dir, r2.Scale(2*r2.Dot(dir, normal), normal))
	bounced := models.PointFromVec(r2.Add(pos.Vec(), r2.Scale(bounceDistance, reflected)))

	bounced.X = algorithms.Clamp(bounced.X, -layout.StoreWidth/2+storeEdgeMargin, layout.StoreWidth/2-storeEdgeMargin)
	bounced.Y = algorithms.Clamp(bounced.Y, -layout.StoreHeight/2+storeEdgeMargin, layout.StoreHeight/2-storeEdgeMargin)

	if !IsInLaneWalkway(bounced, layout) {
		return RandomDestination(layout, rng)
	}
	return bounced
}
