package services

import (
	"math"
	"storenav-backend/models"

	"gonum.org/v1/gonum/spatial/r2"
)

const (
	// ArrivalDistance - 웨이포인트 도착 판정 반경
	ArrivalDistance        = 2.5
	ArrivalDistanceSquared = ArrivalDistance * ArrivalDistance

	waypointReachedDistance = 0.01
)

// MoveToWaypoint - 웨이포인트를 향해 직선 이동 (그리드/장애물 무시)
//
// 헤딩은 보간 없이 이동 방향 atan2(dy, dx) 로 바로 바뀐다.
func MoveToWaypoint(pos models.Point, heading, speed float64, waypoint models.Point, deltaMs float64) (models.Point, float64) {
	next, direction, moved := stepToward(pos, speed, waypoint, deltaMs)
	if !moved {
		return pos, heading
	}
	return next, direction
}

// MoveToWaypointWithCollision - 통로/상품을 고려한 웨이포인트 이동 (월드 좌표 입출력)
func MoveToWaypointWithCollision(
	pos models.Point,
	heading, speed float64,
	waypoint models.Point,
	deltaMs float64,
	products []models.Point,
	layout models.StoreLayout,
) (models.Point, float64) {
	cPos := layout.Canonical(pos)
	cHeading := layout.TransformOrientation(heading)

	next, h := moveWithCollisionCanonical(
		cPos, cHeading, speed, layout.Canonical(waypoint), deltaMs,
		layout.CanonicalPoints(products), layout,
	)
	return layout.World(next), layout.TransformOrientation(h)
}

func moveWithCollisionCanonical(
	pos models.Point,
	heading, speed float64,
	waypoint models.Point,
	deltaMs float64,
	products []models.Point,
	layout models.StoreLayout,
) (models.Point, float64) {
	next, direction, moved := stepToward(pos, speed, waypoint, deltaMs)
	if !moved {
		return pos, heading
	}

	if !IsInLaneWalkway(pos, layout) {
		return FindNearestValidPosition(pos, layout), heading
	}

	// 축 하나를 고정해서라도 통로 안에 머물기
	if !IsInLaneWalkway(next, layout) {
		switch {
		case IsInLaneWalkway(models.Point{X: next.X, Y: pos.Y}, layout):
			next.Y = pos.Y
		case IsInLaneWalkway(models.Point{X: pos.X, Y: next.Y}, layout):
			next.X = pos.X
		default:
			return pos, heading
		}
	}

	if product, hit := CheckProductCollisionAlongSegment(pos, next, products); hit {
		next = pushAway(product, pushNormal(product, next))
		if !IsInLaneWalkway(next, layout) {
			next = pos
		}
	}

	return next, direction
}

// stepToward - min(speed*dt, 남은 거리) 만큼 이동한 점과 이동 방향
func stepToward(pos models.Point, speed float64, waypoint models.Point, deltaMs float64) (models.Point, float64, bool) {
	d := r2.Sub(waypoint.Vec(), pos.Vec())
	distance := r2.Norm(d)
	if distance < waypointReachedDistance {
		return pos, 0, false
	}

	direction := math.Atan2(d.Y, d.X)
	step := math.Min(speed*(deltaMs/1000), distance)

	return models.Point{
		X: pos.X + math.Cos(direction)*step,
		Y: pos.Y + math.Sin(direction)*step,
	}, direction, true
}

// HasArrived - 웨이포인트 도착 여부 (거리² ≤ 2.5²)
func HasArrived(robot, waypoint models.Point) bool {
	return robot.DistanceSqTo(waypoint) <= ArrivalDistanceSquared
}
