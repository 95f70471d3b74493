package services

import (
	"storenav-backend/algorithms"
	"storenav-backend/models"

	"gonum.org/v1/gonum/spatial/r2"
)

const (
	RobotRadius     = 2.0
	ProductRadius   = 0.5
	CollisionBuffer = 0.5

	// CollisionRadius - 로봇 중심과 상품 중심 사이 최소 거리
	CollisionRadius = RobotRadius + ProductRadius + CollisionBuffer
	// PushDistance - 충돌 후 밀어내는 거리
	PushDistance = CollisionRadius + 0.2
)

// CheckProductCollision - p 가 충돌 반경 안에 들어간 첫 번째 상품
func CheckProductCollision(p models.Point, products []models.Point) (models.Point, bool) {
	for _, product := range products {
		if p.DistanceTo(product) < CollisionRadius {
			return product, true
		}
	}
	return models.Point{}, false
}

// CheckProductCollisionAlongSegment - from→to 선분의 최근접점이 충돌 반경 안에 들어간 첫 번째 상품
func CheckProductCollisionAlongSegment(from, to models.Point, products []models.Point) (models.Point, bool) {
	seg := r2.Sub(to.Vec(), from.Vec())
	segLenSq := r2.Norm2(seg)

	for _, product := range products {
		t := 0.0
		if segLenSq > algorithms.Epsilon {
			t = r2.Dot(r2.Sub(product.Vec(), from.Vec()), seg) / segLenSq
		}
		closest := r2.Add(from.Vec(), r2.Scale(algorithms.Clamp(t, 0, 1), seg))
		if r2.Norm2(r2.Sub(closest, product.Vec())) < CollisionRadius*CollisionRadius {
			return product, true
		}
	}
	return models.Point{}, false
}

// pushNormal - 상품에서 from 방향의 단위 벡터
//
// 두 점이 겹치면 +y 방향을 쓴다.
func pushNormal(product, from models.Point) r2.Vec {
	d := r2.Sub(from.Vec(), product.Vec())
	dist := r2.Norm(d)
	if dist < algorithms.Epsilon {
		return r2.Vec{X: 0, Y: 1}
	}
	return r2.Scale(1/dist, d)
}

// pushAway - 상품 중심에서 normal 방향으로 PushDistance 만큼 떨어진 점
func pushAway(product models.Point, normal r2.Vec) models.Point {
	return models.PointFromVec(r2.Add(product.Vec(), r2.Scale(PushDistance, normal)))
}
