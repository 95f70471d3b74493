package handlers

import (
	"storenav-backend/models"
	"storenav-backend/services"

	"github.com/gofiber/fiber/v2"
)

// RawRequest - 평탄화 숫자 배열 요청 (엔드포인트마다 쓰는 필드가 다르다)
type RawRequest struct {
	Layout             []float64 `json:"layout"`
	Start              []float64 `json:"start"`
	End                []float64 `json:"end"`
	Robots             []float64 `json:"robots"`
	Products           []float64 `json:"products"`
	Data               []float64 `json:"data"`
	DeltaMs            float64   `json:"delta_ms"`
	PreferOuterWalkway bool      `json:"prefer_outer_walkway"`
}

func parseRaw(c *fiber.Ctx) (RawRequest, error) {
	var req RawRequest
	err := parseBody(c, rawSchema, &req)
	return req, err
}

// HandleRawPath - start [x, y], end [x, y] → [x0, y0, x1, y1, ...]
//
// 좌표 쌍이 모자라면 빈 결과.
func HandleRawPath(c *fiber.Ctx) error {
	req, err := parseRaw(c)
	if err != nil {
		return badRequest(c, err)
	}

	starts := models.PointsFromBuffer(req.Start)
	ends := models.PointsFromBuffer(req.End)
	if len(starts) == 0 || len(ends) == 0 {
		return c.JSON(fiber.Map{"result": []float64{}})
	}

	layout := models.LayoutFromBuffer(req.Layout)
	path := pathFinder().PlanPath(starts[0], ends[0], layout, req.PreferOuterWalkway)
	services.LogPathComputed(models.SourceRaw, starts[0], ends[0], path, req.PreferOuterWalkway)

	return c.JSON(fiber.Map{"result": models.FlattenPoints(path)})
}

// HandleRawRobots - 로봇 7개 단위 배열 일괄 스텝 (길이가 7의 배수가 아니면 빈 결과)
func HandleRawRobots(c *fiber.Ctx) error {
	req, err := parseRaw(c)
	if err != nil {
		return badRequest(c, err)
	}

	states, ok := models.RobotStatesFromBuffer(req.Robots)
	if !ok {
		return c.JSON(fiber.Map{"result": []float64{}})
	}

	next := services.UpdateRobots(
		states,
		models.PointsFromBuffer(req.Products),
		models.LayoutFromBuffer(req.Layout),
		req.DeltaMs,
		randomSource(),
	)
	services.LogRobotsStepped(models.SourceRaw, len(next))

	return c.JSON(fiber.Map{"result": models.FlattenRobotStates(next)})
}

// HandleRawWaypoint - 10개 값 → [x, y, heading]
//
// products 가 있으면 통로/충돌을 고려한 이동을 쓴다. 입력이 짧으면 빈 결과.
func HandleRawWaypoint(c *fiber.Ctx) error {
	req, err := parseRaw(c)
	if err != nil {
		return badRequest(c, err)
	}

	wr, ok := models.WaypointRequestFromBuffer(req.Data)
	if !ok {
		return c.JSON(fiber.Map{"result": []float64{}})
	}

	s := wr.State
	var (
		pos     models.Point
		heading float64
	)
	if req.Products != nil {
		pos, heading = services.MoveToWaypointWithCollision(
			s.Position, s.Heading, s.Speed, wr.Waypoint, wr.DeltaMs,
			models.PointsFromBuffer(req.Products), models.LayoutFromBuffer(req.Layout),
		)
	} else {
		pos, heading = services.MoveToWaypoint(s.Position, s.Heading, s.Speed, wr.Waypoint, wr.DeltaMs)
	}

	return c.JSON(fiber.Map{"result": []float64{pos.X, pos.Y, heading}})
}

// HandleRawArrival - [rx, ry, wx, wy] → 1.0 / 0.0 (입력이 짧으면 0.0)
func HandleRawArrival(c *fiber.Ctx) error {
	req, err := parseRaw(c)
	if err != nil {
		return badRequest(c, err)
	}

	robot, waypoint, ok := models.ArrivalFromBuffer(req.Data)
	if !ok {
		return c.JSON(fiber.Map{"result": 0.0})
	}
	return c.JSON(fiber.Map{"result": models.BoolToFloat(services.HasArrived(robot, waypoint))})
}
