package models

// 평탄화 버퍼 레코드 크기
const (
	LayoutBufferSize   = 10
	RobotRecordSize    = 7
	PointRecordSize    = 2
	WaypointRecordSize = 10
	ArrivalRecordSize  = 4
)

var defaultLayoutBuffer = [LayoutBufferSize]float64{250, 150, 6, 40, 6, 20, 10, 4, 12, 0}

// LayoutFromBuffer - [width, height, laneCount, spacing, thickness, startOffset,
// walkwayWidth, crossLaneBuffer, outerWalkwayOffset, orientationFlag]
//
// 빠진 항목은 기본값으로 채운다. orientationFlag > 0.5 이면 가로 레이아웃.
func LayoutFromBuffer(buf []float64) StoreLayout {
	get := func(i int) float64 {
		if i < len(buf) {
			return buf[i]
		}
		return defaultLayoutBuffer[i]
	}

	layout := StoreLayout{
		StoreWidth:         get(0),
		StoreHeight:        get(1),
		LaneCount:          int(get(2)),
		LaneSpacing:        get(3),
		LaneThickness:      get(4),
		StartOffset:        get(5),
		WalkwayWidth:       get(6),
		CrossLaneBuffer:    get(7),
		OuterWalkwayOffset: get(8),
		Orientation:        OrientationVertical,
	}
	if get(9) > 0.5 {
		layout.Orientation = OrientationHorizontal
	}
	return layout
}

// Buffer - LayoutFromBuffer 의 역변환
func (l StoreLayout) Buffer() []float64 {
	flag := 0.0
	if l.IsHorizontal() {
		flag = 1
	}
	return []float64{
		l.StoreWidth, l.StoreHeight, float64(l.LaneCount), l.LaneSpacing, l.LaneThickness,
		l.StartOffset, l.WalkwayWidth, l.CrossLaneBuffer, l.OuterWalkwayOffset, flag,
	}
}

// RobotStatesFromBuffer - 로봇당 [x, y, destX, destY, heading, speed, stuckTimerMs]
//
// 길이가 7의 배수가 아니면 nil, false.
func RobotStatesFromBuffer(buf []float64) ([]RobotState, bool) {
	if len(buf)%RobotRecordSize != 0 {
		return nil, false
	}
	states := make([]RobotState, 0, len(buf)/RobotRecordSize)
	for i := 0; i+RobotRecordSize <= len(buf); i += RobotRecordSize {
		states = append(states, robotStateFromRecord(buf[i:i+RobotRecordSize]))
	}
	return states, true
}

func robotStateFromRecord(r []float64) RobotState {
	return RobotState{
		Position:     Point{X: r[0], Y: r[1]},
		Destination:  Point{X: r[2], Y: r[3]},
		Heading:      r[4],
		Speed:        r[5],
		StuckTimerMs: r[6],
	}
}

// FlattenRobotStates - RobotStatesFromBuffer 의 역변환
func FlattenRobotStates(states []RobotState) []float64 {
	out := make([]float64, 0, len(states)*RobotRecordSize)
	for _, s := range states {
		out = append(out,
			s.Position.X, s.Position.Y,
			s.Destination.X, s.Destination.Y,
			s.Heading, s.Speed, s.StuckTimerMs,
		)
	}
	return out
}

// PointsFromBuffer - [x0, y0, x1, y1, ...] (남는 홀수 항목은 무시)
func PointsFromBuffer(buf []float64) []Point {
	points := make([]Point, 0, len(buf)/PointRecordSize)
	for i := 0; i+PointRecordSize <= len(buf); i += PointRecordSize {
		points = append(points, Point{X: buf[i], Y: buf[i+1]})
	}
	return points
}

// FlattenPoints - PointsFromBuffer 의 역변환
func FlattenPoints(points []Point) []float64 {
	out := make([]float64, 0, len(points)*PointRecordSize)
	for _, p := range points {
		out = append(out, p.X, p.Y)
	}
	return out
}

// WaypointRequest - 웨이포인트 이동 요청 한 건
type WaypointRequest struct {
	State    RobotState `json:"state"`
	Waypoint Point      `json:"waypoint"`
	DeltaMs  float64    `json:"delta_ms"`
}

// WaypointRequestFromBuffer - [x, y, destX, destY, heading, speed, stuckTimerMs, wpX, wpY, deltaMs]
func WaypointRequestFromBuffer(buf []float64) (WaypointRequest, bool) {
	if len(buf) < WaypointRecordSize {
		return WaypointRequest{}, false
	}
	return WaypointRequest{
		State:    robotStateFromRecord(buf[:RobotRecordSize]),
		Waypoint: Point{X: buf[7], Y: buf[8]},
		DeltaMs:  buf[9],
	}, true
}

// ArrivalFromBuffer - [robotX, robotY, waypointX, waypointY]
func ArrivalFromBuffer(buf []float64) (Point, Point, bool) {
	if len(buf) < ArrivalRecordSize {
		return Point{}, Point{}, false
	}
	return Point{X: buf[0], Y: buf[1]}, Point{X: buf[2], Y: buf[3]}, true
}

// BoolToFloat - 1.0 / 0.0
func BoolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
