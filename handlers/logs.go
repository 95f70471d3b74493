package handlers

import (
	"errors"
	"fmt"
	"storenav-backend/models"
	"storenav-backend/services"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
)

const (
	defaultLogLimit = 100
	maxLogLimit     = 1000
	defaultLogRange = 24 * time.Hour
)

// parseTimeParam - RFC3339 쿼리 값, 비어 있으면 fallback
func parseTimeParam(c *fiber.Ctx, key string, fallback time.Time) (time.Time, error) {
	raw := c.Query(key)
	if raw == "" {
		return fallback, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s 형식이 잘못되었습니다 (RFC3339): %q", key, raw)
	}
	return t, nil
}

// logQueryFromRequest - 공통 필터 파싱 (robot_id, task_id, source, event_type, start, end, limit)
//
// 알 수 없는 source / event_type 은 오류. start/end 가 없으면 시간 조건 없음.
func logQueryFromRequest(c *fiber.Ctx) (services.LogQuery, error) {
	q := services.LogQuery{
		RobotID:   c.Query("robot_id"),
		TaskID:    c.Query("task_id"),
		Source:    c.Query("source"),
		EventType: c.Query("event_type"),
		Limit:     defaultLogLimit,
	}

	if q.Source != "" && !models.IsKnownSource(q.Source) {
		return q, fmt.Errorf("알 수 없는 source: %q", q.Source)
	}
	if q.EventType != "" && !models.IsKnownEvent(q.EventType) {
		return q, fmt.Errorf("알 수 없는 event_type: %q", q.EventType)
	}

	if n, err := strconv.Atoi(c.Query("limit")); err == nil && n > 0 {
		q.Limit = n
	}
	if q.Limit > maxLogLimit {
		q.Limit = maxLogLimit
	}

	var err error
	if q.Since, err = parseTimeParam(c, "start", time.Time{}); err != nil {
		return q, err
	}
	if q.Until, err = parseTimeParam(c, "end", time.Time{}); err != nil {
		return q, err
	}
	if !q.Since.IsZero() && !q.Until.IsZero() && q.Until.Before(q.Since) {
		return q, errors.New("end 가 start 보다 앞섭니다")
	}
	return q, nil
}

func respondLogs(c *fiber.Ctx, q services.LogQuery, extra fiber.Map) error {
	logs, err := services.QueryLogs(q)
	if err != nil {
		return serverError(c, fmt.Errorf("로그 조회 실패: %w", err))
	}

	body := fiber.Map{
		"success": true,
		"count":   len(logs),
		"logs":    logs,
	}
	for k, v := range extra {
		body[k] = v
	}
	return c.JSON(body)
}

// HandleQueryLogs - 필터 조합으로 로그 조회 (최신순)
func HandleQueryLogs(c *fiber.Ctx) error {
	q, err := logQueryFromRequest(c)
	if err != nil {
		return badRequest(c, err)
	}
	return respondLogs(c, q, nil)
}

// HandleGetLogsByTimeRange - 시간 범위 조회, 기본은 최근 24시간
func HandleGetLogsByTimeRange(c *fiber.Ctx) error {
	q, err := logQueryFromRequest(c)
	if err != nil {
		return badRequest(c, err)
	}
	if q.Until.IsZero() {
		q.Until = time.Now()
	}
	if q.Since.IsZero() {
		q.Since = q.Until.Add(-defaultLogRange)
	}

	return respondLogs(c, q, fiber.Map{
		"time_range": fiber.Map{
			"start": q.Since.Format(time.RFC3339),
			"end":   q.Until.Format(time.RFC3339),
		},
	})
}

// HandleGetLogsByEventType - event_type 필수
func HandleGetLogsByEventType(c *fiber.Ctx) error {
	q, err := logQueryFromRequest(c)
	if err != nil {
		return badRequest(c, err)
	}
	if q.EventType == "" {
		return badRequest(c, errors.New("event_type 파라미터가 필요합니다"))
	}
	return respondLogs(c, q, fiber.Map{"event_type": q.EventType})
}

// HandleGetTaskLogs - 작업 하나의 배정 → 단계 → 완료 타임라인 (오래된 순)
func HandleGetTaskLogs(c *fiber.Ctx) error {
	q, err := logQueryFromRequest(c)
	if err != nil {
		return badRequest(c, err)
	}
	q.TaskID = c.Params("id")
	q.Ascending = true
	return respondLogs(c, q, fiber.Map{"task_id": q.TaskID})
}

// HandleGetLogStats - 최근 hours 시간 이벤트 통계
func HandleGetLogStats(c *fiber.Ctx) error {
	hours, err := strconv.Atoi(c.Query("hours", "24"))
	if err != nil || hours <= 0 {
		hours = 24
	}

	stats, err := services.GetLogStats(hours)
	if err != nil {
		return serverError(c, fmt.Errorf("통계 조회 실패: %w", err))
	}
	return c.JSON(fiber.Map{
		"success": true,
		"stats":   stats,
	})
}
