package handler

import (
	"context"
	"strconv"

	"github.com/cloudwego/hertz/pkg/app"

	"github.com/dlwlehd/geultto-challenge-bot/internal/model/dto"
	"github.com/dlwlehd/geultto-challenge-bot/internal/service"
	pkgerrors "github.com/dlwlehd/geultto-challenge-bot/pkg/errors"
	"github.com/dlwlehd/geultto-challenge-bot/pkg/kst"
	"github.com/dlwlehd/geultto-challenge-bot/pkg/response"
)

// CheckinHandler 는 체크인 표면의 얇은 HTTP 셔틀이다. 업무 규칙은 전부
// 서비스에 있고, 여기서는 바인딩과 nil → 404 변환만 한다.
type CheckinHandler struct {
	checkins *service.CheckinService
}

func NewCheckinHandler(checkins *service.CheckinService) *CheckinHandler {
	return &CheckinHandler{checkins: checkins}
}

func userIDParam(c *app.RequestContext) (string, bool) {
	userID := c.Param("user_id")
	return userID, userID != ""
}

// GetDay 사용자의 현재 논리적 날짜를 돌려준다.
// GET /v1/users/:user_id/day
func (h *CheckinHandler) GetDay(ctx context.Context, c *app.RequestContext) {
	userID, ok := userIDParam(c)
	if !ok {
		response.Error(ctx, c, pkgerrors.InvalidUserID)
		return
	}

	day, err := h.checkins.LogicalDay(ctx, userID)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, dto.DayData{Date: day.String()})
}

// Create 오늘의 체크인을 생성(또는 교체)한다.
// POST /v1/users/:user_id/check-ins
func (h *CheckinHandler) Create(ctx context.Context, c *app.RequestContext) {
	userID, ok := userIDParam(c)
	if !ok {
		response.Error(ctx, c, pkgerrors.InvalidUserID)
		return
	}

	var req dto.CreateCheckinRequest
	if err := c.BindJSON(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	record, err := h.checkins.Create(ctx, userID, req.Tasks)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, dto.NewCheckinData(record))
}

// GetToday 논리적 오늘의 체크인을 조회한다.
// GET /v1/users/:user_id/check-ins/today
func (h *CheckinHandler) GetToday(ctx context.Context, c *app.RequestContext) {
	userID, ok := userIDParam(c)
	if !ok {
		response.Error(ctx, c, pkgerrors.InvalidUserID)
		return
	}

	record, err := h.checkins.Today(ctx, userID)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	if record == nil {
		response.Error(ctx, c, pkgerrors.CheckinNotFound)
		return
	}

	response.Success(ctx, c, dto.NewCheckinData(*record))
}

// UpdateToday 오늘의 할 일 목록을 수정한다. 기록이 없으면 404.
// PUT /v1/users/:user_id/check-ins/today
func (h *CheckinHandler) UpdateToday(ctx context.Context, c *app.RequestContext) {
	userID, ok := userIDParam(c)
	if !ok {
		response.Error(ctx, c, pkgerrors.InvalidUserID)
		return
	}

	var req dto.UpdateCheckinRequest
	if err := c.BindJSON(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	record, err := h.checkins.UpdateToday(ctx, userID, req.Tasks)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	if record == nil {
		response.Error(ctx, c, pkgerrors.CheckinNotFound)
		return
	}

	response.Success(ctx, c, dto.NewCheckinData(*record))
}

// ToggleTask 할 일 완료 여부를 뒤집는다.
// POST /v1/users/:user_id/check-ins/today/tasks/:task_id/toggle
func (h *CheckinHandler) ToggleTask(ctx context.Context, c *app.RequestContext) {
	userID, ok := userIDParam(c)
	if !ok {
		response.Error(ctx, c, pkgerrors.InvalidUserID)
		return
	}

	taskID, err := strconv.Atoi(c.Param("task_id"))
	if err != nil || taskID < 1 {
		response.Error(ctx, c, pkgerrors.InvalidTaskID)
		return
	}

	task, err := h.checkins.ToggleTask(ctx, userID, taskID)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	if task == nil {
		response.Error(ctx, c, pkgerrors.TaskNotFound)
		return
	}

	response.Success(ctx, c, task)
}

// GetHistory 전체 체크인 기록을 돌려준다(최신 우선).
// GET /v1/users/:user_id/check-ins
func (h *CheckinHandler) GetHistory(ctx context.Context, c *app.RequestContext) {
	userID, ok := userIDParam(c)
	if !ok {
		response.Error(ctx, c, pkgerrors.InvalidUserID)
		return
	}

	history, err := h.checkins.History(ctx, userID)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	records := make([]dto.CheckinData, 0, len(history))
	for _, record := range history {
		records = append(records, dto.NewCheckinData(record))
	}

	response.SuccessWithMeta(ctx, c, records, map[string]interface{}{
		"count": len(records),
	})
}

// GetRecent 논리적 오늘을 제외한 가장 최근 체크인을 돌려준다.
// GET /v1/users/:user_id/check-ins/recent
func (h *CheckinHandler) GetRecent(ctx context.Context, c *app.RequestContext) {
	userID, ok := userIDParam(c)
	if !ok {
		response.Error(ctx, c, pkgerrors.InvalidUserID)
		return
	}

	record, err := h.checkins.RecentExcludingToday(ctx, userID)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	if record == nil {
		response.Error(ctx, c, pkgerrors.CheckinNotFound)
		return
	}

	response.Success(ctx, c, dto.NewCheckinData(*record))
}

// GetStreaks 현재/최장 스트릭을 돌려준다.
// GET /v1/users/:user_id/check-ins/streaks
func (h *CheckinHandler) GetStreaks(ctx context.Context, c *app.RequestContext) {
	userID, ok := userIDParam(c)
	if !ok {
		response.Error(ctx, c, pkgerrors.InvalidUserID)
		return
	}

	current, max, err := h.checkins.Streaks(ctx, userID)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, dto.StreakData{Current: current, Max: max})
}

// GetByDate 특정 날짜의 체크인을 조회한다. meta 에 연대순 번호를 싣는다.
// GET /v1/users/:user_id/check-ins/:date
func (h *CheckinHandler) GetByDate(ctx context.Context, c *app.RequestContext) {
	userID, ok := userIDParam(c)
	if !ok {
		response.Error(ctx, c, pkgerrors.InvalidUserID)
		return
	}

	date, err := kst.Parse(c.Param("date"))
	if err != nil {
		response.Error(ctx, c, pkgerrors.InvalidDate)
		return
	}

	record, err := h.checkins.GetByDate(ctx, userID, date)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	if record == nil {
		response.Error(ctx, c, pkgerrors.CheckinNotFound)
		return
	}

	index, err := h.checkins.ChronologicalIndex(ctx, userID, date)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.SuccessWithMeta(ctx, c, dto.NewCheckinData(*record), map[string]interface{}{
		"index": index,
	})
}
