package handler

import (
	"context"
	"time"

	"github.com/cloudwego/hertz/pkg/app"

	"github.com/dlwlehd/geultto-challenge-bot/internal/model"
	"github.com/dlwlehd/geultto-challenge-bot/internal/model/dto"
	"github.com/dlwlehd/geultto-challenge-bot/internal/service"
	pkgerrors "github.com/dlwlehd/geultto-challenge-bot/pkg/errors"
	"github.com/dlwlehd/geultto-challenge-bot/pkg/response"
)

type ResetHourHandler struct {
	resetHours *service.ResetHourService
}

func NewResetHourHandler(resetHours *service.ResetHourService) *ResetHourHandler {
	return &ResetHourHandler{resetHours: resetHours}
}

func pendingData(change *model.PendingResetChange) *dto.PendingResetData {
	if change == nil {
		return nil
	}
	return &dto.PendingResetData{
		Hour:        change.Hour,
		EffectiveAt: time.UnixMilli(change.EffectiveTime).Format(time.RFC3339),
	}
}

// GetStatus 현재 적용중인 초기화 시각과 대기중인 변경을 돌려준다.
// GET /v1/users/:user_id/reset-hour
func (h *ResetHourHandler) GetStatus(ctx context.Context, c *app.RequestContext) {
	userID, ok := userIDParam(c)
	if !ok {
		response.Error(ctx, c, pkgerrors.InvalidUserID)
		return
	}

	hour, pending, err := h.resetHours.Status(ctx, userID)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, dto.ResetHourData{
		Hour:    hour,
		Pending: pendingData(pending),
	})
}

// GetWindow 지금 변경할 수 있는지 판정 결과를 돌려준다.
// GET /v1/users/:user_id/reset-hour/window
func (h *ResetHourHandler) GetWindow(ctx context.Context, c *app.RequestContext) {
	userID, ok := userIDParam(c)
	if !ok {
		response.Error(ctx, c, pkgerrors.InvalidUserID)
		return
	}

	window, err := h.resetHours.Window(ctx, userID)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	data := dto.UpdateWindowData{
		CanUpdate: window.CanUpdate,
		Reason:    window.Reason,
	}
	if !window.NextAvailable.IsZero() {
		data.NextAvailable = window.NextAvailable.Format(time.RFC3339)
	}
	response.Success(ctx, c, data)
}

// Change 초기화 시각 변경을 예약한다. 3일 제한에 걸리면 429.
// PUT /v1/users/:user_id/reset-hour
func (h *ResetHourHandler) Change(ctx context.Context, c *app.RequestContext) {
	userID, ok := userIDParam(c)
	if !ok {
		response.Error(ctx, c, pkgerrors.InvalidUserID)
		return
	}

	var req dto.ChangeResetHourRequest
	if err := c.BindJSON(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}
	if req.Hour == nil {
		response.Error(ctx, c, pkgerrors.InvalidResetHour)
		return
	}

	decision, err := h.resetHours.RequestChange(ctx, userID, *req.Hour)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	if !decision.Accepted {
		response.ErrorWithDetails(ctx, c, pkgerrors.ResetHourRateLimited, map[string]interface{}{
			"reason":         decision.Limit.Reason,
			"next_available": decision.Limit.NextAvailable.Format(time.RFC3339),
		})
		return
	}

	response.Success(ctx, c, dto.ResetHourChangeData{
		PreviousHour: decision.PreviousHour,
		NewHour:      decision.NewHour,
		EffectiveAt:  decision.EffectiveAt.Format(time.RFC3339),
	})
}
