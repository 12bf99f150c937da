package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/dlwlehd/geultto-challenge-bot/internal/model"
	pkgerrors "github.com/dlwlehd/geultto-challenge-bot/pkg/errors"
	"github.com/dlwlehd/geultto-challenge-bot/pkg/kst"
	"github.com/dlwlehd/geultto-challenge-bot/pkg/logger"
	"github.com/dlwlehd/geultto-challenge-bot/storage"
	"github.com/dlwlehd/geultto-challenge-bot/storage/document"
)

// 초기화 시각은 3일에 한 번만 변경할 수 있다.
const resetChangeCooldown = 3 * 24 * time.Hour

// ResetHourService 는 사용자별 초기화 시각의 해석과 변경 예약을 담당한다.
// 프로세스 기동 시 한 번 생성해서 참조로 전달한다.
type ResetHourService struct {
	settings *document.Store[model.ResetHourSetting]
	pending  *document.Store[model.PendingResetChange]
	now      func() time.Time
}

func NewResetHour(stores *storage.Stores) *ResetHourService {
	return &ResetHourService{
		settings: stores.ResetHours,
		pending:  stores.PendingResets,
		now:      time.Now,
	}
}

// UpdateWindow 변경 가능 여부 판정. 막혀 있으면 풀리는 시각을 함께 담는다.
type UpdateWindow struct {
	CanUpdate     bool
	Reason        string
	NextAvailable time.Time
}

// ChangeDecision 변경 요청의 결과. 제한에 걸린 거절은 에러가 아니라
// Accepted=false 와 Limit 으로 표현된다.
type ChangeDecision struct {
	Accepted     bool
	Limit        *UpdateWindow
	PreviousHour int
	NewHour      int
	EffectiveAt  time.Time
}

// PromoteDueChange 는 발효 시각이 지난 변경 예약을 설정으로 승격한다.
// 예약이 없거나 아직 발효 전이면 아무것도 하지 않는다. 지연 조회 경로와
// 주기적 스윕이 같은 사용자에 대해 겹쳐 실행되어도 안전하다(멱등).
func (s *ResetHourService) PromoteDueChange(ctx context.Context, userID string) (bool, error) {
	pending, err := s.pending.Load(ctx)
	if err != nil {
		return false, err
	}

	change, ok := pending[userID]
	if !ok {
		return false, nil
	}

	now := s.now()
	if now.UnixMilli() < change.EffectiveTime {
		return false, nil
	}

	settings, err := s.settings.Load(ctx)
	if err != nil {
		return false, err
	}

	settings[userID] = model.ResetHourSetting{
		Hour:       change.Hour,
		LastUpdate: change.LastUpdate,
		AppliedAt:  now.UnixMilli(),
	}
	if err := s.settings.Save(ctx, settings); err != nil {
		return false, err
	}

	delete(pending, userID)
	if err := s.pending.Save(ctx, pending); err != nil {
		return false, err
	}

	logger.Logger.Info("Promoted pending reset-hour change",
		zap.String("user_id", userID),
		zap.Int("hour", change.Hour),
	)
	return true, nil
}

// PromoteAllDue 는 발효 시각이 지난 모든 예약을 한 번의 read-modify-write 로
// 승격한다. 스윕 경로 전용.
func (s *ResetHourService) PromoteAllDue(ctx context.Context) (int, error) {
	pending, err := s.pending.Load(ctx)
	if err != nil {
		return 0, err
	}

	now := s.now().UnixMilli()
	due := make([]string, 0)
	for userID, change := range pending {
		if now >= change.EffectiveTime {
			due = append(due, userID)
		}
	}
	if len(due) == 0 {
		return 0, nil
	}

	settings, err := s.settings.Load(ctx)
	if err != nil {
		return 0, err
	}

	for _, userID := range due {
		change := pending[userID]
		settings[userID] = model.ResetHourSetting{
			Hour:       change.Hour,
			LastUpdate: change.LastUpdate,
			AppliedAt:  now,
		}
	}
	if err := s.settings.Save(ctx, settings); err != nil {
		return 0, err
	}

	for _, userID := range due {
		delete(pending, userID)
	}
	if err := s.pending.Save(ctx, pending); err != nil {
		return 0, err
	}

	return len(due), nil
}

// EffectiveHour 는 지금 이 순간 사용자에게 적용되는 초기화 시각을 돌려준다.
// 발효 시각이 지난 예약이 있으면 먼저 승격하므로 읽기가 쓰기를 동반할 수 있다.
func (s *ResetHourService) EffectiveHour(ctx context.Context, userID string) (int, error) {
	if _, err := s.PromoteDueChange(ctx, userID); err != nil {
		return 0, err
	}

	settings, err := s.settings.Load(ctx)
	if err != nil {
		return 0, err
	}

	if setting, ok := settings[userID]; ok {
		return setting.Hour, nil
	}
	return model.DefaultResetHour, nil
}

// Status 는 현재 적용 시각과 대기중인 예약을 함께 돌려준다. 조회 표면용.
func (s *ResetHourService) Status(ctx context.Context, userID string) (int, *model.PendingResetChange, error) {
	hour, err := s.EffectiveHour(ctx, userID)
	if err != nil {
		return 0, nil, err
	}

	pending, err := s.pending.Load(ctx)
	if err != nil {
		return 0, nil, err
	}

	if change, ok := pending[userID]; ok {
		return hour, &change, nil
	}
	return hour, nil, nil
}

// Window 는 변경 가능 여부를 판정한다. 대기중인 예약이 있거나 마지막 변경
// 후 3일이 지나지 않았으면 막힌다.
func (s *ResetHourService) Window(ctx context.Context, userID string) (UpdateWindow, error) {
	// 이미 발효된 예약이 판정을 막지 않도록 먼저 승격한다
	if _, err := s.PromoteDueChange(ctx, userID); err != nil {
		return UpdateWindow{}, err
	}

	pending, err := s.pending.Load(ctx)
	if err != nil {
		return UpdateWindow{}, err
	}

	if change, ok := pending[userID]; ok {
		return UpdateWindow{
			CanUpdate:     false,
			Reason:        "a pending change is already scheduled",
			NextAvailable: time.UnixMilli(change.EffectiveTime),
		}, nil
	}

	settings, err := s.settings.Load(ctx)
	if err != nil {
		return UpdateWindow{}, err
	}

	if setting, ok := settings[userID]; ok {
		lastUpdate := time.UnixMilli(setting.LastUpdate)
		if s.now().Sub(lastUpdate) < resetChangeCooldown {
			return UpdateWindow{
				CanUpdate:     false,
				Reason:        "changed within the last 3 days",
				NextAvailable: lastUpdate.Add(resetChangeCooldown),
			}, nil
		}
	}

	return UpdateWindow{CanUpdate: true}, nil
}

// RequestChange 는 초기화 시각 변경을 예약한다. 발효 시각은 요청한 시각이
// 오늘 아직 지나지 않았더라도 항상 다음 달력 날짜의 newHour시 정각이다 —
// 어떤 변경이든 적용 전에 하루의 안정 기간을 가진다.
func (s *ResetHourService) RequestChange(ctx context.Context, userID string, newHour int) (ChangeDecision, error) {
	if newHour < 0 || newHour > 23 {
		return ChangeDecision{}, pkgerrors.InvalidResetHour
	}

	window, err := s.Window(ctx, userID)
	if err != nil {
		return ChangeDecision{}, err
	}
	if !window.CanUpdate {
		logger.Logger.Info("Reset-hour change rejected",
			zap.String("user_id", userID),
			zap.String("reason", window.Reason),
			zap.Time("next_available", window.NextAvailable),
		)
		return ChangeDecision{Accepted: false, Limit: &window}, nil
	}

	previousHour, err := s.EffectiveHour(ctx, userID)
	if err != nil {
		return ChangeDecision{}, err
	}

	now := s.now()
	effectiveAt := kst.NextBoundary(now, newHour)

	pending, err := s.pending.Load(ctx)
	if err != nil {
		return ChangeDecision{}, err
	}
	pending[userID] = model.PendingResetChange{
		Hour:          newHour,
		LastUpdate:    now.UnixMilli(),
		EffectiveTime: effectiveAt.UnixMilli(),
	}
	if err := s.pending.Save(ctx, pending); err != nil {
		return ChangeDecision{}, err
	}

	logger.Logger.Info("Reset-hour change scheduled",
		zap.String("user_id", userID),
		zap.Int("previous_hour", previousHour),
		zap.Int("new_hour", newHour),
		zap.Time("effective_at", effectiveAt),
	)

	return ChangeDecision{
		Accepted:     true,
		PreviousHour: previousHour,
		NewHour:      newHour,
		EffectiveAt:  effectiveAt,
	}, nil
}
