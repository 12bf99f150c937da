package service

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/dlwlehd/geultto-challenge-bot/internal/model"
	pkgerrors "github.com/dlwlehd/geultto-challenge-bot/pkg/errors"
	"github.com/dlwlehd/geultto-challenge-bot/pkg/kst"
	"github.com/dlwlehd/geultto-challenge-bot/pkg/logger"
	"github.com/dlwlehd/geultto-challenge-bot/storage"
	"github.com/dlwlehd/geultto-challenge-bot/storage/document"
)

// CheckinService 는 논리적 날짜 해석과 체크인 생명주기를 담당한다.
type CheckinService struct {
	checkins   *document.Store[[]model.CheckinRecord]
	pending    *document.Store[model.PendingResetChange]
	resetHours *ResetHourService
	now        func() time.Time
}

func NewCheckin(stores *storage.Stores, resetHours *ResetHourService) *CheckinService {
	return &CheckinService{
		checkins:   stores.Checkins,
		pending:    stores.PendingResets,
		resetHours: resetHours,
		now:        time.Now,
	}
}

// LogicalDay 는 사용자의 "지금" 이 속하는 논리적 날짜를 해석한다.
// 순서가 핵심이다:
//  1. 아직 발효 전인 변경 예약이 있고 진행중인 체크인(히스토리 선두)이
//     있으면, 벽시계가 뭐라 하든 그 체크인의 날짜를 유지한다 — 진행중인
//     주기는 예약된 변경에 의해 중간에 잘리지 않는다.
//  2. 그 외에는 적용중인 초기화 시각으로 해석한다: KST 벽시계 시가
//     초기화 시각 이전이면 아직 어제의 주기다.
//
// 히스토리가 없는 신규 사용자는 1번을 건너뛰고 곧바로 2번을 따른다.
func (s *CheckinService) LogicalDay(ctx context.Context, userID string) (kst.Date, error) {
	checkins, err := s.checkins.Load(ctx)
	if err != nil {
		return "", err
	}

	now := s.now()

	if history := checkins[userID]; len(history) > 0 {
		pending, err := s.pending.Load(ctx)
		if err != nil {
			return "", err
		}
		if change, ok := pending[userID]; ok && now.UnixMilli() < change.EffectiveTime {
			return history[0].Date, nil
		}
	}

	hour, err := s.resetHours.EffectiveHour(ctx, userID)
	if err != nil {
		return "", err
	}

	if kst.HourOf(now) < hour {
		return kst.DateAt(now, -1), nil
	}
	return kst.DateAt(now, 0), nil
}

// Create 는 논리적 오늘의 체크인을 생성한다. 같은 날짜의 기록이 이미
// 있으면 그 자리에서 교체되고, 없으면 히스토리 맨 앞에 들어간다.
func (s *CheckinService) Create(ctx context.Context, userID string, contents []string) (model.CheckinRecord, error) {
	if len(contents) == 0 {
		return model.CheckinRecord{}, pkgerrors.EmptyTaskList
	}

	day, err := s.LogicalDay(ctx, userID)
	if err != nil {
		return model.CheckinRecord{}, err
	}

	checkins, err := s.checkins.Load(ctx)
	if err != nil {
		return model.CheckinRecord{}, err
	}

	record := model.CheckinRecord{
		Date:  day,
		Tasks: model.NewTasks(contents),
	}

	history := checkins[userID]
	replaced := false
	for i := range history {
		if history[i].Date == day {
			history[i] = record
			replaced = true
			break
		}
	}
	if !replaced {
		history = append([]model.CheckinRecord{record}, history...)
	}
	checkins[userID] = history

	if err := s.checkins.Save(ctx, checkins); err != nil {
		return model.CheckinRecord{}, err
	}

	logger.Logger.Info("Check-in created",
		zap.String("user_id", userID),
		zap.String("date", day.String()),
		zap.Int("task_count", len(record.Tasks)),
		zap.Bool("replaced", replaced),
	)
	return record, nil
}

// GetByDate 는 정확히 일치하는 날짜의 기록을 돌려준다. 없으면 nil — 에러가 아니다.
func (s *CheckinService) GetByDate(ctx context.Context, userID string, date kst.Date) (*model.CheckinRecord, error) {
	checkins, err := s.checkins.Load(ctx)
	if err != nil {
		return nil, err
	}

	for _, record := range checkins[userID] {
		if record.Date == date {
			return &record, nil
		}
	}
	return nil, nil
}

// Today 는 논리적 오늘의 기록을 돌려준다.
func (s *CheckinService) Today(ctx context.Context, userID string) (*model.CheckinRecord, error) {
	day, err := s.LogicalDay(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.GetByDate(ctx, userID, day)
}

// ToggleTask 는 논리적 오늘 기록의 할 일 완료 여부를 뒤집는다.
// 오늘 기록이 없거나 번호가 맞지 않으면 nil.
func (s *CheckinService) ToggleTask(ctx context.Context, userID string, taskID int) (*model.Task, error) {
	day, err := s.LogicalDay(ctx, userID)
	if err != nil {
		return nil, err
	}

	checkins, err := s.checkins.Load(ctx)
	if err != nil {
		return nil, err
	}

	history := checkins[userID]
	recordIdx := -1
	for i := range history {
		if history[i].Date == day {
			recordIdx = i
			break
		}
	}
	if recordIdx == -1 {
		logger.Logger.Debug("Toggle requested without a current check-in",
			zap.String("user_id", userID),
			zap.String("date", day.String()),
		)
		return nil, nil
	}

	tasks := history[recordIdx].Tasks
	for i := range tasks {
		if tasks[i].ID != taskID {
			continue
		}
		tasks[i].Completed = !tasks[i].Completed
		if err := s.checkins.Save(ctx, checkins); err != nil {
			return nil, err
		}

		task := tasks[i]
		logger.Logger.Info("Task toggled",
			zap.String("user_id", userID),
			zap.Int("task_id", taskID),
			zap.Bool("completed", task.Completed),
		)
		return &task, nil
	}
	return nil, nil
}

// UpdateToday 는 논리적 오늘 기록의 할 일 목록을 교체한다. 내용과 위치가
// 모두 같은 항목만 완료 상태를 이어받고, 나머지는 미완료로 초기화된다.
// 오늘 기록이 없으면 nil — 이 연산은 기록을 새로 만들지 않는다.
func (s *CheckinService) UpdateToday(ctx context.Context, userID string, contents []string) (*model.CheckinRecord, error) {
	if len(contents) == 0 {
		return nil, pkgerrors.EmptyTaskList
	}

	day, err := s.LogicalDay(ctx, userID)
	if err != nil {
		return nil, err
	}

	checkins, err := s.checkins.Load(ctx)
	if err != nil {
		return nil, err
	}

	history := checkins[userID]
	recordIdx := -1
	for i := range history {
		if history[i].Date == day {
			recordIdx = i
			break
		}
	}
	if recordIdx == -1 {
		return nil, nil
	}

	existing := history[recordIdx].Tasks
	updated := make([]model.Task, 0, len(contents))
	for i, content := range contents {
		task := model.Task{ID: i + 1, Content: content}
		if i < len(existing) && existing[i].Content == content {
			task.Completed = existing[i].Completed
		}
		updated = append(updated, task)
	}

	history[recordIdx].Tasks = updated
	if err := s.checkins.Save(ctx, checkins); err != nil {
		return nil, err
	}

	record := history[recordIdx]
	logger.Logger.Info("Check-in updated",
		zap.String("user_id", userID),
		zap.String("date", day.String()),
		zap.Int("task_count", len(updated)),
	)
	return &record, nil
}

// RecentExcludingToday 는 히스토리 순서(최신 우선)에서 논리적 오늘이 아닌
// 첫 기록을 돌려준다.
func (s *CheckinService) RecentExcludingToday(ctx context.Context, userID string) (*model.CheckinRecord, error) {
	day, err := s.LogicalDay(ctx, userID)
	if err != nil {
		return nil, err
	}

	checkins, err := s.checkins.Load(ctx)
	if err != nil {
		return nil, err
	}

	for _, record := range checkins[userID] {
		if record.Date != day {
			return &record, nil
		}
	}
	return nil, nil
}

// ChronologicalIndex 는 날짜 오름차순으로 몇 번째 체크인인지 돌려준다.
// 1 이 가장 오래된 기록, 해당 날짜가 없으면 0.
func (s *CheckinService) ChronologicalIndex(ctx context.Context, userID string, date kst.Date) (int, error) {
	checkins, err := s.checkins.Load(ctx)
	if err != nil {
		return 0, err
	}

	history := checkins[userID]
	dates := make([]kst.Date, 0, len(history))
	for _, record := range history {
		dates = append(dates, record.Date)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i] < dates[j] })

	for i, d := range dates {
		if d == date {
			return i + 1, nil
		}
	}
	return 0, nil
}

// History 는 사용자의 전체 체크인 기록(최신 우선)을 돌려준다.
func (s *CheckinService) History(ctx context.Context, userID string) ([]model.CheckinRecord, error) {
	checkins, err := s.checkins.Load(ctx)
	if err != nil {
		return nil, err
	}
	return checkins[userID], nil
}

// Count 는 사용자의 체크인 개수를 돌려준다.
func (s *CheckinService) Count(ctx context.Context, userID string) (int, error) {
	checkins, err := s.checkins.Load(ctx)
	if err != nil {
		return 0, err
	}
	return len(checkins[userID]), nil
}
