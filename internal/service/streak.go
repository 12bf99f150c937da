package service

import (
	"context"
	"sort"

	"github.com/dlwlehd/geultto-challenge-bot/internal/model"
	"github.com/dlwlehd/geultto-challenge-bot/pkg/kst"
)

// CurrentStreak 는 논리적 오늘에서 끝나는 연속 체크인 일수를 센다.
// 기록이 없거나 가장 최근 날짜가 논리적 오늘이 아니면 0 이다.
func (s *CheckinService) CurrentStreak(ctx context.Context, userID string) (int, error) {
	day, err := s.LogicalDay(ctx, userID)
	if err != nil {
		return 0, err
	}

	checkins, err := s.checkins.Load(ctx)
	if err != nil {
		return 0, err
	}

	dates := sortedDatesDesc(checkins[userID])
	if len(dates) == 0 || dates[0] != day {
		return 0, nil
	}

	streak := 1
	expected := day.Prev()
	for _, d := range dates[1:] {
		if d != expected {
			break
		}
		streak++
		expected = expected.Prev()
	}
	return streak, nil
}

// MaxStreak 는 전체 히스토리에서 가장 길었던 연속 일수를 센다.
func (s *CheckinService) MaxStreak(ctx context.Context, userID string) (int, error) {
	checkins, err := s.checkins.Load(ctx)
	if err != nil {
		return 0, err
	}

	history := checkins[userID]
	if len(history) == 0 {
		return 0, nil
	}

	dates := make([]kst.Date, 0, len(history))
	for _, record := range history {
		dates = append(dates, record.Date)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i] < dates[j] })

	best, run := 0, 0
	var prev kst.Date
	for i, d := range dates {
		if i > 0 && d == prev.AddDays(1) {
			run++
		} else {
			run = 1
		}
		if run > best {
			best = run
		}
		prev = d
	}
	return best, nil
}

// Streaks 는 현재/최장 스트릭을 한 번에 돌려준다. 진행률 표시 표면용.
func (s *CheckinService) Streaks(ctx context.Context, userID string) (current, max int, err error) {
	current, err = s.CurrentStreak(ctx, userID)
	if err != nil {
		return 0, 0, err
	}
	max, err = s.MaxStreak(ctx, userID)
	if err != nil {
		return 0, 0, err
	}
	return current, max, nil
}

func sortedDatesDesc(history []model.CheckinRecord) []kst.Date {
	dates := make([]kst.Date, 0, len(history))
	for _, record := range history {
		dates = append(dates, record.Date)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i] > dates[j] })
	return dates
}
