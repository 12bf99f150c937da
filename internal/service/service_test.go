package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dlwlehd/geultto-challenge-bot/internal/model"
	"github.com/dlwlehd/geultto-challenge-bot/pkg/kst"
	"github.com/dlwlehd/geultto-challenge-bot/storage"
)

// fakeClock 테스트에서 시간을 임의로 옮기기 위한 주입용 시계.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.t
}

func (c *fakeClock) Set(t time.Time) {
	c.t = t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.t = c.t.Add(d)
}

func kstTime(year int, month time.Month, day, hour, min int) time.Time {
	return time.Date(year, month, day, hour, min, 0, 0, kst.Zone)
}

func newTestServices(t *testing.T, start time.Time) (*CheckinService, *ResetHourService, *fakeClock) {
	t.Helper()

	stores, err := storage.Init(context.Background(), t.TempDir())
	require.NoError(t, err)

	clock := &fakeClock{t: start}
	resetHours := NewResetHour(stores)
	resetHours.now = clock.Now
	checkins := NewCheckin(stores, resetHours)
	checkins.now = clock.Now

	return checkins, resetHours, clock
}

// seedHistory 최신 우선 순서로 기록을 직접 심는다. dates 는 오래된 순으로 받는다.
func seedHistory(t *testing.T, s *CheckinService, userID string, dates ...kst.Date) {
	t.Helper()

	ctx := context.Background()
	doc, err := s.checkins.Load(ctx)
	require.NoError(t, err)

	history := make([]model.CheckinRecord, 0, len(dates))
	for i := len(dates) - 1; i >= 0; i-- {
		history = append(history, model.CheckinRecord{
			Date:  dates[i],
			Tasks: model.NewTasks([]string{"글쓰기"}),
		})
	}
	doc[userID] = history
	require.NoError(t, s.checkins.Save(ctx, doc))
}
