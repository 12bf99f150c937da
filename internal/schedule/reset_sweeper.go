package schedule

// 초기화 시각 스위퍼: 발효 시각이 지난 변경 예약을 주기적으로 승격한다.
// EffectiveHour 의 지연 승격 경로와 중복 실행되어도 승격이 멱등이라 안전하다.

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/dlwlehd/geultto-challenge-bot/internal/service"
	"github.com/dlwlehd/geultto-challenge-bot/pkg/logger"
	"github.com/dlwlehd/geultto-challenge-bot/pkg/snowflake"
)

type ResetSweeper struct {
	resetHours *service.ResetHourService
	interval   time.Duration

	mu          sync.Mutex
	running     bool
	lastRunTime time.Time
}

func NewResetSweeper(resetHours *service.ResetHourService, interval time.Duration) *ResetSweeper {
	return &ResetSweeper{
		resetHours: resetHours,
		interval:   interval,
	}
}

// Run 은 ctx 가 취소될 때까지 interval 주기로 스윕을 반복한다.
func (s *ResetSweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	logger.Logger.Info("Reset-hour sweeper started",
		zap.Duration("interval", s.interval),
	)

	for {
		select {
		case <-ctx.Done():
			logger.Logger.Info("Reset-hour sweeper stopped")
			return
		case <-ticker.C:
			if err := s.SweepOnce(ctx); err != nil {
				logger.Logger.Error("Reset-hour sweep failed", zap.Error(err))
			}
		}
	}
}

// SweepOnce 는 발효 시각이 지난 모든 예약을 한 번 승격한다.
func (s *ResetSweeper) SweepOnce(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		logger.Logger.Info("Sweep already running, skipping")
		return nil
	}
	s.running = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()

	startTime := time.Now()
	s.lastRunTime = startTime

	// 배치 ID 는 로그 상관관계 용도라 생성 실패가 스윕을 막지는 않는다
	batchID, err := snowflake.NextID()
	if err != nil {
		logger.Logger.Warn("Failed to generate sweep batch ID", zap.Error(err))
	}

	promoted, err := s.resetHours.PromoteAllDue(ctx)
	if err != nil {
		logger.Logger.Error("Failed to promote due reset-hour changes",
			zap.Int64("batch_id", batchID),
			zap.Error(err),
		)
		return err
	}

	if promoted > 0 {
		logger.Logger.Info("Reset-hour sweep completed",
			zap.Int64("batch_id", batchID),
			zap.Int("promoted", promoted),
			zap.Duration("duration", time.Since(startTime)),
		)
	}
	return nil
}
