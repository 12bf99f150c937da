package storage

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/dlwlehd/geultto-challenge-bot/internal/model"
	"github.com/dlwlehd/geultto-challenge-bot/pkg/logger"
	"github.com/dlwlehd/geultto-challenge-bot/storage/document"
)

// Stores 는 서비스가 다루는 세 개의 독립적인 JSON 문서.
type Stores struct {
	Checkins      *document.Store[[]model.CheckinRecord]
	ResetHours    *document.Store[model.ResetHourSetting]
	PendingResets *document.Store[model.PendingResetChange]
}

// Init 은 데이터 디렉토리를 보장하고 세 문서를 모두 자가 치유 상태로 연다.
func Init(ctx context.Context, dataDir string) (*Stores, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory %s: %w", dataDir, err)
	}

	s := &Stores{
		Checkins:      document.NewStore[[]model.CheckinRecord](dataDir, "checkins"),
		ResetHours:    document.NewStore[model.ResetHourSetting](dataDir, "reset_hours"),
		PendingResets: document.NewStore[model.PendingResetChange](dataDir, "pending_resets"),
	}

	// 기동 시점에 한 번씩 읽어서 없거나 손상된 문서를 미리 복구해 둔다
	if _, err := s.Checkins.Load(ctx); err != nil {
		return nil, err
	}
	if _, err := s.ResetHours.Load(ctx); err != nil {
		return nil, err
	}
	if _, err := s.PendingResets.Load(ctx); err != nil {
		return nil, err
	}

	logger.Logger.Info("Storage initialized",
		zap.String("data_dir", dataDir),
	)
	return s, nil
}

// Close 는 종료 로그만 남긴다. 모든 쓰기는 동기적으로 완료되어 있다.
func Close(s *Stores) {
	if s == nil {
		return
	}
	logger.Logger.Info("Storage closed",
		zap.String("checkins", s.Checkins.Path()),
		zap.String("reset_hours", s.ResetHours.Path()),
		zap.String("pending_resets", s.PendingResets.Path()),
	)
}
