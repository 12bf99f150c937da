// Package document 는 사용자 ID 를 키로 하는 JSON 문서 저장소를 제공한다.
// 모든 읽기/쓰기는 문서 전체 단위다. 파일이 없거나 비었거나 손상된 경우
// Load 는 빈 매핑을 다시 써서 자가 치유하고, 호출자에게 파싱 에러를
// 전달하지 않는다. 반면 Save 실패는 메모리와 디스크 상태가 갈라지는
// 문제라 반드시 호출자에게 전파된다.
package document

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/dlwlehd/geultto-challenge-bot/pkg/logger"
)

type Store[T any] struct {
	name string
	path string
}

func NewStore[T any](dir, name string) *Store[T] {
	return &Store[T]{
		name: name,
		path: filepath.Join(dir, name+".json"),
	}
}

func (s *Store[T]) Name() string {
	return s.name
}

func (s *Store[T]) Path() string {
	return s.path
}

// Load 는 문서 전체를 읽는다. 읽을 수 없는 내용은 빈 매핑으로 복구한다.
func (s *Store[T]) Load(ctx context.Context) (map[string]T, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Logger.Warn("Failed to read document, re-initializing",
				zap.String("store", s.name),
				zap.Error(err),
			)
		}
		return s.heal(ctx)
	}

	if len(bytes.TrimSpace(raw)) == 0 {
		logger.Logger.Warn("Document is empty, re-initializing",
			zap.String("store", s.name),
		)
		return s.heal(ctx)
	}

	var doc map[string]T
	if err := json.Unmarshal(raw, &doc); err != nil {
		logger.Logger.Warn("Document is corrupt, re-initializing",
			zap.String("store", s.name),
			zap.Error(err),
		)
		return s.heal(ctx)
	}

	if doc == nil {
		doc = map[string]T{}
	}
	return doc, nil
}

// Save 는 문서 전체를 덮어쓴다. 실패는 삼켜지지 않고 그대로 반환된다.
func (s *Store[T]) Save(ctx context.Context, doc map[string]T) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s document: %w", s.name, err)
	}

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		logger.Logger.Error("Failed to write document",
			zap.String("store", s.name),
			zap.String("path", s.path),
			zap.Error(err),
		)
		return fmt.Errorf("write %s document: %w", s.name, err)
	}
	return nil
}

func (s *Store[T]) heal(ctx context.Context) (map[string]T, error) {
	empty := map[string]T{}
	if err := s.Save(ctx, empty); err != nil {
		return nil, err
	}
	return empty, nil
}
