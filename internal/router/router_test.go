package router

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/ut"
	"github.com/cloudwego/hertz/pkg/protocol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dlwlehd/geultto-challenge-bot/internal/handler"
	"github.com/dlwlehd/geultto-challenge-bot/internal/service"
	"github.com/dlwlehd/geultto-challenge-bot/storage"
)

type envelope struct {
	Data json.RawMessage        `json:"data"`
	Meta map[string]interface{} `json:"meta"`
	Err  *struct {
		Code    string                 `json:"code"`
		Message string                 `json:"message"`
		Details map[string]interface{} `json:"details"`
	} `json:"error"`
}

func newTestServer(t *testing.T) *server.Hertz {
	t.Helper()

	stores, err := storage.Init(context.Background(), t.TempDir())
	require.NoError(t, err)

	resetHours := service.NewResetHour(stores)
	checkins := service.NewCheckin(stores, resetHours)

	h := server.Default(server.WithHostPorts("127.0.0.1:0"))
	Register(h, handler.NewCheckinHandler(checkins), handler.NewResetHourHandler(resetHours))
	return h
}

func perform(t *testing.T, h *server.Hertz, method, url, body string) (*protocol.Response, envelope) {
	t.Helper()

	var reqBody *ut.Body
	if body != "" {
		reqBody = &ut.Body{Body: bytes.NewBufferString(body), Len: len(body)}
	}

	w := ut.PerformRequest(h.Engine, method, url, reqBody,
		ut.Header{Key: "Content-Type", Value: "application/json"})
	resp := w.Result()

	var env envelope
	require.NoError(t, json.Unmarshal(resp.Body(), &env), "body: %s", resp.Body())
	return resp, env
}

func TestCheckinRoutes(t *testing.T) {
	h := newTestServer(t)
	base := "/v1/users/u1/check-ins"

	// 논리적 오늘 조회
	resp, env := perform(t, h, "GET", "/v1/users/u1/day", "")
	assert.Equal(t, 200, resp.StatusCode())
	var day struct {
		Date string `json:"date"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &day))
	assert.Regexp(t, `^\d{4}-\d{2}-\d{2}$`, day.Date)

	// 빈 목록은 400
	resp, env = perform(t, h, "POST", base, `{"tasks":[]}`)
	assert.Equal(t, 400, resp.StatusCode())
	require.NotNil(t, env.Err)
	assert.Equal(t, "EMPTY_TASK_LIST", env.Err.Code)

	// 생성
	resp, env = perform(t, h, "POST", base, `{"tasks":["글쓰기","회고"]}`)
	require.Equal(t, 200, resp.StatusCode())
	var record struct {
		Date  string `json:"date"`
		Tasks []struct {
			ID        int    `json:"id"`
			Content   string `json:"content"`
			Completed bool   `json:"completed"`
		} `json:"tasks"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &record))
	assert.Equal(t, day.Date, record.Date)
	require.Len(t, record.Tasks, 2)
	assert.Equal(t, 1, record.Tasks[0].ID)
	assert.False(t, record.Tasks[0].Completed)

	// 오늘 조회
	resp, _ = perform(t, h, "GET", base+"/today", "")
	assert.Equal(t, 200, resp.StatusCode())

	// 토글
	resp, env = perform(t, h, "POST", base+"/today/tasks/1/toggle", "")
	require.Equal(t, 200, resp.StatusCode())
	var task struct {
		Completed bool `json:"completed"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &task))
	assert.True(t, task.Completed)

	// 없는 번호는 404
	resp, env = perform(t, h, "POST", base+"/today/tasks/99/toggle", "")
	assert.Equal(t, 404, resp.StatusCode())
	require.NotNil(t, env.Err)
	assert.Equal(t, "TASK_NOT_FOUND", env.Err.Code)

	// 오늘뿐이면 최근 기록은 404
	resp, env = perform(t, h, "GET", base+"/recent", "")
	assert.Equal(t, 404, resp.StatusCode())
	require.NotNil(t, env.Err)
	assert.Equal(t, "CHECKIN_NOT_FOUND", env.Err.Code)

	// 스트릭
	resp, env = perform(t, h, "GET", base+"/streaks", "")
	require.Equal(t, 200, resp.StatusCode())
	var streaks struct {
		Current int `json:"current"`
		Max     int `json:"max"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &streaks))
	assert.Equal(t, 1, streaks.Current)
	assert.Equal(t, 1, streaks.Max)

	// 히스토리 + meta.count
	resp, env = perform(t, h, "GET", base, "")
	require.Equal(t, 200, resp.StatusCode())
	assert.EqualValues(t, 1, env.Meta["count"])

	// 날짜 조회 + meta.index
	resp, env = perform(t, h, "GET", fmt.Sprintf("%s/%s", base, day.Date), "")
	require.Equal(t, 200, resp.StatusCode())
	assert.EqualValues(t, 1, env.Meta["index"])

	// 잘못된 날짜는 400
	resp, env = perform(t, h, "GET", base+"/2024-99-99", "")
	assert.Equal(t, 400, resp.StatusCode())
	require.NotNil(t, env.Err)
	assert.Equal(t, "INVALID_DATE", env.Err.Code)
}

func TestResetHourRoutes(t *testing.T) {
	h := newTestServer(t)
	base := "/v1/users/u1/reset-hour"

	// 기본값 0, 예약 없음
	resp, env := perform(t, h, "GET", base, "")
	require.Equal(t, 200, resp.StatusCode())
	var status struct {
		Hour    int `json:"hour"`
		Pending *struct {
			Hour int `json:"hour"`
		} `json:"pending"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &status))
	assert.Equal(t, 0, status.Hour)
	assert.Nil(t, status.Pending)

	// 범위 밖은 400
	resp, env = perform(t, h, "PUT", base, `{"hour":25}`)
	assert.Equal(t, 400, resp.StatusCode())
	require.NotNil(t, env.Err)
	assert.Equal(t, "INVALID_RESET_HOUR", env.Err.Code)

	// 변경 예약
	resp, env = perform(t, h, "PUT", base, `{"hour":9}`)
	require.Equal(t, 200, resp.StatusCode())
	var change struct {
		PreviousHour int    `json:"previous_hour"`
		NewHour      int    `json:"new_hour"`
		EffectiveAt  string `json:"effective_at"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &change))
	assert.Equal(t, 0, change.PreviousHour)
	assert.Equal(t, 9, change.NewHour)
	assert.NotEmpty(t, change.EffectiveAt)

	// 예약이 있는 동안 재요청은 429
	resp, env = perform(t, h, "PUT", base, `{"hour":10}`)
	assert.Equal(t, 429, resp.StatusCode())
	require.NotNil(t, env.Err)
	assert.Equal(t, "RESET_HOUR_RATE_LIMITED", env.Err.Code)
	assert.NotEmpty(t, env.Err.Details["next_available"])

	// 윈도우 판정
	resp, env = perform(t, h, "GET", base+"/window", "")
	require.Equal(t, 200, resp.StatusCode())
	var window struct {
		CanUpdate     bool   `json:"can_update"`
		NextAvailable string `json:"next_available"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &window))
	assert.False(t, window.CanUpdate)
	assert.NotEmpty(t, window.NextAvailable)

	// 상태에 예약이 실린다
	resp, env = perform(t, h, "GET", base, "")
	require.Equal(t, 200, resp.StatusCode())
	require.NoError(t, json.Unmarshal(env.Data, &status))
	require.NotNil(t, status.Pending)
	assert.Equal(t, 9, status.Pending.Hour)
}

func TestRequestIDHeader(t *testing.T) {
	h := newTestServer(t)

	resp, _ := perform(t, h, "GET", "/v1/users/u1/day", "")
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}
