package router

import (
	"github.com/cloudwego/hertz/pkg/app/server"

	"github.com/dlwlehd/geultto-challenge-bot/internal/handler"
	"github.com/dlwlehd/geultto-challenge-bot/internal/middleware"
)

// Register 전체 라우트 테이블을 구성한다.
func Register(h *server.Hertz, checkins *handler.CheckinHandler, resetHours *handler.ResetHourHandler) {
	h.Use(middleware.RecoverMiddleware())
	h.Use(middleware.CORSMiddleware())
	h.Use(middleware.RequestIDMiddleware())

	v1 := h.Group("/v1")
	users := v1.Group("/users/:user_id")

	users.GET("/day", checkins.GetDay)

	ci := users.Group("/check-ins")
	{
		ci.POST("", checkins.Create)
		ci.GET("", checkins.GetHistory)
		ci.GET("/today", checkins.GetToday)
		ci.PUT("/today", checkins.UpdateToday)
		ci.POST("/today/tasks/:task_id/toggle", checkins.ToggleTask)
		ci.GET("/recent", checkins.GetRecent)
		ci.GET("/streaks", checkins.GetStreaks)
		ci.GET("/:date", checkins.GetByDate)
	}

	rh := users.Group("/reset-hour")
	{
		rh.GET("", resetHours.GetStatus)
		rh.PUT("", resetHours.Change)
		rh.GET("/window", resetHours.GetWindow)
	}
}
