package dto

import "github.com/dlwlehd/geultto-challenge-bot/internal/model"

// ========== 체크인 관련 DTO ==========

// CreateCheckinRequest 오늘의 체크인 생성(또는 교체) 요청.
type CreateCheckinRequest struct {
	Tasks []string `json:"tasks" binding:"required"`
}

// UpdateCheckinRequest 오늘의 체크인 할 일 목록 수정 요청.
type UpdateCheckinRequest struct {
	Tasks []string `json:"tasks" binding:"required"`
}

// CheckinData 단건 체크인 응답.
type CheckinData struct {
	Date  string       `json:"date"`
	Tasks []model.Task `json:"tasks"`
}

// NewCheckinData 는 저장 모델을 응답 형태로 변환한다.
func NewCheckinData(record model.CheckinRecord) CheckinData {
	return CheckinData{
		Date:  record.Date.String(),
		Tasks: record.Tasks,
	}
}

// DayData 사용자의 현재 논리적 날짜.
type DayData struct {
	Date string `json:"date"`
}

// StreakData 연속 체크인 통계.
type StreakData struct {
	Current int `json:"current"`
	Max     int `json:"max"`
}
