package dto

// ========== 초기화 시간 관련 DTO ==========

// ChangeResetHourRequest 초기화 시각 변경 요청. 0시를 표현해야 하므로 포인터.
type ChangeResetHourRequest struct {
	Hour *int `json:"hour" binding:"required"`
}

// PendingResetData 발효 대기중인 변경 정보.
type PendingResetData struct {
	Hour        int    `json:"hour"`
	EffectiveAt string `json:"effective_at"` // RFC3339
}

// ResetHourData 현재 적용중인 초기화 시각과 대기중인 변경.
type ResetHourData struct {
	Hour    int               `json:"hour"`
	Pending *PendingResetData `json:"pending,omitempty"`
}

// UpdateWindowData 변경 가능 여부. 제한에 걸린 경우 다음 가능 시각을 담는다.
type UpdateWindowData struct {
	CanUpdate     bool   `json:"can_update"`
	Reason        string `json:"reason,omitempty"`
	NextAvailable string `json:"next_available,omitempty"` // RFC3339
}

// ResetHourChangeData 변경 예약 성공 응답.
type ResetHourChangeData struct {
	PreviousHour int    `json:"previous_hour"`
	NewHour      int    `json:"new_hour"`
	EffectiveAt  string `json:"effective_at"` // RFC3339
}
