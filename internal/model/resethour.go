package model

// DefaultResetHour 설정이 없는 사용자의 초기화 시각.
const DefaultResetHour = 0

// ResetHourSetting 현재 적용중인 초기화 시각. 모든 순간 값은 epoch 밀리초.
type ResetHourSetting struct {
	Hour       int   `json:"hour"`
	LastUpdate int64 `json:"lastUpdate"`
	AppliedAt  int64 `json:"appliedAt,omitempty"`
}

// PendingResetChange 아직 발효되지 않은 초기화 시각 변경 예약.
// 사용자당 최대 1개만 존재하고, effectiveTime 이 지나면 설정으로 승격된다.
type PendingResetChange struct {
	Hour          int   `json:"hour"`
	LastUpdate    int64 `json:"lastUpdate"`
	EffectiveTime int64 `json:"effectiveTime"`
}
