package errors

func (d Definition) Error() string {
	return d.Message
}

// Definition 은 비즈니스 에러 코드와 기본 메시지를 나타낸다.
type Definition struct {
	Code    string
	Message string
}

// 요청 검증 에러.
var (
	InvalidUserID    = Definition{Code: "INVALID_USER_ID", Message: "Invalid user ID"}
	InvalidResetHour = Definition{Code: "INVALID_RESET_HOUR", Message: "Reset hour must be between 0 and 23"}
	InvalidDate      = Definition{Code: "INVALID_DATE", Message: "Date must be in YYYY-MM-DD format"}
	EmptyTaskList    = Definition{Code: "EMPTY_TASK_LIST", Message: "At least one task is required"}
	InvalidTaskID    = Definition{Code: "INVALID_TASK_ID", Message: "Invalid task number"}
)

// 체크인 모듈 에러. 핵심 로직에서 조회 실패는 nil 결과로 표현되고,
// 이 코드들은 HTTP 표면에서 404 로 변환할 때만 쓰인다.
var (
	CheckinNotFound = Definition{Code: "CHECKIN_NOT_FOUND", Message: "No check-in for the current cycle"}
	TaskNotFound    = Definition{Code: "TASK_NOT_FOUND", Message: "No matching task in today's check-in"}
)

// 초기화 시간 모듈 에러.
var (
	ResetHourRateLimited = Definition{Code: "RESET_HOUR_RATE_LIMITED", Message: "Reset hour can only be changed once every 3 days"}
)

// Lookup 은 에러 코드 조회를 제공한다.
var Lookup = map[string]Definition{
	InvalidUserID.Code:        InvalidUserID,
	InvalidResetHour.Code:     InvalidResetHour,
	InvalidDate.Code:          InvalidDate,
	EmptyTaskList.Code:        EmptyTaskList,
	InvalidTaskID.Code:        InvalidTaskID,
	CheckinNotFound.Code:      CheckinNotFound,
	TaskNotFound.Code:         TaskNotFound,
	ResetHourRateLimited.Code: ResetHourRateLimited,
}

// Get 은 코드에 해당하는 Definition 을 반환하고, 없으면 기본값을 돌려준다.
func Get(code string) Definition {
	if def, ok := Lookup[code]; ok {
		return def
	}
	return Definition{Code: code, Message: "Unexpected error"}
}
