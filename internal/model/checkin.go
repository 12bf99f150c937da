package model

import "github.com/dlwlehd/geultto-challenge-bot/pkg/kst"

// Task 체크인 할 일 항목. ID 는 생성 순서 기준 1부터 시작하는 위치 번호로,
// 같은 날짜의 체크인 안에서만 안정적이다.
type Task struct {
	ID        int    `json:"id"`
	Content   string `json:"content"`
	Completed bool   `json:"completed"`
}

// CheckinRecord 하루치 체크인 기록. (user, date) 당 1개만 존재한다.
type CheckinRecord struct {
	Date  kst.Date `json:"date"`
	Tasks []Task   `json:"tasks"`
}

// NewTasks 는 입력 순서대로 1-based ID 를 부여한 미완료 Task 목록을 만든다.
func NewTasks(contents []string) []Task {
	tasks := make([]Task, 0, len(contents))
	for i, content := range contents {
		tasks = append(tasks, Task{
			ID:        i + 1,
			Content:   content,
			Completed: false,
		})
	}
	return tasks
}
