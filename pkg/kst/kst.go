// Package kst 는 고정 UTC+9 기준의 달력 날짜 계산을 담당한다.
// 비교는 항상 UTC 순간(time.Time) 사이에서 이루어지고, +9 오프셋은
// 날짜 문자열을 만들거나 벽시계 시각을 읽는 마지막 단계에서만 적용된다.
package kst

import (
	"fmt"
	"time"
)

// Zone 한국 표준시. 호스트 머신의 로컬 타임존과 무관하다.
var Zone = time.FixedZone("KST", 9*60*60)

const layout = "2006-01-02"

// Date 는 KST 기준 YYYY-MM-DD 달력 날짜. 문자열 비교가 곧 날짜 비교다.
type Date string

// DateOf 는 주어진 순간이 속하는 KST 달력 날짜를 반환한다.
func DateOf(t time.Time) Date {
	return Date(t.In(Zone).Format(layout))
}

// DateAt 은 주어진 순간에서 offsetDays 일만큼 이동한 KST 달력 날짜를 반환한다.
func DateAt(t time.Time, offsetDays int) Date {
	return Date(t.In(Zone).AddDate(0, 0, offsetDays).Format(layout))
}

// HourOf 는 주어진 순간의 KST 벽시계 시(hour)를 반환한다.
func HourOf(t time.Time) int {
	return t.In(Zone).Hour()
}

// NextBoundary 는 주어진 순간 이후 처음 도래하는 "다음 달력 날짜의 hour시 정각"
// 순간을 반환한다. hour 가 오늘 아직 지나지 않았더라도 항상 다음 날이다 —
// 변경 예약이 최소 하루의 안정 기간을 갖도록 하기 위함이다.
func NextBoundary(t time.Time, hour int) time.Time {
	k := t.In(Zone)
	return time.Date(k.Year(), k.Month(), k.Day()+1, hour, 0, 0, 0, Zone)
}

// Parse 는 YYYY-MM-DD 문자열을 검증해서 Date 로 변환한다.
func Parse(s string) (Date, error) {
	t, err := time.ParseInLocation(layout, s, Zone)
	if err != nil {
		return "", fmt.Errorf("invalid date %q: %w", s, err)
	}
	return Date(t.Format(layout)), nil
}

// AddDays 는 달력상 n 일 이동한 날짜를 반환한다.
func (d Date) AddDays(n int) Date {
	t, err := time.ParseInLocation(layout, string(d), Zone)
	if err != nil {
		return d
	}
	return Date(t.AddDate(0, 0, n).Format(layout))
}

// Prev 는 하루 전 날짜.
func (d Date) Prev() Date {
	return d.AddDays(-1)
}

func (d Date) String() string {
	return string(d)
}
