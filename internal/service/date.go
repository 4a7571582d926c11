package service

import (
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// ParseDate 解析排班日期，统一为 loc 时区当天零点
// 接受 YYYY-MM-DD 或 RFC 3339；RFC 3339 取其书面上的年月日，不做时区换算
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrInvalidDate
	}
	if t, err := time.ParseInLocation(dateLayout, s, loc); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc), nil
}

// parseOptionalDate 空串返回 nil
func parseOptionalDate(s string, loc *time.Location) (*time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	t, err := ParseDate(s, loc)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// formatDate 以 YYYY-MM-DD 输出，按写入时的日历日
func formatDate(t time.Time) string {
	return t.Format(dateLayout)
}

func formatTime(t time.Time) string {
	return t.Format(time.RFC3339)
}
