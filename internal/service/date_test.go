package service

import (
	"errors"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	shanghai := time.FixedZone("CST", 8*3600)

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"日期", "2024-03-01", "2024-03-01", false},
		{"前后空格", " 2024-03-01 ", "2024-03-01", false},
		{"RFC3339 UTC", "2024-03-01T23:30:00Z", "2024-03-01", false},
		{"RFC3339 带偏移取书面日期", "2024-03-02T01:00:00+09:00", "2024-03-02", false},
		{"空串", "", "", true},
		{"格式错误", "03/01/2024", "", true},
		{"非法日期", "2024-02-30", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input, shanghai)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidDate) {
					t.Errorf("期望 ErrInvalidDate，实际: %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("不应出错: %v", err)
			}
			if got.Format("2006-01-02") != tt.want {
				t.Errorf("期望 %s，实际 %s", tt.want, got.Format("2006-01-02"))
			}
			if got.Hour() != 0 || got.Minute() != 0 || got.Location() != shanghai {
				t.Errorf("应为配置时区零点，实际: %v", got)
			}
		})
	}
}
