package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestTranslate(t *testing.T) {
	plain := errors.New("boom")

	tests := []struct {
		name    string
		err     error
		wantDup string
		wantFK  bool
	}{
		{"nil", nil, "", false},
		{"普通错误", plain, "", false},
		{"唯一冲突", &pgconn.PgError{Code: "23505", ConstraintName: ConstraintShiftUserDate}, ConstraintShiftUserDate, false},
		{"包装后的唯一冲突", fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505", ConstraintName: ConstraintUserEmail}), ConstraintUserEmail, false},
		{"外键违例", &pgconn.PgError{Code: "23503", ConstraintName: "shift_assignments_user_id_fkey"}, "", true},
		{"其他 SQLSTATE", &pgconn.PgError{Code: "22P02"}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := translate(tt.err)
			if tt.wantDup != "" {
				if !IsDuplicate(got, tt.wantDup) {
					t.Errorf("期望唯一冲突 %s，实际: %v", tt.wantDup, got)
				}
				if IsDuplicate(got, "other_constraint") {
					t.Error("不应匹配其他约束")
				}
				return
			}
			if IsDuplicate(got, "") {
				t.Errorf("不应识别为唯一冲突: %v", got)
			}
			if IsForeignKey(got) != tt.wantFK {
				t.Errorf("IsForeignKey 期望 %v，实际 %v", tt.wantFK, IsForeignKey(got))
			}
			if tt.err == nil && got != nil {
				t.Errorf("nil 应原样返回，实际: %v", got)
			}
		})
	}
}
