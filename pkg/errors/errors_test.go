package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestKindOf_Wrapped(t *testing.T) {
	base := New(KindConflict, 30001, "冲突")
	wrapped := fmt.Errorf("外层: %w", base)

	if KindOf(wrapped) != KindConflict {
		t.Errorf("期望 KindConflict，实际=%s", KindOf(wrapped))
	}
	if !errors.Is(wrapped, base) {
		t.Error("errors.Is 应能识别被包装的哨兵错误")
	}
	e, ok := As(wrapped)
	if !ok || e.Code != 30001 {
		t.Errorf("As 应提取出 code=30001，实际=%v", e)
	}
}

func TestKindOf_PlainError(t *testing.T) {
	if KindOf(errors.New("boom")) != KindInternal {
		t.Error("普通错误应归为 KindInternal")
	}
	if _, ok := As(nil); ok {
		t.Error("nil 不应被识别为业务错误")
	}
}

func TestKind_HTTPStatus(t *testing.T) {
	tests := []struct {
		kind Kind
		want int
	}{
		{KindValidation, http.StatusBadRequest},
		{KindUnauthorized, http.StatusUnauthorized},
		{KindForbidden, http.StatusForbidden},
		{KindNotFound, http.StatusNotFound},
		{KindConflict, http.StatusConflict},
		{KindInternal, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := tt.kind.HTTPStatus(); got != tt.want {
			t.Errorf("%s: 期望 %d，实际 %d", tt.kind, tt.want, got)
		}
	}
}
