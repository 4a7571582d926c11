package model

import "testing"

func TestParseRole(t *testing.T) {
	for _, r := range []Role{RoleStaff, RoleAdmin} {
		got, err := ParseRole(r.String())
		if err != nil || got != r {
			t.Errorf("ParseRole(%q) = (%v, %v)，期望 %v", r.String(), got, err, r)
		}
	}
	if _, err := ParseRole("Manager"); err == nil {
		t.Error("未知角色名应返回错误")
	}
	if Role(7).Valid() {
		t.Error("Role(7) 不应是合法角色")
	}
	if (&User{Role: RoleStaff}).IsAdmin() || !(&User{Role: RoleAdmin}).IsAdmin() {
		t.Error("IsAdmin 应仅对 Admin 角色为真")
	}
}

func TestSwapStatus_Transitions(t *testing.T) {
	tests := []struct {
		from, to SwapStatus
		want     bool
	}{
		{SwapStatusPending, SwapStatusApproved, true},
		{SwapStatusPending, SwapStatusRejected, true},
		{SwapStatusPending, SwapStatusPending, false},
		{SwapStatusApproved, SwapStatusRejected, false},
		{SwapStatusRejected, SwapStatusApproved, false},
		{SwapStatusApproved, SwapStatusApproved, false},
	}
	for _, tt := range tests {
		if got := tt.from.CanTransitionTo(tt.to); got != tt.want {
			t.Errorf("%s → %s: 期望 %v，实际 %v", tt.from, tt.to, tt.want, got)
		}
	}
}
