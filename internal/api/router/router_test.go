package router

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"fosms/backend/config"
	"fosms/backend/internal/api/handler"
	"fosms/backend/pkg/jwt"
)

// 网关在 Handler 之前拦截，Handler 内的 Service 为空也不会被调用
func newTestEngine(t *testing.T) (*jwt.Manager, http.Handler) {
	t.Helper()
	cfg := &config.Config{
		Auth: config.AuthConfig{JWTSecret: "router-test-secret-123456", AccessTokenTTL: time.Hour},
	}
	jwtMgr := jwt.NewManager(&cfg.Auth)
	h := &handler.Handler{
		Auth:   handler.NewAuthHandler(nil),
		User:   handler.NewUserHandler(nil),
		Shift:  handler.NewShiftHandler(nil),
		Swap:   handler.NewSwapHandler(nil),
		Export: handler.NewExportHandler(nil),
	}
	return jwtMgr, Setup(cfg, h, jwtMgr, nil, nil, zap.NewNop())
}

func TestRoutes_GateLevels(t *testing.T) {
	jwtMgr, engine := newTestEngine(t)

	staffToken, err := jwtMgr.GenerateAccessToken("00000000-0000-0000-0000-00000000000b", "staff@example.com", "Staff")
	if err != nil {
		t.Fatalf("签发 Token 失败: %v", err)
	}

	tests := []struct {
		name       string
		method     string
		path       string
		token      string
		wantStatus int
	}{
		{"未登录查看排班", http.MethodGet, "/api/v1/shifts", "", http.StatusUnauthorized},
		{"未登录发起换班", http.MethodPost, "/api/v1/swaps", "", http.StatusUnauthorized},
		{"员工排班", http.MethodPost, "/api/v1/shifts", staffToken, http.StatusForbidden},
		{"员工列出用户", http.MethodGet, "/api/v1/users", staffToken, http.StatusForbidden},
		{"员工处理换班", http.MethodPut, "/api/v1/swaps/x/process", staffToken, http.StatusForbidden},
		{"员工导出", http.MethodGet, "/api/v1/export/shifts", staffToken, http.StatusForbidden},
		{"员工修改他人", http.MethodPut, "/api/v1/users/x", staffToken, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			w := httptest.NewRecorder()
			engine.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("%s %s 期望 %d，实际: %d", tt.method, tt.path, tt.wantStatus, w.Code)
			}
		})
	}
}

func TestRoutes_Metrics(t *testing.T) {
	_, engine := newTestEngine(t)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("期望 200，实际: %d", w.Code)
	}
}
