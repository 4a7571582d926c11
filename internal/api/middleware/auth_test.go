package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"fosms/backend/config"
	"fosms/backend/internal/model"
	"fosms/backend/pkg/jwt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ── Mock TokenBlacklist ──

type mockBlacklist struct {
	revoked map[string]bool
	err     error
}

func (m *mockBlacklist) IsBlacklisted(_ context.Context, jti string) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	return m.revoked[jti], nil
}

// ── 测试辅助 ──

func newTestJWT(ttl time.Duration) *jwt.Manager {
	return jwt.NewManager(&config.AuthConfig{
		JWTSecret:      "test-secret-key-for-unit-testing-2026",
		AccessTokenTTL: ttl,
	})
}

// newGateRouter 构造单路由引擎，处理函数回显 Session
func newGateRouter(level Level, jwtMgr *jwt.Manager, bl TokenBlacklist) *gin.Engine {
	r := gin.New()
	handlers := append(Gate(level, jwtMgr, bl), func(c *gin.Context) {
		session, ok := SessionFrom(c)
		ctxSession, ctxOK := SessionFromContext(c.Request.Context())
		if level == LevelPublic {
			c.JSON(http.StatusOK, gin.H{"public": true, "has_session": ok})
			return
		}
		if !ok || !ctxOK || session != ctxSession {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "session missing"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user_id": session.UserID, "role": session.Role.String()})
	})
	r.GET("/target", handlers...)
	return r
}

func hit(r *gin.Engine, authHeader string) (*httptest.ResponseRecorder, map[string]interface{}) {
	req := httptest.NewRequest(http.MethodGet, "/target", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var body map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	return w, body
}

func mustToken(t *testing.T, m *jwt.Manager, userID string, role model.Role) string {
	t.Helper()
	token, err := m.GenerateAccessToken(userID, userID+"@x.io", role.String())
	if err != nil {
		t.Fatalf("签发 Token 失败: %v", err)
	}
	return token
}

// ── Gate 测试 ──

func TestGate_Public(t *testing.T) {
	r := newGateRouter(LevelPublic, newTestJWT(time.Hour), nil)

	w, body := hit(r, "")
	if w.Code != http.StatusOK || body["public"] != true {
		t.Errorf("公开接口应直接放行，实际: %d %v", w.Code, body)
	}
}

func TestGate_Authenticated(t *testing.T) {
	jwtMgr := newTestJWT(time.Hour)
	r := newGateRouter(LevelAuthenticated, jwtMgr, nil)
	staffToken := mustToken(t, jwtMgr, "u-staff", model.RoleStaff)

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"缺少认证头", "", http.StatusUnauthorized},
		{"非 Bearer", "Basic abc", http.StatusUnauthorized},
		{"空 Token", "Bearer ", http.StatusUnauthorized},
		{"伪造 Token", "Bearer not.a.jwt", http.StatusUnauthorized},
		{"有效 Token", "Bearer " + staffToken, http.StatusOK},
		{"小写 bearer", "bearer " + staffToken, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, body := hit(r, tt.header)
			if w.Code != tt.want {
				t.Fatalf("期望 %d，实际 %d: %v", tt.want, w.Code, body)
			}
			if tt.want == http.StatusUnauthorized && body["code"] != float64(10002) {
				t.Errorf("期望错误码 10002，实际: %v", body["code"])
			}
			if tt.want == http.StatusOK && body["user_id"] != "u-staff" {
				t.Errorf("Session 未正确注入: %v", body)
			}
		})
	}
}

func TestGate_Expired(t *testing.T) {
	jwtMgr := newTestJWT(time.Millisecond)
	token := mustToken(t, jwtMgr, "u-1", model.RoleStaff)
	time.Sleep(1100 * time.Millisecond)

	r := newGateRouter(LevelAuthenticated, jwtMgr, nil)
	w, body := hit(r, "Bearer "+token)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("过期 Token 期望 401，实际: %d", w.Code)
	}
	if body["message"] != "Token 已过期" {
		t.Errorf("期望过期提示，实际: %v", body["message"])
	}
}

func TestGate_Admin(t *testing.T) {
	jwtMgr := newTestJWT(time.Hour)
	r := newGateRouter(LevelAdmin, jwtMgr, nil)

	w, body := hit(r, "Bearer "+mustToken(t, jwtMgr, "u-staff", model.RoleStaff))
	if w.Code != http.StatusForbidden || body["code"] != float64(10003) {
		t.Errorf("Staff 访问管理接口期望 403/10003，实际: %d %v", w.Code, body)
	}

	w, body = hit(r, "Bearer "+mustToken(t, jwtMgr, "u-admin", model.RoleAdmin))
	if w.Code != http.StatusOK || body["role"] != "Admin" {
		t.Errorf("Admin 应放行，实际: %d %v", w.Code, body)
	}

	w, _ = hit(r, "")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("未登录访问管理接口期望 401，实际: %d", w.Code)
	}
}

// 角色名不在枚举内的 Token 视为无效
func TestGate_UnknownRole(t *testing.T) {
	jwtMgr := newTestJWT(time.Hour)
	token, _ := jwtMgr.GenerateAccessToken("u-1", "u@x.io", "Root")

	w, _ := hit(newGateRouter(LevelAuthenticated, jwtMgr, nil), "Bearer "+token)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("未知角色期望 401，实际: %d", w.Code)
	}
}

func TestGate_Revoked(t *testing.T) {
	jwtMgr := newTestJWT(time.Hour)
	token := mustToken(t, jwtMgr, "u-1", model.RoleStaff)
	claims, _ := jwtMgr.ParseToken(token)

	bl := &mockBlacklist{revoked: map[string]bool{claims.ID: true}}
	w, _ := hit(newGateRouter(LevelAuthenticated, jwtMgr, bl), "Bearer "+token)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("已吊销 Token 期望 401，实际: %d", w.Code)
	}

	// 黑名单不可用时降级放行
	down := &mockBlacklist{err: errors.New("redis down")}
	w, _ = hit(newGateRouter(LevelAuthenticated, jwtMgr, down), "Bearer "+token)
	if w.Code != http.StatusOK {
		t.Errorf("黑名单故障时应降级放行，实际: %d", w.Code)
	}
}

// ── RateLimit ──

type mockLimiter struct {
	allowed bool
	err     error
	calls   int
}

func (m *mockLimiter) CheckRateLimit(_ context.Context, _ string, _ int, _ time.Duration) (bool, error) {
	m.calls++
	return m.allowed, m.err
}

func TestRateLimit(t *testing.T) {
	tests := []struct {
		name    string
		limiter *mockLimiter
		want    int
	}{
		{"限额内", &mockLimiter{allowed: true}, http.StatusOK},
		{"超出限额", &mockLimiter{allowed: false}, http.StatusTooManyRequests},
		{"Redis 故障降级", &mockLimiter{err: errors.New("down")}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.POST("/auth/sign-in", RateLimit(tt.limiter, 5, time.Minute), func(c *gin.Context) {
				c.Status(http.StatusOK)
			})
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/auth/sign-in", nil))
			if w.Code != tt.want {
				t.Errorf("期望 %d，实际 %d", tt.want, w.Code)
			}
			if tt.limiter.calls != 1 {
				t.Errorf("期望调用限流器 1 次，实际 %d", tt.limiter.calls)
			}
		})
	}
}

// ── BodyLimit ──

func TestBodyLimit_DeclaredLength(t *testing.T) {
	r := gin.New()
	r.POST("/x", BodyLimit(8), func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodPost, "/x", nil)
	req.ContentLength = 1024
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("期望 413，实际 %d", w.Code)
	}
}

// RequireAdmin 只看 Session 的角色；缺少 Session 时按未认证处理
func TestRequireAdmin(t *testing.T) {
	tests := []struct {
		name       string
		session    *Session
		wantStatus int
	}{
		{"无 Session", nil, http.StatusUnauthorized},
		{"员工", &Session{UserID: "u1", Role: model.RoleStaff}, http.StatusForbidden},
		{"管理员", &Session{UserID: "u2", Role: model.RoleAdmin}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/admin", func(c *gin.Context) {
				if tt.session != nil {
					SetSession(c, tt.session)
				}
				c.Next()
			}, RequireAdmin(), func(c *gin.Context) {
				c.Status(http.StatusOK)
			})

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))
			if w.Code != tt.wantStatus {
				t.Errorf("期望 %d，实际: %d", tt.wantStatus, w.Code)
			}
		})
	}
}
