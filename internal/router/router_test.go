package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

// 业务路由全部挂在认证组下，健康检查保持开放
func TestRoutesRequireAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r)

	protected := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/connection/propose"},
		{http.MethodPost, "/connection/respond"},
		{http.MethodPost, "/connection/cancel"},
		{http.MethodPost, "/connection/unfriend"},
		{http.MethodGet, "/connection/status"},
		{http.MethodGet, "/connection/pending"},
		{http.MethodGet, "/conversation/list"},
		{http.MethodGet, "/friend/list"},
		{http.MethodPost, "/message/send"},
		{http.MethodGet, "/message/list"},
		{http.MethodPost, "/message/markRead"},
		{http.MethodGet, "/message/unreadCount"},
		{http.MethodGet, "/stats"},
	}
	for _, route := range protected {
		req := httptest.NewRequest(route.method, route.path, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("%s %s without token: status = %d, want %d",
				route.method, route.path, w.Code, http.StatusUnauthorized)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("GET /health: status = %d, want %d", w.Code, http.StatusOK)
	}
}
