package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/roundup-savings/internal/domain"
	"github.com/oksasatya/roundup-savings/internal/domain/entity"
)

type fakeGate map[string]entity.Identity

func (g fakeGate) Identify(_ context.Context, tok string) (entity.Identity, error) {
	if tok == "boom" {
		return entity.Identity{}, errors.New("redis: connection refused")
	}
	id, ok := g[tok]
	if !ok {
		return entity.Identity{}, domain.ErrUnauthorized
	}
	return id, nil
}

func newEngine(mw ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(mw...)
	r.GET("/me", func(c *gin.Context) {
		id, ok := CurrentUser(c)
		if !ok {
			c.String(http.StatusOK, "anonymous")
			return
		}
		c.String(http.StatusOK, id.UserID)
	})
	return r
}

func TestAuth(t *testing.T) {
	gate := fakeGate{"good": {UserID: "u1"}}
	r := newEngine(Auth(gate))

	tests := []struct {
		name   string
		setup  func(*http.Request)
		status int
		body   string
	}{
		{name: "no token", setup: func(*http.Request) {}, status: http.StatusUnauthorized},
		{name: "bad token", setup: func(r *http.Request) { r.Header.Set("Authorization", "Bearer nope") }, status: http.StatusUnauthorized},
		{name: "cookie", setup: func(r *http.Request) { r.AddCookie(&http.Cookie{Name: "access_token", Value: "good"}) }, status: http.StatusOK, body: "u1"},
		{name: "bearer", setup: func(r *http.Request) { r.Header.Set("Authorization", "bearer good") }, status: http.StatusOK, body: "u1"},
		{name: "store down", setup: func(r *http.Request) { r.Header.Set("Authorization", "Bearer boom") }, status: http.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			tt.setup(req)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tt.status {
				t.Fatalf("expected %d, got %d", tt.status, w.Code)
			}
			if tt.body != "" && w.Body.String() != tt.body {
				t.Fatalf("expected body %q, got %q", tt.body, w.Body.String())
			}
		})
	}
}

func TestOptionalNeverAborts(t *testing.T) {
	r := newEngine(Optional(fakeGate{}))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))
	if w.Code != http.StatusOK || w.Body.String() != "anonymous" {
		t.Fatalf("expected anonymous 200, got %d %q", w.Code, w.Body.String())
	}
}

func TestRealIPTrust(t *testing.T) {
	gin.SetMode(gin.TestMode)
	for _, trust := range []bool{true, false} {
		r := gin.New()
		_ = r.SetTrustedProxies(nil)
		r.Use(RealIP(trust))
		r.GET("/ip", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("real_ip")) })

		req := httptest.NewRequest(http.MethodGet, "/ip", nil)
		req.RemoteAddr = "10.0.0.9:1234"
		req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		want := "10.0.0.9"
		if trust {
			want = "203.0.113.7"
		}
		if w.Body.String() != want {
			t.Fatalf("trust=%v: expected %q, got %q", trust, want, w.Body.String())
		}
	}
}

func TestRequestIDReusesValidHeader(t *testing.T) {
	r := newEngine(RequestIDMiddleware())
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set(HeaderRequestID, "0b6a3d5e-1f43-4d7c-9a59-8f0a1e2b3c4d")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if got := w.Header().Get(HeaderRequestID); got != "0b6a3d5e-1f43-4d7c-9a59-8f0a1e2b3c4d" {
		t.Fatalf("expected inbound id echoed, got %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set(HeaderRequestID, "<script>")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if got := w.Header().Get(HeaderRequestID); got == "<script>" || got == "" {
		t.Fatalf("expected a fresh id, got %q", got)
	}
}

func TestRateLimitWithoutRedisIsPassThrough(t *testing.T) {
	r := newEngine(RateLimit(nil, 1, 0, KeyByIP(), nil))
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i, w.Code)
		}
	}
}
