package utils

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/cppla/civicreport/config"
)

func TestNilRedisCacheIsAlwaysMissing(t *testing.T) {
	if NewRedisClient(config.AppConfig{}) != nil {
		t.Fatalf("redis client created without RedisHost")
	}
	cache := NewRedisCache(nil, 0)
	if cache != nil {
		t.Fatalf("NewRedisCache(nil) = %v", cache)
	}

	ctx := context.Background()
	var out []string
	cache.SetJSON(ctx, "k", []string{"a"})
	if cache.GetJSON(ctx, "k", &out) {
		t.Fatalf("nil cache reported a hit")
	}
	cache.InvalidateByPrefix(ctx, "k")
}

func TestRollingFileLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "gin.log")
	l, err := NewRollingFileLogger(path, "info", 1, 1, 1, false)
	if err != nil {
		t.Fatalf("NewRollingFileLogger() error = %v", err)
	}
	l.Debug("hidden")
	l.Info("visible")
	_ = l.Sync()

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(b), `"msg":"visible"`) || strings.Contains(string(b), "hidden") {
		t.Fatalf("log contents = %s", b)
	}
}

func TestResponseEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/ok", func(c *gin.Context) { Success(c, http.StatusCreated, "submission", gin.H{"id": "1"}) })
	r.GET("/fail", func(c *gin.Context) { Error(c, http.StatusBadRequest, "Title and description are required.") })

	cases := map[string]struct {
		code int
		body string
	}{
		"/ok":   {http.StatusCreated, `{"submission":{"id":"1"},"success":true}`},
		"/fail": {http.StatusBadRequest, `{"error":"Title and description are required.","success":false}`},
	}
	for path, want := range cases {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		if w.Code != want.code || w.Body.String() != want.body {
			t.Fatalf("GET %s = %d %s", path, w.Code, w.Body.String())
		}
	}
}
