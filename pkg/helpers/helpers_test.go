package helpers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func TestNewLoggerLevel(t *testing.T) {
	tests := []struct {
		env, level string
		want       logrus.Level
	}{
		{"development", "", logrus.DebugLevel},
		{"production", "", logrus.InfoLevel},
		{"production", "warn", logrus.WarnLevel},
		{"production", "nonsense", logrus.InfoLevel},
	}
	for _, tt := range tests {
		if got := NewLogger("catalog", tt.env, tt.level).GetLevel(); got != tt.want {
			t.Errorf("NewLogger(%q, %q) level = %v, want %v", tt.env, tt.level, got, tt.want)
		}
	}
	LogWarn(nil, "nil logger is ignored", nil, nil)
}

func TestCacheKeyAndPublicURL(t *testing.T) {
	if got := CacheKey("categories", "all"); got != "catalog:categories:all" {
		t.Fatalf("CacheKey = %q", got)
	}
	if got := PublicURL("bucket", "products/a.png"); got != "https://storage.googleapis.com/bucket/products/a.png" {
		t.Fatalf("PublicURL = %q", got)
	}
}

func TestNewESClientWithoutAddresses(t *testing.T) {
	es, err := NewESClient(nil, "", "", 0)
	if err != nil || es != nil {
		t.Fatalf("NewESClient(nil) = %v, %v; want nil, nil", es, err)
	}
}

func TestCookieManager(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := NewCookie("localhost", true)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/login", nil)
	m.SetAccess(c, "tok", time.Now().Add(time.Hour))
	set := w.Header().Get("Set-Cookie")
	for _, part := range []string{"access_token=tok", "HttpOnly", "Secure", "SameSite=Lax"} {
		if !strings.Contains(set, part) {
			t.Errorf("Set-Cookie %q missing %q", set, part)
		}
	}

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/logout", nil)
	m.Clear(c)
	if set := w.Header().Get("Set-Cookie"); !strings.Contains(set, "Max-Age=0") {
		t.Errorf("cleared cookie = %q", set)
	}

	if maxAgeFrom(time.Now().Add(-time.Minute)) != 0 {
		t.Error("expired time should give max age 0")
	}
}
