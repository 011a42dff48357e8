package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/memonote/memonote-backend/internal/domain"
	"github.com/memonote/memonote-backend/pkg/jwt"
)

func newTestManager() *jwt.Manager {
	return jwt.NewManager("test-secret", 30*time.Minute, 24*time.Hour)
}

func TestJWTAuth_ValidToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	manager := newTestManager()
	token, err := manager.GenerateAccessToken(7, "Alice", domain.RoleUser)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	w := httptest.NewRecorder()
	_, r := gin.CreateTestContext(w)
	r.Use(JWTAuth(manager))
	r.GET("/test", func(c *gin.Context) {
		if GetUserID(c) != 7 {
			t.Errorf("expected userID 7, got %d", GetUserID(c))
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	req, _ := http.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestJWTAuth_MissingToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	_, r := gin.CreateTestContext(w)
	r.Use(JWTAuth(newTestManager()))
	r.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	req, _ := http.NewRequest("GET", "/test", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestJWTAuth_RefreshTokenRejected(t *testing.T) {
	gin.SetMode(gin.TestMode)
	manager := newTestManager()
	refresh, err := manager.GenerateRefreshToken(7)
	if err != nil {
		t.Fatalf("generate refresh token: %v", err)
	}

	w := httptest.NewRecorder()
	_, r := gin.CreateTestContext(w)
	r.Use(JWTAuth(manager))
	r.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	req, _ := http.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer "+refresh)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestOptionalJWTAuth_Anonymous(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	_, r := gin.CreateTestContext(w)
	r.Use(OptionalJWTAuth(newTestManager()))
	r.GET("/test", func(c *gin.Context) {
		if GetUserID(c) != 0 {
			t.Errorf("expected anonymous, got %d", GetUserID(c))
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	req, _ := http.NewRequest("GET", "/test", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestAdminOnly_Denied(t *testing.T) {
	gin.SetMode(gin.TestMode)
	manager := newTestManager()
	token, _ := manager.GenerateAccessToken(7, "Alice", domain.RoleUser)

	w := httptest.NewRecorder()
	_, r := gin.CreateTestContext(w)
	r.Use(JWTAuth(manager), AdminOnly())
	r.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	req, _ := http.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", w.Code)
	}
}

func TestAdminOnly_Allowed(t *testing.T) {
	gin.SetMode(gin.TestMode)
	manager := newTestManager()
	token, _ := manager.GenerateAccessToken(1, "Root", domain.RoleAdmin)

	w := httptest.NewRecorder()
	_, r := gin.CreateTestContext(w)
	r.Use(JWTAuth(manager), AdminOnly())
	r.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	req, _ := http.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}
