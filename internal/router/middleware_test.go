package router

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/land-deals/backend/internal/authz"
	"github.com/land-deals/backend/internal/config"
	"github.com/land-deals/backend/internal/models"
	"github.com/land-deals/backend/internal/repository"
	"github.com/land-deals/backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupEngine(t *testing.T) (*gin.Engine, *service.AuthService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:router_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	hash, _ := bcrypt.GenerateFromPassword([]byte("password-1"), bcrypt.MinCost)
	users := []models.User{
		{Username: "boss", PasswordHash: string(hash), Role: "admin"},
		{Username: "clerk", PasswordHash: string(hash), Role: "user"},
	}
	if err := db.Create(&users).Error; err != nil {
		t.Fatalf("seed users: %v", err)
	}

	auth := service.NewAuthService(repository.NewUserRepository(db), config.JWTConfig{
		SecretKey:   "router-test-secret",
		ExpireHours: 1,
	})
	authzService, err := authz.NewService(db)
	if err != nil {
		t.Fatalf("authz: %v", err)
	}

	engine := gin.New()
	group := engine.Group("/api/v1")
	group.Use(JWTAuth(auth), RequireAccess(authzService))
	group.GET("/deals/:id", func(c *gin.Context) { c.Status(http.StatusOK) })
	group.DELETE("/deals/:id", func(c *gin.Context) { c.Status(http.StatusOK) })
	group.DELETE("/payments/:id", func(c *gin.Context) { c.Status(http.StatusOK) })
	return engine, auth
}

func token(t *testing.T, auth *service.AuthService, username string) string {
	t.Helper()
	result, err := auth.Login(username, "password-1")
	if err != nil {
		t.Fatalf("login %s: %v", username, err)
	}
	return result.Token
}

func request(engine *gin.Engine, method, path, bearer string) int {
	req := httptest.NewRequest(method, path, nil)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	recorder := httptest.NewRecorder()
	engine.ServeHTTP(recorder, req)
	return recorder.Code
}

func TestJWTAuthRejectsMissingOrBadToken(t *testing.T) {
	engine, _ := setupEngine(t)

	if code := request(engine, http.MethodGet, "/api/v1/deals/1", ""); code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", code)
	}
	if code := request(engine, http.MethodGet, "/api/v1/deals/1", "garbage"); code != http.StatusUnauthorized {
		t.Fatalf("expected 401 with bad token, got %d", code)
	}
}

func TestRoleAccessMatrix(t *testing.T) {
	engine, auth := setupEngine(t)
	adminToken := token(t, auth, "boss")
	userToken := token(t, auth, "clerk")

	cases := []struct {
		name   string
		method string
		path   string
		token  string
		want   int
	}{
		{"user reads deal", http.MethodGet, "/api/v1/deals/1", userToken, http.StatusOK},
		{"user cannot delete deal", http.MethodDelete, "/api/v1/deals/1", userToken, http.StatusForbidden},
		{"user deletes own payment", http.MethodDelete, "/api/v1/payments/1", userToken, http.StatusOK},
		{"admin deletes deal", http.MethodDelete, "/api/v1/deals/1", adminToken, http.StatusOK},
	}
	for _, tc := range cases {
		if code := request(engine, tc.method, tc.path, tc.token); code != tc.want {
			t.Fatalf("%s: expected %d, got %d", tc.name, tc.want, code)
		}
	}
}
