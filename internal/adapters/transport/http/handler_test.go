package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	myPostgresRepo "github.com/webxtars/vybh-backend/internal/adapters/db/postgres"
	appjwt "github.com/webxtars/vybh-backend/internal/app/auth/jwt"
	authsvc "github.com/webxtars/vybh-backend/internal/app/auth/service"
	usersvc "github.com/webxtars/vybh-backend/internal/app/user/service"
	"github.com/webxtars/vybh-backend/internal/domain/user/model"
	"github.com/webxtars/vybh-backend/internal/infra/config"
)

type noopNotifier struct{}

func (noopNotifier) UserCreated(_ model.PublicUser) error { return nil }

func newRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}))

	repo := myPostgresRepo.NewPostgresUserRepo(db)
	issuer := appjwt.NewTokenIssuer(&config.Config{
		JWTSecret:       "test-secret",
		AccessTokenTTL:  time.Minute,
		RefreshTokenTTL: time.Hour,
	})
	validate := validator.New()

	users := usersvc.New(repo, noopNotifier{}, validate, zap.NewNop())
	auth := authsvc.New(repo, issuer, validate)

	router := gin.New()
	NewHandler(auth, users, zap.NewNop()).RegisterRoutes(router)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var parsed map[string]any
	if len(w.Body.Bytes()) > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &parsed))
	}
	return w, parsed
}

func registerJohn(t *testing.T, router *gin.Engine) map[string]any {
	t.Helper()
	w, resp := doJSON(t, router, http.MethodPost, "/user/create", gin.H{
		"firstName": "John",
		"lastName":  "Doe",
		"username":  "john_doe",
		"email":     "john@x.com",
		"password":  "secret123",
	})
	require.Equal(t, http.StatusOK, w.Code)
	return resp
}

func TestEndToEnd_RegisterLoginRefresh(t *testing.T) {
	router := newRouter(t)

	// register
	resp := registerJohn(t, router)
	user, ok := resp["user"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "John", user["firstName"])
	require.NotContains(t, user, "password")
	require.NotContains(t, user, "passwordHash")

	// login
	w, resp := doJSON(t, router, http.MethodPost, "/auth/login", gin.H{
		"email": "john@x.com", "password": "secret123",
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.NotEmpty(t, resp["accessToken"])
	require.NotEmpty(t, resp["refreshToken"])
	loginUser, ok := resp["user"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "john_doe", loginUser["username"])

	// refresh
	w, refreshResp := doJSON(t, router, http.MethodPost, "/auth/refresh", gin.H{
		"refreshToken": resp["refreshToken"],
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.NotEmpty(t, refreshResp["accessToken"])

	// wrong password
	w, _ = doJSON(t, router, http.MethodPost, "/auth/login", gin.H{
		"email": "john@x.com", "password": "wrong",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogin_UnknownAndWrongAreIdentical(t *testing.T) {
	router := newRouter(t)
	registerJohn(t, router)

	w1, resp1 := doJSON(t, router, http.MethodPost, "/auth/login", gin.H{
		"email": "nobody@x.com", "password": "secret123",
	})
	w2, resp2 := doJSON(t, router, http.MethodPost, "/auth/login", gin.H{
		"email": "john@x.com", "password": "wrong",
	})

	require.Equal(t, http.StatusBadRequest, w1.Code)
	require.Equal(t, w1.Code, w2.Code)
	require.Equal(t, resp1["error"], resp2["error"])
}

func TestRefresh_RejectsAccessToken(t *testing.T) {
	router := newRouter(t)
	registerJohn(t, router)

	_, login := doJSON(t, router, http.MethodPost, "/auth/login", gin.H{
		"email": "john@x.com", "password": "secret123",
	})

	w, _ := doJSON(t, router, http.MethodPost, "/auth/refresh", gin.H{
		"refreshToken": login["accessToken"],
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRefresh_Garbage(t *testing.T) {
	router := newRouter(t)

	w, _ := doJSON(t, router, http.MethodPost, "/auth/refresh", gin.H{
		"refreshToken": "not-a-token",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateUser_Duplicate(t *testing.T) {
	router := newRouter(t)
	registerJohn(t, router)

	w, resp := doJSON(t, router, http.MethodPost, "/user/create", gin.H{
		"firstName": "Jane",
		"lastName":  "Roe",
		"username":  "jane_roe",
		"email":     "john@x.com",
		"password":  "secret123",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "User already exists", resp["error"])
}

func TestUserLookups(t *testing.T) {
	router := newRouter(t)
	resp := registerJohn(t, router)
	user := resp["user"].(map[string]any)
	id := user["id"].(string)

	w, byID := doJSON(t, router, http.MethodGet, "/user/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "User fetched successfully", byID["message"])

	w, _ = doJSON(t, router, http.MethodGet, "/user/email/john@x.com", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = doJSON(t, router, http.MethodGet, "/user/username/john_doe", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, list := doJSON(t, router, http.MethodGet, "/user", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, float64(1), list["count"])

	w, _ = doJSON(t, router, http.MethodGet, "/user/email/nobody@x.com", nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	w, _ = doJSON(t, router, http.MethodGet, "/user/00000000-0000-0000-0000-000000000000", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateUser_Partial(t *testing.T) {
	router := newRouter(t)
	resp := registerJohn(t, router)
	user := resp["user"].(map[string]any)
	id := user["id"].(string)

	w, updated := doJSON(t, router, http.MethodPatch, "/user/update/"+id, gin.H{
		"firstName": "Jane",
	})
	require.Equal(t, http.StatusOK, w.Code)

	u := updated["user"].(map[string]any)
	require.Equal(t, "Jane", u["firstName"])
	require.Equal(t, "Doe", u["lastName"])
	require.Equal(t, "john_doe", u["username"])

	w, _ = doJSON(t, router, http.MethodPatch, "/user/update/missing-id", gin.H{
		"firstName": "X",
	})
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateUser_InvalidBody(t *testing.T) {
	router := newRouter(t)

	w, _ := doJSON(t, router, http.MethodPost, "/user/create", gin.H{
		"firstName": "John",
		"email":     "not-an-email",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
}
