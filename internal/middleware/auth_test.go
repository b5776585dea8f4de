package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alimgiray/shiftledger/internal/models"
	"github.com/alimgiray/shiftledger/pkg/config"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(SessionMiddleware())

	api := router.Group("/api")
	api.Use(AuthRequired())
	api.GET("/me", func(c *gin.Context) {
		principal, _ := GetPrincipal(c)
		c.JSON(http.StatusOK, principal)
	})
	api.GET("/manager", ManagerRequired(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})
	return router
}

func TestTokenRoundTrip(t *testing.T) {
	config.Load()

	user := &models.User{ID: uuid.New(), Username: "bob", Role: models.RoleManager, Department: "Ops"}
	token, expiresAt, err := IssueToken(user)
	require.NoError(t, err)
	assert.True(t, expiresAt.After(time.Now()))

	principal, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), principal.UserID)
	assert.Equal(t, "bob", principal.Username)
	assert.Equal(t, models.RoleManager, principal.Role)
	assert.Equal(t, "Ops", principal.Department)
}

func TestParseTokenRejectsBadTokens(t *testing.T) {
	config.Load()

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, TokenClaims{
		Role: models.RoleEmployee,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	})
	expiredStr, err := expired.SignedString([]byte(config.AppConfig.Token.Secret))
	require.NoError(t, err)

	wrongKey := jwt.NewWithClaims(jwt.SigningMethodHS256, TokenClaims{
		Role: models.RoleEmployee,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	wrongKeyStr, err := wrongKey.SignedString([]byte("another-secret"))
	require.NoError(t, err)

	for _, token := range []string{expiredStr, wrongKeyStr, "not.a.token"} {
		_, err := ParseToken(token)
		assert.Error(t, err)
	}
}

func TestAuthRequired(t *testing.T) {
	config.Load()
	router := newAuthRouter()

	// no credentials
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/me", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// malformed header
	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/api/me", nil)
	req.Header.Set("Authorization", "Token abc")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// bearer token
	employee := &models.User{ID: uuid.New(), Username: "alice", Role: models.RoleEmployee, Department: "Support"}
	token, _, err := IssueToken(employee)
	require.NoError(t, err)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/api/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"username":"alice"`)

	// session cookie
	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/api/me", nil)
	req.AddCookie(&http.Cookie{Name: "session", Value: signedSessionCookie(testSession(time.Hour))})
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"username":"testuser"`)
}

func TestManagerRequired(t *testing.T) {
	config.Load()
	router := newAuthRouter()

	employee := &models.User{ID: uuid.New(), Username: "alice", Role: models.RoleEmployee}
	manager := &models.User{ID: uuid.New(), Username: "bob", Role: models.RoleAdmin}

	employeeToken, _, err := IssueToken(employee)
	require.NoError(t, err)
	managerToken, _, err := IssueToken(manager)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/manager", nil)
	req.Header.Set("Authorization", "Bearer "+employeeToken)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/api/manager", nil)
	req.Header.Set("Authorization", "Bearer "+managerToken)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequestLoggerSetsRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestLogger())
	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/ping", nil)
	router.ServeHTTP(w, req)
	assert.NotEmpty(t, w.Header().Get(requestIDHeader))

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/ping", nil)
	req.Header.Set(requestIDHeader, "fixed-id")
	router.ServeHTTP(w, req)
	assert.Equal(t, "fixed-id", w.Header().Get(requestIDHeader))
}
