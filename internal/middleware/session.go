package middleware

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/alimgiray/shiftledger/internal/models"
	"github.com/alimgiray/shiftledger/pkg/config"
	"github.com/gin-gonic/gin"
)

const sessionCookie = "session"

type SessionData struct {
	UserID     string      `json:"user_id"`
	Username   string      `json:"username"`
	Role       models.Role `json:"role"`
	Department string      `json:"department"`
	ExpiresAt  time.Time   `json:"expires_at"`
}

// Principal returns the caller described by the session
func (s *SessionData) Principal() models.Principal {
	return models.Principal{
		UserID:     s.UserID,
		Username:   s.Username,
		Role:       s.Role,
		Department: s.Department,
	}
}

// SessionMiddleware handles session management using cookies.
// A valid session is extended whenever the response succeeds.
func SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionData := getSessionFromCookie(c)
		c.Set("session", sessionData)

		if sessionData != nil {
			c.Writer = &sessionRefreshWriter{ResponseWriter: c.Writer, session: sessionData}
		}

		c.Next()
	}
}

// sessionRefreshWriter re-issues the session cookie right before a non-error status is written
type sessionRefreshWriter struct {
	gin.ResponseWriter
	session *SessionData
}

func (w *sessionRefreshWriter) WriteHeader(code int) {
	w.refresh(code)
	w.ResponseWriter.WriteHeader(code)
}

func (w *sessionRefreshWriter) Write(data []byte) (int, error) {
	w.refresh(w.ResponseWriter.Status())
	return w.ResponseWriter.Write(data)
}

func (w *sessionRefreshWriter) WriteString(s string) (int, error) {
	w.refresh(w.ResponseWriter.Status())
	return w.ResponseWriter.WriteString(s)
}

func (w *sessionRefreshWriter) refresh(code int) {
	if w.session == nil || w.ResponseWriter.Written() || code >= http.StatusBadRequest {
		return
	}
	extended := *w.session
	w.session = nil

	extended.ExpiresAt = time.Now().Add(sessionTTL())
	if value, err := encodeSession(&extended); err == nil {
		http.SetCookie(w.ResponseWriter, newSessionCookie(value, int(sessionTTL().Seconds())))
	}
}

// getSessionFromCookie extracts and validates session data from cookie
func getSessionFromCookie(c *gin.Context) *SessionData {
	cookie, err := c.Cookie(sessionCookie)
	if err != nil {
		return nil
	}

	// Split cookie value (signature.data)
	parts := strings.Split(cookie, ".")
	if len(parts) != 2 {
		return nil
	}

	signature, data := parts[0], parts[1]

	if !verifySignature(data, signature) {
		return nil
	}

	decodedData, err := base64.URLEncoding.DecodeString(data)
	if err != nil {
		return nil
	}

	var sessionData SessionData
	if err := json.Unmarshal(decodedData, &sessionData); err != nil {
		return nil
	}

	if time.Now().After(sessionData.ExpiresAt) {
		return nil
	}

	return &sessionData
}

// SetSession creates a new session cookie for the user
func SetSession(c *gin.Context, user *models.User) error {
	sessionData := SessionData{
		UserID:     user.ID.String(),
		Username:   user.Username,
		Role:       user.Role,
		Department: user.Department,
		ExpiresAt:  time.Now().Add(sessionTTL()),
	}

	value, err := encodeSession(&sessionData)
	if err != nil {
		return err
	}

	stopRefresh(c)
	http.SetCookie(c.Writer, newSessionCookie(value, int(sessionTTL().Seconds())))
	c.Set("session", &sessionData)

	return nil
}

// ClearSession removes the session cookie
func ClearSession(c *gin.Context) {
	stopRefresh(c)
	http.SetCookie(c.Writer, newSessionCookie("", -1))
	c.Set("session", nil)
}

func stopRefresh(c *gin.Context) {
	if w, ok := c.Writer.(*sessionRefreshWriter); ok {
		w.session = nil
	}
}

func encodeSession(sessionData *SessionData) (string, error) {
	data, err := json.Marshal(sessionData)
	if err != nil {
		return "", err
	}

	encodedData := base64.URLEncoding.EncodeToString(data)
	return createSignature(encodedData) + "." + encodedData, nil
}

func newSessionCookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     sessionCookie,
		Value:    value,
		MaxAge:   maxAge,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

func sessionTTL() time.Duration {
	hours := config.AppConfig.Session.TTLHours
	if hours <= 0 {
		hours = 24
	}
	return time.Duration(hours) * time.Hour
}

// createSignature creates HMAC signature for data
func createSignature(data string) string {
	h := hmac.New(sha256.New, []byte(config.AppConfig.Session.Secret))
	h.Write([]byte(data))
	return base64.URLEncoding.EncodeToString(h.Sum(nil))
}

// verifySignature verifies HMAC signature
func verifySignature(data, signature string) bool {
	expectedSignature := createSignature(data)
	return hmac.Equal([]byte(signature), []byte(expectedSignature))
}

// GetSession retrieves session data from context
func GetSession(c *gin.Context) *SessionData {
	session, exists := c.Get("session")
	if !exists {
		return nil
	}

	if sessionData, ok := session.(*SessionData); ok {
		return sessionData
	}

	return nil
}
