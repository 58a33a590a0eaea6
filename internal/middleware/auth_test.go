package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"tasktracker/internal/auth"
	"tasktracker/internal/constants"
)

var testSecret = []byte("test-secret")

func authTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/protected", RequireAuth(testSecret), func(c *gin.Context) {
		userID, _ := GetUserID(c)
		c.JSON(http.StatusOK, gin.H{
			"user_id": userID,
			"email":   c.GetString(constants.ContextKeyUserEmail),
		})
	})
	return r
}

func doRequest(t *testing.T, r *gin.Engine, header string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestRequireAuth_MissingCredential(t *testing.T) {
	r := authTestRouter()

	for _, header := range []string{"", "Basic abc", "Bearer", "Bearer   "} {
		w, body := doRequest(t, r, header)
		require.Equal(t, http.StatusUnauthorized, w.Code, "header %q", header)
		require.Equal(t, "Authorization token missing", body["message"], "header %q", header)
	}
}

func TestRequireAuth_InvalidToken(t *testing.T) {
	r := authTestRouter()

	w, body := doRequest(t, r, "Bearer not-a-token")
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, "Invalid token", body["message"])
}

func TestRequireAuth_ExpiredToken(t *testing.T) {
	r := authTestRouter()

	token, err := auth.GenerateToken(7, "ann@example.com", testSecret, -time.Minute)
	require.NoError(t, err)

	w, body := doRequest(t, r, "Bearer "+token)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, "Token expired", body["message"])
}

func TestRequireAuth_WrongSecret(t *testing.T) {
	r := authTestRouter()

	token, err := auth.GenerateToken(7, "ann@example.com", []byte("other-secret"), time.Hour)
	require.NoError(t, err)

	w, body := doRequest(t, r, "Bearer "+token)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, "Invalid token", body["message"])
}

func TestRequireAuth_BindsIdentityToContext(t *testing.T) {
	r := authTestRouter()

	token, err := auth.GenerateToken(7, "ann@example.com", testSecret, time.Hour)
	require.NoError(t, err)

	w, body := doRequest(t, r, "Bearer "+token)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, float64(7), body["user_id"])
	require.Equal(t, "ann@example.com", body["email"])
}
