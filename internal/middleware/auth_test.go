package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func signTestToken(t *testing.T, agentID, role string) string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"agent_id": agentID,
		"role":     role,
		"exp":      time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(viper.GetString("jwt.secret_key")))
	assert.NoError(t, err)
	return signed
}

func TestAuthMiddleware(t *testing.T) {
	viper.Set("jwt.secret_key", "test-secret")

	handler := AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		agentID, _ := r.Context().Value("agentID").(string)
		role, _ := r.Context().Value("agentRole").(string)
		w.Header().Set("X-Agent-ID", agentID)
		w.Header().Set("X-Agent-Role", role)
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("valid token passes identity through context", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/tickets", nil)
		req.Header.Set("Authorization", "Bearer "+signTestToken(t, "agent-1", "agent"))
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "agent-1", w.Header().Get("X-Agent-ID"))
		assert.Equal(t, "agent", w.Header().Get("X-Agent-Role"))
	})

	t.Run("missing header is rejected", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/tickets", nil)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("malformed header is rejected", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/tickets", nil)
		req.Header.Set("Authorization", "token-without-scheme")
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("token signed with another key is rejected", func(t *testing.T) {
		viper.Set("jwt.secret_key", "test-secret")
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"agent_id": "agent-1",
			"role":     "agent",
			"exp":      time.Now().Add(time.Hour).Unix(),
		})
		signed, err := token.SignedString([]byte("other-secret"))
		assert.NoError(t, err)

		req := httptest.NewRequest("GET", "/tickets", nil)
		req.Header.Set("Authorization", "Bearer "+signed)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("expired token is rejected", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"agent_id": "agent-1",
			"role":     "agent",
			"exp":      time.Now().Add(-time.Hour).Unix(),
		})
		signed, err := token.SignedString([]byte(viper.GetString("jwt.secret_key")))
		assert.NoError(t, err)

		req := httptest.NewRequest("GET", "/tickets", nil)
		req.Header.Set("Authorization", "Bearer "+signed)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestAdminOnly(t *testing.T) {
	viper.Set("jwt.secret_key", "test-secret")

	handler := AuthMiddleware(AdminOnly(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})))

	t.Run("admin role passes", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/agents", nil)
		req.Header.Set("Authorization", "Bearer "+signTestToken(t, "admin-1", "admin"))
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("agent role is forbidden", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/agents", nil)
		req.Header.Set("Authorization", "Bearer "+signTestToken(t, "agent-1", "agent"))
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
