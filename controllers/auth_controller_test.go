package controllers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterReturnsTokenAndUser(t *testing.T) {
	r := setupTestRouter(t)

	token, userID := registerTestAccount(t, r, "alice")
	assert.NotEmpty(t, token)
	assert.NotZero(t, userID)
}

func TestRegisterRejectsDuplicate(t *testing.T) {
	r := setupTestRouter(t)
	registerTestAccount(t, r, "alice")

	w := doJSON(r, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"email":    "alice@example.com",
		"username": "alice",
		"password": "password123",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRegisterRejectsInvalidInput(t *testing.T) {
	r := setupTestRouter(t)

	w := doJSON(r, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"email":    "not-an-email",
		"username": "al",
		"password": "123",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginFlow(t *testing.T) {
	r := setupTestRouter(t)
	registerTestAccount(t, r, "alice")

	w := doJSON(r, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"username": "alice",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.NotEmpty(t, decodeBody(t, w)["token"])
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	r := setupTestRouter(t)
	registerTestAccount(t, r, "alice")

	w := doJSON(r, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"username": "alice",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(r, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"username": "nobody",
		"password": "password123",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMe(t *testing.T) {
	r := setupTestRouter(t)
	token, _ := registerTestAccount(t, r, "alice")

	w := doJSON(r, http.MethodGet, "/api/v1/auth/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	data := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "alice", data["username"])

	w = doJSON(r, http.MethodGet, "/api/v1/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogout(t *testing.T) {
	r := setupTestRouter(t)
	token, _ := registerTestAccount(t, r, "alice")

	w := doJSON(r, http.MethodPost, "/api/v1/auth/logout", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodPost, "/api/v1/auth/logout", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
