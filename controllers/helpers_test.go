package controllers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"chirp/controllers"
	"chirp/handlers"
	"chirp/models"
	"chirp/routes"
	"chirp/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestRouter(t *testing.T) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "chirp_test.db")), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Tweet{}))

	storage, err := services.NewLocalStorage(t.TempDir(), "/media")
	require.NoError(t, err)

	hubService := services.NewHubService()

	r := gin.New()
	routes.SetupRoutes(r,
		controllers.NewAuthController(db, storage),
		controllers.NewUserController(db, storage),
		controllers.NewTweetController(db, storage, hubService),
		handlers.NewWebSocketHandler(hubService),
	)
	return r
}

func doJSON(r *gin.Engine, method, path, token string, payload interface{}) *httptest.ResponseRecorder {
	var body io.Reader
	if payload != nil {
		data, _ := json.Marshal(payload)
		body = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// doTweetForm sends a multipart tweet form with an optional fake image.
func doTweetForm(t *testing.T, r *gin.Engine, method, path, token, text, imageName string, imageSize int) *httptest.ResponseRecorder {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	if text != "" {
		require.NoError(t, writer.WriteField("text", text))
	}
	if imageName != "" {
		part, err := writer.CreateFormFile("image", imageName)
		require.NoError(t, err)
		_, err = part.Write(bytes.Repeat([]byte("x"), imageSize))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func registerTestAccount(t *testing.T, r *gin.Engine, username string) (token string, userID uint) {
	t.Helper()

	w := doJSON(r, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"email":    username + "@example.com",
		"username": username,
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	body := decodeBody(t, w)
	token = body["token"].(string)
	data := body["data"].(map[string]interface{})
	return token, uint(data["id"].(float64))
}

func createTweetHTTP(t *testing.T, r *gin.Engine, token, text string) uint {
	t.Helper()

	w := doTweetForm(t, r, http.MethodPost, "/api/v1/tweets", token, text, "", 0)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	data := decodeBody(t, w)["data"].(map[string]interface{})
	return uint(data["id"].(float64))
}
