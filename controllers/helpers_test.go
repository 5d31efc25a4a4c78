package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/vipulchandan/BookManagement/models"
	"github.com/vipulchandan/BookManagement/routes"
	"github.com/vipulchandan/BookManagement/storage"
	"github.com/vipulchandan/BookManagement/utils"
)

// fakeAssets satisfies assetstore.Store without touching disk.
type fakeAssets struct{}

func (fakeAssets) Save(name, contentType string, r io.Reader) (string, error) {
	if _, err := io.Copy(io.Discard, r); err != nil {
		return "", err
	}
	return "http://assets.test/" + name, nil
}

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newTestServer(t *testing.T) (*gin.Engine, *storage.Memory, *utils.TokenService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mem := storage.NewMemory()
	tokens := utils.NewTokenService("test-secret", time.Hour)
	router := routes.SetupRouter(routes.Dependencies{
		Stores: mem.Stores(),
		Tokens: tokens,
		Assets: fakeAssets{},
	})
	return router, mem, tokens
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(buf)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("x-access-token", token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w, env
}

// newForeignToken returns a well-formed token signed with a secret the
// test server does not know.
func newForeignToken() (string, error) {
	return utils.NewTokenService("wrong-secret", time.Hour).CreateToken(uuid.NewString())
}

var userSeq atomic.Int64

// seedUser inserts a user directly into the store and returns it with a
// valid token for it.
func seedUser(t *testing.T, mem *storage.Memory, tokens *utils.TokenService) (models.User, string) {
	t.Helper()

	n := userSeq.Add(1)
	user := models.User{
		ID:        uuid.NewString(),
		Title:     "Mr",
		Name:      fmt.Sprintf("Reader %d", n),
		Phone:     fmt.Sprintf("9%09d", n),
		Email:     fmt.Sprintf("reader%d@example.com", n),
		Password:  "irrelevant-hash",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	require.NoError(t, mem.CreateUser(&user))

	token, err := tokens.CreateToken(user.ID)
	require.NoError(t, err)
	return user, token
}

// bookForm builds a multipart body for POST /books.
func bookForm(t *testing.T, fields map[string]string, withFile bool) (io.Reader, string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if withFile {
		fw, err := w.CreateFormFile("cover", "cover.jpg")
		require.NoError(t, err)
		_, err = fw.Write([]byte("not really a jpeg"))
		require.NoError(t, err)
	}
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func createBook(t *testing.T, router *gin.Engine, token string, fields map[string]string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	body, contentType := bookForm(t, fields, true)
	req := httptest.NewRequest(http.MethodPost, "/books", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("x-access-token", token)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w, env
}

var bookSeq atomic.Int64

// bookFields returns a valid creation form for the given owner, with a
// unique title and ISBN. Overrides replace individual fields.
func bookFields(userID string, overrides map[string]string) map[string]string {
	n := bookSeq.Add(1)
	fields := map[string]string{
		"userId":      userID,
		"title":       fmt.Sprintf("Book %d", n),
		"excerpt":     "An excerpt",
		"ISBN":        fmt.Sprintf("978-%010d", n),
		"category":    "Fiction",
		"subcategory": "Drama",
		"releasedAt":  "2021-09-17",
	}
	for k, v := range overrides {
		fields[k] = v
	}
	return fields
}
