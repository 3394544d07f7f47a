// internal/handlers/setup_test.go
package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/artstylelab/backend/internal/config"
	"github.com/artstylelab/backend/internal/database"
	"github.com/artstylelab/backend/internal/i18n"
	"github.com/artstylelab/backend/internal/router"
	"github.com/artstylelab/backend/internal/services"
	"github.com/artstylelab/backend/internal/utils"
)

// stubGenerator stands in for the generation backend so tests never make
// network calls.
type stubGenerator struct {
	enabled      bool
	images       []services.GeneratedImage
	generateErr  error
	downloadData []byte
	downloadErr  error
	prompts      []string
	opts         []services.GenerateOptions
}

func (g *stubGenerator) Enabled() bool { return g.enabled }

func (g *stubGenerator) GenerateImages(_ context.Context, prompt string, opts services.GenerateOptions) ([]services.GeneratedImage, error) {
	g.prompts = append(g.prompts, prompt)
	g.opts = append(g.opts, opts)
	if g.generateErr != nil {
		return nil, g.generateErr
	}
	return g.images, nil
}

func (g *stubGenerator) DownloadImage(_ context.Context, _ string) ([]byte, error) {
	if g.downloadErr != nil {
		return nil, g.downloadErr
	}
	return g.downloadData, nil
}

type testEnv struct {
	router *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
	gen    *stubGenerator
}

type apiEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	require.NoError(t, i18n.Initialize("../i18n/locales"))
	utils.SetJWTSecret("test-secret")

	cfg := &config.Config{
		Environment: "test",
		Database: config.DatabaseConfig{
			Driver: "sqlite",
			// Shared cache keeps the in-memory database alive across pooled
			// connections.
			Database:     fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String()),
			MaxOpenConns: 1,
			MaxIdleConns: 1,
			MaxLifetime:  300,
			LogLevel:     "silent",
		},
		JWT: config.JWTConfig{
			SecretKey:      "test-secret",
			AccessTokenTTL: 1,
		},
		Uploads: config.UploadConfig{
			Dir:       t.TempDir(),
			BaseURL:   "/uploads",
			MaxSizeMB: 10,
		},
		RateLimit: config.RateLimitConfig{
			WindowSeconds: 60,
			MaxRequests:   10,
			GlobalRPS:     1000,
			GlobalBurst:   1000,
		},
		I18n: config.I18nConfig{
			DefaultLocale: "en",
			LocalesPath:   "../i18n/locales",
		},
	}

	db, err := database.Initialize(cfg.Database)
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations(db))
	require.NoError(t, database.SeedInitialData(db))

	gen := &stubGenerator{enabled: true, downloadData: []byte("image-bytes")}

	r, err := router.InitializeWithGenerator(db, cfg, gen)
	require.NoError(t, err)

	t.Cleanup(func() { database.Close(db) })

	return &testEnv{router: r, db: db, cfg: cfg, gen: gen}
}

func (e *testEnv) doJSON(t *testing.T, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) doMultipart(t *testing.T, path string, fields map[string]string, fileField, filename string, content []byte) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	if fileField != "" {
		part, err := writer.CreateFormFile(fileField, filename)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) parse(t *testing.T, w *httptest.ResponseRecorder) apiEnvelope {
	t.Helper()
	var envelope apiEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	return envelope
}

func (e *testEnv) decodeData(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	envelope := e.parse(t, w)
	require.True(t, envelope.Success, "expected success envelope, body: %s", w.Body.String())
	require.NoError(t, json.Unmarshal(envelope.Data, out))
}

// register creates an account through the API and returns its token.
func (e *testEnv) register(t *testing.T, id, name, password, role string) string {
	t.Helper()

	w := e.doJSON(t, http.MethodPost, "/api/register", gin.H{
		"userId":   id,
		"password": password,
		"name":     name,
		"userType": role,
	}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	e.decodeData(t, w, &resp)
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func (e *testEnv) login(t *testing.T, id, password string) string {
	t.Helper()

	w := e.doJSON(t, http.MethodPost, "/api/login", gin.H{
		"userId":   id,
		"password": password,
	}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	e.decodeData(t, w, &resp)
	return resp.Token
}

// uploadArtwork pushes a small image through the multipart endpoint and
// returns the created artwork id.
func (e *testEnv) uploadArtwork(t *testing.T, userID, title string) string {
	t.Helper()

	fields := map[string]string{"user": userID}
	if title != "" {
		fields["title"] = title
	}
	w := e.doMultipart(t, "/api/gallery", fields, "image", "art.png", []byte("png-bytes"))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var artwork struct {
		ID string `json:"id"`
	}
	e.decodeData(t, w, &artwork)
	require.NotEmpty(t, artwork.ID)
	return artwork.ID
}

// createExhibition makes a draft exhibition as the given user and returns
// its id.
func (e *testEnv) createExhibition(t *testing.T, token, title string) string {
	t.Helper()

	w := e.doJSON(t, http.MethodPost, "/api/exhibitions", gin.H{"title": title}, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var exhibition struct {
		ID string `json:"id"`
	}
	e.decodeData(t, w, &exhibition)
	require.NotEmpty(t, exhibition.ID)
	return exhibition.ID
}
