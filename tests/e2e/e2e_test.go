package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"berrystore/internal/database"
	"berrystore/internal/domain"
	"berrystore/internal/middleware"
	"berrystore/internal/modules/activity"
	"berrystore/internal/modules/auth"
	"berrystore/internal/modules/product"
	"berrystore/internal/modules/upload"
	jwtsvc "berrystore/internal/pkg/jwt"
)

type suite struct {
	router     *gin.Engine
	uploadRoot string
	token      string
}

func setupSuite(t *testing.T) *suite {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Connect(":memory:")
	require.NoError(t, err, "failed to connect to test database")
	require.NoError(t, database.Migrate(db, &domain.User{}, &domain.Product{}, &domain.Activity{}))

	j := jwtsvc.New("test_secret_key_32_characters_min", 24*time.Hour)

	userRepo := auth.NewUserRepository(db)
	authService := auth.NewService(userRepo, j)
	authHandler := auth.NewHandler(authService)
	authenticator := auth.NewJWTAuthenticator(j, userRepo)

	uploadRoot := filepath.Join(t.TempDir(), "products")
	receiver, err := upload.NewReceiver(uploadRoot)
	require.NoError(t, err)
	transcoder := upload.NewTranscoder(uploadRoot, "/uploads/products")
	uploadService := upload.NewService(receiver, transcoder, 30*time.Second)
	uploadHandler := upload.NewHandler(uploadService)

	productHandler := product.NewHandler(product.NewService(product.NewRepository(db)))
	activityHandler := activity.NewHandler(activity.NewService(activity.NewRepository(db)))

	r := gin.New()
	r.Use(middleware.RequestLogger(), middleware.CORS())

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Berrystore API"})
	})
	r.Static("/uploads", filepath.Dir(uploadRoot))

	authHandler.RegisterRoutes(r)

	api := r.Group("/api")
	productHandler.RegisterPublicRoutes(api)
	activityHandler.RegisterPublicRoutes(api)

	protected := api.Group("/")
	protected.Use(middleware.RequireAuth(authenticator))
	productHandler.RegisterProtectedRoutes(protected)
	uploadHandler.RegisterRoutes(protected)
	activityHandler.RegisterProtectedRoutes(protected)

	s := &suite{router: r, uploadRoot: uploadRoot}
	s.token = s.signup(t, "seller@example.com", "secret123")
	return s
}

func (s *suite) signup(t *testing.T, email, password string) string {
	t.Helper()

	body, _ := json.Marshal(map[string]string{
		"email":     email,
		"password":  password,
		"firstName": "Test",
		"lastName":  "Seller",
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/users/signup", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	s.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func (s *suite) do(t *testing.T, method, path string, body []byte, authed bool, contentType string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body == nil {
		reader = bytes.NewReader(nil)
	} else {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if authed {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func tinyPNG(t *testing.T, size int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for x := 0; x < size; x++ {
		for y := 0; y < size; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 30, B: 30, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func multipartBody(t *testing.T, fileNames []string, content []byte) ([]byte, string) {
	t.Helper()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for _, name := range fileNames {
		fw, err := w.CreateFormFile("images", name)
		require.NoError(t, err)
		_, err = fw.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return body.Bytes(), w.FormDataContentType()
}

func TestRootEndpoint(t *testing.T) {
	s := setupSuite(t)

	w := s.do(t, http.MethodGet, "/", nil, false, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Berrystore API")
}

func TestUploadSinglePNG(t *testing.T) {
	s := setupSuite(t)

	body, ct := multipartBody(t, []string{"berry.png"}, tinyPNG(t, 10))
	w := s.do(t, http.MethodPost, "/api/products/upload", body, true, ct)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Files []domain.ImageDescriptor `json:"files"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Files, 1)

	d := resp.Files[0]
	assert.True(t, strings.HasPrefix(d.URL, "/uploads/products/"), d.URL)
	assert.True(t, strings.HasSuffix(d.URL, ".webp"), d.URL)
	assert.Equal(t, "", d.Alt)
	assert.False(t, d.IsPrimary)

	// The transcoded asset is fetchable through the static route.
	fetched := s.do(t, http.MethodGet, d.URL, nil, false, "")
	assert.Equal(t, http.StatusOK, fetched.Code)
	assert.NotZero(t, fetched.Body.Len())

	// And the original temp file is gone from the upload root.
	entries, err := os.ReadDir(s.uploadRoot)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, strings.HasSuffix(entries[0].Name(), ".webp"))
}

func TestUploadZeroFiles(t *testing.T) {
	s := setupSuite(t)

	body, ct := multipartBody(t, nil, nil)
	w := s.do(t, http.MethodPost, "/api/products/upload", body, true, ct)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "error")
}

func TestUploadTooManyFiles(t *testing.T) {
	s := setupSuite(t)

	names := make([]string, 7)
	for i := range names {
		names[i] = fmt.Sprintf("img%d.png", i)
	}
	body, ct := multipartBody(t, names, tinyPNG(t, 4))
	w := s.do(t, http.MethodPost, "/api/products/upload", body, true, ct)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUploadDisallowedExtension(t *testing.T) {
	s := setupSuite(t)

	body, ct := multipartBody(t, []string{"malware.exe"}, []byte("x"))
	w := s.do(t, http.MethodPost, "/api/products/upload", body, true, ct)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUploadCorruptImageFailsBatch(t *testing.T) {
	s := setupSuite(t)

	body, ct := multipartBody(t, []string{"broken.png"}, []byte("definitely not a png"))
	w := s.do(t, http.MethodPost, "/api/products/upload", body, true, ct)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "image processing failed")
}

func TestProductLifecycle(t *testing.T) {
	s := setupSuite(t)

	payload, _ := json.Marshal(map[string]any{
		"product_id":      "T-001",
		"name":            "Test Gadget",
		"category":        "Gadgets",
		"price":           99.99,
		"inventory_count": 3,
	})

	created := s.do(t, http.MethodPost, "/api/products", payload, true, "application/json")
	require.Equal(t, http.StatusCreated, created.Code, created.Body.String())

	var p domain.Product
	require.NoError(t, json.Unmarshal(created.Body.Bytes(), &p))
	require.NotEmpty(t, p.ID)
	assert.Equal(t, "T-001", p.ProductID)

	// Fetch by the returned id.
	got := s.do(t, http.MethodGet, "/api/products/"+p.ID, nil, false, "")
	require.Equal(t, http.StatusOK, got.Code)
	var fetched domain.Product
	require.NoError(t, json.Unmarshal(got.Body.Bytes(), &fetched))
	assert.Equal(t, p.Name, fetched.Name)
	assert.Equal(t, p.Price, fetched.Price)

	// A random 24-hex id that is not in the store.
	missing := s.do(t, http.MethodGet, "/api/products/507f1f77bcf86cd799439011", nil, false, "")
	assert.Equal(t, http.StatusNotFound, missing.Code)

	// Duplicate external id conflicts.
	dup := s.do(t, http.MethodPost, "/api/products", payload, true, "application/json")
	assert.Equal(t, http.StatusConflict, dup.Code)

	// Partial update touches only the supplied field.
	update, _ := json.Marshal(map[string]any{"price": 49.99})
	updated := s.do(t, http.MethodPut, "/api/products/"+p.ID, update, true, "application/json")
	require.Equal(t, http.StatusOK, updated.Code)
	var afterUpdate domain.Product
	require.NoError(t, json.Unmarshal(updated.Body.Bytes(), &afterUpdate))
	assert.Equal(t, 49.99, afterUpdate.Price)
	assert.Equal(t, "Test Gadget", afterUpdate.Name)

	// Delete, then it is gone.
	deleted := s.do(t, http.MethodDelete, "/api/products/"+p.ID, nil, true, "")
	assert.Equal(t, http.StatusOK, deleted.Code)
	gone := s.do(t, http.MethodGet, "/api/products/"+p.ID, nil, false, "")
	assert.Equal(t, http.StatusNotFound, gone.Code)
}

func TestProductUpdateRejectsNegativeValues(t *testing.T) {
	s := setupSuite(t)

	payload, _ := json.Marshal(map[string]any{
		"product_id":      "T-002",
		"name":            "Priced Gadget",
		"price":           10.0,
		"inventory_count": 5,
	})
	created := s.do(t, http.MethodPost, "/api/products", payload, true, "application/json")
	require.Equal(t, http.StatusCreated, created.Code, created.Body.String())
	var p domain.Product
	require.NoError(t, json.Unmarshal(created.Body.Bytes(), &p))

	update, _ := json.Marshal(map[string]any{"price": -5, "inventory_count": -3})
	rejected := s.do(t, http.MethodPut, "/api/products/"+p.ID, update, true, "application/json")
	assert.Equal(t, http.StatusBadRequest, rejected.Code, rejected.Body.String())

	// Stored record keeps the original values.
	got := s.do(t, http.MethodGet, "/api/products/"+p.ID, nil, false, "")
	require.Equal(t, http.StatusOK, got.Code)
	var after domain.Product
	require.NoError(t, json.Unmarshal(got.Body.Bytes(), &after))
	assert.Equal(t, 10.0, after.Price)
	assert.Equal(t, 5, after.InventoryCount)
}

func TestProtectedEndpointsRequireAuth(t *testing.T) {
	s := setupSuite(t)

	cases := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/products"},
		{http.MethodPut, "/api/products/some-id"},
		{http.MethodDelete, "/api/products/some-id"},
		{http.MethodPost, "/api/products/upload"},
		{http.MethodGet, "/api/activity"},
	}
	for _, tc := range cases {
		w := s.do(t, tc.method, tc.path, []byte("{}"), false, "application/json")
		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", tc.method, tc.path)
		assert.NotContains(t, w.Body.String(), "token", "401 body must not leak token details")
	}
}

func TestPublicReadsNeedNoAuth(t *testing.T) {
	s := setupSuite(t)

	list := s.do(t, http.MethodGet, "/api/products", nil, false, "")
	assert.Equal(t, http.StatusOK, list.Code)
}

func TestLoginFlow(t *testing.T) {
	s := setupSuite(t)

	body, _ := json.Marshal(map[string]string{
		"email":    "seller@example.com",
		"password": "secret123",
	})
	w := s.do(t, http.MethodPost, "/users/login", body, false, "application/json")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "token")

	wrong, _ := json.Marshal(map[string]string{
		"email":    "seller@example.com",
		"password": "wrong-password",
	})
	denied := s.do(t, http.MethodPost, "/users/login", wrong, false, "application/json")
	assert.Equal(t, http.StatusUnauthorized, denied.Code)
}

func TestActivityLogging(t *testing.T) {
	s := setupSuite(t)

	event, _ := json.Marshal(map[string]any{
		"eventType": "PRODUCT_VIEW",
		"details":   map[string]any{"product_id": "T-001"},
	})
	logged := s.do(t, http.MethodPost, "/api/activity", event, false, "application/json")
	assert.Equal(t, http.StatusCreated, logged.Code)

	listed := s.do(t, http.MethodGet, "/api/activity?event_type=PRODUCT_VIEW", nil, true, "")
	require.Equal(t, http.StatusOK, listed.Code)
	assert.Contains(t, listed.Body.String(), "PRODUCT_VIEW")
}
