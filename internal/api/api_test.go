package api_test

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/receptorium/backend/internal/api"
	"github.com/receptorium/backend/internal/models"
	"github.com/receptorium/backend/internal/service"
	"github.com/receptorium/backend/internal/testhelpers"
)

const testPageSize = 6

type testEnv struct {
	router  *gin.Engine
	db      *gorm.DB
	authSvc *service.AuthService
}

func setupAPITest(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testhelpers.SetupTestDB(t)

	authSvc := service.NewAuthService(db, "test-secret")
	userSvc := service.NewUserService(db)
	listSvc := service.NewListService(db)
	recipeSvc := service.NewRecipeService(db)
	shoppingSvc := service.NewShoppingService(db)
	ingredientSvc := service.NewIngredientService(db)
	tagSvc := service.NewTagService(db)
	imageSvc := service.NewImageService(&service.LocalImageStore{
		Dir:     t.TempDir(),
		BaseURL: "/media",
	})

	router := gin.New()
	group := router.Group("/api")
	api.NewAuthHandler(authSvc).RegisterRoutes(group)
	api.NewUserHandler(userSvc, listSvc, authSvc, authSvc, testPageSize).RegisterRoutes(group)
	api.NewRecipeHandler(recipeSvc, listSvc, shoppingSvc, userSvc, imageSvc, authSvc, testPageSize).RegisterRoutes(group)
	api.NewIngredientHandler(ingredientSvc).RegisterRoutes(group)
	api.NewTagHandler(tagSvc).RegisterRoutes(group)

	return &testEnv{router: router, db: db, authSvc: authSvc}
}

// userWithToken creates a user and logs them in.
func (e *testEnv) userWithToken(t *testing.T) (*models.User, string) {
	t.Helper()
	user := testhelpers.CreateTestUser(t, e.db)
	token, err := e.authSvc.Login(context.Background(), user.Email, testhelpers.TestPassword)
	require.NoError(t, err)
	return user, token
}

func (e *testEnv) request(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(testhelpers.JSONMarshal(t, body))
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(w.Body).Decode(out))
}

// pngDataURI renders a tiny PNG as a base64 data URI for image upload payloads.
func pngDataURI(t *testing.T) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

type paginatedEnvelope struct {
	Count    int64           `json:"count"`
	Next     *string         `json:"next"`
	Previous *string         `json:"previous"`
	Results  json.RawMessage `json:"results"`
}

func requireStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	if w.Code != want {
		t.Fatalf("expected status %d got %d: %s", want, w.Code, w.Body.String())
	}
}
