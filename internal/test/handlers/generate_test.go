package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"selfio-backend/internal/handlers"
	"selfio-backend/internal/middleware"
	"selfio-backend/internal/models"
	"selfio-backend/internal/services"
)

type fakeRunner struct {
	photo  *models.GeneratedPhoto
	err    error
	userID string
	params services.GenerateParams
	calls  int
}

func (f *fakeRunner) Generate(userID string, params services.GenerateParams) (*models.GeneratedPhoto, error) {
	f.calls++
	f.userID = userID
	f.params = params
	if f.err != nil {
		return nil, f.err
	}
	return f.photo, nil
}

func newGenerateRouter(runner *fakeRunner) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(middleware.UserIDKey, "user-123")
	})
	router.POST("/generate", handlers.NewGenerateHandler(runner).Generate)
	return router
}

func postGenerate(router *gin.Engine, body string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest("POST", "/generate", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func generateBody(faceID, styleID uuid.UUID) string {
	return fmt.Sprintf(`{"faceProfileId":%q,"styleId":%q,"energyLevel":60,"realismLevel":"enhanced"}`, faceID, styleID)
}

func TestGenerate_Success(t *testing.T) {
	faceID := uuid.New()
	styleID := uuid.New()
	runner := &fakeRunner{
		photo: &models.GeneratedPhoto{
			ID:            uuid.New(),
			UserID:        "user-123",
			ImageURL:      "https://cdn.test/generated/user-123/1-x.jpg",
			Title:         "Boardroom Look",
			Category:      models.CategoryWork,
			IsWatermarked: true,
		},
	}

	w := postGenerate(newGenerateRouter(runner), generateBody(faceID, styleID))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, runner.calls)
	assert.Equal(t, "user-123", runner.userID)
	assert.Equal(t, faceID, runner.params.FaceProfileID)
	assert.Equal(t, styleID, runner.params.StyleID)
	assert.Equal(t, 60, runner.params.EnergyLevel)
	assert.Equal(t, "enhanced", runner.params.RealismLevel)

	var resp models.GenerateResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "Boardroom Look", resp.Photo.Title)
	assert.True(t, resp.Photo.IsWatermarked)
}

func TestGenerate_QuotaExceeded(t *testing.T) {
	runner := &fakeRunner{err: services.ErrQuotaExceeded}

	w := postGenerate(newGenerateRouter(runner), generateBody(uuid.New(), uuid.New()))

	assert.Equal(t, http.StatusForbidden, w.Code)

	var resp models.ErrorResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Upgrade)
	assert.Equal(t, "Generation limit reached", resp.Error)
}

func TestGenerate_PremiumRequired(t *testing.T) {
	runner := &fakeRunner{err: services.ErrPremiumRequired}

	w := postGenerate(newGenerateRouter(runner), generateBody(uuid.New(), uuid.New()))

	assert.Equal(t, http.StatusForbidden, w.Code)

	var resp models.ErrorResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Upgrade)
}

func TestGenerate_NotFound(t *testing.T) {
	runner := &fakeRunner{err: fmt.Errorf("%w: style", services.ErrNotFound)}

	w := postGenerate(newGenerateRouter(runner), generateBody(uuid.New(), uuid.New()))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGenerate_PipelineFailure(t *testing.T) {
	runner := &fakeRunner{err: services.ErrGenerationFailed}

	w := postGenerate(newGenerateRouter(runner), generateBody(uuid.New(), uuid.New()))

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var resp models.ErrorResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Upgrade, "infrastructure failures do not pitch the upgrade")
}

func TestGenerate_MissingFields(t *testing.T) {
	runner := &fakeRunner{}

	w := postGenerate(newGenerateRouter(runner), `{"energyLevel":50}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, runner.calls)
}

func TestGenerate_InvalidStyleID(t *testing.T) {
	runner := &fakeRunner{}

	body := fmt.Sprintf(`{"faceProfileId":%q,"styleId":"not-a-uuid"}`, uuid.New())
	w := postGenerate(newGenerateRouter(runner), body)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, runner.calls)
}

func TestGenerate_Unauthenticated(t *testing.T) {
	gin.SetMode(gin.TestMode)
	runner := &fakeRunner{}
	router := gin.New()
	router.POST("/generate", handlers.NewGenerateHandler(runner).Generate)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/generate", bytes.NewBufferString(generateBody(uuid.New(), uuid.New())))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Zero(t, runner.calls)
}
