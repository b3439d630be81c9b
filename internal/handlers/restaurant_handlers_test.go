package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"qr_dine_backend/internal/handlers"
	"qr_dine_backend/internal/models"
	"qr_dine_backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubRestaurantService captures Register calls; the embedded interface
// panics on anything else, which no test here should reach.
type stubRestaurantService struct {
	services.RestaurantService
	req services.RegisterRestaurantRequest
	err error
}

func (s *stubRestaurantService) Register(req services.RegisterRestaurantRequest) (*services.RestaurantAuthResponse, error) {
	s.req = req
	if s.err != nil {
		return nil, s.err
	}
	features := req.Features
	if features == nil {
		features = models.DefaultFeatureFlags()
	}
	return &services.RestaurantAuthResponse{
		Token: "owner-token",
		Restaurant: models.RestaurantResponse{
			ID:       "r-1",
			Name:     req.Name,
			Email:    req.Email,
			Features: features,
		},
	}, nil
}

func setupAdminCreateRouter(stub *stubRestaurantService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	handler := handlers.NewRestaurantHandler(stub, nil)
	engine.POST("/api/v1/admin/restaurants", handler.AdminCreate)
	return engine
}

func TestAdminCreatePassesFeatureFlagsThrough(t *testing.T) {
	stub := &stubRestaurantService{}
	engine := setupAdminCreateRouter(stub)

	recorder := postJSON(engine, "/api/v1/admin/restaurants", gin.H{
		"name":     "Spice Route",
		"email":    "owner@spiceroute.example",
		"password": "s3cret-pass",
		"features": gin.H{"qr_ordering": true, "third_party_orders": true},
	})

	require.Equal(t, http.StatusCreated, recorder.Code)
	assert.Equal(t, "Spice Route", stub.req.Name)
	assert.Equal(t, models.FeatureFlags{"qr_ordering": true, "third_party_orders": true}, stub.req.Features)

	var body models.RestaurantResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.True(t, body.Features["third_party_orders"])
}

func TestAdminCreateOmitsOwnerToken(t *testing.T) {
	stub := &stubRestaurantService{}
	engine := setupAdminCreateRouter(stub)

	recorder := postJSON(engine, "/api/v1/admin/restaurants", gin.H{
		"name":     "Spice Route",
		"email":    "owner@spiceroute.example",
		"password": "s3cret-pass",
	})

	require.Equal(t, http.StatusCreated, recorder.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.NotContains(t, body, "token")
}

func TestAdminCreateMapsDuplicateEmailTo409(t *testing.T) {
	stub := &stubRestaurantService{err: services.ErrEmailExists}
	engine := setupAdminCreateRouter(stub)

	recorder := postJSON(engine, "/api/v1/admin/restaurants", gin.H{
		"name":     "Spice Route",
		"email":    "owner@spiceroute.example",
		"password": "s3cret-pass",
	})

	assert.Equal(t, http.StatusConflict, recorder.Code)
}
