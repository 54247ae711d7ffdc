package main

import (
	"acs/src/types"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"github.com/tidwall/gjson"
)

type RouterTestSuite struct {
	suite.Suite
	Router *gin.Engine
}

func (s *RouterTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	s.Router = setupRouter()
	s.Router = maintenanceModeMiddleware(s.Router)
	group := apiv1Group(s.Router)
	group.Use(func(ctx *gin.Context) {
		if ctx.Request.Header.Get("Authorization") == "" {
			ctx.AbortWithStatus(http.StatusUnauthorized)
			return
		}
	})
	group.GET("/whoami", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"data": "anonymous"})
	})
}

func (s *RouterTestSuite) TestHealthRoute() {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/", nil)
	s.Router.ServeHTTP(w, req)

	s.Equal(http.StatusOK, w.Code)
	s.Equal("ok", gjson.Get(w.Body.String(), "status").String())
}

func (s *RouterTestSuite) TestMaintenanceMode() {
	os.Setenv("MAINTENANCE_MODE", "true")
	defer os.Unsetenv("MAINTENANCE_MODE")

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/whoami", nil)
	req.Header.Set("Authorization", "Bearer token")
	s.Router.ServeHTTP(w, req)

	s.Equal(http.StatusServiceUnavailable, w.Code)
	s.Contains(gjson.Get(w.Body.String(), "error").String(), "maintenance")
}

func (s *RouterTestSuite) TestUnauthorizedWithoutBearer() {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/whoami", nil)
	s.Router.ServeHTTP(w, req)

	s.Equal(http.StatusUnauthorized, w.Code)
}

func TestRouterSuite(t *testing.T) {
	suite.Run(t, new(RouterTestSuite))
}

func newTestContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)
	ctx.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return ctx, w
}

func TestRespondErrorStatuses(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{&types.ValidationError{Field: "price", Reason: "must be greater than zero"}, http.StatusBadRequest},
		{&types.NotFoundError{Entity: "quote", Code: "QT-ACME-AAAAA"}, http.StatusNotFound},
		{&types.InvalidTransitionError{Entity: "request", Code: "RQ-SMIT-AAAAA", From: "expired", To: "accepted"}, http.StatusConflict},
		{&types.GenerationError{Kind: "BK", Attempts: 10}, http.StatusServiceUnavailable},
		{&types.DependencyError{Dependency: "database", Err: errors.New("down")}, http.StatusServiceUnavailable},
		{errors.New("boom"), http.StatusUnprocessableEntity},
	}
	for _, c := range cases {
		ctx, w := newTestContext()
		respondError(ctx, c.err)
		assert.Equal(t, c.code, w.Code, "for %T", c.err)
	}
}

func TestGenerateJWTRoundTrip(t *testing.T) {
	token, err := generateJWT("amelia@example.com", "PA-EARH-AAAAA", "passenger")
	assert.NoError(t, err)

	claims := &types.Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return jwtKey, nil
	})
	assert.NoError(t, err)
	assert.True(t, parsed.Valid)
	assert.Equal(t, "PA-EARH-AAAAA", claims.Subject)
	assert.Equal(t, "amelia@example.com", claims.Username)
	assert.Equal(t, "passenger", claims.Role)
}

func TestFutureDateValidator(t *testing.T) {
	gin.SetMode(gin.TestMode)
	future := time.Now().Add(48 * time.Hour).Format("2006-01-02 15:04:05 -07:00")
	past := time.Now().Add(-48 * time.Hour).Format("2006-01-02 15:04:05 -07:00")

	type form struct {
		Date string `json:"date" validate:"required,futuredate"`
	}
	v := validator.New()
	assert.NoError(t, v.RegisterValidation("futuredate", futureDateValidatorFunc))
	assert.NoError(t, v.Struct(form{Date: future}))
	assert.Error(t, v.Struct(form{Date: past}))
	assert.Error(t, v.Struct(form{Date: "not-a-date"}))
}
