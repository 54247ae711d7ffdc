package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(AuthMiddleware)
	r.GET("/", func(ctx *gin.Context) {
		ctx.Status(http.StatusOK)
	})
	return r
}

func doAuthRequest(r *gin.Engine, header string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestAuthRejectsMissingHeader(t *testing.T) {
	w := doAuthRequest(newAuthRouter(), "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRejectsBareBearer(t *testing.T) {
	w := doAuthRequest(newAuthRouter(), "Bearer")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRejectsEmptyToken(t *testing.T) {
	w := doAuthRequest(newAuthRouter(), "Bearer ")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRejectsMalformedToken(t *testing.T) {
	w := doAuthRequest(newAuthRouter(), "Bearer not-a-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
