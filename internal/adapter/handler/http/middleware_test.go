package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/motohub/dealership_service/internal/core/domain"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthTestRouter(t *testing.T) (*gin.Engine, *JWTTokenService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tokenService := NewJWTTokenService("test-secret", "1h", testLogger{})

	router := gin.New()
	router.GET("/protected", AuthMiddleware(tokenService), func(c *gin.Context) {
		payload, ok := getAuthPayload(c, authorizationPayloadKey)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"username": payload.Username})
	})
	return router, tokenService
}

func TestAuthMiddleware(t *testing.T) {
	t.Run("Should reject a missing header", func(t *testing.T) {
		router, _ := newAuthTestRouter(t)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("Should reject a malformed header", func(t *testing.T) {
		router, _ := newAuthTestRouter(t)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Token abc")
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("Should reject a garbage token", func(t *testing.T) {
		router, _ := newAuthTestRouter(t)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer not-a-jwt")
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("Should pass a valid bearer token through", func(t *testing.T) {
		router, tokenService := newAuthTestRouter(t)

		token, err := tokenService.CreateToken(&domain.User{
			ID:       uuid.New(),
			Username: "vendedor1",
			Role:     domain.Vendedor,
			Branch:   "Centro",
		})
		require.NoError(t, err)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "vendedor1")
	})
}

func TestBranchScope(t *testing.T) {
	t.Run("Should pin sellers to their own branch", func(t *testing.T) {
		payload := &domain.TokenPayload{Role: domain.Vendedor, Branch: "Centro"}
		assert.Equal(t, "Centro", branchScope(payload, "Norte"))
		assert.Equal(t, "Centro", branchScope(payload, ""))
	})

	t.Run("Should let head office pick any branch", func(t *testing.T) {
		payload := &domain.TokenPayload{Role: domain.Diretoria, Branch: "Matriz"}
		assert.Equal(t, "Norte", branchScope(payload, "Norte"))
		assert.Equal(t, "", branchScope(payload, ""))
	})
}

func TestSaleErrorStatus(t *testing.T) {
	t.Run("Should map data-level rejections to 400", func(t *testing.T) {
		for _, err := range []error{
			domain.ErrInvalidCustomer,
			domain.ErrEmptyCart,
			domain.ErrRevisionFieldsMissing,
			domain.ErrPartNotFound,
			domain.ErrInsufficientStock,
			domain.ErrMotorcycleUnavailable,
		} {
			assert.Equal(t, http.StatusBadRequest, saleErrorStatus(err), err.Error())
		}
	})

	t.Run("Should map everything else to 500", func(t *testing.T) {
		assert.Equal(t, http.StatusInternalServerError, saleErrorStatus(domain.ErrFinalizeSale))
		assert.Equal(t, http.StatusInternalServerError, saleErrorStatus(assert.AnError))
	})
}
