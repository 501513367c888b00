package http

import (
	"testing"

	"github.com/motohub/dealership_service/internal/core/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testLogger struct{}

func (testLogger) Debug(string, map[string]interface{}) {}
func (testLogger) Info(string, map[string]interface{})  {}
func (testLogger) Warn(string, map[string]interface{})  {}
func (testLogger) Error(string, map[string]interface{}) {}

func TestJWTTokenService(t *testing.T) {
	user := &domain.User{
		ID:       uuid.New(),
		Username: "vendedor1",
		Role:     domain.Vendedor,
		Branch:   "Centro",
	}

	t.Run("Should round-trip the payload", func(t *testing.T) {
		svc := NewJWTTokenService("test-secret", "1h", testLogger{})

		token, err := svc.CreateToken(user)
		require.NoError(t, err)

		payload, err := svc.VerifyToken(token)
		require.NoError(t, err)

		assert.Equal(t, user.ID, payload.UserID)
		assert.Equal(t, "vendedor1", payload.Username)
		assert.Equal(t, domain.Vendedor, payload.Role)
		assert.Equal(t, "Centro", payload.Branch)
		assert.False(t, payload.SeesAllBranches())
	})

	t.Run("Should reject a token signed with another secret", func(t *testing.T) {
		issuer := NewJWTTokenService("secret-a", "1h", testLogger{})
		verifier := NewJWTTokenService("secret-b", "1h", testLogger{})

		token, err := issuer.CreateToken(user)
		require.NoError(t, err)

		_, err = verifier.VerifyToken(token)
		assert.Error(t, err)
	})

	t.Run("Should reject an expired token", func(t *testing.T) {
		svc := NewJWTTokenService("test-secret", "-1h", testLogger{})

		token, err := svc.CreateToken(user)
		require.NoError(t, err)

		_, err = svc.VerifyToken(token)
		assert.Error(t, err)
	})

	t.Run("Should reject an unknown role", func(t *testing.T) {
		svc := NewJWTTokenService("test-secret", "1h", testLogger{})

		bogus := &domain.User{ID: uuid.New(), Username: "x", Role: "hacker", Branch: "Centro"}
		token, err := svc.CreateToken(bogus)
		require.NoError(t, err)

		_, err = svc.VerifyToken(token)
		assert.Error(t, err)
	})

	t.Run("Should grant cross-branch visibility to head office", func(t *testing.T) {
		svc := NewJWTTokenService("test-secret", "1h", testLogger{})

		boss := &domain.User{ID: uuid.New(), Username: "diretor", Role: domain.Diretoria, Branch: "Matriz"}
		token, err := svc.CreateToken(boss)
		require.NoError(t, err)

		payload, err := svc.VerifyToken(token)
		require.NoError(t, err)
		assert.True(t, payload.SeesAllBranches())
	})
}
