package jwt

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWT_GenerateAndGetApprover(t *testing.T) {
	j := New("test-secret", time.Minute)
	ctx := context.Background()

	token, err := j.Generate(ctx, " Finance Lead ")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	approver, err := j.GetApprover(ctx, token)
	assert.NoError(t, err)
	assert.Equal(t, "Finance Lead", approver)
}

func TestJWT_Generate_EmptyApprover(t *testing.T) {
	j := New("test-secret", time.Minute)

	token, err := j.Generate(context.Background(), "  ")
	assert.Error(t, err)
	assert.Empty(t, token)
}

func TestJWT_ExpiredToken(t *testing.T) {
	j := New("test-secret", -time.Minute) // already expired
	ctx := context.Background()

	token, err := j.Generate(ctx, "Admin")
	require.NoError(t, err)

	approver, err := j.GetApprover(ctx, token)
	assert.Error(t, err)
	assert.Empty(t, approver)
}

func TestJWT_InvalidToken(t *testing.T) {
	j := New("secret", time.Minute)

	approver, err := j.GetApprover(context.Background(), "invalid.token.string")
	assert.Error(t, err)
	assert.Empty(t, approver)
}

func TestJWT_WrongSecret(t *testing.T) {
	j1 := New("secret1", time.Minute)
	j2 := New("secret2", time.Minute)
	ctx := context.Background()

	token, err := j1.Generate(ctx, "Admin")
	require.NoError(t, err)

	_, err = j2.GetApprover(ctx, token)
	assert.Error(t, err)
}

func TestJWT_MissingApproverClaim(t *testing.T) {
	j := New("secret", time.Minute)

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "someone",
		"exp":     time.Now().Add(time.Minute).Unix(),
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = j.GetApprover(context.Background(), token)
	assert.EqualError(t, err, "approver not found in token")
}

func TestJWT_GetTokenFromRequest(t *testing.T) {
	j := New("secret", time.Minute)
	ctx := context.Background()

	tests := []struct {
		name          string
		header        string
		expectedToken string
		expectError   bool
	}{
		{"ValidBearer", "Bearer mytoken123", "mytoken123", false},
		{"LowercaseBearer", "bearer mytoken123", "mytoken123", false},
		{"NoHeader", "", "", true},
		{"InvalidFormat", "Token mytoken123", "", true},
		{"TooManyParts", "Bearer a b c", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, _ := http.NewRequestWithContext(ctx, http.MethodPatch, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			token, err := j.GetTokenFromRequest(ctx, req)
			if tt.expectError {
				assert.Error(t, err)
				assert.Empty(t, token)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedToken, token)
			}
		})
	}
}
