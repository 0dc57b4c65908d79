//go:build unit
// +build unit

package controller

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func contextWithToken(token string) *gin.Context {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/api/posts", nil)
	if token != "" {
		c.Request.Header.Set("Authorization", "Bearer "+token)
	}
	return c
}

func TestBearerAuthorizer(t *testing.T) {
	gin.SetMode(gin.TestMode)
	auth := NewBearerAuthorizer(testSecret, AbilityPolicy)

	reader, err := auth.Issue("reader", []string{"viewAny", "view"}, time.Hour)
	require.NoError(t, err)
	admin, err := auth.Issue("admin", []string{"*"}, time.Hour)
	require.NoError(t, err)
	expired, err := auth.Issue("admin", []string{"*"}, -time.Minute)
	require.NoError(t, err)
	forged, err := NewBearerAuthorizer("another-secret-another-secret-xx", nil).Issue("admin", []string{"*"}, time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		ability Ability
		allowed bool
	}{
		{"reader views", reader, AbilityViewAny, true},
		{"reader cannot delete", reader, AbilityDelete, false},
		{"admin reorders", admin, AbilityReorder, true},
		{"expired token", expired, AbilityView, false},
		{"wrong signature", forged, AbilityView, false},
		{"missing token", "", AbilityView, false},
		{"garbage", "not-a-jwt", AbilityView, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := contextWithToken(tt.token)
			err := auth.Authorize(c, tt.ability, nil)

			if tt.allowed {
				require.NoError(t, err)
				claims, ok := c.Get(ClaimsKey)
				require.True(t, ok)
				assert.NotEmpty(t, claims.(*Claims).Subject)
				return
			}
			assert.ErrorIs(t, err, ErrUnauthorized)
		})
	}
}

func TestBearerAuthorizer_WithoutPolicy(t *testing.T) {
	auth := NewBearerAuthorizer(testSecret, nil)

	token, err := auth.Issue("anyone", nil, time.Hour)
	require.NoError(t, err)

	assert.NoError(t, auth.Authorize(contextWithToken(token), AbilityDelete, nil))
}

func TestAuthorizerFunc(t *testing.T) {
	var got Ability
	var gotRecord interface{}
	f := AuthorizerFunc(func(c *gin.Context, ability Ability, record interface{}) error {
		got, gotRecord = ability, record
		return nil
	})

	assert.NoError(t, f.Authorize(contextWithToken(""), AbilityUpdate, 42))
	assert.Equal(t, AbilityUpdate, got)
	assert.Equal(t, 42, gotRecord)
}
