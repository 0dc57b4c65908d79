//go:build unit
// +build unit

package controller

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/falcomnl/api-controller/internal/pkg/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type gadget struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `json:"name"`
}

func setupGadgets(t *testing.T, auth Authorizer, operations ...string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	res, err := New[gadget](nil, Options{
		Name:              "gadgets",
		AllowedOperations: operations,
		Authorizer:        auth,
	})
	require.NoError(t, err)

	r := gin.New()
	Register(r, "/gadgets", res)
	return r
}

func TestResource_DisallowedOperationSkipsAuthorization(t *testing.T) {
	auth := new(MockAuthorizer)
	r := setupGadgets(t, auth, "index")

	w := testutil.PerformRequest(t, r, http.MethodDelete, "/gadgets/1", nil)

	assert.Equal(t, http.StatusNotImplemented, w.Code)
	auth.AssertNotCalled(t, "Authorize", mock.Anything, mock.Anything, mock.Anything)
}

func TestResource_UnauthorizedIndexStopsBeforeQuery(t *testing.T) {
	auth := new(MockAuthorizer)
	auth.On("Authorize", mock.Anything, AbilityViewAny, nil).
		Return(fmt.Errorf("%w: no token", ErrUnauthorized)).Once()
	r := setupGadgets(t, auth, "*")

	w := testutil.PerformRequest(t, r, http.MethodGet, "/gadgets?filter[name]=x", nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	env := testutil.DecodeEnvelope(t, w)
	assert.False(t, env.Success)
	auth.AssertExpectations(t)
}

func TestResource_StoreRejectsNonObjectBody(t *testing.T) {
	auth := new(MockAuthorizer)
	auth.On("Authorize", mock.Anything, AbilityCreate, nil).Return(nil).Once()
	r := setupGadgets(t, auth, "create")

	w := testutil.PerformRequest(t, r, http.MethodPost, "/gadgets", []int{1, 2})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	env := testutil.DecodeEnvelope(t, w)
	assert.Equal(t, []string{"The request body must be a JSON object."}, env.Errors["body"])
	auth.AssertExpectations(t)
}
