//go:build unit
// +build unit

package controller

import (
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
)

// MockAuthorizer is a mock implementation of Authorizer.
type MockAuthorizer struct {
	mock.Mock
}

// Authorize records the call and returns the configured error.
func (m *MockAuthorizer) Authorize(c *gin.Context, ability Ability, record interface{}) error {
	args := m.Called(c, ability, record)
	return args.Error(0)
}
