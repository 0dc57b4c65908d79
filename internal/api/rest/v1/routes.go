package v1

import (
	"fmt"

	"github.com/falcomnl/api-controller/internal/domain/blog"
	"github.com/falcomnl/api-controller/internal/pkg/logger"
	"github.com/falcomnl/api-controller/pkg/controller"
	"github.com/falcomnl/api-controller/pkg/response"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Dependencies are the collaborators of the v1 routes.
type Dependencies struct {
	DB     *gorm.DB
	Logger logger.Logger

	// Authorizer guards writes; nil leaves the API open.
	Authorizer controller.Authorizer

	// LogRequests logs every API request.
	LogRequests bool
}

// SetupRoutes sets up all the API routes for version 1 under basePath and
// returns them. Nested resources share the parameter name of their parent
// route.
func SetupRoutes(r *gin.Engine, basePath string, deps Dependencies) ([]controller.Route, error) {
	v1 := r.Group(basePath)
	if deps.LogRequests {
		v1.Use(controller.RequestLogger(deps.Logger))
	}

	var authorizer controller.Authorizer
	if deps.Authorizer != nil {
		authorizer = publicReads(deps.Authorizer)
	}

	resources, err := newResources(deps.DB, deps.Logger, authorizer)
	if err != nil {
		return nil, fmt.Errorf("failed to create resources: %w", err)
	}

	var routes []controller.Route
	for _, res := range resources {
		mounted := controller.Register(v1, res.path, res.handlers, controller.WithParam(res.param))
		for _, route := range mounted {
			route.Path = basePath + route.Path
			routes = append(routes, route)
		}
	}

	r.NoRoute(response.RouteNotFound)
	return routes, nil
}

// publicReads lets anyone list and show records and delegates every other
// ability to authorizer.
func publicReads(authorizer controller.Authorizer) controller.Authorizer {
	return controller.AuthorizerFunc(func(c *gin.Context, ability controller.Ability, record interface{}) error {
		if ability == controller.AbilityViewAny || ability == controller.AbilityView {
			return nil
		}
		return authorizer.Authorize(c, ability, record)
	})
}

// Models lists the models served by version 1.
func Models() []interface{} {
	return blog.Models()
}
