package controller

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// DefaultParam is the route parameter naming the record.
const DefaultParam = "id"

// Handlers are the CRUD endpoints of a resource.
type Handlers interface {
	Index(c *gin.Context)
	Show(c *gin.Context)
	Store(c *gin.Context)
	Update(c *gin.Context)
	Destroy(c *gin.Context)
	OrderUp(c *gin.Context)
	OrderDown(c *gin.Context)
}

// Route describes one registered endpoint.
type Route struct {
	Method    string
	Path      string
	Operation Operation
}

// RouteOption customizes Register.
type RouteOption func(*routeConfig)

type routeConfig struct {
	param string
}

// WithParam names the record parameter, e.g. "post" for /posts/:post.
func WithParam(name string) RouteOption {
	return func(c *routeConfig) {
		c.param = name
	}
}

// Routes lists the endpoints Register mounts for path.
func Routes(path string, opts ...RouteOption) []Route {
	cfg := routeConfig{param: DefaultParam}
	for _, opt := range opts {
		opt(&cfg)
	}

	base := "/" + strings.Trim(path, "/")
	member := strings.TrimSuffix(base, "/") + "/:" + cfg.param

	return []Route{
		{http.MethodGet, base, OpIndex},
		{http.MethodPost, base, OpCreate},
		{http.MethodGet, member, OpShow},
		{http.MethodPut, member, OpUpdate},
		{http.MethodPatch, member, OpUpdate},
		{http.MethodDelete, member, OpDelete},
		{http.MethodPatch, member + "/up", OpUp},
		{http.MethodPatch, member + "/down", OpDown},
	}
}

// Register mounts the handlers of a resource under path. Operations left
// out of the resource's allow-list still get routes and answer 501.
func Register(router gin.IRoutes, path string, h Handlers, opts ...RouteOption) []Route {
	routes := Routes(path, opts...)
	for _, route := range routes {
		router.Handle(route.Method, route.Path, handlerFor(h, route.Operation))
	}
	return routes
}

func handlerFor(h Handlers, op Operation) gin.HandlerFunc {
	switch op {
	case OpIndex:
		return h.Index
	case OpShow:
		return h.Show
	case OpCreate:
		return h.Store
	case OpUpdate:
		return h.Update
	case OpDelete:
		return h.Destroy
	case OpUp:
		return h.OrderUp
	default:
		return h.OrderDown
	}
}
