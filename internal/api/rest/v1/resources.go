package v1

import (
	"strings"

	"github.com/falcomnl/api-controller/internal/domain/blog"
	"github.com/falcomnl/api-controller/internal/pkg/logger"
	"github.com/falcomnl/api-controller/pkg/controller"
	"github.com/falcomnl/api-controller/pkg/query"

	"gorm.io/gorm"
)

type resource struct {
	path     string
	param    string
	handlers controller.Handlers
}

var (
	authorFields  = []string{"id", "name", "email", "bio", "created_at", "updated_at"}
	postFields    = []string{"id", "author_id", "title", "slug", "body", "status", "order_column", "published_at", "created_at", "updated_at"}
	commentFields = []string{"id", "post_id", "author_name", "body", "approved", "created_at", "updated_at"}
)

func newResources(db *gorm.DB, log logger.Logger, authorizer controller.Authorizer) ([]resource, error) {
	authors, err := controller.New[blog.Author](db, authorOptions(log, authorizer))
	if err != nil {
		return nil, err
	}

	posts, err := controller.New[blog.Post](db, postOptions(log, authorizer, nil))
	if err != nil {
		return nil, err
	}

	authorPosts, err := controller.New[blog.Post](db, postOptions(log, authorizer, map[string]string{"author": "author_id"}))
	if err != nil {
		return nil, err
	}

	postComments, err := controller.New[blog.Comment](db, commentOptions(log, authorizer))
	if err != nil {
		return nil, err
	}

	approved, err := controller.New[blog.Comment](db, approvedCommentOptions(log, authorizer))
	if err != nil {
		return nil, err
	}

	return []resource{
		{path: "/authors", param: "author", handlers: authors},
		{path: "/authors/:author/posts", param: "post", handlers: authorPosts},
		{path: "/posts", param: "post", handlers: posts},
		{path: "/posts/:post/comments", param: "comment", handlers: postComments},
		{path: "/approved-comments", param: "comment", handlers: approved},
	}, nil
}

func authorOptions(log logger.Logger, authorizer controller.Authorizer) controller.Options {
	return controller.Options{
		Name:              "authors",
		AllowedOperations: []string{"index", "show", "create", "update", "delete"},
		Authorizer:        authorizer,
		ListFields:        []string{"id", "name", "email", "created_at"},
		AllowedFields:     append(prefixed("", authorFields), prefixed("posts", []string{"id", "author_id", "title", "slug", "order_column"})...),
		AllowedFilters: []query.Filter{
			query.Partial("name"),
			query.Exact("email"),
		},
		AllowedSorts:    []string{"name", "created_at"},
		DefaultSort:     []string{"name"},
		AllowedIncludes: []query.AllowedInclude{query.Include("posts")},
		Validation:      blog.AuthorRules,
		Logger:          logger.ForResource(log, "authors"),
	}
}

func postOptions(log logger.Logger, authorizer controller.Authorizer, params map[string]string) controller.Options {
	name := "posts"
	if len(params) > 0 {
		name = "author posts"
	}

	return controller.Options{
		Name:              name,
		AllowedOperations: []string{controller.AllOperations},
		Authorizer:        authorizer,
		AllowedFields: append(append(prefixed("", postFields),
			prefixed("author", []string{"id", "name"})...),
			prefixed("comments", []string{"id", "post_id", "author_name", "body"})...),
		AllowedFilters: []query.Filter{
			query.Partial("title"),
			query.Exact("status"),
			query.Exact("author").On("author_id"),
			query.Callback("published", publishedFilter),
		},
		AllowedSorts:     []string{"title", "order_column", "published_at", "created_at"},
		DefaultSort:      []string{"order_column"},
		AllowedIncludes:  []query.AllowedInclude{query.Include("author"), query.Include("comments")},
		AllowedAppends:   []string{"excerpt", "reading_time"},
		ParamConstraints: params,
		Validation:       blog.PostRules,
		Logger:           logger.ForResource(log, name),
	}
}

func commentOptions(log logger.Logger, authorizer controller.Authorizer) controller.Options {
	return controller.Options{
		Name:              "comments",
		AllowedOperations: []string{"index", "show", "create", "delete"},
		Authorizer:        authorizer,
		AllowedFields:     prefixed("", commentFields),
		AllowedFilters:    []query.Filter{query.Exact("approved")},
		AllowedSorts:      []string{"created_at"},
		DefaultSort:       []string{"-created_at"},
		AllowedIncludes:   []query.AllowedInclude{query.Include("post")},
		ParamConstraints:  map[string]string{"post": "post_id"},
		Validation:        blog.CommentRules,
		Logger:            logger.ForResource(log, "comments"),
	}
}

func approvedCommentOptions(log logger.Logger, authorizer controller.Authorizer) controller.Options {
	return controller.Options{
		Name:              "approved comments",
		AllowedOperations: []string{"index", "show"},
		Authorizer:        authorizer,
		NoPagination:      true,
		AllowedFields:     prefixed("", commentFields),
		DefaultSort:       []string{"-created_at"},
		Constraints:       map[string]interface{}{"approved": true},
		Logger:            logger.ForResource(log, "approved comments"),
	}
}

// publishedFilter matches posts with (true) or without (false) a publication date.
func publishedFilter(db *gorm.DB, values []string) *gorm.DB {
	if strings.EqualFold(values[0], "false") {
		return db.Where("published_at IS NULL")
	}
	return db.Where("published_at IS NOT NULL")
}

func prefixed(relation string, fields []string) []string {
	if relation == "" {
		return append([]string(nil), fields...)
	}
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = relation + "." + f
	}
	return out
}
