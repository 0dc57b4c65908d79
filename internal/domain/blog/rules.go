package blog

import "github.com/falcomnl/api-controller/pkg/validation"

// AuthorRules validate author bodies.
var AuthorRules = validation.StaticRules{
	Create: validation.Rules{
		"name":  "required,min=2,max=255",
		"email": "required,email,max=255",
		"bio":   "max=2000",
	},
	Update: validation.Rules{
		"name":  "min=2,max=255",
		"email": "email,max=255",
		"bio":   "max=2000",
	},
}

// PostRules validate post bodies.
var PostRules = validation.StaticRules{
	Create: validation.Rules{
		"author_id":    "required,uuid4",
		"title":        "required,min=3,max=255",
		"slug":         "required,alpha_dash,max=255",
		"body":         "required",
		"status":       "oneof=draft published",
		"published_at": "datetime=2006-01-02T15:04:05Z07:00",
	},
	Update: validation.Rules{
		"title":        "min=3,max=255",
		"slug":         "alpha_dash,max=255",
		"status":       "oneof=draft published",
		"published_at": "datetime=2006-01-02T15:04:05Z07:00",
	},
	Custom: validation.Messages{
		"slug.alpha_dash": "The slug may only contain letters, numbers, dashes and underscores, e.g. my-first-post.",
	},
}

// CommentRules validate comment bodies.
var CommentRules = validation.StaticRules{
	Create: validation.Rules{
		"post_id":     "required,uuid4",
		"author_name": "required,max=255",
		"body":        "required,min=2,max=5000",
	},
}
