// Package blog holds the models of the example API: authors, their posts
// and the comments on them.
package blog
