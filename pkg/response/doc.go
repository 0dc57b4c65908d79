// Package response writes the uniform JSON envelope returned by every
// api-controller endpoint:
//
//	{"success": true, "message": null, "code": 200, "data": ..., "pagination": ...}
//
// Failures carry a message and, for validation failures, an errors bag keyed
// by field. Results of any shape (models, slices, paginators, maps) are
// normalized to plain JSON values before they are wrapped.
package response
