// Package query builds gorm queries from request parameters against explicit
// allow-lists, in the style of Spatie's Laravel query builder.
//
// Supported parameters:
//
//	filter[title]=hello           partial or exact filters, comma separated values
//	sort=-published_at,title      ascending, "-" for descending
//	include=author,comments.author
//	fields=id,title               base columns, also fields[<table>]=...
//	fields[author]=id,name        columns of an included relation
//	append=excerpt                computed attributes (see Appender)
//	page=2&per_page=25
//
// Requesting anything outside an allow-list yields an *InvalidQueryError.
// Builders record the first error and every later step becomes a no-op, so
// callers check Err once after configuring the allow-lists.
package query
