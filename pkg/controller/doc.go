// Package controller provides generic CRUD handlers for gin backed by gorm.
//
// A Resource serves one model type. Every handler checks the operation
// allow-list first (501), authorizes the request (401), resolves the query
// from the request parameters (500 on an invalid query), looks up the record
// addressed by the last route parameter (404), validates the body of writes
// (400) and answers with the response envelope.
package controller
