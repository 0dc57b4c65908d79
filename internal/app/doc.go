// Package app wires configuration, database and HTTP routes into the
// example API service.
package app
